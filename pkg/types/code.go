package types

import "fmt"

// Code is a behavioral (MISC) code applied to a single utterance.
type Code struct {
	Value int    // Stable identifier, unique within a catalog.
	Name  string // Machine key, unique within a catalog.
	Label string // Display text.
}

// InvalidCode marks an utterance that has not been coded yet. It resolves
// through catalog lookups but can never be added to a catalog.
var InvalidCode = Code{Value: -1}

// IsValid reports whether c is a real code rather than the InvalidCode sentinel.
func (c Code) IsValid() bool {
	return c.Value != InvalidCode.Value
}

func (c Code) String() string {
	if !c.IsValid() {
		return "<uncoded>"
	}
	return fmt.Sprintf("%d:%s", c.Value, c.Name)
}

// GlobalCode is a session-level rating dimension with an inclusive range.
type GlobalCode struct {
	Code
	DefaultRating int
	MinRating     int
	MaxRating     int
}

// InvalidGlobalCode is the global counterpart of InvalidCode.
var InvalidGlobalCode = GlobalCode{Code: InvalidCode}

// Validate checks MinRating <= DefaultRating <= MaxRating.
// Returns ErrInvalidRange wrapped with the offending values.
func (g GlobalCode) Validate() error {
	if g.MinRating > g.DefaultRating || g.DefaultRating > g.MaxRating {
		return fmt.Errorf("%w: %s min=%d default=%d max=%d",
			ErrInvalidRange, g.Name, g.MinRating, g.DefaultRating, g.MaxRating)
	}
	return nil
}

// InRange reports whether rating lies within [MinRating, MaxRating].
func (g GlobalCode) InRange(rating int) bool {
	return rating >= g.MinRating && rating <= g.MaxRating
}
