package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jling-NM/CACTI-sub000/pkg/catalog"
	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

// Rating errors.
var (
	ErrUnknownGlobal    = errors.New("unknown global code")
	ErrRatingOutOfRange = errors.New("rating out of range")
)

// RatingEntry pairs a global code with its current rating.
type RatingEntry struct {
	Code   types.GlobalCode
	Rating int
}

// Ratings maps each global code of a catalog to an integer rating. Entries
// are created at construction and never removed.
type Ratings struct {
	order  []types.GlobalCode
	values map[string]int
}

// NewRatings seeds one entry per global code in cat, each at its default.
func NewRatings(cat *catalog.GlobalCatalog) *Ratings {
	codes := cat.Codes()
	r := &Ratings{
		order:  codes,
		values: make(map[string]int, len(codes)),
	}
	for _, c := range codes {
		r.values[c.Name] = c.DefaultRating
	}
	return r
}

// Len returns the number of entries.
func (r *Ratings) Len() int {
	return len(r.order)
}

// Rating returns the rating for code. Returns ErrUnknownGlobal if the code
// was not in the catalog the set was built from.
func (r *Ratings) Rating(code types.GlobalCode) (int, error) {
	v, ok := r.values[code.Name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownGlobal, code.Name)
	}
	return v, nil
}

// SetRating overwrites the rating for code. Values outside the code's
// [MinRating, MaxRating] are refused with ErrRatingOutOfRange.
func (r *Ratings) SetRating(code types.GlobalCode, value int) error {
	known, err := r.lookup(code.Name)
	if err != nil {
		return err
	}
	if !known.InRange(value) {
		return fmt.Errorf("%w: %s=%d not in [%d, %d]",
			ErrRatingOutOfRange, known.Name, value, known.MinRating, known.MaxRating)
	}
	r.values[known.Name] = value
	return nil
}

// SetRatingByName is SetRating keyed by global code name.
func (r *Ratings) SetRatingByName(name string, value int) error {
	known, err := r.lookup(name)
	if err != nil {
		return err
	}
	return r.SetRating(known, value)
}

// Restore sets the rating for the named code without the range check, for
// values read back from storage. It returns the catalog entry so the caller
// can report a value outside its range.
func (r *Ratings) Restore(name string, value int) (types.GlobalCode, error) {
	known, err := r.lookup(name)
	if err != nil {
		return types.GlobalCode{}, err
	}
	r.values[known.Name] = value
	return known, nil
}

// Entries returns the ratings in catalog order.
func (r *Ratings) Entries() []RatingEntry {
	out := make([]RatingEntry, 0, len(r.order))
	for _, c := range r.order {
		out = append(out, RatingEntry{Code: c, Rating: r.values[c.Name]})
	}
	return out
}

// ReportText renders "name:\trating" lines in catalog order, newline-joined.
func (r *Ratings) ReportText() string {
	lines := make([]string, 0, len(r.order))
	for _, e := range r.Entries() {
		lines = append(lines, fmt.Sprintf("%s:\t%d", e.Code.Name, e.Rating))
	}
	return strings.Join(lines, "\n")
}

func (r *Ratings) lookup(name string) (types.GlobalCode, error) {
	for _, c := range r.order {
		if c.Name == name {
			return c, nil
		}
	}
	return types.GlobalCode{}, fmt.Errorf("%w: %s", ErrUnknownGlobal, name)
}
