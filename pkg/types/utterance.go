package types

import "time"

// UtteranceState describes how complete an utterance is. States are derived
// from the utterance's fields; the same object moves between them.
type UtteranceState int

// Utterance lifecycle states.
const (
	StateStarted UtteranceState = iota // start boundary only
	StateParsed                        // start and end boundaries
	StateCoded                         // boundaries plus a behavioral code
)

func (s UtteranceState) String() string {
	switch s {
	case StateStarted:
		return "started"
	case StateParsed:
		return "parsed"
	case StateCoded:
		return "coded"
	default:
		return "unknown"
	}
}

// Utterance is a time-bounded, optionally coded segment of recorded speech.
type Utterance struct {
	Order       int           // Position in the session; strictly increasing.
	StartTime   time.Duration // Playback time of the start boundary.
	EndTime     time.Duration // Valid only when HasEnd reports true.
	StartOffset int64         // Audio stream byte position of the start boundary.
	EndOffset   int64         // Valid only when HasEnd reports true.
	Code        Code          // InvalidCode until coded.
	Annotation  string        // Free text; not part of the lifecycle.

	ended bool
}

// NewUtterance returns an utterance in the Started state.
func NewUtterance(order int, start time.Duration, startOffset int64) *Utterance {
	return &Utterance{
		Order:       order,
		StartTime:   start,
		StartOffset: startOffset,
		Code:        InvalidCode,
	}
}

// State derives the lifecycle state from the utterance's fields.
func (u *Utterance) State() UtteranceState {
	switch {
	case !u.ended:
		return StateStarted
	case u.Code.IsValid():
		return StateCoded
	default:
		return StateParsed
	}
}

// HasEnd reports whether the end boundary is set.
func (u *Utterance) HasEnd() bool {
	return u.ended
}

// SetEnd sets the end boundary, moving a Started utterance to Parsed.
// Setting it again on a Parsed or Coded utterance moves the boundary and
// keeps the code. Returns ErrInvalidOffsets if endOffset precedes the start
// offset and ErrInvalidTime if end precedes the start time.
func (u *Utterance) SetEnd(end time.Duration, endOffset int64) error {
	if endOffset < u.StartOffset {
		return ErrInvalidOffsets
	}
	if end < u.StartTime {
		return ErrInvalidTime
	}
	u.EndTime = end
	u.EndOffset = endOffset
	u.ended = true
	return nil
}

// SetCode assigns code, replacing any previous one.
// Returns ErrInvalidTransition if the utterance has no end boundary yet and
// ErrInvalidCode for the InvalidCode sentinel.
func (u *Utterance) SetCode(code Code) error {
	if !u.ended {
		return ErrInvalidTransition
	}
	if !code.IsValid() {
		return ErrInvalidCode
	}
	u.Code = code
	return nil
}

// StripCode moves a Coded utterance back to Parsed. Idempotent.
func (u *Utterance) StripCode() {
	u.Code = InvalidCode
}

// StripEndData clears the end boundary and the code together, moving the
// utterance back to Started. The start boundary is never cleared.
func (u *Utterance) StripEndData() {
	u.EndTime = 0
	u.EndOffset = 0
	u.ended = false
	u.Code = InvalidCode
}
