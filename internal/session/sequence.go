// Package session holds the in-memory state of one rater's coding pass over
// one audio file: the utterance sequence, the global ratings, and the
// Session that applies user actions to them.
//
// Nothing here knows about file formats. The legacy transcript codec lives
// in internal/legacy and the relational codec in internal/sqlite.
package session

import (
	"errors"
	"fmt"

	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

// Sequence errors.
var (
	ErrOrderNotIncreasing = errors.New("utterance order must increase")
	ErrOpenUtterance      = errors.New("last utterance has no end boundary")
	ErrEmptySequence      = errors.New("sequence is empty")
)

// Sequence is the ordered list of utterances in a coding session. It is
// append-only except that the last element may be removed (undo).
// A Sequence is not safe for concurrent use.
type Sequence struct {
	items []*types.Utterance
}

// NewSequence returns an empty Sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Append adds u to the end of the sequence. Returns ErrOrderNotIncreasing
// if u.Order does not exceed the last order, and ErrOpenUtterance if the
// current last utterance is still in the Started state.
func (s *Sequence) Append(u *types.Utterance) error {
	if last, ok := s.Last(); ok {
		if u.Order <= last.Order {
			return fmt.Errorf("%w: %d after %d", ErrOrderNotIncreasing, u.Order, last.Order)
		}
		if last.State() == types.StateStarted {
			return fmt.Errorf("%w: order %d", ErrOpenUtterance, last.Order)
		}
	}
	s.items = append(s.items, u)
	return nil
}

// RemoveLast drops the last utterance. No-op on an empty sequence.
func (s *Sequence) RemoveLast() {
	if len(s.items) == 0 {
		return
	}
	s.items[len(s.items)-1] = nil
	s.items = s.items[:len(s.items)-1]
}

// Get returns the utterance at index i, or false when i is out of range.
func (s *Sequence) Get(i int) (*types.Utterance, bool) {
	if i < 0 || i >= len(s.items) {
		return nil, false
	}
	return s.items[i], true
}

// Last returns the final utterance, or false when the sequence is empty.
func (s *Sequence) Last() (*types.Utterance, bool) {
	return s.Get(len(s.items) - 1)
}

// Size returns the number of utterances.
func (s *Sequence) Size() int {
	return len(s.items)
}

// Clear removes every utterance.
func (s *Sequence) Clear() {
	s.items = nil
}

// All returns the utterances in order. The slice is a copy; the utterances
// are shared.
func (s *Sequence) All() []*types.Utterance {
	out := make([]*types.Utterance, len(s.items))
	copy(out, s.items)
	return out
}

// NextOrder returns the order value the next appended utterance should use.
func (s *Sequence) NextOrder() int {
	if last, ok := s.Last(); ok {
		return last.Order + 1
	}
	return 1
}
