package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jling-NM/CACTI-sub000/pkg/catalog"
	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

// ErrNoPlayer is returned by edits that need a playback position when the
// Session was built without a Player.
var ErrNoPlayer = errors.New("no audio player attached")

// Player is the audio collaborator. The Session only reads its position;
// playback may continue between calls.
type Player interface {
	// BytePosition returns the current playback position in the stream.
	BytePosition() int64
	// ByteLength returns the stream length in bytes, or 0 if unknown.
	ByteLength() int64
	// Position returns the current playback time.
	Position() time.Duration
}

// Session is one rater's coding pass over one audio file. It turns UI
// actions into lifecycle transitions on its Sequence and Ratings.
type Session struct {
	AudioFile  string
	Notes      string
	Utterances *Sequence
	Ratings    *Ratings

	codes  *catalog.Catalog
	player Player
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for edit tracing.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPlayer attaches the audio collaborator.
func WithPlayer(p Player) Option {
	return func(s *Session) { s.player = p }
}

// New starts an empty session for audioFile using the catalogs in cats.
func New(audioFile string, cats *catalog.Set, opts ...Option) *Session {
	s := &Session{
		AudioFile:  audioFile,
		Utterances: NewSequence(),
		Ratings:    NewRatings(cats.Globals),
		codes:      cats.Codes,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Codes returns the behavioral catalog the session codes against.
func (s *Session) Codes() *catalog.Catalog {
	return s.codes
}

// StartUtterance opens a new utterance at the current playback position.
// An utterance left open is ended at the same position first.
func (s *Session) StartUtterance() (*types.Utterance, error) {
	at, offset, err := s.position()
	if err != nil {
		return nil, err
	}
	if last, ok := s.Utterances.Last(); ok && last.State() == types.StateStarted {
		if err := last.SetEnd(at, offset); err != nil {
			return nil, fmt.Errorf("end utterance %d: %w", last.Order, err)
		}
	}

	u := types.NewUtterance(s.Utterances.NextOrder(), at, offset)
	if err := s.Utterances.Append(u); err != nil {
		return nil, err
	}
	s.logger.Debug("utterance started", "order", u.Order, "start", at, "offset", offset)
	return u, nil
}

// EndUtterance closes the open utterance at the current playback position.
func (s *Session) EndUtterance() error {
	last, ok := s.Utterances.Last()
	if !ok {
		return ErrEmptySequence
	}
	if last.State() != types.StateStarted {
		return fmt.Errorf("%w: utterance %d is already %s", types.ErrInvalidTransition, last.Order, last.State())
	}
	at, offset, err := s.position()
	if err != nil {
		return err
	}
	if err := last.SetEnd(at, offset); err != nil {
		return fmt.Errorf("end utterance %d: %w", last.Order, err)
	}
	s.logger.Debug("utterance ended", "order", last.Order, "end", at, "offset", offset)
	return nil
}

// CodeUtterance assigns code to the last utterance, ending it first if it is
// still open. Coding an already coded utterance replaces its code.
func (s *Session) CodeUtterance(code types.Code) error {
	last, ok := s.Utterances.Last()
	if !ok {
		return ErrEmptySequence
	}
	if last.State() == types.StateStarted {
		if err := s.EndUtterance(); err != nil {
			return err
		}
	}
	if err := last.SetCode(code); err != nil {
		return fmt.Errorf("code utterance %d: %w", last.Order, err)
	}
	s.logger.Debug("utterance coded", "order", last.Order, "code", code.Name)
	return nil
}

// CodeUtteranceByName resolves name in the session catalog and codes the
// last utterance with it.
func (s *Session) CodeUtteranceByName(name string) error {
	code, err := s.codes.CodeWithName(name)
	if err != nil {
		return err
	}
	return s.CodeUtterance(code)
}

// Annotate replaces the annotation text of the last utterance.
func (s *Session) Annotate(text string) error {
	last, ok := s.Utterances.Last()
	if !ok {
		return ErrEmptySequence
	}
	last.Annotation = text
	return nil
}

// Undo reverts the most recent step on the last utterance: a code is
// stripped, then the end boundary, then the utterance itself is removed.
// No-op on an empty session.
func (s *Session) Undo() {
	last, ok := s.Utterances.Last()
	if !ok {
		return
	}
	switch last.State() {
	case types.StateCoded:
		last.StripCode()
	case types.StateParsed:
		last.StripEndData()
	default:
		s.Utterances.RemoveLast()
	}
	s.logger.Debug("undo", "order", last.Order, "state", last.State())
}

func (s *Session) position() (time.Duration, int64, error) {
	if s.player == nil {
		return 0, 0, ErrNoPlayer
	}
	offset := s.player.BytePosition()
	if offset < 0 {
		offset = 0
	}
	if n := s.player.ByteLength(); n > 0 && offset > n {
		offset = n
	}
	return s.player.Position(), offset, nil
}
