package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

func TestSession_CodingPass(t *testing.T) {
	player := &fakePlayer{length: 1 << 20}
	s := New("interview.wav", testCatalogs(t), WithPlayer(player))

	player.seek(time.Second)
	first, err := s.StartUtterance()
	require.NoError(t, err)
	assert.Equal(t, 1, first.Order)

	player.seek(3 * time.Second)
	require.NoError(t, s.CodeUtteranceByName("CQ0"))
	assert.Equal(t, types.StateCoded, first.State())
	assert.Equal(t, 3*time.Second, first.EndTime)

	player.seek(4 * time.Second)
	second, err := s.StartUtterance()
	require.NoError(t, err)
	assert.Equal(t, 2, second.Order)

	player.seek(6 * time.Second)
	require.NoError(t, s.EndUtterance())
	require.NoError(t, s.CodeUtteranceByName("OQ0"))
	require.NoError(t, s.Annotate("asks about goals"))

	assert.Equal(t, 2, s.Utterances.Size())
	assert.Equal(t, "OQ0", second.Code.Name)
	assert.Equal(t, "asks about goals", second.Annotation)
}

func TestSession_StartClosesOpenUtterance(t *testing.T) {
	player := &fakePlayer{}
	s := New("a.wav", testCatalogs(t), WithPlayer(player))

	_, err := s.StartUtterance()
	require.NoError(t, err)
	player.seek(2 * time.Second)
	_, err = s.StartUtterance()
	require.NoError(t, err)

	first, _ := s.Utterances.Get(0)
	assert.Equal(t, types.StateParsed, first.State())
	assert.Equal(t, 2*time.Second, first.EndTime)
}

func TestSession_Undo(t *testing.T) {
	player := &fakePlayer{}
	s := New("a.wav", testCatalogs(t), WithPlayer(player))
	s.Undo()
	assert.Equal(t, 0, s.Utterances.Size(), "undo on empty session is a no-op")

	_, err := s.StartUtterance()
	require.NoError(t, err)
	player.seek(time.Second)
	require.NoError(t, s.CodeUtteranceByName("CQ0"))

	last, _ := s.Utterances.Last()
	s.Undo()
	assert.Equal(t, types.StateParsed, last.State())
	s.Undo()
	assert.Equal(t, types.StateStarted, last.State())
	s.Undo()
	assert.Equal(t, 0, s.Utterances.Size())
}

func TestSession_Errors(t *testing.T) {
	t.Run("no player", func(t *testing.T) {
		s := New("a.wav", testCatalogs(t))
		_, err := s.StartUtterance()
		assert.ErrorIs(t, err, ErrNoPlayer)
	})

	t.Run("empty session edits", func(t *testing.T) {
		s := New("a.wav", testCatalogs(t), WithPlayer(&fakePlayer{}))
		assert.ErrorIs(t, s.EndUtterance(), ErrEmptySequence)
		assert.ErrorIs(t, s.CodeUtterance(types.Code{Value: 1, Name: "CQ0"}), ErrEmptySequence)
		assert.ErrorIs(t, s.Annotate("x"), ErrEmptySequence)
	})

	t.Run("double end", func(t *testing.T) {
		player := &fakePlayer{}
		s := New("a.wav", testCatalogs(t), WithPlayer(player))
		_, err := s.StartUtterance()
		require.NoError(t, err)
		player.seek(time.Second)
		require.NoError(t, s.EndUtterance())
		assert.ErrorIs(t, s.EndUtterance(), types.ErrInvalidTransition)
	})

	t.Run("unknown code name", func(t *testing.T) {
		s := New("a.wav", testCatalogs(t), WithPlayer(&fakePlayer{}))
		_, err := s.StartUtterance()
		require.NoError(t, err)
		assert.Error(t, s.CodeUtteranceByName("NOPE"))
	})
}

func TestSession_ClampsBytePosition(t *testing.T) {
	player := &fakePlayer{offset: 500, length: 100}
	s := New("a.wav", testCatalogs(t), WithPlayer(player))
	u, err := s.StartUtterance()
	require.NoError(t, err)
	assert.Equal(t, int64(100), u.StartOffset)
}
