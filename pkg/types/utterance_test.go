package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCode = Code{Value: 1, Name: "CQ0", Label: "Closed question"}

func TestUtteranceLifecycle(t *testing.T) {
	u := NewUtterance(1, time.Second, 100)
	assert.Equal(t, StateStarted, u.State())
	assert.False(t, u.HasEnd())
	assert.Equal(t, InvalidCode, u.Code)

	require.NoError(t, u.SetEnd(3*time.Second, 300))
	assert.Equal(t, StateParsed, u.State())

	require.NoError(t, u.SetCode(testCode))
	assert.Equal(t, StateCoded, u.State())

	u.StripCode()
	assert.Equal(t, StateParsed, u.State())
	assert.Equal(t, 3*time.Second, u.EndTime, "StripCode keeps the end boundary")

	require.NoError(t, u.SetCode(testCode))
	u.StripEndData()
	assert.Equal(t, StateStarted, u.State())
	assert.Equal(t, InvalidCode, u.Code, "StripEndData clears the code too")
	assert.Equal(t, time.Second, u.StartTime, "start boundary survives")
	assert.Equal(t, int64(100), u.StartOffset)
}

func TestUtteranceSetEnd(t *testing.T) {
	tests := []struct {
		name      string
		end       time.Duration
		endOffset int64
		wantErr   error
	}{
		{"after start", 2 * time.Second, 200, nil},
		{"zero length", time.Second, 100, nil},
		{"offset before start", 2 * time.Second, 99, ErrInvalidOffsets},
		{"time before start", 500 * time.Millisecond, 200, ErrInvalidTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUtterance(1, time.Second, 100)
			err := u.SetEnd(tt.end, tt.endOffset)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, StateStarted, u.State())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StateParsed, u.State())
		})
	}
}

func TestUtteranceSetCode(t *testing.T) {
	t.Run("started utterance cannot be coded", func(t *testing.T) {
		u := NewUtterance(1, 0, 0)
		assert.ErrorIs(t, u.SetCode(testCode), ErrInvalidTransition)
	})

	t.Run("invalid sentinel rejected", func(t *testing.T) {
		u := NewUtterance(1, 0, 0)
		require.NoError(t, u.SetEnd(time.Second, 10))
		assert.ErrorIs(t, u.SetCode(InvalidCode), ErrInvalidCode)
	})

	t.Run("recoding overwrites", func(t *testing.T) {
		u := NewUtterance(1, 0, 0)
		require.NoError(t, u.SetEnd(time.Second, 10))
		require.NoError(t, u.SetCode(testCode))
		other := Code{Value: 2, Name: "OQ0"}
		require.NoError(t, u.SetCode(other))
		assert.Equal(t, other, u.Code)
	})

	t.Run("moving end keeps code", func(t *testing.T) {
		u := NewUtterance(1, 0, 0)
		require.NoError(t, u.SetEnd(time.Second, 10))
		require.NoError(t, u.SetCode(testCode))
		require.NoError(t, u.SetEnd(2*time.Second, 20))
		assert.Equal(t, StateCoded, u.State())
	})
}

func TestUtteranceStateString(t *testing.T) {
	assert.Equal(t, "started", StateStarted.String())
	assert.Equal(t, "parsed", StateParsed.String())
	assert.Equal(t, "coded", StateCoded.String())
	assert.Equal(t, "unknown", UtteranceState(9).String())
}
