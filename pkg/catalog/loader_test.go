package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

const sampleYAML = `
codes:
  - {value: 1, name: CQ0, label: Closed Question}
  - {value: 2, name: OQ0, label: Open Question}
globals:
  - {value: 1, name: EMPATHY, label: Empathy, default: 3, min: 1, max: 5}
`

func TestParse(t *testing.T) {
	set, err := Parse(strings.NewReader(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 2, set.Codes.NumCodes())
	assert.Equal(t, 1, set.Globals.NumCodes())
	assert.True(t, set.Codes.Sealed())
	assert.True(t, set.Globals.Sealed())

	code, err := set.Codes.CodeWithValue(2)
	require.NoError(t, err)
	assert.Equal(t, types.Code{Value: 2, Name: "OQ0", Label: "Open Question"}, code)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "duplicate code value",
			yaml:    "codes:\n  - {value: 1, name: A}\n  - {value: 1, name: B}\n",
			wantErr: ErrConflict,
		},
		{
			name:    "global default out of range",
			yaml:    "globals:\n  - {value: 1, name: G, default: 7, min: 1, max: 5}\n",
			wantErr: types.ErrInvalidRange,
		},
		{
			name:    "missing name",
			yaml:    "codes:\n  - {value: 1}\n",
			wantErr: types.ErrInvalidName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("unknown field", func(t *testing.T) {
		_, err := Parse(strings.NewReader("codez: []\n"))
		assert.Error(t, err)
	})
}

func TestParse_EmptyDocument(t *testing.T) {
	set, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, set.Codes.NumCodes())
	assert.Equal(t, 0, set.Globals.NumCodes())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	set, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Codes.NumCodes())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefault(t *testing.T) {
	set, err := Default()
	require.NoError(t, err)
	assert.Greater(t, set.Codes.NumCodes(), 0)
	assert.Greater(t, set.Globals.NumCodes(), 0)

	for _, g := range set.Globals.Codes() {
		assert.NoError(t, g.Validate())
	}
	_, err = set.Codes.CodeWithName("CQ0")
	assert.NoError(t, err)
}
