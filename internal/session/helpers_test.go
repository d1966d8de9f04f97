package session

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jling-NM/CACTI-sub000/pkg/catalog"
	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

const testCatalogYAML = `
codes:
  - {value: 1, name: CQ0, label: Closed Question}
  - {value: 2, name: OQ0, label: Open Question}
globals:
  - {value: 1, name: EMPATHY, label: Empathy, default: 3, min: 1, max: 5}
  - {value: 2, name: PARTNERSHIP, label: Partnership, default: 2, min: 1, max: 5}
`

func testCatalogs(t *testing.T) *catalog.Set {
	t.Helper()
	set, err := catalog.Parse(strings.NewReader(testCatalogYAML))
	require.NoError(t, err)
	return set
}

// fakePlayer is a Player whose clock the test moves by hand.
type fakePlayer struct {
	pos    time.Duration
	offset int64
	length int64
}

func (p *fakePlayer) BytePosition() int64     { return p.offset }
func (p *fakePlayer) ByteLength() int64       { return p.length }
func (p *fakePlayer) Position() time.Duration { return p.pos }

func (p *fakePlayer) seek(d time.Duration) {
	p.pos = d
	p.offset = int64(d/time.Millisecond) * 16
}

func parsedUtterance(t *testing.T, order int, start, end time.Duration) *types.Utterance {
	t.Helper()
	u := types.NewUtterance(order, start, int64(start/time.Millisecond))
	require.NoError(t, u.SetEnd(end, int64(end/time.Millisecond)))
	return u
}
