package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

func TestCodes(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.AddCode(ctx, "CQ0")
	require.NoError(t, err)

	_, err = s.AddCode(ctx, "CQ0")
	assert.ErrorIs(t, err, ErrDuplicate)
	_, err = s.AddCode(ctx, "")
	assert.ErrorIs(t, err, types.ErrInvalidName)

	got, err := s.CodeID(ctx, "CQ0")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = s.CodeID(ctx, "OQ0")
	assert.ErrorIs(t, err, types.ErrNotFound)

	ensured, err := s.EnsureCode(ctx, "CQ0")
	require.NoError(t, err)
	assert.Equal(t, id, ensured)

	fresh, err := s.EnsureCode(ctx, "OQ0")
	require.NoError(t, err)
	assert.Greater(t, fresh, id)
}

func TestAddUtterance_IDsStrictlyIncrease(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	code, err := s.AddCode(ctx, "CQ0")
	require.NoError(t, err)

	var last int64
	for i, marker := range []int64{0, 1500, 3000} {
		id, err := s.AddUtterance(ctx, CodeRef(code), marker, "")
		require.NoError(t, err)
		assert.Greater(t, id, last, "utterance %d", i)
		last = id
	}

	n, err := s.RemoveUtterance(ctx, last)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	id, err := s.AddUtterance(ctx, NullCodeID, 4500, "")
	require.NoError(t, err)
	assert.Greater(t, id, last, "removed ids are not reused")
}

func TestAddUtterance_Constraints(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.AddUtterance(ctx, CodeRef(42), 0, "")
	assert.Error(t, err, "unknown code id violates the foreign key")

	_, err = s.AddUtterance(ctx, NullCodeID, 100, "")
	require.NoError(t, err)
	_, err = s.AddUtterance(ctx, NullCodeID, 100, "")
	assert.ErrorIs(t, err, ErrDuplicate, "time markers are unique")
}

func TestRemoveUtterance_UnknownID(t *testing.T) {
	s := openTestStore(t)
	n, err := s.RemoveUtterance(context.Background(), 999)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecodeAndAnnotate(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	cq, err := s.AddCode(ctx, "CQ0")
	require.NoError(t, err)
	oq, err := s.AddCode(ctx, "OQ0")
	require.NoError(t, err)

	uid, err := s.AddUtterance(ctx, NullCodeID, 2000, "")
	require.NoError(t, err)

	require.NoError(t, s.RecodeUtterance(ctx, uid, CodeRef(cq)))
	require.NoError(t, s.RecodeUtterance(ctx, uid, CodeRef(oq)))
	require.NoError(t, s.AnnotateUtterance(ctx, uid, "reflective"))

	rows, err := s.GetUtterances(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, UtteranceRow{
		ID:         uid,
		CodeID:     CodeRef(oq),
		CodeName:   "OQ0",
		TimeMarker: 2000,
		Annotation: "reflective",
	}, rows[0])
	assert.Equal(t, 2*time.Second, rows[0].Time())

	assert.ErrorIs(t, s.RecodeUtterance(ctx, uid+1, CodeRef(cq)), types.ErrNotFound)
	assert.ErrorIs(t, s.AnnotateUtterance(ctx, uid+1, "x"), types.ErrNotFound)
}

func TestGetUtterances_Uncoded(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.AddUtterance(ctx, NullCodeID, 10, "note")
	require.NoError(t, err)

	rows, err := s.GetUtterances(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].CodeID.Valid)
	assert.Empty(t, rows[0].CodeName)

	global, err := s.GetGlobalUtterances(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, global)
}

func TestGlobals(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.AddGlobal(ctx, "EMPATHY", 3)
	require.NoError(t, err)
	_, err = s.AddGlobal(ctx, "EMPATHY", 4)
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, s.SetGlobalResponseValue(ctx, id, 5))
	assert.ErrorIs(t, s.SetGlobalResponseValue(ctx, id+10, 1), types.ErrNotFound)

	put, err := s.PutGlobal(ctx, "EMPATHY", 2)
	require.NoError(t, err)
	assert.Equal(t, id, put)

	_, err = s.PutGlobal(ctx, "PARTNERSHIP", 4)
	require.NoError(t, err)

	rows, err := s.GetGlobals(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, GlobalRow{ID: id, Name: "EMPATHY", ResponseValue: 2}, rows[0])
	assert.Equal(t, "PARTNERSHIP", rows[1].Name)
}

func TestLinks_CascadeOnDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	gid, err := s.AddGlobal(ctx, "EMPATHY", 3)
	require.NoError(t, err)
	uid, err := s.AddUtterance(ctx, NullCodeID, 0, "")
	require.NoError(t, err)

	require.NoError(t, s.LinkUtteranceToGlobal(ctx, uid, gid))
	assert.ErrorIs(t, s.LinkUtteranceToGlobal(ctx, uid, gid), ErrDuplicate)
	assert.Error(t, s.LinkUtteranceToGlobal(ctx, uid, gid+1), "unknown global violates the foreign key")

	links, err := s.GlobalLinks(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []int64{gid}, links)

	require.NoError(t, s.UnlinkUtteranceFromGlobal(ctx, uid, gid))
	require.NoError(t, s.UnlinkUtteranceFromGlobal(ctx, uid, gid))
	require.NoError(t, s.LinkUtteranceToGlobal(ctx, uid, gid))

	_, err = s.RemoveUtterance(ctx, uid)
	require.NoError(t, err)

	var count int
	require.NoError(t, s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM utterances_globals").Scan(&count))
	assert.Zero(t, count)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	err := s.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.AddCode(ctx, "CQ0"); err != nil {
			return err
		}
		_, err := tx.AddCode(ctx, "CQ0")
		return err
	})
	require.ErrorIs(t, err, ErrDuplicate)

	_, err = s.CodeID(ctx, "CQ0")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAddLinkedUtterance(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	gid, err := s.AddGlobal(ctx, "EMPATHY", 3)
	require.NoError(t, err)

	uid, err := s.AddLinkedUtterance(ctx, NullCodeID, 0, "", gid)
	require.NoError(t, err)
	links, err := s.GlobalLinks(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []int64{gid}, links)

	_, err = s.AddLinkedUtterance(ctx, NullCodeID, 500, "", gid, gid+7)
	require.Error(t, err)

	rows, err := s.GetUtterances(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "failed link must roll back the utterance insert")
}
