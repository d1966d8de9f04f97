package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/jling-NM/CACTI-sub000/internal/session"
	"github.com/jling-NM/CACTI-sub000/pkg/catalog"
	"github.com/jling-NM/CACTI-sub000/pkg/timecode"
	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

// SaveSession writes seq, ratings, and the session attributes to s in one
// transaction. Utterance rows already in the file are replaced; code and
// global rows are reused by name. Each utterance's time marker is its start
// time in milliseconds, bumped past the previous marker when two utterances
// start in the same millisecond, so markers strictly increase in sequence
// order.
func SaveSession(ctx context.Context, s *Store, seq *session.Sequence, ratings *session.Ratings, audioFile, notes string) error {
	err := s.WithTx(ctx, func(tx *Tx) error {
		if err := tx.clearUtterances(ctx); err != nil {
			return err
		}
		utts := seq.All()
		markers := timeMarkers(utts)
		for i, u := range utts {
			codeID := NullCodeID
			if u.State() == types.StateCoded {
				id, err := tx.EnsureCode(ctx, u.Code.Name)
				if err != nil {
					return err
				}
				codeID = CodeRef(id)
			}
			if _, err := tx.AddUtterance(ctx, codeID, markers[i], u.Annotation); err != nil {
				return fmt.Errorf("utterance %d: %w", u.Order, err)
			}
		}
		for _, e := range ratings.Entries() {
			if _, err := tx.PutGlobal(ctx, e.Code.Name, e.Rating); err != nil {
				return err
			}
		}
		if err := tx.SetAttribute(ctx, AttrSourceAudioFilePath, audioFile); err != nil {
			return err
		}
		return tx.SetAttribute(ctx, AttrGlobalNotes, notes)
	})
	if err != nil {
		return fmt.Errorf("saving session to %s: %w", s.Path(), err)
	}
	s.logger.Debug("session saved", "utterances", seq.Size(), "globals", ratings.Len())
	return nil
}

// timeMarkers assigns each utterance a unique marker no earlier than its
// start time.
func timeMarkers(utts []*types.Utterance) []int64 {
	out := make([]int64, len(utts))
	for i, u := range utts {
		m := timecode.Millis(u.StartTime)
		if i > 0 && m <= out[i-1] {
			m = out[i-1] + 1
		}
		out[i] = m
	}
	return out
}

// LoadRatings reads the globals table into a rating set built from cat.
// Globals in the file that cat does not define are skipped; catalog globals
// absent from the file keep their defaults. Stored values outside the
// catalog range are kept as stored and logged.
func LoadRatings(ctx context.Context, s *Store, cat *catalog.GlobalCatalog) (*session.Ratings, error) {
	rows, err := s.GetGlobals(ctx)
	if err != nil {
		return nil, err
	}
	ratings := session.NewRatings(cat)
	for _, g := range rows {
		code, err := ratings.Restore(g.Name, g.ResponseValue)
		if errors.Is(err, session.ErrUnknownGlobal) {
			s.logger.Warn("skipping global not in catalog", "global", g.Name)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("loading global %s: %w", g.Name, err)
		}
		if !code.InRange(g.ResponseValue) {
			s.logger.Warn("stored rating outside catalog range",
				"global", g.Name, "value", g.ResponseValue, "min", code.MinRating, "max", code.MaxRating)
		}
	}
	return ratings, nil
}
