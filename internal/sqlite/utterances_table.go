// This file implements the utterances table accessor.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jling-NM/CACTI-sub000/pkg/timecode"
	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

// NullCodeID marks an utterance row with no code.
var NullCodeID = sql.NullInt64{}

// CodeRef wraps a code id for AddUtterance and RecodeUtterance.
func CodeRef(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: true}
}

// UtteranceRow is one row of the utterances table joined with its code name.
// CodeName is empty when CodeID is not valid.
type UtteranceRow struct {
	ID         int64
	CodeID     sql.NullInt64
	CodeName   string
	TimeMarker int64
	Annotation string
}

// Time returns the time marker as a duration.
func (r UtteranceRow) Time() time.Duration {
	return timecode.FromMillis(r.TimeMarker)
}

// AddUtterance inserts an utterance and returns its id. Ids strictly
// increase over the life of the file. timeMarker is milliseconds and must
// be unique within the session.
func (q queries) AddUtterance(ctx context.Context, codeID sql.NullInt64, timeMarker int64, annotation string) (int64, error) {
	res, err := q.ex.ExecContext(ctx,
		"INSERT INTO utterances (code_id, time_marker, annotation) VALUES (?, ?, ?)",
		codeID, timeMarker, annotation,
	)
	if err != nil {
		if isUniqueConstraintErr(err) {
			return 0, fmt.Errorf("adding utterance at %d: %w", timeMarker, ErrDuplicate)
		}
		return 0, fmt.Errorf("adding utterance at %d: %w", timeMarker, err)
	}
	return res.LastInsertId()
}

// RecodeUtterance replaces the code of an utterance.
func (q queries) RecodeUtterance(ctx context.Context, id int64, codeID sql.NullInt64) error {
	res, err := q.ex.ExecContext(ctx, "UPDATE utterances SET code_id = ? WHERE utterance_id = ?", codeID, id)
	if err != nil {
		return fmt.Errorf("recoding utterance %d: %w", id, err)
	}
	return requireRow(res, "utterance", id)
}

// AnnotateUtterance replaces the annotation of an utterance.
func (q queries) AnnotateUtterance(ctx context.Context, id int64, text string) error {
	res, err := q.ex.ExecContext(ctx, "UPDATE utterances SET annotation = ? WHERE utterance_id = ?", text, id)
	if err != nil {
		return fmt.Errorf("annotating utterance %d: %w", id, err)
	}
	return requireRow(res, "utterance", id)
}

// RemoveUtterance deletes an utterance and its global links. An unknown id
// removes nothing and is not an error; the affected row count is returned.
func (q queries) RemoveUtterance(ctx context.Context, id int64) (int64, error) {
	res, err := q.ex.ExecContext(ctx, "DELETE FROM utterances WHERE utterance_id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("removing utterance %d: %w", id, err)
	}
	return res.RowsAffected()
}

// clearUtterances deletes every utterance row.
func (q queries) clearUtterances(ctx context.Context) error {
	if _, err := q.ex.ExecContext(ctx, "DELETE FROM utterances"); err != nil {
		return fmt.Errorf("clearing utterances: %w", err)
	}
	return nil
}

const selectUtterances = `
	SELECT u.utterance_id, u.code_id, COALESCE(c.code_name, ''), u.time_marker, u.annotation
	FROM utterances u
	LEFT JOIN codes c ON c.code_id = u.code_id
	ORDER BY u.utterance_id`

// GetUtterances returns every utterance ordered by id.
func (q queries) GetUtterances(ctx context.Context) ([]UtteranceRow, error) {
	return q.queryUtterances(ctx, selectUtterances)
}

// GetGlobalUtterances returns the same rows as GetUtterances. It does not
// filter on utterances_globals.
func (q queries) GetGlobalUtterances(ctx context.Context) ([]UtteranceRow, error) {
	return q.queryUtterances(ctx, selectUtterances)
}

func (q queries) queryUtterances(ctx context.Context, query string) ([]UtteranceRow, error) {
	rows, err := q.ex.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying utterances: %w", err)
	}
	defer rows.Close()

	var out []UtteranceRow
	for rows.Next() {
		var r UtteranceRow
		if err := rows.Scan(&r.ID, &r.CodeID, &r.CodeName, &r.TimeMarker, &r.Annotation); err != nil {
			return nil, fmt.Errorf("scanning utterance: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating utterances: %w", err)
	}
	return out, nil
}

func requireRow(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, types.ErrNotFound)
	}
	return nil
}
