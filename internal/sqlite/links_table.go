// This file implements the utterances_globals link table accessor.
package sqlite

import (
	"context"
	"fmt"
)

// LinkUtteranceToGlobal associates an utterance with a global. Both rows
// must exist; linking the same pair twice fails with ErrDuplicate.
func (q queries) LinkUtteranceToGlobal(ctx context.Context, utteranceID, globalID int64) error {
	_, err := q.ex.ExecContext(ctx,
		"INSERT INTO utterances_globals (utterance_id, global_id) VALUES (?, ?)",
		utteranceID, globalID,
	)
	if err != nil {
		if isUniqueConstraintErr(err) {
			return fmt.Errorf("linking utterance %d to global %d: %w", utteranceID, globalID, ErrDuplicate)
		}
		return fmt.Errorf("linking utterance %d to global %d: %w", utteranceID, globalID, err)
	}
	return nil
}

// UnlinkUtteranceFromGlobal removes an association. A missing link is not
// an error.
func (q queries) UnlinkUtteranceFromGlobal(ctx context.Context, utteranceID, globalID int64) error {
	_, err := q.ex.ExecContext(ctx,
		"DELETE FROM utterances_globals WHERE utterance_id = ? AND global_id = ?",
		utteranceID, globalID,
	)
	if err != nil {
		return fmt.Errorf("unlinking utterance %d from global %d: %w", utteranceID, globalID, err)
	}
	return nil
}

// GlobalLinks returns the ids of the globals linked to an utterance.
func (q queries) GlobalLinks(ctx context.Context, utteranceID int64) ([]int64, error) {
	rows, err := q.ex.QueryContext(ctx,
		"SELECT global_id FROM utterances_globals WHERE utterance_id = ? ORDER BY global_id",
		utteranceID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying links of utterance %d: %w", utteranceID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
