package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Tx runs store statements inside one transaction. It carries the same
// statement methods as Store.
type Tx struct {
	queries
}

// WithTx runs fn in a transaction. The transaction commits if fn returns
// nil and rolls back otherwise, leaving the file as it was before the call.
func (s *Store) WithTx(ctx context.Context, fn func(*Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Tx{queries{ex: tx}}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// AddLinkedUtterance inserts an utterance and links it to each of globalIDs
// in one transaction. Either every row lands or none does.
func (s *Store) AddLinkedUtterance(ctx context.Context, codeID sql.NullInt64, timeMarker int64, annotation string, globalIDs ...int64) (int64, error) {
	var id int64
	err := s.WithTx(ctx, func(tx *Tx) error {
		var err error
		id, err = tx.AddUtterance(ctx, codeID, timeMarker, annotation)
		if err != nil {
			return err
		}
		for _, gid := range globalIDs {
			if err := tx.LinkUtteranceToGlobal(ctx, id, gid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}
