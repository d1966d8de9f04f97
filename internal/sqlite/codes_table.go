// This file implements the codes table accessor.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

// AddCode inserts a code name and returns its new id. A name already in the
// table fails with ErrDuplicate.
func (q queries) AddCode(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, types.ErrInvalidName
	}
	res, err := q.ex.ExecContext(ctx, "INSERT INTO codes (code_name) VALUES (?)", name)
	if err != nil {
		if isUniqueConstraintErr(err) {
			return 0, fmt.Errorf("adding code %s: %w", name, ErrDuplicate)
		}
		return 0, fmt.Errorf("adding code %s: %w", name, err)
	}
	return res.LastInsertId()
}

// CodeID returns the id of the named code, or types.ErrNotFound.
func (q queries) CodeID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := q.ex.QueryRowContext(ctx, "SELECT code_id FROM codes WHERE code_name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("code %s: %w", name, types.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("getting code %s: %w", name, err)
	}
	return id, nil
}

// EnsureCode returns the id of the named code, inserting it if absent.
func (q queries) EnsureCode(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, types.ErrInvalidName
	}
	var id int64
	err := q.ex.QueryRowContext(ctx, `
		INSERT INTO codes (code_name) VALUES (?)
		ON CONFLICT(code_name) DO UPDATE SET code_name = excluded.code_name
		RETURNING code_id`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ensuring code %s: %w", name, err)
	}
	return id, nil
}

func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE")
}
