// This file implements the globals table accessor.
package sqlite

import (
	"context"
	"fmt"
)

// GlobalRow is one row of the globals table.
type GlobalRow struct {
	ID            int64
	Name          string
	ResponseValue int
}

// AddGlobal inserts a global rating and returns its id. A name already in
// the table fails with ErrDuplicate.
func (q queries) AddGlobal(ctx context.Context, name string, value int) (int64, error) {
	res, err := q.ex.ExecContext(ctx,
		"INSERT INTO globals (global_name, response_value) VALUES (?, ?)", name, value,
	)
	if err != nil {
		if isUniqueConstraintErr(err) {
			return 0, fmt.Errorf("adding global %s: %w", name, ErrDuplicate)
		}
		return 0, fmt.Errorf("adding global %s: %w", name, err)
	}
	return res.LastInsertId()
}

// SetGlobalResponseValue updates the rating stored for a global.
func (q queries) SetGlobalResponseValue(ctx context.Context, id int64, value int) error {
	res, err := q.ex.ExecContext(ctx,
		"UPDATE globals SET response_value = ? WHERE global_id = ?", value, id,
	)
	if err != nil {
		return fmt.Errorf("setting global %d: %w", id, err)
	}
	return requireRow(res, "global", id)
}

// PutGlobal inserts or updates a global by name and returns its id.
func (q queries) PutGlobal(ctx context.Context, name string, value int) (int64, error) {
	var id int64
	err := q.ex.QueryRowContext(ctx, `
		INSERT INTO globals (global_name, response_value) VALUES (?, ?)
		ON CONFLICT(global_name) DO UPDATE SET response_value = excluded.response_value
		RETURNING global_id`, name, value).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("putting global %s: %w", name, err)
	}
	return id, nil
}

// GetGlobals returns every global ordered by id.
func (q queries) GetGlobals(ctx context.Context) ([]GlobalRow, error) {
	rows, err := q.ex.QueryContext(ctx,
		"SELECT global_id, global_name, response_value FROM globals ORDER BY global_id",
	)
	if err != nil {
		return nil, fmt.Errorf("querying globals: %w", err)
	}
	defer rows.Close()

	var out []GlobalRow
	for rows.Next() {
		var g GlobalRow
		if err := rows.Scan(&g.ID, &g.Name, &g.ResponseValue); err != nil {
			return nil, fmt.Errorf("scanning global: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating globals: %w", err)
	}
	return out, nil
}
