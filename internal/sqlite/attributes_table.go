// This file implements the attributes table accessor.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jling-NM/CACTI-sub000/pkg/types"
)

// Attribute is one name/value row of the attributes table.
type Attribute struct {
	Name  string
	Value string
}

// SetAttribute stores value under name, replacing any previous value.
func (q queries) SetAttribute(ctx context.Context, name, value string) error {
	if name == "" {
		return types.ErrInvalidName
	}
	_, err := q.ex.ExecContext(ctx, `
		INSERT INTO attributes (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value`, name, value)
	if err != nil {
		return fmt.Errorf("setting attribute %s: %w", name, err)
	}
	return nil
}

// Attribute returns the value stored under name, or types.ErrNotFound.
func (q queries) Attribute(ctx context.Context, name string) (string, error) {
	var v string
	err := q.ex.QueryRowContext(ctx, "SELECT value FROM attributes WHERE name = ?", name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("attribute %s: %w", name, types.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("getting attribute %s: %w", name, err)
	}
	return v, nil
}

// GetAttributes returns every attribute ordered by name.
func (q queries) GetAttributes(ctx context.Context) ([]Attribute, error) {
	rows, err := q.ex.QueryContext(ctx, "SELECT name, value FROM attributes ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying attributes: %w", err)
	}
	defer rows.Close()

	var out []Attribute
	for rows.Next() {
		var a Attribute
		if err := rows.Scan(&a.Name, &a.Value); err != nil {
			return nil, fmt.Errorf("scanning attribute: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attributes: %w", err)
	}
	return out, nil
}
