// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package dbx collapses the raw query-result shapes left behind by
// successive database client migrations behind a single executor interface
// and one normalization step, so no query consumer has to special-case
// driver envelopes.
package dbx

import (
	"context"
	"database/sql"
	"fmt"
)

// Row is a single normalized result row keyed by column name.
type Row map[string]any

// Executor runs one parameterized query and returns whatever raw result
// envelope the underlying client produces. Callers pass values exclusively
// as bound parameters; query text never carries interpolated values.
type Executor interface {
	Execute(ctx context.Context, query string, args ...any) (any, error)
}

// SQLExecutor adapts database/sql to Executor, scanning every result row
// into a Row keyed by column name.
type SQLExecutor struct {
	DB *sql.DB
}

// Execute runs the query and returns the scanned rows as []Row.
func (e *SQLExecutor) Execute(ctx context.Context, query string, args ...any) (any, error) {
	rows, err := e.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

// scanRows reads all rows into the normalized Row form.
func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("result columns: %w", err)
	}

	var out []Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			// Text columns arrive as []byte from some drivers.
			if b, ok := vals[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = vals[i]
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Normalize flattens a raw query result into an ordered []Row. It accepts
// every envelope the data layer has historically produced: a bare row
// slice, a two-element [rows, fields] tuple, and a {"rows": ...} map.
// Nil and unrecognized shapes yield nil. Normalize never panics.
func Normalize(raw any) []Row {
	switch v := raw.(type) {
	case nil:
		return nil
	case []Row:
		return v
	case []map[string]any:
		out := make([]Row, len(v))
		for i, m := range v {
			out[i] = Row(m)
		}
		return out
	case map[string]any:
		if inner, ok := v["rows"]; ok {
			return Normalize(inner)
		}
		return nil
	case []any:
		return normalizeSlice(v)
	default:
		return nil
	}
}

// normalizeSlice distinguishes a plain list of row maps from the
// two-element [rows, fields] tuple older clients returned.
func normalizeSlice(v []any) []Row {
	if len(v) == 0 {
		return nil
	}
	if rows, ok := rowMaps(v); ok {
		return rows
	}
	if len(v) == 2 {
		// [rows, fields]: row data first, field metadata second.
		return Normalize(v[0])
	}
	return nil
}

// rowMaps converts a slice whose every element is a row map. Returns
// ok=false as soon as any element has a different shape.
func rowMaps(v []any) ([]Row, bool) {
	out := make([]Row, 0, len(v))
	for _, el := range v {
		switch m := el.(type) {
		case map[string]any:
			out = append(out, Row(m))
		case Row:
			out = append(out, m)
		default:
			return nil, false
		}
	}
	return out, true
}
