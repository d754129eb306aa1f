// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package dbx

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Typed accessors tolerant of the value variance between drivers
// (integer widths, []byte text, string-encoded UUIDs). Missing or
// mistyped values yield the zero value rather than an error, matching
// the absorb-and-default policy of the read path.

// Int64 returns the named column as int64.
func (r Row) Int64(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return 0
}

// Int returns the named column as int.
func (r Row) Int(key string) int {
	return int(r.Int64(key))
}

// NullInt64 returns the named column as *int64, nil for SQL NULL.
func (r Row) NullInt64(key string) *int64 {
	if v, ok := r[key]; !ok || v == nil {
		return nil
	}
	n := r.Int64(key)
	return &n
}

// String returns the named column as string.
func (r Row) String(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

// NullString returns the named column as *string, nil for SQL NULL.
func (r Row) NullString(key string) *string {
	if v, ok := r[key]; !ok || v == nil {
		return nil
	}
	s := r.String(key)
	return &s
}

// Time returns the named column as time.Time, zero when absent.
func (r Row) Time(key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// UUID returns the named column as *uuid.UUID, nil for SQL NULL or
// unparseable values.
func (r Row) UUID(key string) *uuid.UUID {
	switch v := r[key].(type) {
	case uuid.UUID:
		return &v
	case [16]byte:
		u := uuid.UUID(v)
		return &u
	case string:
		if u, err := uuid.Parse(v); err == nil {
			return &u
		}
	case []byte:
		if u, err := uuid.ParseBytes(v); err == nil {
			return &u
		}
	}
	return nil
}
