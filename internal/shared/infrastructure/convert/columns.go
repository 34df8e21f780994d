// Package convert maps Go values to the portable column encodings shared by
// the SQLite and PostgreSQL schemas: UTC RFC3339 text for timestamps and
// 0/1 integers for flags.
package convert

import (
	"database/sql"
	"fmt"
	"time"
)

// FormatTime encodes t as UTC RFC3339. UTC keeps the encoding fixed-width,
// so stored values compare correctly as strings.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTime decodes a value written by FormatTime.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// NullableTime encodes an optional timestamp.
func NullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: FormatTime(*t), Valid: true}
}

// ParseNullableTime decodes an optional timestamp.
func ParseNullableTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := ParseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// BoolToInt encodes a flag column.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
