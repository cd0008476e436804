package helpers

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// NullableString converts an empty string to SQL NULL
func NullableString(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

// NullableInt converts a zero value to SQL NULL
func NullableInt(i int) pgtype.Int4 {
	if i == 0 {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(i), Valid: true}
}

// NullableDate converts a nil time pointer to SQL NULL
func NullableDate(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *t, Valid: true}
}

// DatePtr returns the date held by d, or nil when it is NULL
func DatePtr(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
