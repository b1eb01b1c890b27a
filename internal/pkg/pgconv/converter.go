// Package pgconv maps between Go values and the nullable pgtype wrappers used
// by the query layer. A nil pointer always maps to Valid=false and back.
package pgconv

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func ptrIf[T any](valid bool, v T) *T {
	if !valid {
		return nil
	}
	return &v
}

func UUIDToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func UUIDPtrFromPgtype(v pgtype.UUID) *uuid.UUID {
	return ptrIf(v.Valid, uuid.UUID(v.Bytes))
}

func StringToPgtype(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func StringPtrToPgtype(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return StringToPgtype(*s)
}

func StringPtrFromPgtype(v pgtype.Text) *string {
	return ptrIf(v.Valid, v.String)
}

// Int64PtrToPgtype carries optional money amounts in cents.
func Int64PtrToPgtype(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}

func Int64PtrFromPgtype(v pgtype.Int8) *int64 {
	return ptrIf(v.Valid, v.Int64)
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func TimePtrToPgtype(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return TimeToPgtype(*t)
}

// TimeFromPgtype returns the zero time for NULL.
func TimeFromPgtype(v pgtype.Timestamptz) time.Time {
	return v.Time
}

func TimePtrFromPgtype(v pgtype.Timestamptz) *time.Time {
	return ptrIf(v.Valid, v.Time)
}

// DateToPgtype stores the calendar day only; the location is discarded.
func DateToPgtype(year int, month time.Month, day int) pgtype.Date {
	return pgtype.Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Valid: true}
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
