package repository

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func timestampParam(value *time.Time) pgtype.Timestamptz {
	if value == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *value, Valid: true}
}

func timestampPtr(value pgtype.Timestamptz) *time.Time {
	if !value.Valid {
		return nil
	}
	result := value.Time
	return &result
}

// textArrayParam coalesces a nil slice to an empty array. The array columns
// are NOT NULL, and pgx encodes a nil Go slice as SQL NULL, which an explicit
// parameter would write past the column default.
func textArrayParam(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func intParam(value *int) pgtype.Int4 {
	if value == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(*value), Valid: true}
}
