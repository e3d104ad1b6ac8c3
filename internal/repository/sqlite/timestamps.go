package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// timeLayout is how every timestamp is stored: UTC, second precision,
// fixed width. Fixed width makes string comparison in SQL agree with
// chronological order, so range filters can use plain >= and <.
const timeLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// formatCutoff formats an inclusive lower bound, rounding a fractional
// second up so no stored row earlier than t compares >= the result.
func formatCutoff(t time.Time) string {
	t = t.UTC()
	if ceil := t.Truncate(time.Second); ceil.Before(t) {
		t = ceil.Add(time.Second)
	}
	return t.Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// nullInt converts an optional int to a driver value.
func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// normalize mirrors what a round trip through the database does to t, so
// a freshly created entity compares equal to the same entity read back.
func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
