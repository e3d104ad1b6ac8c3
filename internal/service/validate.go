package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/repository"
)

const (
	DefaultSummaryDays = 7
	MinSummaryDays     = 1
	MaxSummaryDays     = 90

	DefaultBalanceWeeks = 4
	MaxBalanceWeeks     = 52

	DefaultRecentLimit = 10
	MaxListLimit       = 100

	MaxNameLength  = 100
	MaxEmailLength = 254
)

// ValidateDays checks a summary or listing window in days.
func ValidateDays(days int) error {
	if days < MinSummaryDays || days > MaxSummaryDays {
		return apperror.ValidationFailed("days",
			fmt.Sprintf("days must be between %d and %d", MinSummaryDays, MaxSummaryDays))
	}
	return nil
}

// ListQuery describes a per-user listing. Days == 0 means no time window;
// Limit == 0 means no limit.
type ListQuery struct {
	Days  int
	Order repository.Order
	Limit int
}

// filter validates q and converts it into a repository filter anchored at now.
func (q ListQuery) filter(now time.Time) (repository.TimeFilter, error) {
	f := repository.TimeFilter{Order: q.Order, Limit: q.Limit}

	if q.Days != 0 {
		if err := ValidateDays(q.Days); err != nil {
			return f, err
		}
		since := windowStart(now, q.Days)
		f.Since = &since
	}
	if q.Limit < 0 || q.Limit > MaxListLimit {
		return f, apperror.ValidationFailed("limit",
			fmt.Sprintf("limit must be between 1 and %d", MaxListLimit))
	}
	return f, nil
}

// windowStart is the inclusive lower bound of a "last N days" window: an
// absolute instant N×24h before now, not a calendar-day boundary.
func windowStart(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return apperror.ValidationFailed(field, fmt.Sprintf("%s must be a positive integer", field))
	}
	return nil
}

func requireTime(field string, t time.Time) error {
	if t.IsZero() {
		return apperror.ValidationFailed(field, fmt.Sprintf("%s is required", field))
	}
	return nil
}

// requireName trims s and checks it is present and not too long.
func requireName(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", apperror.ValidationFailed(field, fmt.Sprintf("%s is required", field))
	}
	if len(s) > MaxNameLength {
		return "", apperror.ValidationFailed(field,
			fmt.Sprintf("%s must be %d characters or less", field, MaxNameLength))
	}
	return s, nil
}

func optionalName(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) > MaxNameLength {
		return "", apperror.ValidationFailed(field,
			fmt.Sprintf("%s must be %d characters or less", field, MaxNameLength))
	}
	return s, nil
}

func requireNonNegative(field string, v float64) error {
	if v < 0 {
		return apperror.ValidationFailed(field, fmt.Sprintf("%s must not be negative", field))
	}
	return nil
}
