package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/repository"
	"github.com/sakif/workoutify/internal/service"
)

// pathID reads a positive integer id from the URL. A non-integer id is a
// validation error, not a 404.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed(name, fmt.Sprintf("%s must be a positive integer, got %q", name, raw))
	}
	return id, nil
}

// timestampLayouts are tried in order. Layouts without an offset are
// interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

func parseTimestamp(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, apperror.ValidationFailed(field, fmt.Sprintf("%s is required", field))
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperror.ValidationFailed(field,
		fmt.Sprintf("%s must be an ISO-8601 timestamp, got %q", field, value))
}

// queryInt reads an optional integer query parameter, returning def when
// the parameter is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.ValidationFailed(name, fmt.Sprintf("%s must be an integer, got %q", name, raw))
	}
	return v, nil
}

// queryOrder reads ?order=asc|desc, newest first by default.
func queryOrder(r *http.Request) (repository.Order, error) {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("order"))) {
	case "", "desc", "newest":
		return repository.OrderNewestFirst, nil
	case "asc", "oldest":
		return repository.OrderOldestFirst, nil
	default:
		return 0, apperror.ValidationFailed("order", "order must be asc or desc")
	}
}

// listQuery reads the ?days, ?order and ?limit parameters shared by the
// per-user list endpoints. Absent days means no time window.
func listQuery(r *http.Request) (service.ListQuery, error) {
	days, err := queryInt(r, "days", 0)
	if err != nil {
		return service.ListQuery{}, err
	}
	if r.URL.Query().Has("days") {
		if err := service.ValidateDays(days); err != nil {
			return service.ListQuery{}, err
		}
	}
	order, err := queryOrder(r)
	if err != nil {
		return service.ListQuery{}, err
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		return service.ListQuery{}, err
	}
	return service.ListQuery{Days: days, Order: order, Limit: limit}, nil
}
