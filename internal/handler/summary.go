package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/workoutify/internal/service"
)

// SummaryHandler serves the read-only reports computed by the aggregation
// engine. None of these endpoints write anything.
type SummaryHandler struct {
	summary     *service.SummaryService
	defaultDays int
	logger      *slog.Logger
}

// NewSummaryHandler creates a SummaryHandler. defaultDays is used when a
// request omits ?days; values outside the accepted range fall back to
// service.DefaultSummaryDays.
func NewSummaryHandler(summary *service.SummaryService, defaultDays int, logger *slog.Logger) *SummaryHandler {
	if service.ValidateDays(defaultDays) != nil {
		defaultDays = service.DefaultSummaryDays
	}
	return &SummaryHandler{summary: summary, defaultDays: defaultDays, logger: logger}
}

// HandleSummary returns per-day sleep, workout and calorie series for the
// last N days.
//
// HTTP: GET /users/{user_id}/summary?days=7
//
// RESPONSE FORMAT:
//
//	{
//	  "sleep":            [{"date": "2024-01-01", "hours": 7, "quality_score": 8}],
//	  "workouts_per_day": [{"date": "2024-01-02", "count": 2, "total_weight": 2500}],
//	  "calories_per_day": [{"date": "2024-01-02", "calories": 540, "carbs": 60, ...}]
//	}
//
// An unknown user yields three empty arrays, not a 404.
func (h *SummaryHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}
	days, err := queryInt(r, "days", h.defaultDays)
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := h.summary.Summary(r.Context(), userID, days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HTTP: GET /users/{user_id}/exercise_prs
func (h *SummaryHandler) HandleExercisePRs(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}

	prs, err := h.summary.ExercisePRs(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prs)
}

// HTTP: GET /users/{user_id}/muscle_balance?weeks=4
func (h *SummaryHandler) HandleMuscleBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}
	weeks, err := queryInt(r, "weeks", service.DefaultBalanceWeeks)
	if err != nil {
		writeError(w, err)
		return
	}

	balance, err := h.summary.MuscleBalance(r.Context(), userID, weeks)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}
