package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/workoutify/internal/service"
)

type SleepHandler struct {
	sleep  *service.SleepService
	logger *slog.Logger
}

func NewSleepHandler(sleep *service.SleepService, logger *slog.Logger) *SleepHandler {
	return &SleepHandler{sleep: sleep, logger: logger}
}

type sleepRequest struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	QualityScore *int   `json:"quality_score"`
}

// HandleCreate logs a night of sleep.
//
// HTTP: POST /users/{user_id}/sleep
// REQUEST BODY: {"start_time": "2024-01-01T23:00:00", "end_time": "2024-01-02T06:00:00", "quality_score": 8}
func (h *SleepHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req sleepRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	start, err := parseTimestamp("start_time", req.StartTime)
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseTimestamp("end_time", req.EndTime)
	if err != nil {
		writeError(w, err)
		return
	}

	sleep, err := h.sleep.Create(r.Context(), service.SleepInput{
		UserID:       userID,
		StartTime:    start,
		EndTime:      end,
		QualityScore: req.QualityScore,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sleep)
}

// HandleList lists a user's sleep records, optionally limited to the last
// ?days=N days, ordered by ?order=asc|desc.
//
// HTTP: GET /users/{user_id}/sleep
func (h *SleepHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}
	q, err := listQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	sleeps, err := h.sleep.ListForUser(r.Context(), userID, q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sleeps)
}

// HTTP: GET /sleep/{sleep_id}
func (h *SleepHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "sleep_id")
	if err != nil {
		writeError(w, err)
		return
	}

	sleep, err := h.sleep.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sleep)
}

// HTTP: DELETE /sleep/{sleep_id}
func (h *SleepHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "sleep_id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.sleep.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: true, Resource: "sleep", ID: id})
}
