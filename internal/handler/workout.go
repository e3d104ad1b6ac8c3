package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/service"
)

type WorkoutHandler struct {
	workouts *service.WorkoutService
	summary  *service.SummaryService
	logger   *slog.Logger
}

func NewWorkoutHandler(workouts *service.WorkoutService, summary *service.SummaryService, logger *slog.Logger) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts, summary: summary, logger: logger}
}

type workoutRequest struct {
	StartTime string             `json:"start_time"`
	EndTime   string             `json:"end_time"`
	Label     string             `json:"label"`
	Sets      []service.SetInput `json:"sets"`
}

func (req workoutRequest) input(userID int64) (service.WorkoutInput, error) {
	start, err := parseTimestamp("start_time", req.StartTime)
	if err != nil {
		return service.WorkoutInput{}, err
	}
	end, err := parseTimestamp("end_time", req.EndTime)
	if err != nil {
		return service.WorkoutInput{}, err
	}
	return service.WorkoutInput{UserID: userID, StartTime: start, EndTime: end, Label: req.Label}, nil
}

// HandleCreate creates a workout with no sets.
//
// HTTP: POST /users/{user_id}/workouts
func (h *WorkoutHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, false)
}

// HandleCreateWithSets creates a workout and all of its sets in one
// transaction. If any set names a missing exercise nothing is saved and
// the response is 422.
//
// HTTP: POST /users/{user_id}/workouts/with_sets
// REQUEST BODY:
//
//	{
//	  "start_time": "2024-01-02T10:00:00", "end_time": "2024-01-02T11:00:00", "label": "Legs",
//	  "sets": [{"exercise_id": 1, "num_reps": 5, "weight_amount": 100, "set_order": 1}]
//	}
func (h *WorkoutHandler) HandleCreateWithSets(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, true)
}

func (h *WorkoutHandler) create(w http.ResponseWriter, r *http.Request, withSets bool) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req workoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	in, err := req.input(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	create := h.workouts.Create
	if withSets {
		create = func(ctx context.Context, in service.WorkoutInput) (*model.Workout, error) {
			return h.workouts.CreateWithSets(ctx, in, req.Sets)
		}
	}
	workout, err := create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, workout)
}

// HTTP: GET /users/{user_id}/workouts?days=N&order=asc|desc&limit=N
func (h *WorkoutHandler) HandleList(w http.ResponseWriter, r *http.Request) {
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

	workouts, err := h.workouts.ListForUser(r.Context(), userID, q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

// HandleRecent lists the newest workouts with their set counts.
//
// HTTP: GET /users/{user_id}/workouts/recent?limit=N
func (h *WorkoutHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", service.DefaultRecentLimit)
	if err != nil {
		writeError(w, err)
		return
	}

	recent, err := h.summary.RecentWorkouts(r.Context(), userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recent)
}

// HTTP: GET /workouts/{workout_id}
func (h *WorkoutHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "workout_id")
	if err != nil {
		writeError(w, err)
		return
	}

	workout, err := h.workouts.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

// HTTP: DELETE /workouts/{workout_id}
func (h *WorkoutHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "workout_id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.workouts.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: true, Resource: "workout", ID: id})
}

// HTTP: POST /workouts/{workout_id}/sets
func (h *WorkoutHandler) HandleAddSet(w http.ResponseWriter, r *http.Request) {
	workoutID, err := pathID(r, "workout_id")
	if err != nil {
		writeError(w, err)
		return
	}

	var in service.SetInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	set, err := h.workouts.AddSet(r.Context(), workoutID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

// HTTP: DELETE /workout_sets/{set_id}
func (h *WorkoutHandler) HandleDeleteSet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "set_id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.workouts.DeleteSet(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: true, Resource: "workout set", ID: id})
}
