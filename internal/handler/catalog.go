package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/workoutify/internal/service"
)

// CatalogHandler serves the shared food and exercise catalogs.
//
// Catalog rows are referenced by meal items and workout sets, so deleting
// one that is still in use answers 409 Conflict instead of silently
// removing history.
type CatalogHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

func NewCatalogHandler(catalog *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// HTTP: GET /foods/all
func (h *CatalogHandler) HandleListFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.catalog.ListFoods(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

// HandleSearchFoods does a case-insensitive substring match on food names.
//
// HTTP: GET /foods/search?query=chic
func (h *CatalogHandler) HandleSearchFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.catalog.SearchFoods(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

// HTTP: POST /foods
func (h *CatalogHandler) HandleCreateFood(w http.ResponseWriter, r *http.Request) {
	var in service.FoodInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	food, err := h.catalog.CreateFood(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, food)
}

// HTTP: GET /foods/{food_id}
func (h *CatalogHandler) HandleGetFood(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "food_id")
	if err != nil {
		writeError(w, err)
		return
	}

	food, err := h.catalog.GetFood(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

// HTTP: DELETE /foods/{food_id}
func (h *CatalogHandler) HandleDeleteFood(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "food_id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.catalog.DeleteFood(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: true, Resource: "food", ID: id})
}

// HTTP: GET /exercises/all
func (h *CatalogHandler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.catalog.ListExercises(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

// HTTP: POST /exercises
func (h *CatalogHandler) HandleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var in service.ExerciseInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	exercise, err := h.catalog.CreateExercise(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

// HTTP: GET /exercises/{exercise_id}
func (h *CatalogHandler) HandleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "exercise_id")
	if err != nil {
		writeError(w, err)
		return
	}

	exercise, err := h.catalog.GetExercise(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

// HTTP: DELETE /exercises/{exercise_id}
func (h *CatalogHandler) HandleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "exercise_id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.catalog.DeleteExercise(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: true, Resource: "exercise", ID: id})
}
