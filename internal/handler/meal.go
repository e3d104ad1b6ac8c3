package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/service"
)

type MealHandler struct {
	meals  *service.MealService
	logger *slog.Logger
}

func NewMealHandler(meals *service.MealService, logger *slog.Logger) *MealHandler {
	return &MealHandler{meals: meals, logger: logger}
}

type mealRequest struct {
	Time  string              `json:"time_of_meal"`
	Name  string              `json:"meal_name"`
	Items []service.ItemInput `json:"meal_items"`
}

// HTTP: POST /users/{user_id}/meals
func (h *MealHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, false)
}

// HandleCreateWithItems creates a meal and its items atomically. An item
// naming a missing food rolls the whole meal back with 422.
//
// HTTP: POST /users/{user_id}/meals/with_items
// REQUEST BODY:
//
//	{"time_of_meal": "2024-01-02T08:00:00", "meal_name": "Breakfast",
//	 "meal_items": [{"food_id": 3, "quantity": 1.5}]}
func (h *MealHandler) HandleCreateWithItems(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, true)
}

func (h *MealHandler) create(w http.ResponseWriter, r *http.Request, withItems bool) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req mealRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	at, err := parseTimestamp("time_of_meal", req.Time)
	if err != nil {
		writeError(w, err)
		return
	}

	in := service.MealInput{UserID: userID, Time: at, Name: req.Name}
	var items []service.ItemInput
	if withItems {
		items = req.Items
	}
	meal, err := h.meals.CreateWithItems(r.Context(), in, items)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, meal)
}

// HTTP: GET /users/{user_id}/meals?days=N&order=asc|desc&limit=N
func (h *MealHandler) HandleList(w http.ResponseWriter, r *http.Request) {
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

	meals, err := h.meals.ListForUser(r.Context(), userID, q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

// HandleDay returns one calendar day of meals with nutrition totals.
//
// HTTP: GET /users/{user_id}/meals/day?date=YYYY-MM-DD
func (h *MealHandler) HandleDay(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, apperror.ValidationFailed("date", "date is required"))
		return
	}

	day, err := h.meals.ForDay(r.Context(), userID, date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

// HTTP: GET /meals/{meal_id}
func (h *MealHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "meal_id")
	if err != nil {
		writeError(w, err)
		return
	}

	meal, err := h.meals.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

// HTTP: DELETE /meals/{meal_id}
func (h *MealHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "meal_id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.meals.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: true, Resource: "meal", ID: id})
}

// HTTP: POST /meals/{meal_id}/items
func (h *MealHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	mealID, err := pathID(r, "meal_id")
	if err != nil {
		writeError(w, err)
		return
	}

	var in service.ItemInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	item, err := h.meals.AddItem(r.Context(), mealID, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// HTTP: DELETE /meal_items/{meal_item_id}
func (h *MealHandler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "meal_item_id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.meals.DeleteItem(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: true, Resource: "meal item", ID: id})
}
