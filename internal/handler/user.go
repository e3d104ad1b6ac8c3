package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/workoutify/internal/service"
)

// UserHandler serves user registration, login and lookup.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleLogin logs in by email, registering the user on first sight.
//
// HTTP: POST /users/login
// REQUEST BODY: {"email": "alice@example.com", "name": "Alice"}
//
// A new user answers 201 Created, an existing one 200 OK. Only the email
// matters for an existing user; the other fields are ignored.
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in service.UserInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	user, created, err := h.users.LoginOrRegister(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, user)
}

// HandleCreate registers a user and refuses duplicate emails with 409.
//
// HTTP: POST /users
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.UserInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Register(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// HTTP: GET /users/{user_id}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HandleDelete removes a user together with everything they logged.
//
// HTTP: DELETE /users/{user_id}
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	h.logger.Info("user deleted", slog.Int64("user_id", id))
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: true, Resource: "user", ID: id})
}
