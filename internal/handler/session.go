package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/middleware"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/service"
)

// SessionHandler exposes per-client navigation state. Clients keep the
// session id returned by POST /sessions and send it back in the
// X-Session-ID header; middleware.Session resolves it before these
// handlers run.
type SessionHandler struct {
	sessions *service.SessionService
	logger   *slog.Logger
}

func NewSessionHandler(sessions *service.SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

// SessionResponse pairs a session with the user it belongs to.
type SessionResponse struct {
	Session *model.Session `json:"session"`
	User    *model.User    `json:"user,omitempty"`
}

type navigateRequest struct {
	Page string `json:"page"`
}

// HandleStart logs a user in by email and opens a session on the dashboard.
//
// HTTP: POST /sessions
// REQUEST BODY: {"email": "alice@example.com"}
func (h *SessionHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var in service.UserInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	session, user, err := h.sessions.Start(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, SessionResponse{Session: session, User: user})
}

// HTTP: GET /sessions/current
func (h *SessionHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	session, err := currentSession(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{Session: session})
}

// HandleNavigate moves the current session to another page.
//
// HTTP: PUT /sessions/current/page
// REQUEST BODY: {"page": "workouts"}
func (h *SessionHandler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	current, err := currentSession(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req navigateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	session, err := h.sessions.Navigate(r.Context(), current.ID, req.Page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{Session: session})
}

// HandleEnd logs out by deleting the current session.
//
// HTTP: DELETE /sessions/current
func (h *SessionHandler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	current, err := currentSession(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.sessions.End(r.Context(), current.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: true, Resource: "session", ID: current.ID})
}

func currentSession(r *http.Request) (*model.Session, error) {
	if session, ok := middleware.SessionFromContext(r.Context()); ok {
		return session, nil
	}
	id := r.Header.Get(middleware.SessionHeader)
	if id == "" {
		return nil, apperror.ValidationFailed(middleware.SessionHeader, middleware.SessionHeader+" header is required")
	}
	return nil, apperror.NotFound("session", id)
}
