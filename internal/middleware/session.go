package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
)

// SessionHeader carries the session id issued by POST /sessions.
const SessionHeader = "X-Session-ID"

// contextKey is unexported so no other package can read or shadow the
// values this package stores in a request context.
type contextKey string

const sessionKey contextKey = "session"

// SessionLoader resolves a session id to a live session.
type SessionLoader interface {
	Get(ctx context.Context, id string) (*model.Session, error)
}

// Session resolves the X-Session-ID header, if present, and stores the
// session in the request context. It never blocks a request: a missing,
// expired or unknown session simply leaves the context empty, and
// handlers that need one check SessionFromContext.
func Session(loader SessionLoader, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, err := loader.Get(r.Context(), id)
			switch {
			case err == nil:
				r = r.WithContext(context.WithValue(r.Context(), sessionKey, session))
			case errors.Is(err, apperror.ErrNotFound), errors.Is(err, apperror.ErrValidation):
				// anonymous
			default:
				logger.Warn("session lookup failed",
					slog.String("session_id", id),
					slog.String("error", err.Error()),
				)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionFromContext returns the session resolved by Session, if any.
//
// Usage in handlers:
//
//	session, ok := middleware.SessionFromContext(r.Context())
//	if !ok {
//	    // no live session
//	}
func SessionFromContext(ctx context.Context) (*model.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*model.Session)
	return session, ok && session != nil
}
