package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

// Pages a session can be on. A new session starts on PageDashboard.
const (
	PageDashboard = "dashboard"
	PageSleep     = "sleep"
	PageWorkouts  = "workouts"
	PageMeals     = "meals"
	PageFoods     = "foods"
	PageExercises = "exercises"
	PageProfile   = "profile"
)

var knownPages = []string{PageDashboard, PageSleep, PageWorkouts, PageMeals, PageFoods, PageExercises, PageProfile}

// DefaultSessionTTL is how long an idle session stays valid.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionService owns client navigation state. Every request names its
// session by id; there is no process-wide current user.
type SessionService struct {
	users  *UserService
	repo   repository.SessionRepository
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

func NewSessionService(users *UserService, repo repository.SessionRepository, ttl time.Duration, logger *slog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{users: users, repo: repo, ttl: ttl, logger: logger, now: time.Now}
}

// Start logs the user in (registering on first sight) and opens a session
// on the dashboard.
func (s *SessionService) Start(ctx context.Context, in UserInput) (*model.Session, *model.User, error) {
	user, _, err := s.users.LoginOrRegister(ctx, in)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	session := &model.Session{
		ID:         xid.New().String(),
		UserID:     user.ID,
		Page:       PageDashboard,
		CreatedAt:  now,
		LastSeenAt: now,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("creating session: %w", err)
	}

	s.logger.Info("session started",
		slog.String("session_id", session.ID),
		slog.Int64("user_id", user.ID),
	)
	return session, user, nil
}

// Get returns a live session and refreshes its last-seen time. A session
// idle for longer than the TTL is deleted and reported as NotFound.
func (s *SessionService) Get(ctx context.Context, id string) (*model.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("session_id", "session id is required")
	}

	session, err := s.repo.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if now.Sub(session.LastSeenAt) > s.ttl {
		if err := s.repo.DeleteSession(ctx, id); err != nil {
			s.logger.Warn("failed to delete expired session",
				slog.String("session_id", id),
				slog.String("error", err.Error()),
			)
		}
		return nil, apperror.NotFound("session", id)
	}

	session.LastSeenAt = now
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("touching session: %w", err)
	}
	return session, nil
}

// Navigate moves a session to another page.
func (s *SessionService) Navigate(ctx context.Context, id, page string) (*model.Session, error) {
	page = strings.ToLower(strings.TrimSpace(page))
	if !slices.Contains(knownPages, page) {
		return nil, apperror.ValidationFailed("page",
			fmt.Sprintf("page must be one of %s", strings.Join(knownPages, ", ")))
	}

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Page = page
	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("navigating session: %w", err)
	}
	return session, nil
}

// End deletes a session (logout).
func (s *SessionService) End(ctx context.Context, id string) error {
	if err := s.repo.DeleteSession(ctx, id); err != nil {
		return err
	}
	s.logger.Info("session ended", slog.String("session_id", id))
	return nil
}
