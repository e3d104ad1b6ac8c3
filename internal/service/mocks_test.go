package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
	"github.com/sakif/workoutify/internal/repository/sqlite"
)

// =========================================================================
// FAKES
// =========================================================================
//
// Hand-written fakes keep the service tests free of SQL. Where the real
// store matters (transactions, cascades) the tests use in-memory SQLite via
// newStore instead.

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newStore(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func fixedClock(ts string) func() time.Time {
	t := mustTime(ts)
	return func() time.Time { return t }
}

func mustTime(ts string) time.Time {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return t
}

type mockUserRepo struct {
	users   map[int64]*model.User
	nextID  int64
	creates int
	// raceOnCreate simulates another request registering the same email
	// between our lookup and our insert.
	raceOnCreate bool
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) insert(u *model.User) {
	m.nextID++
	u.ID = m.nextID
	stored := *u
	m.users[u.ID] = &stored
}

func (m *mockUserRepo) CreateUser(_ context.Context, u *model.User) error {
	m.creates++
	if m.raceOnCreate {
		m.raceOnCreate = false
		m.insert(&model.User{Email: u.Email, Name: "winner"})
		return apperror.Conflict("user", u.Email)
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return apperror.Conflict("user", u.Email)
		}
	}
	m.insert(u)
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (m *mockUserRepo) ListUsers(context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, nil
}

func (m *mockUserRepo) DeleteUser(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return apperror.NotFound("user", id)
	}
	delete(m.users, id)
	return nil
}

type mockSessionRepo struct {
	sessions map[string]model.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]model.Session)}
}

func (m *mockSessionRepo) CreateSession(_ context.Context, s *model.Session) error {
	m.sessions[s.ID] = *s
	return nil
}

func (m *mockSessionRepo) GetSession(_ context.Context, id string) (*model.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, apperror.NotFound("session", id)
	}
	return &s, nil
}

func (m *mockSessionRepo) UpdateSession(_ context.Context, s *model.Session) error {
	if _, ok := m.sessions[s.ID]; !ok {
		return apperror.NotFound("session", s.ID)
	}
	m.sessions[s.ID] = *s
	return nil
}

func (m *mockSessionRepo) DeleteSession(_ context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return apperror.NotFound("session", id)
	}
	delete(m.sessions, id)
	return nil
}

// fakeActivity serves fixed rows and applies the window filter the way the
// store does, so summary tests exercise the cutoff.
type fakeActivity struct {
	sleeps   []model.Sleep
	workouts []model.Workout
	meals    []model.Meal
	records  []model.SetRecord
	filters  []repository.TimeFilter
}

func inWindow(t time.Time, since *time.Time) bool {
	return since == nil || !t.Before(*since)
}

func (f *fakeActivity) ListSleepForUser(_ context.Context, userID int64, filter repository.TimeFilter) ([]model.Sleep, error) {
	f.filters = append(f.filters, filter)
	out := []model.Sleep{}
	for _, s := range f.sleeps {
		if s.UserID == userID && inWindow(s.StartTime, filter.Since) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeActivity) ListWorkoutsForUser(_ context.Context, userID int64, filter repository.TimeFilter) ([]model.Workout, error) {
	f.filters = append(f.filters, filter)
	out := []model.Workout{}
	for _, w := range f.workouts {
		if w.UserID == userID && inWindow(w.StartTime, filter.Since) {
			out = append(out, w)
		}
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeActivity) ListMealsForUser(_ context.Context, userID int64, filter repository.TimeFilter) ([]model.Meal, error) {
	f.filters = append(f.filters, filter)
	out := []model.Meal{}
	for _, m := range f.meals {
		if m.UserID == userID && inWindow(m.Time, filter.Since) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeActivity) ListSetRecords(_ context.Context, _ int64, since *time.Time) ([]model.SetRecord, error) {
	out := []model.SetRecord{}
	for _, r := range f.records {
		if inWindow(r.StartTime, since) {
			out = append(out, r)
		}
	}
	return out, nil
}
