package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
)

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "a@example.com")

	s := &model.Session{ID: "cv37rs3pp9olc6atsptg", UserID: u.ID, Page: "dashboard",
		CreatedAt: at("2024-01-02T08:00:00Z"), LastSeenAt: at("2024-01-02T08:00:00Z")}
	require.NoError(t, db.CreateSession(ctx, s))

	got, err := db.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	got.Page = "meals"
	got.LastSeenAt = at("2024-01-02T09:00:00Z")
	require.NoError(t, db.UpdateSession(ctx, got))

	again, err := db.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "meals", again.Page)
	assert.Equal(t, at("2024-01-02T09:00:00Z"), again.LastSeenAt)

	require.NoError(t, db.DeleteSession(ctx, s.ID))
	_, err = db.GetSession(ctx, s.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.True(t, errors.Is(db.DeleteSession(ctx, s.ID), apperror.ErrNotFound))
}

func TestCreateSessionUnknownUser(t *testing.T) {
	db := newTestDB(t)

	err := db.CreateSession(context.Background(), &model.Session{ID: "x", UserID: 9, Page: "dashboard"})
	require.Error(t, err)
	assert.Zero(t, countRows(t, db, "sessions"))
}
