package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

func TestCreateSleep(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db, "a@example.com")
	q := 8

	s := &model.Sleep{UserID: u.ID, StartTime: at("2024-01-01T23:00:00Z"), EndTime: at("2024-01-02T06:00:00Z"), QualityScore: &q}
	require.NoError(t, db.CreateSleep(context.Background(), s))

	got, err := db.GetSleepByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, got)
	assert.Equal(t, 7.0, got.Hours())
}

func TestCreateSleepWithoutQuality(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db, "a@example.com")

	s := &model.Sleep{UserID: u.ID, StartTime: at("2024-01-01T23:00:00Z"), EndTime: at("2024-01-02T06:00:00Z")}
	require.NoError(t, db.CreateSleep(context.Background(), s))

	got, err := db.GetSleepByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Nil(t, got.QualityScore)
}

func TestCreateSleepUnknownUser(t *testing.T) {
	db := newTestDB(t)

	err := db.CreateSleep(context.Background(), &model.Sleep{UserID: 7, StartTime: at("2024-01-01T23:00:00Z"), EndTime: at("2024-01-02T06:00:00Z")})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Zero(t, countRows(t, db, "sleep"))
}

func TestListSleepForUserWindowAndOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "a@example.com")
	other := createTestUser(t, db, "b@example.com")

	for _, start := range []string{"2024-01-03T22:00:00Z", "2024-01-01T22:00:00Z", "2024-01-02T22:00:00Z"} {
		s := at(start)
		require.NoError(t, db.CreateSleep(ctx, &model.Sleep{UserID: u.ID, StartTime: s, EndTime: s.Add(8 * time.Hour)}))
	}
	require.NoError(t, db.CreateSleep(ctx, &model.Sleep{UserID: other.ID, StartTime: at("2024-01-02T22:00:00Z"), EndTime: at("2024-01-03T06:00:00Z")}))

	since := at("2024-01-02T00:00:00Z")
	asc, err := db.ListSleepForUser(ctx, u.ID, repository.TimeFilter{Since: &since, Order: repository.OrderOldestFirst})
	require.NoError(t, err)
	require.Len(t, asc, 2)
	assert.True(t, asc[0].StartTime.Before(asc[1].StartTime))

	desc, err := db.ListSleepForUser(ctx, u.ID, repository.TimeFilter{Order: repository.OrderNewestFirst, Limit: 2})
	require.NoError(t, err)
	require.Len(t, desc, 2)
	assert.Equal(t, at("2024-01-03T22:00:00Z"), desc[0].StartTime)
}

func TestDeleteSleep(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db, "a@example.com")
	s := &model.Sleep{UserID: u.ID, StartTime: at("2024-01-01T23:00:00Z"), EndTime: at("2024-01-02T06:00:00Z")}
	require.NoError(t, db.CreateSleep(context.Background(), s))

	require.NoError(t, db.DeleteSleep(context.Background(), s.ID))
	err := db.DeleteSleep(context.Background(), s.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestListSleepCutoffWithFractionalSecond(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "a@example.com")

	for _, start := range []string{"2024-01-02T10:00:00Z", "2024-01-02T10:00:01Z"} {
		s := at(start)
		require.NoError(t, db.CreateSleep(ctx, &model.Sleep{UserID: u.ID, StartTime: s, EndTime: s.Add(8 * time.Hour)}))
	}

	since := at("2024-01-02T10:00:00Z").Add(700 * time.Millisecond)
	got, err := db.ListSleepForUser(ctx, u.ID, repository.TimeFilter{Since: &since, Order: repository.OrderOldestFirst})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, at("2024-01-02T10:00:01Z"), got[0].StartTime)

	exact := at("2024-01-02T10:00:00Z")
	got, err = db.ListSleepForUser(ctx, u.ID, repository.TimeFilter{Since: &exact})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
