package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestCreateUser(t *testing.T) {
	db := newTestDB(t)

	u := &model.User{Email: "alice@example.com", Name: "Alice", Surname: "Smith", Location: "Oslo"}
	require.NoError(t, db.CreateUser(context.Background(), u))
	assert.NotZero(t, u.ID)

	got, err := db.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice@example.com")

	err := db.CreateUser(context.Background(), &model.User{Email: "alice@example.com"})
	assert.True(t, errors.Is(err, apperror.ErrConflict), "got %v", err)
}

// =========================================================================
// READ TESTS
// =========================================================================

func TestGetUserByEmail(t *testing.T) {
	db := newTestDB(t)
	u := createTestUser(t, db, "bob@example.com")

	got, err := db.GetUserByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = db.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestGetUserNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetUserByID(context.Background(), 999)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestListUsersOrderedByID(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "b@example.com")
	createTestUser(t, db, "a@example.com")

	users, err := db.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b@example.com", users[0].Email)
	assert.Less(t, users[0].ID, users[1].ID)
}

// =========================================================================
// DELETE TESTS
// =========================================================================

func TestDeleteUserCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u := createTestUser(t, db, "carol@example.com")
	ex := createTestExercise(t, db, "Back Squat", "Quads")
	food := createTestFood(t, db, "Oats", 389)

	require.NoError(t, db.CreateSleep(ctx, &model.Sleep{
		UserID: u.ID, StartTime: at("2024-01-01T23:00:00Z"), EndTime: at("2024-01-02T06:00:00Z"),
	}))
	require.NoError(t, db.CreateWorkout(ctx, &model.Workout{
		UserID: u.ID, StartTime: at("2024-01-02T10:00:00Z"), EndTime: at("2024-01-02T11:00:00Z"),
		Sets: []model.WorkoutSet{{ExerciseID: ex.ID, Reps: 5, Weight: 100, SetOrder: 1}},
	}))
	require.NoError(t, db.CreateMeal(ctx, &model.Meal{
		UserID: u.ID, Time: at("2024-01-02T08:00:00Z"), Name: "Breakfast",
		Items: []model.MealItem{{FoodID: food.ID, Quantity: 1}},
	}))
	require.NoError(t, db.CreateSession(ctx, &model.Session{
		ID: "s1", UserID: u.ID, Page: "dashboard", CreatedAt: at("2024-01-02T08:00:00Z"), LastSeenAt: at("2024-01-02T08:00:00Z"),
	}))

	require.NoError(t, db.DeleteUser(ctx, u.ID))

	for _, table := range []string{"users", "sleep", "workouts", "workout_sets", "meals", "meal_items", "sessions"} {
		assert.Zero(t, countRows(t, db, table), table)
	}
	// Catalog rows are shared and survive.
	assert.Equal(t, 1, countRows(t, db, "exercises"))
	assert.Equal(t, 1, countRows(t, db, "foods"))

	for _, list := range []func() (int, error){
		func() (int, error) {
			s, err := db.ListSleepForUser(ctx, u.ID, repository.TimeFilter{})
			return len(s), err
		},
		func() (int, error) {
			w, err := db.ListWorkoutsForUser(ctx, u.ID, repository.TimeFilter{})
			return len(w), err
		},
		func() (int, error) {
			m, err := db.ListMealsForUser(ctx, u.ID, repository.TimeFilter{})
			return len(m), err
		},
	} {
		n, err := list()
		require.NoError(t, err)
		assert.Zero(t, n)
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.DeleteUser(context.Background(), 42)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
