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

func TestCreateWorkoutWithSets(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "a@example.com")
	squat := createTestExercise(t, db, "Back Squat", "Quads")
	bench := createTestExercise(t, db, "Bench Press", "Chest")

	w := &model.Workout{
		UserID: u.ID, StartTime: at("2024-01-02T10:00:00Z"), EndTime: at("2024-01-02T11:00:00Z"), Label: "Full Body",
		Sets: []model.WorkoutSet{
			{ExerciseID: bench.ID, Reps: 8, Weight: 60, SetOrder: 2},
			{ExerciseID: squat.ID, Reps: 5, Weight: 100, SetOrder: 1},
		},
	}
	require.NoError(t, db.CreateWorkout(ctx, w))
	assert.NotZero(t, w.ID)
	for _, s := range w.Sets {
		assert.NotZero(t, s.ID)
		assert.Equal(t, w.ID, s.WorkoutID)
	}

	got, err := db.GetWorkoutByID(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, got.Sets, 2)
	assert.Equal(t, 1, got.Sets[0].SetOrder, "sets are ordered by set_order")
	assert.Equal(t, "Full Body", got.Label)
	assert.Equal(t, 980.0, got.Volume())
}

func TestCreateWorkoutRollsBackOnMissingExercise(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "a@example.com")
	squat := createTestExercise(t, db, "Back Squat", "Quads")

	w := &model.Workout{
		UserID: u.ID, StartTime: at("2024-01-02T10:00:00Z"), EndTime: at("2024-01-02T11:00:00Z"),
		Sets: []model.WorkoutSet{
			{ExerciseID: squat.ID, Reps: 5, Weight: 100, SetOrder: 1},
			{ExerciseID: 999, Reps: 5, Weight: 100, SetOrder: 2},
		},
	}
	err := db.CreateWorkout(ctx, w)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrAtomicity))
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	assert.Zero(t, countRows(t, db, "workouts"))
	assert.Zero(t, countRows(t, db, "workout_sets"))
}

func TestCreateWorkoutUnknownUser(t *testing.T) {
	db := newTestDB(t)

	err := db.CreateWorkout(context.Background(), &model.Workout{UserID: 5, StartTime: at("2024-01-02T10:00:00Z"), EndTime: at("2024-01-02T11:00:00Z")})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.False(t, errors.Is(err, apperror.ErrAtomicity))
}

func TestCreateWorkoutSet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "a@example.com")
	ex := createTestExercise(t, db, "Deadlift", "Hamstrings")
	w := &model.Workout{UserID: u.ID, StartTime: at("2024-01-02T10:00:00Z"), EndTime: at("2024-01-02T11:00:00Z")}
	require.NoError(t, db.CreateWorkout(ctx, w))

	s := &model.WorkoutSet{WorkoutID: w.ID, ExerciseID: ex.ID, Reps: 3, Weight: 140, SetOrder: 1}
	require.NoError(t, db.CreateWorkoutSet(ctx, s))

	err := db.CreateWorkoutSet(ctx, &model.WorkoutSet{WorkoutID: 999, ExerciseID: ex.ID, Reps: 3, Weight: 140, SetOrder: 1})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	err = db.CreateWorkoutSet(ctx, &model.WorkoutSet{WorkoutID: w.ID, ExerciseID: 999, Reps: 3, Weight: 140, SetOrder: 2})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	next := &model.WorkoutSet{WorkoutID: w.ID, ExerciseID: ex.ID, Reps: 2, Weight: 150}
	require.NoError(t, db.CreateWorkoutSet(ctx, next))
	assert.Equal(t, 2, next.SetOrder)
	require.NoError(t, db.DeleteWorkoutSet(ctx, next.ID))

	require.NoError(t, db.DeleteWorkoutSet(ctx, s.ID))
	got, err := db.GetWorkoutByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Sets)
	assert.NotNil(t, got.Sets)
}

func TestDeleteWorkoutCascadesToSets(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "a@example.com")
	ex := createTestExercise(t, db, "Row", "Back")
	w := &model.Workout{
		UserID: u.ID, StartTime: at("2024-01-02T10:00:00Z"), EndTime: at("2024-01-02T11:00:00Z"),
		Sets: []model.WorkoutSet{{ExerciseID: ex.ID, Reps: 10, Weight: 50, SetOrder: 1}},
	}
	require.NoError(t, db.CreateWorkout(ctx, w))

	require.NoError(t, db.DeleteWorkout(ctx, w.ID))
	assert.Zero(t, countRows(t, db, "workout_sets"))

	_, err := db.GetWorkoutByID(ctx, w.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestListWorkoutsForUserLoadsSets(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "a@example.com")
	ex := createTestExercise(t, db, "Press", "Shoulders")

	for i, start := range []string{"2024-01-01T10:00:00Z", "2024-01-02T10:00:00Z"} {
		sets := make([]model.WorkoutSet, i+2)
		for j := range sets {
			sets[j] = model.WorkoutSet{ExerciseID: ex.ID, Reps: 10, Weight: 50, SetOrder: j + 1}
		}
		require.NoError(t, db.CreateWorkout(ctx, &model.Workout{UserID: u.ID, StartTime: at(start), EndTime: at(start).Add(time.Hour), Sets: sets}))
	}

	workouts, err := db.ListWorkoutsForUser(ctx, u.ID, repository.TimeFilter{Order: repository.OrderNewestFirst})
	require.NoError(t, err)
	require.Len(t, workouts, 2)
	assert.Len(t, workouts[0].Sets, 3)
	assert.Len(t, workouts[1].Sets, 2)
}

func TestListSetRecords(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "a@example.com")
	squat := createTestExercise(t, db, "Back Squat", "Quads")
	require.NoError(t, db.CreateWorkout(ctx, &model.Workout{
		UserID: u.ID, StartTime: at("2024-01-01T10:00:00Z"), EndTime: at("2024-01-01T11:00:00Z"),
		Sets: []model.WorkoutSet{{ExerciseID: squat.ID, Reps: 5, Weight: 100, SetOrder: 1}},
	}))
	require.NoError(t, db.CreateWorkout(ctx, &model.Workout{
		UserID: u.ID, StartTime: at("2024-01-08T10:00:00Z"), EndTime: at("2024-01-08T11:00:00Z"),
		Sets: []model.WorkoutSet{{ExerciseID: squat.ID, Reps: 3, Weight: 110, SetOrder: 1}},
	}))

	all, err := db.ListSetRecords(ctx, u.ID, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Back Squat", all[0].ExerciseName)
	assert.Equal(t, "Quads", all[0].PrimaryMuscle)
	assert.Equal(t, 100.0, all[0].Weight)

	since := at("2024-01-05T00:00:00Z")
	recent, err := db.ListSetRecords(ctx, u.ID, &since)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 110.0, recent[0].Weight)
}
