package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

func newTestSummary(reader repository.ActivityReader, now string) *SummaryService {
	s := NewSummaryService(reader, newTestLogger())
	s.now = fixedClock(now)
	return s
}

func sets(n int, reps int, weight float64) []model.WorkoutSet {
	out := make([]model.WorkoutSet, n)
	for i := range out {
		out[i] = model.WorkoutSet{Reps: reps, Weight: weight, SetOrder: i + 1}
	}
	return out
}

func intp(v int) *int { return &v }

// =========================================================================
// DAYS VALIDATION
// =========================================================================

func TestSummaryRejectsDaysOutOfRange(t *testing.T) {
	s := newTestSummary(&fakeActivity{}, "2024-01-10T12:00:00Z")

	for _, days := range []int{0, -1, 91} {
		_, err := s.Summary(context.Background(), 1, days)
		assert.True(t, errors.Is(err, apperror.ErrValidation), "days=%d", days)
	}

	for _, days := range []int{1, 7, 90} {
		_, err := s.Summary(context.Background(), 1, days)
		assert.NoError(t, err, "days=%d", days)
	}
}

// =========================================================================
// SERIES
// =========================================================================

func TestSummaryUnknownUserYieldsEmptySeries(t *testing.T) {
	s := newTestSummary(&fakeActivity{}, "2024-01-10T12:00:00Z")

	got, err := s.Summary(context.Background(), 999, 7)
	require.NoError(t, err)
	assert.NotNil(t, got.Sleep)
	assert.NotNil(t, got.WorkoutsPerDay)
	assert.NotNil(t, got.CaloriesPerDay)
	assert.Empty(t, got.Sleep)

	body, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sleep":[],"workouts_per_day":[],"calories_per_day":[]}`, string(body))
}

func TestSummarySleepAcrossMidnight(t *testing.T) {
	reader := &fakeActivity{sleeps: []model.Sleep{{
		UserID: 1, StartTime: mustTime("2024-01-01T23:00:00Z"), EndTime: mustTime("2024-01-02T06:00:00Z"), QualityScore: intp(8),
	}}}
	s := newTestSummary(reader, "2024-01-03T12:00:00Z")

	got, err := s.Summary(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Len(t, got.Sleep, 1)
	assert.Equal(t, "2024-01-01", got.Sleep[0].Date)
	assert.Equal(t, 7.0, got.Sleep[0].Hours)
	assert.Equal(t, 8, *got.Sleep[0].QualityScore)
}

func TestSummaryWorkoutsPerDay(t *testing.T) {
	reader := &fakeActivity{workouts: []model.Workout{
		{UserID: 1, StartTime: mustTime("2024-01-05T07:00:00Z"), Sets: sets(3, 10, 50)},
		{UserID: 1, StartTime: mustTime("2024-01-05T18:00:00Z"), Sets: sets(2, 10, 50)},
	}}
	s := newTestSummary(reader, "2024-01-06T12:00:00Z")

	got, err := s.Summary(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Len(t, got.WorkoutsPerDay, 1)
	assert.Equal(t, model.WorkoutsPerDay{Date: "2024-01-05", Count: 2, TotalWeight: 2500}, got.WorkoutsPerDay[0])
}

func TestSummaryCaloriesEqualQuantityTimesCalories(t *testing.T) {
	chicken := &model.Food{Calories: 165, Protein: 31, Fats: 3.6}
	rice := &model.Food{Calories: 130, Carbs: 28, Protein: 2.7, Fats: 0.3}
	reader := &fakeActivity{meals: []model.Meal{
		{UserID: 1, Time: mustTime("2024-01-05T13:00:00Z"), Items: []model.MealItem{
			{Quantity: 2, Food: chicken},
			{Quantity: 1.5, Food: rice},
		}},
		{UserID: 1, Time: mustTime("2024-01-05T19:00:00Z"), Items: []model.MealItem{
			{Quantity: 0.5, Food: chicken},
		}},
	}}
	s := newTestSummary(reader, "2024-01-06T12:00:00Z")

	got, err := s.Summary(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Len(t, got.CaloriesPerDay, 1)

	day := got.CaloriesPerDay[0]
	assert.Equal(t, "2024-01-05", day.Date)
	assert.InDelta(t, 2*165+1.5*130+0.5*165, day.Calories, 1e-9)
	assert.InDelta(t, 1.5*28, day.Carbs, 1e-9)
	assert.InDelta(t, 2*31+1.5*2.7+0.5*31, day.Protein, 1e-9)
	assert.InDelta(t, 2*3.6+1.5*0.3+0.5*3.6, day.Fats, 1e-9)
}

func TestSummaryMealWithoutItemsReportsZeros(t *testing.T) {
	reader := &fakeActivity{meals: []model.Meal{
		{UserID: 1, Time: mustTime("2024-01-05T13:00:00Z"), Items: []model.MealItem{}},
	}}
	s := newTestSummary(reader, "2024-01-06T12:00:00Z")

	got, err := s.Summary(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Len(t, got.CaloriesPerDay, 1)
	assert.Equal(t, model.CaloriesPerDay{Date: "2024-01-05"}, got.CaloriesPerDay[0])
}

func TestSummaryAppliesCutoff(t *testing.T) {
	reader := &fakeActivity{
		sleeps: []model.Sleep{
			{UserID: 1, StartTime: mustTime("2024-01-03T11:59:59Z"), EndTime: mustTime("2024-01-03T18:00:00Z")},
			{UserID: 1, StartTime: mustTime("2024-01-03T12:00:00Z"), EndTime: mustTime("2024-01-03T18:00:00Z")},
		},
	}
	s := newTestSummary(reader, "2024-01-10T12:00:00Z")

	got, err := s.Summary(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Len(t, got.Sleep, 1, "a row exactly at the cutoff is included, one second earlier is not")
	assert.Equal(t, "2024-01-03", got.Sleep[0].Date)

	for _, f := range reader.filters {
		require.NotNil(t, f.Since)
		assert.Equal(t, mustTime("2024-01-03T12:00:00Z"), *f.Since)
		assert.Equal(t, repository.OrderOldestFirst, f.Order)
	}
}

func TestSummaryIgnoresOtherUsers(t *testing.T) {
	reader := &fakeActivity{workouts: []model.Workout{
		{UserID: 2, StartTime: mustTime("2024-01-05T07:00:00Z"), Sets: sets(1, 5, 100)},
	}}
	s := newTestSummary(reader, "2024-01-06T12:00:00Z")

	got, err := s.Summary(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Empty(t, got.WorkoutsPerDay)
}

// =========================================================================
// PURE BUILDERS
// =========================================================================

func TestBuildSleepSeriesKeepsEveryRowInOrder(t *testing.T) {
	series := BuildSleepSeries([]model.Sleep{
		{StartTime: mustTime("2024-01-02T22:00:00Z"), EndTime: mustTime("2024-01-03T06:00:00Z")},
		{StartTime: mustTime("2024-01-02T13:00:00Z"), EndTime: mustTime("2024-01-02T13:30:00Z")},
	})

	require.Len(t, series, 2)
	assert.Equal(t, "2024-01-02", series[0].Date)
	assert.Equal(t, 0.5, series[0].Hours)
	assert.Equal(t, "2024-01-02", series[1].Date)
	assert.Equal(t, 8.0, series[1].Hours)
	assert.Nil(t, series[0].QualityScore)
}

func TestBuildWorkoutsPerDaySortedWithoutZeroFill(t *testing.T) {
	series := BuildWorkoutsPerDay([]model.Workout{
		{StartTime: mustTime("2024-01-07T07:00:00Z"), Sets: sets(1, 5, 100)},
		{StartTime: mustTime("2024-01-03T07:00:00Z")},
	})

	require.Len(t, series, 2)
	assert.Equal(t, "2024-01-03", series[0].Date)
	assert.Equal(t, 0.0, series[0].TotalWeight)
	assert.Equal(t, "2024-01-07", series[1].Date)
	assert.Equal(t, 500.0, series[1].TotalWeight)
}

func TestBuildCaloriesPerDayGroupsByUTCDate(t *testing.T) {
	food := &model.Food{Calories: 100}
	series := BuildCaloriesPerDay([]model.Meal{
		{Time: mustTime("2024-01-05T23:30:00-02:00"), Items: []model.MealItem{{Quantity: 1, Food: food}}},
		{Time: mustTime("2024-01-06T00:30:00Z"), Items: []model.MealItem{{Quantity: 2, Food: food}}},
	})

	require.Len(t, series, 1, "23:30 at -02:00 is 01:30 UTC on the 6th")
	assert.Equal(t, "2024-01-06", series[0].Date)
	assert.Equal(t, 300.0, series[0].Calories)
}

// =========================================================================
// REPORTS
// =========================================================================

func TestExercisePRs(t *testing.T) {
	reader := &fakeActivity{records: []model.SetRecord{
		{ExerciseID: 2, ExerciseName: "Squat", Weight: 100, Reps: 5},
		{ExerciseID: 1, ExerciseName: "Bench Press", Weight: 80, Reps: 5},
		{ExerciseID: 2, ExerciseName: "Squat", Weight: 120, Reps: 1},
		{ExerciseID: 1, ExerciseName: "Bench Press", Weight: 70, Reps: 8},
	}}
	s := newTestSummary(reader, "2024-01-06T12:00:00Z")

	prs, err := s.ExercisePRs(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []model.ExercisePR{
		{ExerciseID: 1, ExerciseName: "Bench Press", PRWeight: 80},
		{ExerciseID: 2, ExerciseName: "Squat", PRWeight: 120},
	}, prs)
}

func TestMuscleBalance(t *testing.T) {
	reader := &fakeActivity{records: []model.SetRecord{
		// Wednesday and Sunday of the week starting Monday 2024-01-01.
		{StartTime: mustTime("2024-01-03T10:00:00Z"), PrimaryMuscle: "Quads", Reps: 5, Weight: 100},
		{StartTime: mustTime("2024-01-07T10:00:00Z"), PrimaryMuscle: "Quads", Reps: 5, Weight: 100},
		{StartTime: mustTime("2024-01-07T10:00:00Z"), PrimaryMuscle: "", Reps: 10, Weight: 10},
		// Monday of the next week.
		{StartTime: mustTime("2024-01-08T10:00:00Z"), PrimaryMuscle: "Chest", Reps: 8, Weight: 60},
	}}
	s := newTestSummary(reader, "2024-01-09T12:00:00Z")

	got, err := s.MuscleBalance(context.Background(), 1, 4)
	require.NoError(t, err)
	assert.Equal(t, []model.MuscleBalanceEntry{
		{WeekStart: "2024-01-01", PrimaryMuscle: "Quads", Volume: 1000},
		{WeekStart: "2024-01-01", PrimaryMuscle: UnspecifiedMuscle, Volume: 100},
		{WeekStart: "2024-01-08", PrimaryMuscle: "Chest", Volume: 480},
	}, got)

	_, err = s.MuscleBalance(context.Background(), 1, 0)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestRecentWorkouts(t *testing.T) {
	reader := &fakeActivity{workouts: []model.Workout{
		{ID: 9, UserID: 1, StartTime: mustTime("2024-01-05T07:00:00Z"), Label: "Push", Sets: sets(4, 10, 50)},
		{ID: 8, UserID: 1, StartTime: mustTime("2024-01-04T07:00:00Z"), Label: "Pull", Sets: sets(3, 10, 50)},
	}}
	s := newTestSummary(reader, "2024-01-06T12:00:00Z")

	got, err := s.RecentWorkouts(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []model.WorkoutSummary{{WorkoutID: 9, Date: "2024-01-05", Label: "Push", NumSets: 4}}, got)

	_, err = s.RecentWorkouts(context.Background(), 1, 101)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestWeekStart(t *testing.T) {
	assert.Equal(t, "2024-01-01", weekStart(mustTime("2024-01-01T00:00:00Z")))
	assert.Equal(t, "2024-01-01", weekStart(mustTime("2024-01-07T23:59:59Z")))
	assert.Equal(t, "2023-12-25", weekStart(mustTime("2023-12-31T12:00:00Z")))
}
