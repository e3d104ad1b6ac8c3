package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

// SummaryService is the aggregation engine. It reads raw rows for a window
// and reduces them in Go into per-day series and per-exercise reports.
//
// KEY CONCEPTS:
//
//  1. WINDOW: "last N days" means every row whose primary timestamp is at or
//     after now − N×24h. The cutoff is an instant, not a calendar boundary.
//
//  2. DAY KEY: rows are grouped by the UTC calendar date of their
//     timestamp. Timestamps are stored in UTC, so a sleep that starts at
//     23:00 UTC belongs to that day even though it ends the next morning.
//
//  3. NOTHING IS STORED: hours, volume and macro totals are recomputed on
//     every call from the raw rows.
//
// The Build* functions are pure so they can be tested without a database.
type SummaryService struct {
	reader repository.ActivityReader
	logger *slog.Logger
	now    func() time.Time
}

func NewSummaryService(reader repository.ActivityReader, logger *slog.Logger) *SummaryService {
	return &SummaryService{reader: reader, logger: logger, now: time.Now}
}

// Summary returns the three dashboard series for the last days days.
// An unknown user yields three empty series.
func (s *SummaryService) Summary(ctx context.Context, userID int64, days int) (*model.Summary, error) {
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}
	if err := ValidateDays(days); err != nil {
		return nil, err
	}

	since := windowStart(s.now(), days)
	filter := repository.TimeFilter{Since: &since, Order: repository.OrderOldestFirst}

	sleeps, err := s.reader.ListSleepForUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("summary: reading sleep: %w", err)
	}
	workouts, err := s.reader.ListWorkoutsForUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("summary: reading workouts: %w", err)
	}
	meals, err := s.reader.ListMealsForUser(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("summary: reading meals: %w", err)
	}

	s.logger.Debug("summary computed",
		slog.Int64("user_id", userID),
		slog.Int("days", days),
		slog.Int("sleep_rows", len(sleeps)),
		slog.Int("workout_rows", len(workouts)),
		slog.Int("meal_rows", len(meals)),
	)

	return &model.Summary{
		Sleep:          BuildSleepSeries(sleeps),
		WorkoutsPerDay: BuildWorkoutsPerDay(workouts),
		CaloriesPerDay: BuildCaloriesPerDay(meals),
	}, nil
}

func dateKey(t time.Time) string {
	return t.UTC().Format(model.DateLayout)
}

// BuildSleepSeries emits one entry per session, ascending by start time.
// Two sessions on the same date produce two entries.
func BuildSleepSeries(sleeps []model.Sleep) []model.SleepEntry {
	sorted := slices.Clone(sleeps)
	slices.SortStableFunc(sorted, func(a, b model.Sleep) int {
		return a.StartTime.Compare(b.StartTime)
	})

	series := make([]model.SleepEntry, 0, len(sorted))
	for _, sl := range sorted {
		series = append(series, model.SleepEntry{
			Date:         dateKey(sl.StartTime),
			Hours:        sl.Hours(),
			QualityScore: sl.QualityScore,
		})
	}
	return series
}

// BuildWorkoutsPerDay groups workouts by start date. Each row carries the
// workout count and Σ reps × weight over every set of those workouts.
// Dates without workouts are omitted.
func BuildWorkoutsPerDay(workouts []model.Workout) []model.WorkoutsPerDay {
	byDate := make(map[string]*model.WorkoutsPerDay)
	for _, w := range workouts {
		key := dateKey(w.StartTime)
		day, ok := byDate[key]
		if !ok {
			day = &model.WorkoutsPerDay{Date: key}
			byDate[key] = day
		}
		day.Count++
		day.TotalWeight += w.Volume()
	}

	series := make([]model.WorkoutsPerDay, 0, len(byDate))
	for _, day := range byDate {
		series = append(series, *day)
	}
	slices.SortFunc(series, func(a, b model.WorkoutsPerDay) int { return cmp.Compare(a.Date, b.Date) })
	return series
}

// BuildCaloriesPerDay groups meals by date and sums quantity × per-serving
// macro over every item. A meal without items still puts its date in the
// series, with zeros.
func BuildCaloriesPerDay(meals []model.Meal) []model.CaloriesPerDay {
	byDate := make(map[string]*model.Macros)
	for _, m := range meals {
		key := dateKey(m.Time)
		total, ok := byDate[key]
		if !ok {
			total = &model.Macros{}
			byDate[key] = total
		}
		*total = total.Add(m.Nutrition())
	}

	series := make([]model.CaloriesPerDay, 0, len(byDate))
	for date, total := range byDate {
		series = append(series, model.CaloriesPerDay{
			Date:     date,
			Calories: total.Calories,
			Carbs:    total.Carbs,
			Fats:     total.Fats,
			Protein:  total.Protein,
		})
	}
	slices.SortFunc(series, func(a, b model.CaloriesPerDay) int { return cmp.Compare(a.Date, b.Date) })
	return series
}

// ===== REPORTS =====

// ExercisePRs returns, for every exercise the user has logged, the heaviest
// weight ever used. Ordered by exercise name.
func (s *SummaryService) ExercisePRs(ctx context.Context, userID int64) ([]model.ExercisePR, error) {
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}
	records, err := s.reader.ListSetRecords(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("exercise prs: %w", err)
	}
	return BuildExercisePRs(records), nil
}

func BuildExercisePRs(records []model.SetRecord) []model.ExercisePR {
	best := make(map[int64]*model.ExercisePR)
	for _, r := range records {
		pr, ok := best[r.ExerciseID]
		if !ok {
			best[r.ExerciseID] = &model.ExercisePR{ExerciseID: r.ExerciseID, ExerciseName: r.ExerciseName, PRWeight: r.Weight}
			continue
		}
		pr.PRWeight = max(pr.PRWeight, r.Weight)
	}

	prs := make([]model.ExercisePR, 0, len(best))
	for _, pr := range best {
		prs = append(prs, *pr)
	}
	slices.SortFunc(prs, func(a, b model.ExercisePR) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.ExerciseName), strings.ToLower(b.ExerciseName)),
			cmp.Compare(a.ExerciseID, b.ExerciseID),
		)
	})
	return prs
}

// UnspecifiedMuscle labels volume from exercises without a primary muscle.
const UnspecifiedMuscle = "Unspecified"

// MuscleBalance returns weekly training volume per primary muscle over the
// last weeks weeks.
func (s *SummaryService) MuscleBalance(ctx context.Context, userID int64, weeks int) ([]model.MuscleBalanceEntry, error) {
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}
	if weeks < 1 || weeks > MaxBalanceWeeks {
		return nil, apperror.ValidationFailed("weeks", fmt.Sprintf("weeks must be between 1 and %d", MaxBalanceWeeks))
	}

	since := windowStart(s.now(), weeks*7)
	records, err := s.reader.ListSetRecords(ctx, userID, &since)
	if err != nil {
		return nil, fmt.Errorf("muscle balance: %w", err)
	}
	return BuildMuscleBalance(records), nil
}

// BuildMuscleBalance sums reps × weight per (week, primary muscle). Weeks
// start on Monday, in UTC.
func BuildMuscleBalance(records []model.SetRecord) []model.MuscleBalanceEntry {
	type key struct{ week, muscle string }
	volume := make(map[key]float64)
	for _, r := range records {
		muscle := r.PrimaryMuscle
		if muscle == "" {
			muscle = UnspecifiedMuscle
		}
		volume[key{weekStart(r.StartTime), muscle}] += float64(r.Reps) * r.Weight
	}

	entries := make([]model.MuscleBalanceEntry, 0, len(volume))
	for k, v := range volume {
		entries = append(entries, model.MuscleBalanceEntry{WeekStart: k.week, PrimaryMuscle: k.muscle, Volume: v})
	}
	slices.SortFunc(entries, func(a, b model.MuscleBalanceEntry) int {
		return cmp.Or(cmp.Compare(a.WeekStart, b.WeekStart), cmp.Compare(a.PrimaryMuscle, b.PrimaryMuscle))
	})
	return entries
}

// weekStart returns the Monday of t's UTC week as a date key.
func weekStart(t time.Time) string {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
	return monday.Format(model.DateLayout)
}

// RecentWorkouts returns compact summaries of the user's latest workouts,
// newest first.
func (s *SummaryService) RecentWorkouts(ctx context.Context, userID int64, limit int) ([]model.WorkoutSummary, error) {
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = DefaultRecentLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return nil, apperror.ValidationFailed("limit", fmt.Sprintf("limit must be between 1 and %d", MaxListLimit))
	}

	workouts, err := s.reader.ListWorkoutsForUser(ctx, userID, repository.TimeFilter{Order: repository.OrderNewestFirst, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("recent workouts: %w", err)
	}

	summaries := make([]model.WorkoutSummary, 0, len(workouts))
	for _, w := range workouts {
		summaries = append(summaries, model.WorkoutSummary{
			WorkoutID: w.ID,
			Date:      dateKey(w.StartTime),
			Label:     w.Label,
			NumSets:   len(w.Sets),
		})
	}
	return summaries, nil
}
