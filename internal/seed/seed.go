// Package seed fills a database with realistic demo data: five users, a
// small exercise and food catalog, and a window of daily sleep, meals and
// workouts for every user.
//
// Generation is deterministic for a given Options.Seed and Options.Now, so
// demo databases and tests are reproducible.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

// DefaultDays is how many days of history are generated per user.
const DefaultDays = 30

// ErrNotEmpty is returned when the target database already has users.
var ErrNotEmpty = errors.New("database already contains users; reset it first")

// Store is everything the seeder writes to.
type Store interface {
	repository.UserRepository
	repository.SleepRepository
	repository.WorkoutRepository
	repository.MealRepository
	repository.FoodRepository
	repository.ExerciseRepository
}

type Options struct {
	Days int       // days of history, ending yesterday; 0 means DefaultDays
	Seed uint64    // random seed
	Now  time.Time // reference time; zero means time.Now
}

// Result counts what was written.
type Result struct {
	Users         int   `json:"users"`
	Exercises     int   `json:"exercises"`
	Foods         int   `json:"foods"`
	Sleep         int   `json:"sleep"`
	Meals         int   `json:"meals"`
	MealItems     int   `json:"meal_items"`
	Workouts      int   `json:"workouts"`
	Sets          int   `json:"workout_sets"`
	SpecialUserID int64 `json:"special_user_id"`
}

var users = []model.User{
	{Email: "alice@example.com", Name: "Alice", Surname: "Anderson", Location: "Cleveland"},
	{Email: "bob@example.com", Name: "Bob", Surname: "Brown", Location: "Boston"},
	{Email: "charlie@example.com", Name: "Charlie", Surname: "Clark", Location: "Chicago"},
	{Email: "dana@example.com", Name: "Dana", Surname: "Davis", Location: "Denver"},
	{Email: "eric@example.com", Name: "Eric", Surname: "Evans", Location: "Seattle"},
}

var exercises = []model.Exercise{
	{Name: "Back Squat", PrimaryMuscle: "Quads", SecondaryMuscle: "Glutes"},
	{Name: "Front Squat", PrimaryMuscle: "Quads", SecondaryMuscle: "Core"},
	{Name: "Bench Press", PrimaryMuscle: "Chest", SecondaryMuscle: "Triceps"},
	{Name: "Incline Bench", PrimaryMuscle: "Chest", SecondaryMuscle: "Shoulders"},
	{Name: "Deadlift", PrimaryMuscle: "Hamstrings", SecondaryMuscle: "Back"},
	{Name: "Barbell Row", PrimaryMuscle: "Back", SecondaryMuscle: "Biceps"},
	{Name: "Overhead Press", PrimaryMuscle: "Shoulders", SecondaryMuscle: "Triceps"},
	{Name: "Lat Pulldown", PrimaryMuscle: "Back", SecondaryMuscle: "Biceps"},
	{Name: "Romanian Deadlift", PrimaryMuscle: "Hamstrings", SecondaryMuscle: "Glutes"},
	{Name: "Bicep Curl", PrimaryMuscle: "Biceps", SecondaryMuscle: "Forearms"},
}

var foods = []model.Food{
	{Name: "Chicken Breast", Category: "Protein", Calories: 165, Carbs: 0, Fats: 3.6, Protein: 31, Sugar: 0, ServingSizeGrams: 100},
	{Name: "White Rice", Category: "Carb", Calories: 130, Carbs: 28, Fats: 0.3, Protein: 2.7, Sugar: 0.1, ServingSizeGrams: 100},
	{Name: "Olive Oil", Category: "Fat", Calories: 119, Carbs: 0, Fats: 13.5, Protein: 0, Sugar: 0, ServingSizeGrams: 15},
	{Name: "Broccoli", Category: "Veg", Calories: 55, Carbs: 11, Fats: 0.6, Protein: 3.7, Sugar: 2.2, ServingSizeGrams: 100},
	{Name: "Oats", Category: "Carb", Calories: 389, Carbs: 66, Fats: 6.9, Protein: 16.9, Sugar: 0, ServingSizeGrams: 100},
	{Name: "Greek Yogurt", Category: "Protein", Calories: 59, Carbs: 3.6, Fats: 0.4, Protein: 10, Sugar: 3.2, ServingSizeGrams: 100},
	{Name: "Banana", Category: "Fruit", Calories: 89, Carbs: 23, Fats: 0.3, Protein: 1.1, Sugar: 12, ServingSizeGrams: 118},
	{Name: "Peanut Butter", Category: "Fat", Calories: 188, Carbs: 6, Fats: 16, Protein: 8, Sugar: 3, ServingSizeGrams: 32},
	{Name: "Salmon", Category: "Protein", Calories: 208, Carbs: 0, Fats: 13, Protein: 20, Sugar: 0, ServingSizeGrams: 100},
	{Name: "Sweet Potato", Category: "Carb", Calories: 86, Carbs: 20, Fats: 0.1, Protein: 1.6, Sugar: 4.2, ServingSizeGrams: 130},
}

var mealTemplates = []struct {
	name string
	hour int
}{
	{"Breakfast", 8},
	{"Lunch", 13},
	{"Dinner", 19},
}

var (
	workoutLabels = []string{"Push", "Pull", "Legs", "Upper", "Full Body"}
	repChoices    = []int{5, 8, 10, 12}
	weightChoices = []float64{30, 40, 50, 60, 80, 100}
	servings      = []float64{0.5, 1.0, 1.5, 2.0}
	sleepStarts   = []int{22, 23, 24} // 24 is midnight of the next day
)

// Run writes the demo data set. It refuses to run against a database that
// already has users.
func Run(ctx context.Context, store Store, opts Options, logger *slog.Logger) (*Result, error) {
	if opts.Days <= 0 {
		opts.Days = DefaultDays
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	existing, err := store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed: checking users: %w", err)
	}
	if len(existing) > 0 {
		return nil, ErrNotEmpty
	}

	g := &generator{
		store: store,
		rng:   rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		dates: dateRange(opts.Now, opts.Days),
	}
	if err := g.run(ctx); err != nil {
		return nil, err
	}

	logger.Info("seed completed",
		slog.Int("users", g.result.Users),
		slog.Int("days", opts.Days),
		slog.Int("workouts", g.result.Workouts),
		slog.Int("meals", g.result.Meals),
		slog.Int64("special_user_id", g.result.SpecialUserID),
	)
	return &g.result, nil
}

type generator struct {
	store     Store
	rng       *rand.Rand
	dates     []time.Time
	exercises []model.Exercise
	foods     []model.Food
	result    Result
}

func (g *generator) run(ctx context.Context) error {
	var created []model.User
	for _, u := range users {
		if err := g.store.CreateUser(ctx, &u); err != nil {
			return fmt.Errorf("seed: creating user %s: %w", u.Email, err)
		}
		created = append(created, u)
	}
	g.result.Users = len(created)

	for _, e := range exercises {
		if err := g.store.CreateExercise(ctx, &e); err != nil {
			return fmt.Errorf("seed: creating exercise %s: %w", e.Name, err)
		}
		g.exercises = append(g.exercises, e)
	}
	g.result.Exercises = len(g.exercises)

	for _, f := range foods {
		if err := g.store.CreateFood(ctx, &f); err != nil {
			return fmt.Errorf("seed: creating food %s: %w", f.Name, err)
		}
		g.foods = append(g.foods, f)
	}
	g.result.Foods = len(g.foods)

	// The first user trains twice on one day of every week.
	g.result.SpecialUserID = created[0].ID

	for i, u := range created {
		if err := g.sleep(ctx, u.ID); err != nil {
			return err
		}
		if err := g.meals(ctx, u.ID); err != nil {
			return err
		}
		if err := g.workouts(ctx, u.ID, i == 0); err != nil {
			return err
		}
	}
	return nil
}

// dateRange returns the UTC midnights from days ago up to yesterday,
// oldest first.
func dateRange(now time.Time, days int) []time.Time {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, 0, days)
	for i := days; i >= 1; i-- {
		dates = append(dates, today.AddDate(0, 0, -i))
	}
	return dates
}

// sleep logs one night per date, starting between 22:00 and midnight and
// lasting 5 to 10 hours.
func (g *generator) sleep(ctx context.Context, userID int64) error {
	for _, d := range g.dates {
		start := d.Add(time.Duration(pick(g.rng, sleepStarts)) * time.Hour)
		hours := 5 + g.rng.Float64()*5
		quality := 5 + g.rng.IntN(5)

		s := &model.Sleep{
			UserID:       userID,
			StartTime:    start,
			EndTime:      start.Add(time.Duration(hours * float64(time.Hour))).Truncate(time.Second),
			QualityScore: &quality,
		}
		if err := g.store.CreateSleep(ctx, s); err != nil {
			return fmt.Errorf("seed: creating sleep: %w", err)
		}
		g.result.Sleep++
	}
	return nil
}

// meals logs breakfast, lunch and dinner every day, each with 1 to 3 items
// of 0.5 to 2 servings.
func (g *generator) meals(ctx context.Context, userID int64) error {
	for _, d := range g.dates {
		for _, tmpl := range mealTemplates {
			n := 1 + g.rng.IntN(3)
			items := make([]model.MealItem, n)
			for i := range items {
				items[i] = model.MealItem{
					FoodID:   pick(g.rng, g.foods).ID,
					Quantity: pick(g.rng, servings),
				}
			}

			m := &model.Meal{
				UserID: userID,
				Time:   d.Add(time.Duration(tmpl.hour) * time.Hour),
				Name:   tmpl.name,
				Items:  items,
			}
			if err := g.store.CreateMeal(ctx, m); err != nil {
				return fmt.Errorf("seed: creating meal: %w", err)
			}
			g.result.Meals++
			g.result.MealItems += n
		}
	}
	return nil
}

// workouts picks 3 to 6 training days in every ISO week and logs one
// workout of 3 to 6 sets on each. The special user gets a second workout
// on one of those days.
func (g *generator) workouts(ctx context.Context, userID int64, special bool) error {
	perDay := make(map[time.Time]int)
	for _, week := range isoWeeks(g.dates) {
		k := min(3+g.rng.IntN(4), len(week))
		g.rng.Shuffle(len(week), func(i, j int) { week[i], week[j] = week[j], week[i] })
		chosen := week[:k]
		for _, d := range chosen {
			perDay[d]++
		}
		if special && len(chosen) > 0 {
			perDay[pick(g.rng, chosen)]++
		}
	}

	for _, d := range g.dates {
		for n := range perDay[d] {
			hour := 17
			if n > 0 {
				hour = 19
			}
			start := d.Add(time.Duration(hour) * time.Hour)

			numSets := 3 + g.rng.IntN(4)
			sets := make([]model.WorkoutSet, numSets)
			for i := range sets {
				sets[i] = model.WorkoutSet{
					ExerciseID: pick(g.rng, g.exercises).ID,
					Reps:       pick(g.rng, repChoices),
					Weight:     pick(g.rng, weightChoices),
					SetOrder:   i + 1,
				}
			}

			w := &model.Workout{
				UserID:    userID,
				StartTime: start,
				EndTime:   start.Add(time.Hour),
				Label:     pick(g.rng, workoutLabels),
				Sets:      sets,
			}
			if err := g.store.CreateWorkout(ctx, w); err != nil {
				return fmt.Errorf("seed: creating workout: %w", err)
			}
			g.result.Workouts++
			g.result.Sets += numSets
		}
	}
	return nil
}

// isoWeeks groups dates by ISO week, in date order. Each group is a fresh
// slice the caller may reorder.
func isoWeeks(dates []time.Time) [][]time.Time {
	type key struct{ year, week int }
	var (
		order  []key
		groups = make(map[key][]time.Time)
	)
	for _, d := range dates {
		y, w := d.ISOWeek()
		k := key{y, w}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], d)
	}

	weeks := make([][]time.Time, len(order))
	for i, k := range order {
		weeks[i] = groups[k]
	}
	return weeks
}

func pick[T any](rng *rand.Rand, from []T) T {
	return from[rng.IntN(len(from))]
}
