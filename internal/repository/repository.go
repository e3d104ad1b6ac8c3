// Package repository declares the storage interfaces the services depend on.
//
// Services never see *sql.DB or SQL strings; they receive these interfaces and
// the sqlite package provides the one concrete implementation. Tests swap in
// hand-written fakes.
package repository

import (
	"context"
	"time"

	"github.com/sakif/workoutify/internal/model"
)

// Order selects the direction of a time-ordered listing.
type Order int

const (
	// OrderNewestFirst is used by "recent" views.
	OrderNewestFirst Order = iota
	// OrderOldestFirst is used by summary views, which build series forward in time.
	OrderOldestFirst
)

// TimeFilter narrows a per-user listing by its primary timestamp.
// A nil Since means "no lower bound"; a zero Limit means "no limit".
type TimeFilter struct {
	Since *time.Time
	Order Order
	Limit int
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type SleepRepository interface {
	CreateSleep(ctx context.Context, sleep *model.Sleep) error
	GetSleepByID(ctx context.Context, id int64) (*model.Sleep, error)
	ListSleepForUser(ctx context.Context, userID int64, filter TimeFilter) ([]model.Sleep, error)
	DeleteSleep(ctx context.Context, id int64) error
}

// WorkoutRepository stores workouts and their sets. CreateWorkout inserts
// the workout together with every set in workout.Sets, atomically.
type WorkoutRepository interface {
	CreateWorkout(ctx context.Context, workout *model.Workout) error
	GetWorkoutByID(ctx context.Context, id int64) (*model.Workout, error)
	ListWorkoutsForUser(ctx context.Context, userID int64, filter TimeFilter) ([]model.Workout, error)
	DeleteWorkout(ctx context.Context, id int64) error
	CreateWorkoutSet(ctx context.Context, set *model.WorkoutSet) error
	DeleteWorkoutSet(ctx context.Context, id int64) error
	ListSetRecords(ctx context.Context, userID int64, since *time.Time) ([]model.SetRecord, error)
}

// MealRepository stores meals and their items. CreateMeal inserts the meal
// together with every item in meal.Items, atomically.
type MealRepository interface {
	CreateMeal(ctx context.Context, meal *model.Meal) error
	GetMealByID(ctx context.Context, id int64) (*model.Meal, error)
	ListMealsForUser(ctx context.Context, userID int64, filter TimeFilter) ([]model.Meal, error)
	ListMealsBetween(ctx context.Context, userID int64, from, to time.Time) ([]model.Meal, error)
	DeleteMeal(ctx context.Context, id int64) error
	CreateMealItem(ctx context.Context, item *model.MealItem) error
	DeleteMealItem(ctx context.Context, id int64) error
}

type FoodRepository interface {
	CreateFood(ctx context.Context, food *model.Food) error
	GetFoodByID(ctx context.Context, id int64) (*model.Food, error)
	ListFoods(ctx context.Context) ([]model.Food, error)
	SearchFoods(ctx context.Context, query string) ([]model.Food, error)
	DeleteFood(ctx context.Context, id int64) error
}

type ExerciseRepository interface {
	CreateExercise(ctx context.Context, exercise *model.Exercise) error
	GetExerciseByID(ctx context.Context, id int64) (*model.Exercise, error)
	ListExercises(ctx context.Context) ([]model.Exercise, error)
	DeleteExercise(ctx context.Context, id int64) error
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id string) (*model.Session, error)
	UpdateSession(ctx context.Context, session *model.Session) error
	DeleteSession(ctx context.Context, id string) error
}

// ActivityReader is the read side the aggregation engine needs: raw rows in
// a time window, nothing else.
type ActivityReader interface {
	ListSleepForUser(ctx context.Context, userID int64, filter TimeFilter) ([]model.Sleep, error)
	ListWorkoutsForUser(ctx context.Context, userID int64, filter TimeFilter) ([]model.Workout, error)
	ListMealsForUser(ctx context.Context, userID int64, filter TimeFilter) ([]model.Meal, error)
	ListSetRecords(ctx context.Context, userID int64, since *time.Time) ([]model.SetRecord, error)
}

// TableRow is one row of a generic table listing used by the admin tools.
type TableRow struct {
	ID      int64
	Columns []string
	Values  []string
}

// Inspector gives the admin tools generic access to the whitelisted tables.
type Inspector interface {
	Tables() []string
	ListRows(ctx context.Context, table string) ([]TableRow, error)
	GetRow(ctx context.Context, table string, id int64) (*TableRow, error)
	DeleteRow(ctx context.Context, table string, id int64) error
}
