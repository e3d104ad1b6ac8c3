package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

type WorkoutInput struct {
	UserID    int64
	StartTime time.Time
	EndTime   time.Time
	Label     string
}

// SetInput is one set of a workout. A zero SetOrder is filled in from the
// set's position (1-based) on a composite create, or placed last by AddSet.
type SetInput struct {
	ExerciseID int64   `json:"exercise_id"`
	Reps       int     `json:"num_reps"`
	Weight     float64 `json:"weight_amount"`
	SetOrder   int     `json:"set_order"`
}

type WorkoutService struct {
	repo   repository.WorkoutRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewWorkoutService(repo repository.WorkoutRepository, logger *slog.Logger) *WorkoutService {
	return &WorkoutService{repo: repo, logger: logger, now: time.Now}
}

// Create records a workout without sets.
func (s *WorkoutService) Create(ctx context.Context, in WorkoutInput) (*model.Workout, error) {
	return s.CreateWithSets(ctx, in, nil)
}

// CreateWithSets records a workout and its sets as one unit. If any set
// names a missing exercise the whole write is rolled back and an
// AtomicityFailure is returned.
func (s *WorkoutService) CreateWithSets(ctx context.Context, in WorkoutInput, sets []SetInput) (*model.Workout, error) {
	w, err := buildWorkout(in)
	if err != nil {
		return nil, err
	}

	w.Sets = make([]model.WorkoutSet, 0, len(sets))
	for i, si := range sets {
		set, err := buildSet(si, i+1)
		if err != nil {
			return nil, err
		}
		w.Sets = append(w.Sets, set)
	}

	if err := s.repo.CreateWorkout(ctx, w); err != nil {
		return nil, fmt.Errorf("creating workout: %w", err)
	}

	s.logger.Info("workout created",
		slog.Int64("workout_id", w.ID),
		slog.Int64("user_id", w.UserID),
		slog.Int("sets", len(w.Sets)),
	)
	return w, nil
}

// AddSet appends one set to an existing workout. Without a set_order the
// set goes after the workout's last set.
func (s *WorkoutService) AddSet(ctx context.Context, workoutID int64, in SetInput) (*model.WorkoutSet, error) {
	if err := requireID("workout_id", workoutID); err != nil {
		return nil, err
	}
	set, err := buildSet(in, 0)
	if err != nil {
		return nil, err
	}
	set.WorkoutID = workoutID

	if err := s.repo.CreateWorkoutSet(ctx, &set); err != nil {
		return nil, fmt.Errorf("adding workout set: %w", err)
	}
	return &set, nil
}

func buildWorkout(in WorkoutInput) (*model.Workout, error) {
	if err := requireID("user_id", in.UserID); err != nil {
		return nil, err
	}
	if err := requireTime("start_time", in.StartTime); err != nil {
		return nil, err
	}
	if err := requireTime("end_time", in.EndTime); err != nil {
		return nil, err
	}
	label, err := optionalName("label", in.Label)
	if err != nil {
		return nil, err
	}
	return &model.Workout{UserID: in.UserID, StartTime: in.StartTime, EndTime: in.EndTime, Label: label}, nil
}

func buildSet(in SetInput, position int) (model.WorkoutSet, error) {
	if err := requireID("exercise_id", in.ExerciseID); err != nil {
		return model.WorkoutSet{}, err
	}
	if in.Reps <= 0 {
		return model.WorkoutSet{}, apperror.ValidationFailed("num_reps", "num_reps must be positive")
	}
	if err := requireNonNegative("weight_amount", in.Weight); err != nil {
		return model.WorkoutSet{}, err
	}
	order := in.SetOrder
	if order < 0 {
		return model.WorkoutSet{}, apperror.ValidationFailed("set_order", "set_order must be positive")
	}
	if order == 0 {
		order = position
	}
	return model.WorkoutSet{ExerciseID: in.ExerciseID, Reps: in.Reps, Weight: in.Weight, SetOrder: order}, nil
}

func (s *WorkoutService) Get(ctx context.Context, id int64) (*model.Workout, error) {
	if err := requireID("workout_id", id); err != nil {
		return nil, err
	}
	return s.repo.GetWorkoutByID(ctx, id)
}

func (s *WorkoutService) ListForUser(ctx context.Context, userID int64, q ListQuery) ([]model.Workout, error) {
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}
	filter, err := q.filter(s.now())
	if err != nil {
		return nil, err
	}
	return s.repo.ListWorkoutsForUser(ctx, userID, filter)
}

func (s *WorkoutService) Delete(ctx context.Context, id int64) error {
	if err := requireID("workout_id", id); err != nil {
		return err
	}
	return s.repo.DeleteWorkout(ctx, id)
}

func (s *WorkoutService) DeleteSet(ctx context.Context, id int64) error {
	if err := requireID("set_id", id); err != nil {
		return err
	}
	return s.repo.DeleteWorkoutSet(ctx, id)
}
