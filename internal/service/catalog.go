package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

type FoodInput struct {
	Name             string  `json:"food_name"`
	Category         string  `json:"category"`
	Calories         float64 `json:"calories"`
	Carbs            float64 `json:"carbs"`
	Fats             float64 `json:"fats"`
	Protein          float64 `json:"protein"`
	Sugar            float64 `json:"sugar"`
	ServingSizeGrams float64 `json:"serving_size_grams"`
}

type ExerciseInput struct {
	Name            string `json:"exercise_name"`
	PrimaryMuscle   string `json:"primary_muscle"`
	SecondaryMuscle string `json:"secondary_muscle"`
}

// CatalogService manages the shared food and exercise catalogs.
type CatalogService struct {
	foods     repository.FoodRepository
	exercises repository.ExerciseRepository
	logger    *slog.Logger
}

func NewCatalogService(foods repository.FoodRepository, exercises repository.ExerciseRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{foods: foods, exercises: exercises, logger: logger}
}

// ===== FOODS =====

func (s *CatalogService) CreateFood(ctx context.Context, in FoodInput) (*model.Food, error) {
	name, err := requireName("food_name", in.Name)
	if err != nil {
		return nil, err
	}
	category, err := optionalName("category", in.Category)
	if err != nil {
		return nil, err
	}
	for _, v := range []struct {
		field string
		value float64
	}{
		{"calories", in.Calories},
		{"carbs", in.Carbs},
		{"fats", in.Fats},
		{"protein", in.Protein},
		{"sugar", in.Sugar},
		{"serving_size_grams", in.ServingSizeGrams},
	} {
		if err := requireNonNegative(v.field, v.value); err != nil {
			return nil, err
		}
	}

	food := &model.Food{
		Name:             name,
		Category:         category,
		Calories:         in.Calories,
		Carbs:            in.Carbs,
		Fats:             in.Fats,
		Protein:          in.Protein,
		Sugar:            in.Sugar,
		ServingSizeGrams: in.ServingSizeGrams,
	}
	if err := s.foods.CreateFood(ctx, food); err != nil {
		return nil, fmt.Errorf("creating food: %w", err)
	}

	s.logger.Info("food created", slog.Int64("food_id", food.ID), slog.String("name", food.Name))
	return food, nil
}

func (s *CatalogService) GetFood(ctx context.Context, id int64) (*model.Food, error) {
	if err := requireID("food_id", id); err != nil {
		return nil, err
	}
	return s.foods.GetFoodByID(ctx, id)
}

func (s *CatalogService) ListFoods(ctx context.Context) ([]model.Food, error) {
	return s.foods.ListFoods(ctx)
}

// SearchFoods matches query as a case-insensitive substring of the name.
// The query must contain at least one non-space character.
func (s *CatalogService) SearchFoods(ctx context.Context, query string) ([]model.Food, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.ValidationFailed("query", "query must not be empty")
	}
	if len(query) > MaxNameLength {
		return nil, apperror.ValidationFailed("query",
			fmt.Sprintf("query must be %d characters or less", MaxNameLength))
	}
	return s.foods.SearchFoods(ctx, query)
}

func (s *CatalogService) DeleteFood(ctx context.Context, id int64) error {
	if err := requireID("food_id", id); err != nil {
		return err
	}
	return s.foods.DeleteFood(ctx, id)
}

// ===== EXERCISES =====

func (s *CatalogService) CreateExercise(ctx context.Context, in ExerciseInput) (*model.Exercise, error) {
	name, err := requireName("exercise_name", in.Name)
	if err != nil {
		return nil, err
	}
	primary, err := optionalName("primary_muscle", in.PrimaryMuscle)
	if err != nil {
		return nil, err
	}
	secondary, err := optionalName("secondary_muscle", in.SecondaryMuscle)
	if err != nil {
		return nil, err
	}

	ex := &model.Exercise{Name: name, PrimaryMuscle: primary, SecondaryMuscle: secondary}
	if err := s.exercises.CreateExercise(ctx, ex); err != nil {
		return nil, fmt.Errorf("creating exercise: %w", err)
	}

	s.logger.Info("exercise created", slog.Int64("exercise_id", ex.ID), slog.String("name", ex.Name))
	return ex, nil
}

func (s *CatalogService) GetExercise(ctx context.Context, id int64) (*model.Exercise, error) {
	if err := requireID("exercise_id", id); err != nil {
		return nil, err
	}
	return s.exercises.GetExerciseByID(ctx, id)
}

func (s *CatalogService) ListExercises(ctx context.Context) ([]model.Exercise, error) {
	return s.exercises.ListExercises(ctx)
}

func (s *CatalogService) DeleteExercise(ctx context.Context, id int64) error {
	if err := requireID("exercise_id", id); err != nil {
		return err
	}
	return s.exercises.DeleteExercise(ctx, id)
}
