package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

type MealInput struct {
	UserID int64
	Time   time.Time
	Name   string
}

type ItemInput struct {
	FoodID   int64   `json:"food_id"`
	Quantity float64 `json:"quantity"`
}

type MealService struct {
	repo   repository.MealRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewMealService(repo repository.MealRepository, logger *slog.Logger) *MealService {
	return &MealService{repo: repo, logger: logger, now: time.Now}
}

func (s *MealService) Create(ctx context.Context, in MealInput) (*model.Meal, error) {
	return s.CreateWithItems(ctx, in, nil)
}

// CreateWithItems records a meal and its items as one unit, with the same
// rollback contract as WorkoutService.CreateWithSets.
func (s *MealService) CreateWithItems(ctx context.Context, in MealInput, items []ItemInput) (*model.Meal, error) {
	if err := requireID("user_id", in.UserID); err != nil {
		return nil, err
	}
	if err := requireTime("time_of_meal", in.Time); err != nil {
		return nil, err
	}
	name, err := requireName("meal_name", in.Name)
	if err != nil {
		return nil, err
	}

	meal := &model.Meal{UserID: in.UserID, Time: in.Time, Name: name, Items: make([]model.MealItem, 0, len(items))}
	for _, ii := range items {
		item, err := buildItem(ii)
		if err != nil {
			return nil, err
		}
		meal.Items = append(meal.Items, item)
	}

	if err := s.repo.CreateMeal(ctx, meal); err != nil {
		return nil, fmt.Errorf("creating meal: %w", err)
	}

	s.logger.Info("meal created",
		slog.Int64("meal_id", meal.ID),
		slog.Int64("user_id", meal.UserID),
		slog.Int("items", len(meal.Items)),
	)
	return meal, nil
}

func (s *MealService) AddItem(ctx context.Context, mealID int64, in ItemInput) (*model.MealItem, error) {
	if err := requireID("meal_id", mealID); err != nil {
		return nil, err
	}
	item, err := buildItem(in)
	if err != nil {
		return nil, err
	}
	item.MealID = mealID

	if err := s.repo.CreateMealItem(ctx, &item); err != nil {
		return nil, fmt.Errorf("adding meal item: %w", err)
	}
	return &item, nil
}

func buildItem(in ItemInput) (model.MealItem, error) {
	if err := requireID("food_id", in.FoodID); err != nil {
		return model.MealItem{}, err
	}
	if err := requireNonNegative("quantity", in.Quantity); err != nil {
		return model.MealItem{}, err
	}
	return model.MealItem{FoodID: in.FoodID, Quantity: in.Quantity}, nil
}

func (s *MealService) Get(ctx context.Context, id int64) (*model.Meal, error) {
	if err := requireID("meal_id", id); err != nil {
		return nil, err
	}
	return s.repo.GetMealByID(ctx, id)
}

func (s *MealService) ListForUser(ctx context.Context, userID int64, q ListQuery) ([]model.Meal, error) {
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}
	filter, err := q.filter(s.now())
	if err != nil {
		return nil, err
	}
	return s.repo.ListMealsForUser(ctx, userID, filter)
}

// ForDay returns the meals whose time falls on the given UTC calendar date
// (YYYY-MM-DD), oldest first, with the day's nutrition totals.
func (s *MealService) ForDay(ctx context.Context, userID int64, date string) (*model.DayNutrition, error) {
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}
	day, err := time.ParseInLocation(model.DateLayout, strings.TrimSpace(date), time.UTC)
	if err != nil {
		return nil, apperror.ValidationFailed("date", "date must be formatted as YYYY-MM-DD")
	}

	meals, err := s.repo.ListMealsBetween(ctx, userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	result := &model.DayNutrition{Date: day.Format(model.DateLayout), Meals: meals}
	for _, m := range meals {
		result.Totals = result.Totals.Add(m.Nutrition())
	}
	return result, nil
}

func (s *MealService) Delete(ctx context.Context, id int64) error {
	if err := requireID("meal_id", id); err != nil {
		return err
	}
	return s.repo.DeleteMeal(ctx, id)
}

func (s *MealService) DeleteItem(ctx context.Context, id int64) error {
	if err := requireID("meal_item_id", id); err != nil {
		return err
	}
	return s.repo.DeleteMealItem(ctx, id)
}
