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

func TestCreateMealWithItems(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "a@example.com")
	chicken := createTestFood(t, db, "Chicken Breast", 165)
	rice := createTestFood(t, db, "White Rice", 130)

	m := &model.Meal{
		UserID: u.ID, Time: at("2024-01-02T13:00:00Z"), Name: "Lunch",
		Items: []model.MealItem{{FoodID: chicken.ID, Quantity: 2}, {FoodID: rice.ID, Quantity: 1.5}},
	}
	require.NoError(t, db.CreateMeal(ctx, m))

	got, err := db.GetMealByID(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	require.NotNil(t, got.Items[0].Food)
	assert.Equal(t, "Chicken Breast", got.Items[0].Food.Name)
	assert.InDelta(t, 2*165+1.5*130, got.Nutrition().Calories, 1e-9)
}

func TestCreateMealRollsBackOnMissingFood(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "a@example.com")
	oats := createTestFood(t, db, "Oats", 389)

	err := db.CreateMeal(ctx, &model.Meal{
		UserID: u.ID, Time: at("2024-01-02T08:00:00Z"), Name: "Breakfast",
		Items: []model.MealItem{{FoodID: oats.ID, Quantity: 1}, {FoodID: 404, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, apperror.ErrAtomicity))
	assert.Zero(t, countRows(t, db, "meals"))
	assert.Zero(t, countRows(t, db, "meal_items"))
}

func TestCreateMealItem(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "a@example.com")
	egg := createTestFood(t, db, "Egg", 78)
	m := &model.Meal{UserID: u.ID, Time: at("2024-01-02T08:00:00Z"), Name: "Breakfast"}
	require.NoError(t, db.CreateMeal(ctx, m))

	it := &model.MealItem{MealID: m.ID, FoodID: egg.ID, Quantity: 2}
	require.NoError(t, db.CreateMealItem(ctx, it))
	assert.NotZero(t, it.ID)

	err := db.CreateMealItem(ctx, &model.MealItem{MealID: m.ID, FoodID: 999, Quantity: 1})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	require.NoError(t, db.DeleteMealItem(ctx, it.ID))
	assert.Zero(t, countRows(t, db, "meal_items"))
}

func TestListMealsBetweenIsHalfOpen(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "a@example.com")

	for _, ts := range []string{"2024-01-01T23:59:59Z", "2024-01-02T00:00:00Z", "2024-01-02T19:00:00Z", "2024-01-03T00:00:00Z"} {
		require.NoError(t, db.CreateMeal(ctx, &model.Meal{UserID: u.ID, Time: at(ts), Name: "Snack"}))
	}

	meals, err := db.ListMealsBetween(ctx, u.ID, at("2024-01-02T00:00:00Z"), at("2024-01-03T00:00:00Z"))
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, at("2024-01-02T00:00:00Z"), meals[0].Time)
	assert.Equal(t, at("2024-01-02T19:00:00Z"), meals[1].Time)
}

func TestListMealsForUserOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "a@example.com")
	require.NoError(t, db.CreateMeal(ctx, &model.Meal{UserID: u.ID, Time: at("2024-01-01T08:00:00Z"), Name: "Breakfast"}))
	require.NoError(t, db.CreateMeal(ctx, &model.Meal{UserID: u.ID, Time: at("2024-01-01T19:00:00Z"), Name: "Dinner"}))

	meals, err := db.ListMealsForUser(ctx, u.ID, repository.TimeFilter{Order: repository.OrderNewestFirst})
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, "Dinner", meals[0].Name)
	assert.NotNil(t, meals[0].Items)
}

func TestDeleteMealCascadesToItems(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "a@example.com")
	egg := createTestFood(t, db, "Egg", 78)
	m := &model.Meal{UserID: u.ID, Time: at("2024-01-02T08:00:00Z"), Name: "Breakfast", Items: []model.MealItem{{FoodID: egg.ID, Quantity: 2}}}
	require.NoError(t, db.CreateMeal(ctx, m))

	require.NoError(t, db.DeleteMeal(ctx, m.ID))
	assert.Zero(t, countRows(t, db, "meal_items"))
	assert.Equal(t, 1, countRows(t, db, "foods"))
}
