package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
)

func TestTablesExcludeSessions(t *testing.T) {
	db := newTestDB(t)

	tables := db.Tables()
	assert.Contains(t, tables, "users")
	assert.Contains(t, tables, "meal_items")
	assert.NotContains(t, tables, "sessions")
	assert.NotContains(t, tables, "schema_migrations")
}

func TestListRowsAndGetRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createTestFood(t, db, "Oats", 389)
	banana := createTestFood(t, db, "Banana", 89.5)

	rows, err := db.ListRows(ctx, "foods")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "food_id", rows[0].Columns[0])
	assert.Equal(t, "Oats", rows[0].Values[1], "ordered by primary key, not name")

	row, err := db.GetRow(ctx, "foods", banana.ID)
	require.NoError(t, err)
	assert.Equal(t, banana.ID, row.ID)
	assert.Equal(t, "89.5", row.Values[3])

	_, err = db.GetRow(ctx, "foods", 999)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestInspectUnknownTable(t *testing.T) {
	db := newTestDB(t)

	_, err := db.ListRows(context.Background(), "sqlite_master; DROP TABLE users")
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestDeleteRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "a@example.com")
	oats := createTestFood(t, db, "Oats", 389)
	require.NoError(t, db.CreateMeal(ctx, &model.Meal{UserID: u.ID, Time: at("2024-01-02T08:00:00Z"), Name: "Breakfast",
		Items: []model.MealItem{{FoodID: oats.ID, Quantity: 1}}}))

	err := db.DeleteRow(ctx, "foods", oats.ID)
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	require.NoError(t, db.DeleteRow(ctx, "users", u.ID))
	assert.Zero(t, countRows(t, db, "meals"))
	require.NoError(t, db.DeleteRow(ctx, "foods", oats.ID))
}

func TestReset(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	createTestUser(t, db, "a@example.com")
	createTestFood(t, db, "Oats", 389)

	require.NoError(t, db.Reset(ctx))
	assert.Zero(t, countRows(t, db, "users"))
	assert.Zero(t, countRows(t, db, "foods"))

	u := createTestUser(t, db, "b@example.com")
	assert.Equal(t, int64(1), u.ID, "sequences restart")
}
