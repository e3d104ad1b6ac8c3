package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

var _ repository.MealRepository = (*DB)(nil)

const mealColumns = `meal_id, user_id, time_of_meal, meal_name`

// CreateMeal inserts a meal and all of m.Items in one transaction. The
// contract mirrors CreateWorkout: missing user → NotFound, missing food on
// any item → AtomicityFailure with nothing persisted.
func (db *DB) CreateMeal(ctx context.Context, m *model.Meal) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "users", "user_id", m.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("user", m.UserID)
		}

		for _, it := range m.Items {
			ok, err := exists(ctx, tx, "foods", "food_id", it.FoodID)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.AtomicityFailure("food", it.FoodID)
			}
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO meals (user_id, time_of_meal, meal_name) VALUES (?, ?, ?)`,
			m.UserID, formatTime(m.Time), m.Name,
		)
		if err != nil {
			return fmt.Errorf("sqlite: creating meal: %w", err)
		}
		if m.ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("sqlite: reading meal id: %w", err)
		}

		for i := range m.Items {
			m.Items[i].MealID = m.ID
			if err := insertMealItem(ctx, tx, &m.Items[i]); err != nil {
				return err
			}
		}

		m.Time = normalize(m.Time)
		if m.Items == nil {
			m.Items = []model.MealItem{}
		}
		return nil
	})
}

// CreateMealItem adds one item to an existing meal.
func (db *DB) CreateMealItem(ctx context.Context, it *model.MealItem) error {
	ok, err := exists(ctx, db.conn, "meals", "meal_id", it.MealID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("meal", it.MealID)
	}
	ok, err = exists(ctx, db.conn, "foods", "food_id", it.FoodID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("food", it.FoodID)
	}
	return insertMealItem(ctx, db.conn, it)
}

func insertMealItem(ctx context.Context, q querier, it *model.MealItem) error {
	result, err := q.ExecContext(ctx,
		`INSERT INTO meal_items (meal_id, food_id, quantity) VALUES (?, ?, ?)`,
		it.MealID, it.FoodID, it.Quantity,
	)
	if err != nil {
		if translated := translateConstraint(err, "meal item", it.MealID); translated != nil {
			return translated
		}
		return fmt.Errorf("sqlite: creating meal item: %w", err)
	}
	if it.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading meal item id: %w", err)
	}
	return nil
}

func (db *DB) GetMealByID(ctx context.Context, id int64) (*model.Meal, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+mealColumns+` FROM meals WHERE meal_id = ?`, id)
	m, err := scanMeal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("meal", id)
		}
		return nil, fmt.Errorf("sqlite: getting meal %d: %w", id, err)
	}

	meals := []model.Meal{*m}
	if err := db.attachItems(ctx, meals); err != nil {
		return nil, err
	}
	return &meals[0], nil
}

// ListMealsForUser returns the user's meals in the window with items and
// their foods eagerly loaded.
func (db *DB) ListMealsForUser(ctx context.Context, userID int64, filter repository.TimeFilter) ([]model.Meal, error) {
	query, args := userWindowQuery(`SELECT `+mealColumns+` FROM meals`, "time_of_meal", "meal_id", userID, filter)
	return db.listMeals(ctx, userID, query, args...)
}

// ListMealsBetween returns the user's meals with from <= time_of_meal < to,
// oldest first.
func (db *DB) ListMealsBetween(ctx context.Context, userID int64, from, to time.Time) ([]model.Meal, error) {
	return db.listMeals(ctx, userID,
		`SELECT `+mealColumns+` FROM meals
		 WHERE user_id = ? AND time_of_meal >= ? AND time_of_meal < ?
		 ORDER BY time_of_meal, meal_id`,
		userID, formatTime(from), formatTime(to),
	)
}

func (db *DB) listMeals(ctx context.Context, userID int64, query string, args ...any) ([]model.Meal, error) {
	meals, err := db.queryMeals(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing meals for user %d: %w", userID, err)
	}
	if err := db.attachItems(ctx, meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (db *DB) queryMeals(ctx context.Context, query string, args ...any) ([]model.Meal, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meals := []model.Meal{}
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning meal row: %w", err)
		}
		meals = append(meals, *m)
	}
	return meals, rows.Err()
}

// attachItems loads every item of the given meals together with its food
// in one joined query.
func (db *DB) attachItems(ctx context.Context, meals []model.Meal) error {
	if len(meals) == 0 {
		return nil
	}

	ids := make([]int64, len(meals))
	index := make(map[int64]int, len(meals))
	for i := range meals {
		ids[i] = meals[i].ID
		index[meals[i].ID] = i
		meals[i].Items = []model.MealItem{}
	}

	marks, args := placeholders(ids)
	rows, err := db.conn.QueryContext(ctx,
		`SELECT mi.meal_item_id, mi.meal_id, mi.food_id, mi.quantity, `+foodColumnsQualified+`
		 FROM meal_items mi
		 JOIN foods f ON f.food_id = mi.food_id
		 WHERE mi.meal_id IN (`+marks+`)
		 ORDER BY mi.meal_id, mi.meal_item_id`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("sqlite: loading meal items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it model.MealItem
			f  model.Food
		)
		if err := rows.Scan(
			&it.ID, &it.MealID, &it.FoodID, &it.Quantity,
			&f.ID, &f.Name, &f.Category, &f.Calories, &f.Carbs, &f.Fats, &f.Protein, &f.Sugar, &f.ServingSizeGrams,
		); err != nil {
			return fmt.Errorf("sqlite: scanning meal item row: %w", err)
		}
		it.Food = &f
		i := index[it.MealID]
		meals[i].Items = append(meals[i].Items, it)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("sqlite: iterating meal items: %w", err)
	}
	return nil
}

// DeleteMeal removes the meal and, by cascade, its items.
func (db *DB) DeleteMeal(ctx context.Context, id int64) error {
	return deleteByID(ctx, db.conn, "meals", "meal_id", "meal", id)
}

func (db *DB) DeleteMealItem(ctx context.Context, id int64) error {
	return deleteByID(ctx, db.conn, "meal_items", "meal_item_id", "meal item", id)
}

func scanMeal(sc scanner) (*model.Meal, error) {
	var (
		m  model.Meal
		at string
	)
	if err := sc.Scan(&m.ID, &m.UserID, &at, &m.Name); err != nil {
		return nil, err
	}
	var err error
	if m.Time, err = parseTime(at); err != nil {
		return nil, err
	}
	return &m, nil
}
