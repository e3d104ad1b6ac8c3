package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

var (
	_ repository.FoodRepository     = (*DB)(nil)
	_ repository.ExerciseRepository = (*DB)(nil)
)

const (
	foodColumns          = `food_id, food_name, category, calories, carbs, fats, protein, sugar, serving_size_grams`
	foodColumnsQualified = `f.food_id, f.food_name, f.category, f.calories, f.carbs, f.fats, f.protein, f.sugar, f.serving_size_grams`
	exerciseColumns      = `exercise_id, exercise_name, primary_muscle, secondary_muscle`
)

// ===== FOODS =====

func (db *DB) CreateFood(ctx context.Context, f *model.Food) error {
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO foods (food_name, category, calories, carbs, fats, protein, sugar, serving_size_grams)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.Name, f.Category, f.Calories, f.Carbs, f.Fats, f.Protein, f.Sugar, f.ServingSizeGrams,
	)
	if err != nil {
		if translated := translateConstraint(err, "food", f.Name); translated != nil {
			return translated
		}
		return fmt.Errorf("sqlite: creating food: %w", err)
	}
	if f.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading food id: %w", err)
	}
	return nil
}

func (db *DB) GetFoodByID(ctx context.Context, id int64) (*model.Food, error) {
	var f model.Food
	err := db.conn.QueryRowContext(ctx, `SELECT `+foodColumns+` FROM foods WHERE food_id = ?`, id).
		Scan(&f.ID, &f.Name, &f.Category, &f.Calories, &f.Carbs, &f.Fats, &f.Protein, &f.Sugar, &f.ServingSizeGrams)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("food", id)
		}
		return nil, fmt.Errorf("sqlite: getting food %d: %w", id, err)
	}
	return &f, nil
}

// ListFoods returns the whole food catalog ordered by name, ignoring case.
func (db *DB) ListFoods(ctx context.Context) ([]model.Food, error) {
	return db.queryFoods(ctx, `SELECT `+foodColumns+` FROM foods ORDER BY unicode_lower(food_name), food_id`)
}

// SearchFoods returns foods whose name contains query, ignoring case,
// ordered by name. instr avoids having to escape LIKE wildcards.
func (db *DB) SearchFoods(ctx context.Context, query string) ([]model.Food, error) {
	return db.queryFoods(ctx,
		`SELECT `+foodColumns+` FROM foods
		 WHERE instr(unicode_lower(food_name), ?) > 0
		 ORDER BY unicode_lower(food_name), food_id`,
		strings.ToLower(query),
	)
}

func (db *DB) queryFoods(ctx context.Context, query string, args ...any) ([]model.Food, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing foods: %w", err)
	}
	defer rows.Close()

	foods := []model.Food{}
	for rows.Next() {
		var f model.Food
		if err := rows.Scan(&f.ID, &f.Name, &f.Category, &f.Calories, &f.Carbs, &f.Fats, &f.Protein, &f.Sugar, &f.ServingSizeGrams); err != nil {
			return nil, fmt.Errorf("sqlite: scanning food row: %w", err)
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating foods: %w", err)
	}
	return foods, nil
}

// DeleteFood removes a catalog food. It is refused with Conflict while any
// meal item still references it; history is never rewritten by a catalog
// cleanup.
func (db *DB) DeleteFood(ctx context.Context, id int64) error {
	return db.deleteCatalogRow(ctx, "foods", "food_id", "food", "meal_items", id)
}

// ===== EXERCISES =====

func (db *DB) CreateExercise(ctx context.Context, e *model.Exercise) error {
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO exercises (exercise_name, primary_muscle, secondary_muscle) VALUES (?, ?, ?)`,
		e.Name, e.PrimaryMuscle, e.SecondaryMuscle,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating exercise: %w", err)
	}
	if e.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading exercise id: %w", err)
	}
	return nil
}

func (db *DB) GetExerciseByID(ctx context.Context, id int64) (*model.Exercise, error) {
	var e model.Exercise
	err := db.conn.QueryRowContext(ctx, `SELECT `+exerciseColumns+` FROM exercises WHERE exercise_id = ?`, id).
		Scan(&e.ID, &e.Name, &e.PrimaryMuscle, &e.SecondaryMuscle)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("exercise", id)
		}
		return nil, fmt.Errorf("sqlite: getting exercise %d: %w", id, err)
	}
	return &e, nil
}

func (db *DB) ListExercises(ctx context.Context) ([]model.Exercise, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+exerciseColumns+` FROM exercises ORDER BY unicode_lower(exercise_name), exercise_id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing exercises: %w", err)
	}
	defer rows.Close()

	exercises := []model.Exercise{}
	for rows.Next() {
		var e model.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.PrimaryMuscle, &e.SecondaryMuscle); err != nil {
			return nil, fmt.Errorf("sqlite: scanning exercise row: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating exercises: %w", err)
	}
	return exercises, nil
}

// DeleteExercise mirrors DeleteFood: refused while any workout set uses it.
func (db *DB) DeleteExercise(ctx context.Context, id int64) error {
	return db.deleteCatalogRow(ctx, "exercises", "exercise_id", "exercise", "workout_sets", id)
}

// deleteCatalogRow checks existence, then references, then deletes, all in
// one transaction. The RESTRICT foreign key catches anything that slips in
// between.
func (db *DB) deleteCatalogRow(ctx context.Context, table, column, resource, referencing string, id int64) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, table, column, id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound(resource, id)
		}

		var refs int
		if err := tx.QueryRowContext(ctx,
			fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = ?`, referencing, column), id,
		).Scan(&refs); err != nil {
			return fmt.Errorf("sqlite: counting references to %s %d: %w", resource, id, err)
		}
		if refs > 0 {
			return apperror.ConflictMessage(fmt.Sprintf("%s %d is still referenced by %d row(s)", resource, id, refs))
		}

		return deleteByID(ctx, tx, table, column, resource, id)
	})
}
