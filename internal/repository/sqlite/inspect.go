package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/repository"
)

var _ repository.Inspector = (*DB)(nil)

// inspectable lists the tables the admin tools may browse, in menu order,
// with their primary key column. Table names are only ever taken from here.
var inspectable = []struct {
	table, pk, resource string
}{
	{"users", "user_id", "user"},
	{"sleep", "sleep_id", "sleep"},
	{"workouts", "workout_id", "workout"},
	{"workout_sets", "set_id", "workout set"},
	{"exercises", "exercise_id", "exercise"},
	{"foods", "food_id", "food"},
	{"meals", "meal_id", "meal"},
	{"meal_items", "meal_item_id", "meal item"},
}

func (db *DB) Tables() []string {
	names := make([]string, len(inspectable))
	for i, t := range inspectable {
		names[i] = t.table
	}
	return names
}

func lookupTable(table string) (pk, resource string, err error) {
	for _, t := range inspectable {
		if t.table == table {
			return t.pk, t.resource, nil
		}
	}
	return "", "", apperror.ValidationFailed("table", fmt.Sprintf("unknown table %q", table))
}

// ListRows returns every row of table ordered by primary key.
func (db *DB) ListRows(ctx context.Context, table string) ([]repository.TableRow, error) {
	pk, _, err := lookupTable(table)
	if err != nil {
		return nil, err
	}
	return db.queryRows(ctx, fmt.Sprintf(`SELECT * FROM %s ORDER BY %s`, table, pk))
}

func (db *DB) GetRow(ctx context.Context, table string, id int64) (*repository.TableRow, error) {
	pk, resource, err := lookupTable(table)
	if err != nil {
		return nil, err
	}
	rows, err := db.queryRows(ctx, fmt.Sprintf(`SELECT * FROM %s WHERE %s = ?`, table, pk), id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperror.NotFound(resource, id)
	}
	return &rows[0], nil
}

// DeleteRow deletes by primary key. Catalog tables go through the same
// reference check as the API, so a referenced food or exercise is refused.
func (db *DB) DeleteRow(ctx context.Context, table string, id int64) error {
	pk, resource, err := lookupTable(table)
	if err != nil {
		return err
	}
	switch table {
	case "foods":
		return db.DeleteFood(ctx, id)
	case "exercises":
		return db.DeleteExercise(ctx, id)
	}
	return deleteByID(ctx, db.conn, table, pk, resource, id)
}

func (db *DB) queryRows(ctx context.Context, query string, args ...any) ([]repository.TableRow, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: inspecting rows: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading columns: %w", err)
	}

	result := []repository.TableRow{}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("sqlite: scanning row: %w", err)
		}

		row := repository.TableRow{Columns: columns, Values: make([]string, len(columns))}
		for i, v := range values {
			row.Values[i] = formatValue(v)
		}
		// Every inspectable table has its integer primary key first.
		if id, ok := values[0].(int64); ok {
			row.ID = id
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating rows: %w", err)
	}
	return result, nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// Reset deletes every row of every table and restarts the id sequences.
// Used by the seeder before regenerating demo data.
func (db *DB) Reset(ctx context.Context) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM sessions`,
			`DELETE FROM users`,
			`DELETE FROM foods`,
			`DELETE FROM exercises`,
			`DELETE FROM sqlite_sequence`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("sqlite: resetting database (%s): %w", stmt, err)
			}
		}
		return nil
	})
}
