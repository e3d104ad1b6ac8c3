package sqlite

import (
	"errors"
	"fmt"
	"strings"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/workoutify/internal/apperror"
)

func notFound(resource string, id int64) error {
	return apperror.NotFound(resource, id)
}

// translateConstraint turns SQLite constraint violations into Conflict
// errors. It returns nil for every other error so callers can wrap those
// as internal failures.
//
// The explicit checks in the repository methods catch the common cases
// first; this is the backstop when two requests race.
func translateConstraint(err error, resource string, id any) error {
	var sqlErr *moderncsqlite.Error
	if !errors.As(err, &sqlErr) {
		return nil
	}

	code := sqlErr.Code()
	if code&0xff != sqlite3.SQLITE_CONSTRAINT {
		return nil
	}

	// Extended codes are preferred; the message is the fallback when the
	// driver reports only the primary code.
	msg := sqlErr.Error()
	switch {
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE, code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY,
		strings.Contains(msg, "UNIQUE constraint"):
		return apperror.Conflict(resource, id)
	case code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, strings.Contains(msg, "FOREIGN KEY constraint"):
		return apperror.ConflictMessage(fmt.Sprintf("%s %v is referenced by other rows", resource, id))
	case code == sqlite3.SQLITE_CONSTRAINT_CHECK, strings.Contains(msg, "CHECK constraint"):
		return apperror.ValidationFailed(resource, fmt.Sprintf("%s violates a value constraint", resource))
	}
	return nil
}
