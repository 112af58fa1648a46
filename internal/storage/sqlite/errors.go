package sqlite

import (
	"errors"
	"strings"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/garage/internal/storage"
)

// classify wraps constraint failures in a *storage.ConstraintError and
// returns any other error unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if kind, ok := constraintKind(err); ok {
		return &storage.ConstraintError{Constraint: kind, Err: err}
	}
	return err
}

func constraintKind(err error) (string, bool) {
	var serr *moderncsqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return storage.ConstraintUnique, true
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return storage.ConstraintForeignKey, true
		}
		if serr.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
			return "", false
		}
	}

	// Fall back to the message, which is stable across SQLite drivers.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return storage.ConstraintUnique, true
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return storage.ConstraintForeignKey, true
	case strings.Contains(msg, "constraint failed"):
		return storage.ConstraintCheck, true
	}
	return "", false
}
