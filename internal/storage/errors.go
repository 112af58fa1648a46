package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an update targets a row that does not exist.
// Lookups report absence as a nil result instead.
var ErrNotFound = errors.New("not found")

// ErrConstraintViolation matches any error raised because the database
// rejected a write on a uniqueness or foreign-key constraint.
var ErrConstraintViolation = errors.New("constraint violation")

// Constraint kinds reported by ConstraintError.
const (
	ConstraintUnique     = "unique"
	ConstraintForeignKey = "foreign_key"
	ConstraintCheck      = "check"
)

// ConstraintError describes a write rejected by a database constraint.
// errors.Is(err, ErrConstraintViolation) is true for every ConstraintError.
type ConstraintError struct {
	// Constraint is one of ConstraintUnique, ConstraintForeignKey or ConstraintCheck.
	Constraint string

	// Err is the underlying driver error.
	Err error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s constraint violated: %v", e.Constraint, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// Is reports ErrConstraintViolation as a match.
func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}

// IsConstraint reports whether err is a ConstraintError of the given kind.
func IsConstraint(err error, kind string) bool {
	var cerr *ConstraintError
	return errors.As(err, &cerr) && cerr.Constraint == kind
}
