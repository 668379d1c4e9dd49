package store

import (
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound marks an unknown table name or a delete target that matched
// no row.
var ErrNotFound = errors.New("not found")

// BadRequestError reports an identifier or value that cannot be coerced to
// its column's type.
type BadRequestError struct {
	Column string
}

func (e *BadRequestError) Error() string {
	return fmt.Sprintf("invalid %s value", e.Column)
}

// ConflictError reports a uniqueness violation not covered by a
// conflict-ignore insert path.
type ConflictError struct {
	Table string
	Err   error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: conflict: %v", e.Table, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// IntegrityError reports a foreign-key violation, e.g. inserting a
// dependent row before its parent exists.
type IntegrityError struct {
	Table string
	Err   error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: integrity violation: %v", e.Table, e.Err)
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// classify maps SQLite constraint failures onto the error taxonomy so
// callers can branch without parsing driver text.
func classify(table string, err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return &IntegrityError{Table: table, Err: err}
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return &ConflictError{Table: table, Err: err}
		}
	}
	return fmt.Errorf("%s: %w", table, err)
}
