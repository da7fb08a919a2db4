package catalog

import "fmt"

// ValidationError reports a field constraint violation (length, range, enum,
// missing required value, date ordering). The caller can fix the input and retry.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError reports a uniqueness or cardinality-cap violation.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func conflict(reason string) error { return &ConflictError{Reason: reason} }

// NotFoundError reports an id that does not resolve to an existing row,
// either as a lookup root or as a reference used in an association.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func notFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ProtectedError reports a delete blocked by dependent rows. The caller must
// remove the dependents first.
type ProtectedError struct {
	Entity string
	ID     uint
	Reason string
}

func (e *ProtectedError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, e.Reason)
}
