// internal/domain/models/validation.go
package models

import "fmt"

// ValidationError reports a user-correctable problem with a single field.
// Callers surface Field and Msg to the end user before persisting.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// NameExists is the validation error raised when a group or skill name
// collides with an existing alias of a different entity of the same kind.
func NameExists() *ValidationError {
	return &ValidationError{Field: "name", Msg: "this name already exists"}
}
