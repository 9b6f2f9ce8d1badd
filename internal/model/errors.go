package model

import "fmt"

// ValidationError describes input that was rejected before any database
// call was made.  Handlers translate it into an HTTP 400 response.
type ValidationError struct {
	Field   string // the offending field, snake_case as it appears in payloads
	Message string // human readable explanation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// invalid is a small helper so constructors read naturally.
func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
