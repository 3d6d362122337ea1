package usecase

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("user not authorized to perform this action")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError carries the field-level message from a failed validation or
// a rejected persistence write; it is surfaced to the client verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErr(reason string) error {
	return &ValidationError{Reason: reason}
}
