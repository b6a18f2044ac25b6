package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrImmutablePeriod indicates an attempt to write into a closed accounting period.
var ErrImmutablePeriod = errors.New("accounting period is closed")

// ErrNoOpenPeriod indicates that no open accounting period covers the requested date.
var ErrNoOpenPeriod = errors.New("no open accounting period covers the requested date")

// ErrAlreadyReversed indicates an attempt to reverse an entry that has already been
// reversed, or that is itself a reversal.
var ErrAlreadyReversed = errors.New("journal entry is already reversed")

// ErrConfiguration indicates that a required default account is missing or inactive,
// so automatic posting cannot proceed safely.
var ErrConfiguration = errors.New("ledger configuration error")

// ErrDuplicatePosting indicates a race-detected double post of the same source fact.
var ErrDuplicatePosting = errors.New("source fact already posted")

// AppError carries an HTTP-ish status code alongside an underlying error so
// repositories can report failures without importing transport packages.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
