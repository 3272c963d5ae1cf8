package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrNotYetAvailable is returned by a Provider when the draw has not happened yet.
	ErrNotYetAvailable = errors.New("draw result not yet available")

	// ErrNotFound is returned by a BetStore when the bet does not exist.
	ErrNotFound = errors.New("bet not found")

	// ErrDrawNotStored is returned by a DrawStore on a miss.
	ErrDrawNotStored = errors.New("draw result not stored")
)

// ValidationError reports malformed bet or draw input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// FetchError wraps a transient failure to obtain a draw from the provider.
type FetchError struct {
	Draw int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch draw %d: %v", e.Draw, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a failure to store outcomes for one bet.
type PersistenceError struct {
	BetID int64
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist outcomes for bet %d: %v", e.BetID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
