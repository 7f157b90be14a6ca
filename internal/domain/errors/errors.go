package errors

import (
	"errors"
	"fmt"
)

// Categories. Handlers map these to transport status codes.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrPersistence  = errors.New("persistence failure")
)

var (
	ErrEmptyOrder           = fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	ErrInvalidTotal         = fmt.Errorf("%w: order total must be a positive number", ErrValidation)
	ErrInvalidStatus        = fmt.Errorf("%w: invalid order status", ErrValidation)
	ErrInvalidTransition    = fmt.Errorf("%w: status transition not allowed", ErrValidation)
	ErrInvalidPaymentMethod = fmt.Errorf("%w: invalid payment method", ErrValidation)
	ErrInvalidEmail         = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrMissingFields        = fmt.Errorf("%w: name, email and password are required", ErrValidation)
	ErrAlreadyExists        = fmt.Errorf("%w: already exists", ErrValidation)
	ErrInvalidCredentials   = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrAdminOnly            = fmt.Errorf("%w: admin access required", ErrForbidden)
)

// PersistenceError wraps a storage driver failure with the operation that produced it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// Persistence wraps err unless it is nil or already categorised as not found / validation.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
