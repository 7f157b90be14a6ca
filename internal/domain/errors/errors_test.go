package errors

import (
	stdErrors "errors"
	"testing"
)

func TestSentinelCategories(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		category error
	}{
		{"empty order", ErrEmptyOrder, ErrValidation},
		{"invalid total", ErrInvalidTotal, ErrValidation},
		{"invalid status", ErrInvalidStatus, ErrValidation},
		{"invalid transition", ErrInvalidTransition, ErrValidation},
		{"invalid payment", ErrInvalidPaymentMethod, ErrValidation},
		{"invalid email", ErrInvalidEmail, ErrValidation},
		{"missing fields", ErrMissingFields, ErrValidation},
		{"already exists", ErrAlreadyExists, ErrValidation},
		{"invalid credentials", ErrInvalidCredentials, ErrUnauthorized},
		{"admin only", ErrAdminOnly, ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.category) {
				t.Fatalf("expected %v to wrap %v", tc.err, tc.category)
			}
		})
	}
}

func TestPersistenceWrapping(t *testing.T) {
	if Persistence("op", nil) != nil {
		t.Fatal("expected nil for nil error")
	}

	driverErr := stdErrors.New("connection reset")
	err := Persistence("insert order", driverErr)
	if !stdErrors.Is(err, ErrPersistence) {
		t.Fatalf("expected persistence category, got %v", err)
	}
	if !stdErrors.Is(err, driverErr) {
		t.Fatalf("expected driver error to be preserved, got %v", err)
	}
	if err.Error() != "insert order: connection reset" {
		t.Fatalf("unexpected message %q", err.Error())
	}

	if got := Persistence("find", ErrNotFound); got != ErrNotFound {
		t.Fatalf("expected not found to pass through, got %v", got)
	}
	if got := Persistence("insert user", ErrAlreadyExists); got != ErrAlreadyExists {
		t.Fatalf("expected validation error to pass through, got %v", got)
	}
}
