package domain

import "errors"

var (
	// Entry errors
	ErrEntryNotFound     = errors.New("entry not found")
	ErrEntryExists       = errors.New("entry already exists for counter and date")
	ErrEntryNotOpen      = errors.New("entry is not open")
	ErrEntryNotSubmitted = errors.New("entry is not submitted")
	ErrEntryNotLocked    = errors.New("entry is neither submitted nor confirmed")

	// Payment errors
	ErrPaymentNotFound = errors.New("payment not found")
	ErrInvalidAmount   = errors.New("amount must be positive")

	// Counter errors
	ErrCounterNotFound = errors.New("counter not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)
