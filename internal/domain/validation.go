package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors
var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidCounterName = errors.New("invalid counter name")
	ErrEmptyCloserName    = errors.New("closer name cannot be empty")
	ErrInvalidCloserName  = errors.New("invalid closer name")
	ErrNegativeQuantity   = errors.New("denomination quantity cannot be negative")
	ErrInvalidDirection   = errors.New("payment direction must be IN or OUT")
	ErrDescriptionTooLong = errors.New("payment description is too long")
	ErrPasswordTooShort   = errors.New("password is too short")
)

// Validation constants
const (
	MaxCounterNameLength = 100
	MaxCloserNameLength  = 100
	MaxDescriptionLength = 500
	MinPasswordLength    = 4
)

// ValidatePassword checks password length. Counter logins use short PINs,
// so only a minimum is enforced.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooShort, MinPasswordLength)
	}
	return nil
}

// DateLayout is the wire and storage format for calendar dates. Dates are
// plain strings with no time component, always in the business timezone.
const DateLayout = "2006-01-02"

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// ValidateCounterName checks a counter name.
func ValidateCounterName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidCounterName)
	}

	if len(name) > MaxCounterNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidCounterName, MaxCounterNameLength)
	}

	return nil
}

// ValidateCloserName trims and checks the name recorded at day close.
// Submission is rejected without it.
func ValidateCloserName(name string) (string, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return "", ErrEmptyCloserName
	}

	if len(name) > MaxCloserNameLength {
		return "", fmt.Errorf("%w: exceeds %d characters", ErrInvalidCloserName, MaxCloserNameLength)
	}

	return name, nil
}
