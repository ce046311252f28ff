package clock

import (
	"fmt"
	"time"

	"github.com/smartstores/cashbook/internal/domain"
)

// BusinessClock implements usecase.Clock against the shop's timezone.
// A submission at 23:55 in Kolkata must land on the Kolkata date even
// when the server runs in UTC.
type BusinessClock struct {
	location *time.Location
}

// New creates a BusinessClock for the named IANA timezone.
func New(timezone string) (*BusinessClock, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load business timezone %q: %w", timezone, err)
	}

	return &BusinessClock{location: location}, nil
}

// Now returns the current instant in the business timezone.
func (c *BusinessClock) Now() time.Time {
	return time.Now().In(c.location)
}

// Today returns the current business date.
func (c *BusinessClock) Today() string {
	return c.Now().Format(domain.DateLayout)
}
