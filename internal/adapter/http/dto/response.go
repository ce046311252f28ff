package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartstores/cashbook/internal/domain"
)

// EntryResponse represents a day entry in API responses.
type EntryResponse struct {
	ID          string             `json:"id"`
	CounterName string             `json:"counterName"`
	Date        string             `json:"date"`
	Status      domain.EntryStatus `json:"status"`

	OpeningCash          decimal.Decimal          `json:"openingCash"`
	OpeningDenominations domain.DenominationCount `json:"openingDenominations"`
	OpeningVerified      bool                     `json:"openingVerified"`
	OpeningVerifiedAt    *time.Time               `json:"openingVerifiedAt,omitempty"`

	Payments []domain.Payment `json:"payments"`
	Sales    domain.SalesData `json:"sales"`

	ClosingDenominations domain.DenominationCount `json:"closingDenominations"`

	NextDayOpeningCash          *decimal.Decimal          `json:"nextDayOpeningCash,omitempty"`
	NextDayOpeningDenominations *domain.DenominationCount `json:"nextDayOpeningDenominations,omitempty"`

	SubmittedExpectedCash decimal.Decimal `json:"submittedExpectedCash"`
	SubmittedActualCash   decimal.Decimal `json:"submittedActualCash"`
	SubmittedShortage     decimal.Decimal `json:"submittedShortage"`
	ClosedBy              string          `json:"closedBy,omitempty"`

	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	ConfirmedBy string     `json:"confirmedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.DayEntry) *EntryResponse {
	payments := e.Payments
	if payments == nil {
		payments = []domain.Payment{}
	}

	return &EntryResponse{
		ID:                          e.ID,
		CounterName:                 e.CounterName,
		Date:                        e.Date,
		Status:                      e.Status,
		OpeningCash:                 e.OpeningCash,
		OpeningDenominations:        e.OpeningDenominations,
		OpeningVerified:             e.OpeningVerified,
		OpeningVerifiedAt:           e.OpeningVerifiedAt,
		Payments:                    payments,
		Sales:                       e.Sales,
		ClosingDenominations:        e.ClosingDenominations,
		NextDayOpeningCash:          e.NextDayOpeningCash,
		NextDayOpeningDenominations: e.NextDayOpeningDenominations,
		SubmittedExpectedCash:       e.SubmittedExpectedCash,
		SubmittedActualCash:         e.SubmittedActualCash,
		SubmittedShortage:           e.SubmittedShortage,
		ClosedBy:                    e.ClosedBy,
		SubmittedAt:                 e.SubmittedAt,
		ConfirmedAt:                 e.ConfirmedAt,
		ConfirmedBy:                 e.ConfirmedBy,
		CreatedAt:                   e.CreatedAt,
		UpdatedAt:                   e.UpdatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.DayEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// CounterResponse represents a configured counter in API responses.
type CounterResponse struct {
	Name  string             `json:"name"`
	Store string             `json:"store"`
	Kind  domain.CounterKind `json:"kind"`
}

// CounterFromDomain converts a domain counter to a response.
func CounterFromDomain(c *domain.Counter) *CounterResponse {
	return &CounterResponse{
		Name:  c.Name,
		Store: c.Store,
		Kind:  c.Kind,
	}
}

// CountersFromDomain converts domain counters to responses.
func CountersFromDomain(counters []*domain.Counter) []*CounterResponse {
	result := make([]*CounterResponse, len(counters))
	for i, c := range counters {
		result[i] = CounterFromDomain(c)
	}
	return result
}

// UserResponse represents a login in API responses. The password hash
// never appears here.
type UserResponse struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Role        domain.Role `json:"role"`
	CounterName string      `json:"counterName,omitempty"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role,
		CounterName: u.CounterName,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// UsersFromDomain converts domain users to responses.
func UsersFromDomain(users []*domain.User) []*UserResponse {
	result := make([]*UserResponse, len(users))
	for i, u := range users {
		result[i] = UserFromDomain(u)
	}
	return result
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
