package dto

import (
	"github.com/shopspring/decimal"

	"github.com/smartstores/cashbook/internal/domain"
	"github.com/smartstores/cashbook/internal/usecase"
)

// OverrideOpeningRequest represents an admin correction of the opening float.
type OverrideOpeningRequest struct {
	Cash          decimal.Decimal           `json:"cash"`
	Denominations *domain.DenominationCount `json:"denominations,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *OverrideOpeningRequest) ToUseCaseInput(counter, date string) usecase.OverrideOpeningInput {
	return usecase.OverrideOpeningInput{
		Counter:       counter,
		Date:          date,
		Cash:          r.Cash,
		Denominations: r.Denominations,
	}
}

// UpdateSalesRequest represents a request to record the day's sales
// figures. Simple counters fill the top-level triple; combined counters
// fill mart and fashion.
type UpdateSalesRequest struct {
	Sales domain.SalesData `json:"sales"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateSalesRequest) ToUseCaseInput(counter, date string) usecase.UpdateSalesInput {
	return usecase.UpdateSalesInput{
		Counter: counter,
		Date:    date,
		Sales:   r.Sales,
	}
}

// RecordClosingRequest represents the end-of-day till count.
type RecordClosingRequest struct {
	Denominations domain.DenominationCount `json:"denominations" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordClosingRequest) ToUseCaseInput(counter, date string) usecase.RecordClosingInput {
	return usecase.RecordClosingInput{
		Counter:       counter,
		Date:          date,
		Denominations: r.Denominations,
	}
}

// RecordForwardingRequest represents the next-day float kept in the till.
// A nil cash amount means "derive from the denominations".
type RecordForwardingRequest struct {
	Cash          *decimal.Decimal          `json:"cash,omitempty"`
	Denominations *domain.DenominationCount `json:"denominations,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordForwardingRequest) ToUseCaseInput(counter, date string) usecase.RecordForwardingInput {
	return usecase.RecordForwardingInput{
		Counter:       counter,
		Date:          date,
		Cash:          r.Cash,
		Denominations: r.Denominations,
	}
}

// SubmitRequest represents a request to close the day.
type SubmitRequest struct {
	ClosedBy string `json:"closedBy" validate:"required,max=100"`
}

// ToUseCaseInput converts to use case input.
func (r *SubmitRequest) ToUseCaseInput(counter, date string) usecase.SubmitInput {
	return usecase.SubmitInput{
		Counter:  counter,
		Date:     date,
		ClosedBy: r.ClosedBy,
	}
}

// AddPaymentRequest represents a request to record a payment.
type AddPaymentRequest struct {
	Description string                  `json:"description" validate:"max=500"`
	Amount      decimal.Decimal         `json:"amount" validate:"required"`
	Type        domain.PaymentDirection `json:"type" validate:"omitempty,oneof=IN OUT"`
}

// ToUseCaseInput converts to use case input.
func (r *AddPaymentRequest) ToUseCaseInput(counter, date string) usecase.AddPaymentInput {
	return usecase.AddPaymentInput{
		Counter:     counter,
		Date:        date,
		Description: r.Description,
		Amount:      r.Amount,
		Direction:   r.Type,
	}
}

// UpdatePaymentRequest represents a request to edit a recorded payment.
type UpdatePaymentRequest struct {
	Description string                  `json:"description" validate:"max=500"`
	Amount      decimal.Decimal         `json:"amount" validate:"required"`
	Type        domain.PaymentDirection `json:"type" validate:"omitempty,oneof=IN OUT"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdatePaymentRequest) ToUseCaseInput(counter, date, paymentID string) usecase.UpdatePaymentInput {
	return usecase.UpdatePaymentInput{
		Counter:     counter,
		Date:        date,
		PaymentID:   paymentID,
		Description: r.Description,
		Amount:      r.Amount,
		Direction:   r.Type,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.LoginInput {
	return usecase.LoginInput{
		Username: r.Username,
		Password: r.Password,
	}
}

// CreateUserRequest represents a request to create a login.
type CreateUserRequest struct {
	Username    string      `json:"username" validate:"required,max=100"`
	Password    string      `json:"password" validate:"required,min=4"`
	Role        domain.Role `json:"role" validate:"required,oneof=counter admin supervisor"`
	CounterName string      `json:"counterName,omitempty" validate:"max=100"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Username:    r.Username,
		Password:    r.Password,
		Role:        r.Role,
		CounterName: r.CounterName,
	}
}

// ChangePasswordRequest represents a password change. OldPassword is
// required for self-service changes and ignored for admin resets.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword,omitempty"`
	NewPassword string `json:"newPassword" validate:"required,min=4"`
}

// ToUseCaseInput converts to use case input.
func (r *ChangePasswordRequest) ToUseCaseInput(userID string) usecase.ChangePasswordInput {
	return usecase.ChangePasswordInput{
		UserID:      userID,
		OldPassword: r.OldPassword,
		NewPassword: r.NewPassword,
	}
}

// SetActiveRequest represents enabling or disabling a login.
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *SetActiveRequest) ToUseCaseInput(userID string) usecase.SetActiveInput {
	return usecase.SetActiveInput{
		UserID: userID,
		Active: *r.Active,
	}
}
