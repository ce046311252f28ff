package domain

import (
	"errors"
	"testing"
)

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name        string
		date        string
		expectError bool
	}{
		{"valid date", "2024-01-01", false},
		{"leap day", "2024-02-29", false},
		{"wrong layout", "01/01/2024", true},
		{"with time component", "2024-01-01T10:00:00Z", true},
		{"empty", "", true},
		{"nonsense", "yesterday", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDate(tt.date)

			if tt.expectError && !errors.Is(err, ErrInvalidDate) {
				t.Errorf("expected ErrInvalidDate, got %v", err)
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateCloserName(t *testing.T) {
	name, err := ValidateCloserName("  Raj  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Raj" {
		t.Errorf("expected trimmed name, got %q", name)
	}

	if _, err := ValidateCloserName("   "); !errors.Is(err, ErrEmptyCloserName) {
		t.Errorf("expected ErrEmptyCloserName, got %v", err)
	}
}

func TestPayment_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payment Payment
		wantErr error
	}{
		{"valid out", Payment{Amount: dec(100), Direction: PaymentOut}, nil},
		{"valid untagged", Payment{Amount: dec(100)}, nil},
		{"zero amount", Payment{Amount: dec(0), Direction: PaymentIn}, ErrInvalidAmount},
		{"negative amount", Payment{Amount: dec(-5), Direction: PaymentIn}, ErrInvalidAmount},
		{"bad direction", Payment{Amount: dec(10), Direction: "SIDEWAYS"}, ErrInvalidDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payment.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
