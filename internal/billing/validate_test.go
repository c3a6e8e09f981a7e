package billing

import (
	"testing"

	"github.com/shopspring/decimal"

	"gymdesk/internal/apperrors"
)

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{"ten digits", "1234567890", true},
		{"too short", "12345", false},
		{"letters mixed in", "12345abcde", false},
		{"eleven digits", "12345678901", false},
		{"empty", "", false},
		{"digits with space", "123456789 ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.phone)
			if tt.valid && err != nil {
				t.Errorf("ValidatePhone(%q) = %v; want nil", tt.phone, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("ValidatePhone(%q) accepted an invalid phone", tt.phone)
			}
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	if err := ValidateRegistration("Ravi", "1234567890", "Monthly"); err != nil {
		t.Errorf("valid registration rejected: %v", err)
	}
	if err := ValidateRegistration("", "1234567890", "Monthly"); !apperrors.IsValidation(err) {
		t.Errorf("missing name: got %v; want ValidationError", err)
	}
	if err := ValidateRegistration("Ravi", "1234567890", "Weekly"); !apperrors.IsValidation(err) {
		t.Errorf("bad plan: got %v; want ValidationError", err)
	}
}

func TestValidatePayment(t *testing.T) {
	tests := []struct {
		name     string
		memberID uint
		amount   string
		valid    bool
	}{
		{"smallest positive amount", 1, "0.01", true},
		{"regular amount", 1, "499", true},
		{"zero amount", 1, "0", false},
		{"negative amount", 1, "-10", false},
		{"no member selected", 0, "100", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayment(tt.memberID, decimal.RequireFromString(tt.amount))
			if tt.valid && err != nil {
				t.Errorf("ValidatePayment(%d, %s) = %v; want nil", tt.memberID, tt.amount, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("ValidatePayment(%d, %s) accepted invalid input", tt.memberID, tt.amount)
			}
		})
	}
}

func TestNormalizeMethod(t *testing.T) {
	if got := NormalizeMethod(""); got != PaymentMethodCash {
		t.Errorf("NormalizeMethod(\"\") = %q; want Cash", got)
	}
	if got := NormalizeMethod(PaymentMethodOnline); got != PaymentMethodOnline {
		t.Errorf("NormalizeMethod(Online) = %q; want Online", got)
	}
}
