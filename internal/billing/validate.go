package billing

import (
	"github.com/shopspring/decimal"

	"gymdesk/internal/apperrors"
)

// Payment methods accepted when recording a payment.
const (
	PaymentMethodCash   = "Cash"
	PaymentMethodOnline = "Online"
)

// ValidatePhone enforces the member phone format: exactly 10 characters,
// all digits. No auto-correction is attempted.
func ValidatePhone(phone string) error {
	if len(phone) != 10 {
		return apperrors.NewValidation("phone", "Please enter a valid 10-digit phone number")
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return apperrors.NewValidation("phone", "Please enter a valid 10-digit phone number")
		}
	}
	return nil
}

// ValidateRegistration runs the add-member checks. It must pass before any
// roster write happens; on failure nothing is inserted.
func ValidateRegistration(name, phone string, plan string) error {
	if name == "" {
		return apperrors.NewValidation("name", "Please enter a name")
	}
	if err := ValidatePhone(phone); err != nil {
		return err
	}
	if _, err := ParseMemberPlan(plan); err != nil {
		return err
	}
	return nil
}

// ValidatePayment runs the record-payment checks: a member must be selected
// and the amount strictly positive.
func ValidatePayment(memberID uint, amount decimal.Decimal) error {
	if memberID == 0 {
		return apperrors.NewValidation("member_id", "Please select a member")
	}
	if !amount.IsPositive() {
		return apperrors.NewValidation("amount", "Please enter a valid amount")
	}
	return nil
}

// NormalizeMethod defaults an unspecified payment method to Cash.
func NormalizeMethod(method string) string {
	if method == "" {
		return PaymentMethodCash
	}
	return method
}
