package services

import (
	"testing"
	"time"

	"gymdesk/internal/apperrors"
	"gymdesk/internal/billing"
	"gymdesk/internal/models"
)

func TestMemberInputApplyDerivesExpiry(t *testing.T) {
	tests := []struct {
		name       string
		in         MemberInput
		wantExpiry string
	}{
		{
			name:       "monthly",
			in:         MemberInput{Name: "Ravi", Phone: "9876543210", Plan: "Monthly", JoinDate: "2024-01-15"},
			wantExpiry: "2024-02-15",
		},
		{
			name:       "quarterly",
			in:         MemberInput{Name: "Ravi", Phone: "9876543210", Plan: "Quarterly", JoinDate: "2024-01-15"},
			wantExpiry: "2024-04-15",
		},
		{
			name:       "annually with calendar overflow",
			in:         MemberInput{Name: "Ravi", Phone: "9876543210", Plan: "Annually", JoinDate: "2024-02-29"},
			wantExpiry: "2025-03-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var member models.Member
			if err := tt.in.apply(&member); err != nil {
				t.Fatalf("apply returned error: %v", err)
			}
			if got := member.ExpiryDate.Format("2006-01-02"); got != tt.wantExpiry {
				t.Errorf("ExpiryDate = %s; want %s", got, tt.wantExpiry)
			}

			// The stored value must equal the deriver's output exactly.
			derived, err := billing.DeriveExpiry(member.JoinDate, member.Plan)
			if err != nil {
				t.Fatalf("DeriveExpiry returned error: %v", err)
			}
			if !member.ExpiryDate.Equal(derived) {
				t.Errorf("ExpiryDate = %v; DeriveExpiry = %v", member.ExpiryDate, derived)
			}
		})
	}
}

func TestMemberInputApplyRecomputesExpiryOnEdit(t *testing.T) {
	member := models.Member{
		OwnerID:    "owner-1",
		Name:       "Ravi",
		Phone:      "9876543210",
		Plan:       billing.MemberPlanMonthly,
		JoinDate:   date("2024-01-15"),
		ExpiryDate: date("2024-02-15"),
	}

	// Changing the plan must rederive expiry from the new plan and join date.
	edit := MemberInput{Name: "Ravi", Phone: "9876543210", Plan: "Annually", JoinDate: "2024-01-15"}
	if err := edit.apply(&member); err != nil {
		t.Fatalf("apply returned error: %v", err)
	}
	if got := member.ExpiryDate.Format("2006-01-02"); got != "2025-01-15" {
		t.Errorf("ExpiryDate after plan change = %s; want 2025-01-15", got)
	}

	// Changing the join date rederives too.
	edit = MemberInput{Name: "Ravi", Phone: "9876543210", Plan: "Annually", JoinDate: "2024-03-01"}
	if err := edit.apply(&member); err != nil {
		t.Fatalf("apply returned error: %v", err)
	}
	if got := member.ExpiryDate.Format("2006-01-02"); got != "2025-03-01" {
		t.Errorf("ExpiryDate after join date change = %s; want 2025-03-01", got)
	}
}

func TestMemberInputApplyIgnoresPresetExpiry(t *testing.T) {
	// A pre-populated expiry (however it got there) is overwritten; the
	// input struct itself carries no expiry field.
	member := models.Member{ExpiryDate: date("2099-12-31")}
	in := MemberInput{Name: "Ravi", Phone: "9876543210", Plan: "Monthly", JoinDate: "2024-06-01"}
	if err := in.apply(&member); err != nil {
		t.Fatalf("apply returned error: %v", err)
	}
	if got := member.ExpiryDate.Format("2006-01-02"); got != "2024-07-01" {
		t.Errorf("ExpiryDate = %s; want 2024-07-01", got)
	}
}

func TestMemberInputApplyDefaultsJoinDateToToday(t *testing.T) {
	var member models.Member
	in := MemberInput{Name: "Ravi", Phone: "9876543210", Plan: "Monthly"}
	if err := in.apply(&member); err != nil {
		t.Fatalf("apply returned error: %v", err)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !member.JoinDate.Equal(today) {
		t.Errorf("JoinDate = %v; want %v", member.JoinDate, today)
	}
	if !member.ExpiryDate.Equal(today.AddDate(0, 1, 0)) {
		t.Errorf("ExpiryDate = %v; want %v", member.ExpiryDate, today.AddDate(0, 1, 0))
	}
}

func TestMemberInputApplyFailsFast(t *testing.T) {
	original := models.Member{
		Name:       "Ravi",
		Phone:      "9876543210",
		Plan:       billing.MemberPlanMonthly,
		JoinDate:   date("2024-01-15"),
		ExpiryDate: date("2024-02-15"),
	}

	tests := []struct {
		name string
		in   MemberInput
	}{
		{"bad phone", MemberInput{Name: "Ravi", Phone: "12345", Plan: "Monthly"}},
		{"bad plan", MemberInput{Name: "Ravi", Phone: "9876543210", Plan: "Weekly"}},
		{"bad join date", MemberInput{Name: "Ravi", Phone: "9876543210", Plan: "Monthly", JoinDate: "15/01/2024"}},
		{"missing name", MemberInput{Phone: "9876543210", Plan: "Monthly"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member := original
			err := tt.in.apply(&member)
			if !apperrors.IsValidation(err) {
				t.Fatalf("apply = %v; want ValidationError", err)
			}
			if member.Name != original.Name || member.Phone != original.Phone ||
				member.Plan != original.Plan ||
				!member.JoinDate.Equal(original.JoinDate) ||
				!member.ExpiryDate.Equal(original.ExpiryDate) {
				t.Errorf("member mutated on failed validation: %+v", member)
			}
		})
	}
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
