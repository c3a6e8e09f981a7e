package billing

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDeriveExpiry(t *testing.T) {
	tests := []struct {
		name     string
		joinDate string
		plan     MemberPlan
		expected string
	}{
		{
			name:     "monthly adds one calendar month",
			joinDate: "2024-01-15",
			plan:     MemberPlanMonthly,
			expected: "2024-02-15",
		},
		{
			name:     "quarterly adds three calendar months",
			joinDate: "2024-01-15",
			plan:     MemberPlanQuarterly,
			expected: "2024-04-15",
		},
		{
			name:     "annually adds one calendar year",
			joinDate: "2024-01-15",
			plan:     MemberPlanAnnually,
			expected: "2025-01-15",
		},
		{
			name:     "month-end overflow normalizes forward",
			joinDate: "2024-01-31",
			plan:     MemberPlanMonthly,
			expected: "2024-03-02", // Feb 2024 has 29 days
		},
		{
			name:     "leap day plus one year",
			joinDate: "2024-02-29",
			plan:     MemberPlanAnnually,
			expected: "2025-03-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveExpiry(date(tt.joinDate), tt.plan)
			if err != nil {
				t.Fatalf("DeriveExpiry(%s, %s) returned error: %v", tt.joinDate, tt.plan, err)
			}
			if got.Format("2006-01-02") != tt.expected {
				t.Errorf("DeriveExpiry(%s, %s) = %s; want %s", tt.joinDate, tt.plan, got.Format("2006-01-02"), tt.expected)
			}

			// deterministic under repeated calls
			again, err := DeriveExpiry(date(tt.joinDate), tt.plan)
			if err != nil || !again.Equal(got) {
				t.Errorf("DeriveExpiry is not deterministic: first %v, second %v (err %v)", got, again, err)
			}
		})
	}
}

func TestDeriveExpiryUnknownPlan(t *testing.T) {
	if _, err := DeriveExpiry(date("2024-01-15"), MemberPlan("Weekly")); err == nil {
		t.Error("expected error for unknown plan, got nil")
	}
}

func TestParseMemberPlan(t *testing.T) {
	for _, valid := range []string{"Monthly", "Quarterly", "Annually"} {
		if _, err := ParseMemberPlan(valid); err != nil {
			t.Errorf("ParseMemberPlan(%q) returned error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "monthly", "Weekly"} {
		if _, err := ParseMemberPlan(invalid); err == nil {
			t.Errorf("ParseMemberPlan(%q) accepted an invalid plan", invalid)
		}
	}
}

func TestAccountPlanByCode(t *testing.T) {
	plan, ok := AccountPlanByCode("6-months")
	if !ok {
		t.Fatal("6-months plan not found")
	}
	if plan.Name != "6 Months" || plan.PriceMinor != 259900 {
		t.Errorf("unexpected plan %+v", plan)
	}
	if _, ok := AccountPlanByCode("weekly"); ok {
		t.Error("expected lookup miss for unknown code")
	}
}
