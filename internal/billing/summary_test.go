package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)

	members := []MemberRecord{
		{Name: "Ravi", JoinDate: now.AddDate(0, 0, -2), ExpiryDate: now.Add(3 * 24 * time.Hour)},
		{Name: "Sunil", JoinDate: now.AddDate(0, -2, 0), ExpiryDate: now.Add(-24 * time.Hour)},
		{Name: "Meena", JoinDate: now.AddDate(-1, 0, 0), ExpiryDate: now.Add(30 * 24 * time.Hour)},
	}
	payments := []PaymentRecord{
		{MemberName: "Ravi", Method: "Cash", Amount: decimal.NewFromFloat(499.50), CreatedAt: now},
		{MemberName: "Meena", Method: "Online", Amount: decimal.NewFromFloat(1200.25), CreatedAt: now},
	}

	m := Summarize(members, payments, now)

	if want := decimal.NewFromFloat(1699.75); !m.TotalRevenue.Equal(want) {
		t.Errorf("TotalRevenue = %s; want %s", m.TotalRevenue, want)
	}
	if m.TotalMembers != 3 {
		t.Errorf("TotalMembers = %d; want 3", m.TotalMembers)
	}
	if m.ActiveMembers != 2 {
		t.Errorf("ActiveMembers = %d; want 2", m.ActiveMembers)
	}
	if m.ExpiringSoon != 1 {
		t.Errorf("ExpiringSoon = %d; want 1", m.ExpiringSoon)
	}
	// Meena joined this month last year and must not count as new.
	if m.NewJoinees != 1 {
		t.Errorf("NewJoinees = %d; want 1", m.NewJoinees)
	}
}

func TestSummarizeRevenueIsExact(t *testing.T) {
	// 0.1 + 0.2 style sums must not drift the way float64 does.
	now := time.Now()
	var payments []PaymentRecord
	for i := 0; i < 10; i++ {
		payments = append(payments, PaymentRecord{Amount: decimal.RequireFromString("0.10")})
	}
	m := Summarize(nil, payments, now)
	if want := decimal.RequireFromString("1.00"); !m.TotalRevenue.Equal(want) {
		t.Errorf("TotalRevenue = %s; want %s", m.TotalRevenue, want)
	}
}

func TestMemberStatus(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		expiry   time.Time
		expected string
	}{
		{"future expiry", now.Add(24 * time.Hour), "Active"},
		{"expiry exactly now", now, "Active"},
		{"past expiry", now.Add(-time.Second), "Expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MemberStatus(tt.expiry, now); got != tt.expected {
				t.Errorf("MemberStatus = %q; want %q", got, tt.expected)
			}
		})
	}
}

func TestExpiringSoonBoundaries(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		expiry   time.Time
		expected bool
	}{
		{"three days out", now.Add(3 * 24 * time.Hour), true},
		{"already expired", now.Add(-time.Hour), false},
		{"expiring this instant is excluded", now, false},
		{"exactly seven days is excluded", now.Add(ExpiringSoonWindow), false},
		{"just under seven days", now.Add(ExpiringSoonWindow - time.Second), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpiringSoon(tt.expiry, now); got != tt.expected {
				t.Errorf("ExpiringSoon = %v; want %v", got, tt.expected)
			}
		})
	}
}

func TestMatchesMemberQuery(t *testing.T) {
	tests := []struct {
		name, query string
		expected    bool
	}{
		{"Ravi Kumar", "ravi", true},
		{"Ravi Kumar", "KUMAR", true},
		{"Ravi Kumar", "  ravi ", true},
		{"Ravi Kumar", "sunil", false},
		{"Ravi Kumar", "", true},
	}
	for _, tt := range tests {
		if got := MatchesMemberQuery(tt.name, tt.query); got != tt.expected {
			t.Errorf("MatchesMemberQuery(%q, %q) = %v; want %v", tt.name, tt.query, got, tt.expected)
		}
	}
}

func TestMatchesPaymentQuery(t *testing.T) {
	p := PaymentRecord{
		MemberName: "Ravi Kumar",
		Method:     "Cash",
		Amount:     decimal.RequireFromString("499.5"),
		CreatedAt:  time.Date(2024, 6, 10, 15, 4, 0, 0, time.UTC),
	}

	tests := []struct {
		query    string
		expected bool
	}{
		{"ravi", true},
		{"cash", true},
		{"499.5", true},
		{"10/06/2024", true},
		{"online", false},
		{"", true},
	}
	for _, tt := range tests {
		if got := MatchesPaymentQuery(p, tt.query); got != tt.expected {
			t.Errorf("MatchesPaymentQuery(%q) = %v; want %v", tt.query, got, tt.expected)
		}
	}
}
