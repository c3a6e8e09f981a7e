package billing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpiringSoonWindow is the lookahead before a member's expiry date.
const ExpiringSoonWindow = 7 * 24 * time.Hour

// paymentDateLayout is the locale date format payments are searched by.
const paymentDateLayout = "02/01/2006"

// MemberRecord is the view of a member the summarizer operates on.
type MemberRecord struct {
	Name       string
	JoinDate   time.Time
	ExpiryDate time.Time
}

// PaymentRecord is the view of a payment (joined with its member) the
// summarizer and search operate on.
type PaymentRecord struct {
	MemberName string
	Method     string
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

// Metrics are the aggregate dashboard numbers for one owner's roster.
type Metrics struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalMembers  int             `json:"total_members"`
	ActiveMembers int             `json:"active_members"`
	NewJoinees    int             `json:"new_joinees"`
	ExpiringSoon  int             `json:"expiring_soon"`
}

// Summarize computes the dashboard metrics at the given instant.
// Revenue is an exact decimal sum. Active counts expiry_date >= now
// (inclusive). New joinees compares both month and year of the join date
// against now. Expiring-soon is the strict window 0 < expiry - now < 7 days,
// so already-expired members never count.
func Summarize(members []MemberRecord, payments []PaymentRecord, now time.Time) Metrics {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}

	m := Metrics{TotalRevenue: total, TotalMembers: len(members)}
	for _, mem := range members {
		if !mem.ExpiryDate.Before(now) {
			m.ActiveMembers++
		}
		if mem.JoinDate.Month() == now.Month() && mem.JoinDate.Year() == now.Year() {
			m.NewJoinees++
		}
		if d := mem.ExpiryDate.Sub(now); d > 0 && d < ExpiringSoonWindow {
			m.ExpiringSoon++
		}
	}
	return m
}

// MemberStatus labels a member "Active" or "Expired". The boundary is
// inclusive on the active side: expiry_date == now is still Active.
func MemberStatus(expiryDate, now time.Time) string {
	if !expiryDate.Before(now) {
		return "Active"
	}
	return "Expired"
}

// ExpiringSoon reports whether a member falls in the reminder window.
func ExpiringSoon(expiryDate, now time.Time) bool {
	d := expiryDate.Sub(now)
	return d > 0 && d < ExpiringSoonWindow
}

// MatchesMemberQuery reports whether a member name matches the search query
// (case-insensitive substring). An empty query matches everything.
func MatchesMemberQuery(name, query string) bool {
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), q)
}

// MatchesPaymentQuery reports whether a payment matches the search query.
// The query is matched case-insensitively against the member name, the
// method, the amount as a string and the formatted payment date; any single
// match qualifies.
func MatchesPaymentQuery(p PaymentRecord, query string) bool {
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return true
	}
	for _, field := range []string{
		p.MemberName,
		p.Method,
		p.Amount.String(),
		p.CreatedAt.Format(paymentDateLayout),
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
