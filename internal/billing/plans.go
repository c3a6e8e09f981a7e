package billing

import (
	"fmt"
	"time"

	"gymdesk/internal/apperrors"
)

// MemberPlan is the billing interval for a gym member.
type MemberPlan string

const (
	MemberPlanMonthly   MemberPlan = "Monthly"
	MemberPlanQuarterly MemberPlan = "Quarterly"
	MemberPlanAnnually  MemberPlan = "Annually"
)

// ParseMemberPlan validates a plan value coming from a form or API payload.
func ParseMemberPlan(s string) (MemberPlan, error) {
	switch MemberPlan(s) {
	case MemberPlanMonthly, MemberPlanQuarterly, MemberPlanAnnually:
		return MemberPlan(s), nil
	}
	return "", apperrors.NewValidation("plan", fmt.Sprintf("unknown plan %q", s))
}

// DeriveExpiry computes a member's expiry date from the join date and plan:
// Monthly adds one calendar month, Quarterly three, Annually one calendar year.
// Calendar overflow follows time.AddDate normalization, so Jan 31 + 1 month
// lands in early March rather than clamping to Feb 28/29. The field is always
// recomputed from these two inputs, never edited directly.
func DeriveExpiry(joinDate time.Time, plan MemberPlan) (time.Time, error) {
	switch plan {
	case MemberPlanMonthly:
		return joinDate.AddDate(0, 1, 0), nil
	case MemberPlanQuarterly:
		return joinDate.AddDate(0, 3, 0), nil
	case MemberPlanAnnually:
		return joinDate.AddDate(1, 0, 0), nil
	}
	return time.Time{}, apperrors.NewValidation("plan", fmt.Sprintf("unknown plan %q", plan))
}

// AccountPlan is a paid subscription tier for a gym owner's account.
// These are distinct from member plans and must not be conflated with them.
type AccountPlan struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Months     int    `json:"months"`
	PriceMinor int64  `json:"price_minor"` // paise
}

// AccountPlans lists the subscription tiers offered after the trial ends.
var AccountPlans = []AccountPlan{
	{Code: "monthly", Name: "Monthly", Months: 1, PriceMinor: 49900},
	{Code: "6-months", Name: "6 Months", Months: 6, PriceMinor: 259900},
	{Code: "annual", Name: "Annual", Months: 12, PriceMinor: 459900},
}

// AccountPlanByCode looks up a subscription tier by its code.
func AccountPlanByCode(code string) (AccountPlan, bool) {
	for _, p := range AccountPlans {
		if p.Code == code {
			return p, true
		}
	}
	return AccountPlan{}, false
}
