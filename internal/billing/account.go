package billing

import (
	"time"

	"gymdesk/internal/apperrors"
)

// SubscriptionStatus values stored in the account metadata.
const (
	SubscriptionStatusTrial  = "trial"
	SubscriptionStatusActive = "active"
)

// TrialDuration is granted once, at first sign-up. trial_end is never advanced.
const TrialDuration = 14 * 24 * time.Hour

// Account is the identity metadata of a gym owner, as stored in the
// account store's custom claims.
type Account struct {
	UID                string
	Email              string
	FullName           string
	GymName            string
	TrialEnd           *time.Time
	SubscriptionStatus string
	Plan               string // account plan name ("Monthly", "6 Months", "Annual") or empty
	SubscribedAt       *time.Time
}

// Claim keys under which account metadata lives.
const (
	claimFullName           = "full_name"
	claimGymName            = "gym_name"
	claimTrialEnd           = "trial_end"
	claimSubscriptionStatus = "subscription_status"
	claimPlan               = "plan"
	claimSubscribedAt       = "subscribed_at"
)

// AccountFromClaims maps a raw custom-claims map onto an Account.
// Timestamps are RFC 3339; unparsable values are treated as absent.
func AccountFromClaims(uid, email string, claims map[string]interface{}) Account {
	acct := Account{UID: uid, Email: email}
	if v, ok := claims[claimFullName].(string); ok {
		acct.FullName = v
	}
	if v, ok := claims[claimGymName].(string); ok {
		acct.GymName = v
	}
	if v, ok := claims[claimSubscriptionStatus].(string); ok {
		acct.SubscriptionStatus = v
	}
	if v, ok := claims[claimPlan].(string); ok {
		acct.Plan = v
	}
	if v, ok := claims[claimTrialEnd].(string); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			acct.TrialEnd = &t
		}
	}
	if v, ok := claims[claimSubscribedAt].(string); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			acct.SubscribedAt = &t
		}
	}
	return acct
}

// Claims renders the account metadata back into a custom-claims map.
func (a Account) Claims() map[string]interface{} {
	claims := map[string]interface{}{
		claimFullName:           a.FullName,
		claimGymName:            a.GymName,
		claimSubscriptionStatus: a.SubscriptionStatus,
	}
	if a.Plan != "" {
		claims[claimPlan] = a.Plan
	}
	if a.TrialEnd != nil {
		claims[claimTrialEnd] = a.TrialEnd.UTC().Format(time.RFC3339)
	}
	if a.SubscribedAt != nil {
		claims[claimSubscribedAt] = a.SubscribedAt.UTC().Format(time.RFC3339)
	}
	return claims
}

// Classification is the computed trial/subscription state of an account.
type Classification struct {
	TrialActive  bool   `json:"trial_active"`
	Subscribed   bool   `json:"subscribed"`
	Plan         string `json:"plan,omitempty"`
	DisplayLabel string `json:"display_label"`
	FullAccess   bool   `json:"full_access"`
}

// Classify computes the billing state of an account at the given instant.
// The trial boundary is inclusive: an account whose trial_end equals now is
// still on trial. An account with no trial_end at all is a broken record,
// not an expired one, and yields a ConfigError; callers must refuse to
// render financial data rather than fall back to an ungated state.
func Classify(acct Account, now time.Time) (Classification, error) {
	if acct.TrialEnd == nil {
		return Classification{}, &apperrors.ConfigError{
			Missing: "trial_end",
			Message: "account profile incomplete, sign out and sign in again",
		}
	}

	c := Classification{
		TrialActive: !acct.TrialEnd.Before(now),
		Subscribed:  acct.SubscriptionStatus == SubscriptionStatusActive,
		Plan:        acct.Plan,
	}
	c.FullAccess = c.TrialActive || c.Subscribed

	switch {
	case c.TrialActive:
		c.DisplayLabel = "Trial (Pro)"
	case c.Subscribed && c.Plan != "":
		c.DisplayLabel = c.Plan + " (Pro)"
	default:
		c.DisplayLabel = "Free"
	}
	return c, nil
}
