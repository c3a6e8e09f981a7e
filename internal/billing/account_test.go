package billing

import (
	"errors"
	"testing"
	"time"

	"gymdesk/internal/apperrors"
)

func TestClassify(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(5 * 24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name        string
		acct        Account
		trialActive bool
		subscribed  bool
		fullAccess  bool
		label       string
	}{
		{
			name:        "trial still running",
			acct:        Account{TrialEnd: &future, SubscriptionStatus: SubscriptionStatusTrial},
			trialActive: true,
			fullAccess:  true,
			label:       "Trial (Pro)",
		},
		{
			name:        "trial end exactly now is inclusive",
			acct:        Account{TrialEnd: &now, SubscriptionStatus: SubscriptionStatusTrial},
			trialActive: true,
			fullAccess:  true,
			label:       "Trial (Pro)",
		},
		{
			name:       "trial expired and subscribed",
			acct:       Account{TrialEnd: &past, SubscriptionStatus: SubscriptionStatusActive, Plan: "Annual"},
			subscribed: true,
			fullAccess: true,
			label:      "Annual (Pro)",
		},
		{
			name:  "trial expired, not subscribed",
			acct:  Account{TrialEnd: &past, SubscriptionStatus: SubscriptionStatusTrial},
			label: "Free",
		},
		{
			name:       "subscribed without plan label falls back to Free",
			acct:       Account{TrialEnd: &past, SubscriptionStatus: SubscriptionStatusActive},
			subscribed: true,
			fullAccess: true,
			label:      "Free",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Classify(tt.acct, now)
			if err != nil {
				t.Fatalf("Classify returned error: %v", err)
			}
			if c.TrialActive != tt.trialActive {
				t.Errorf("TrialActive = %v; want %v", c.TrialActive, tt.trialActive)
			}
			if c.Subscribed != tt.subscribed {
				t.Errorf("Subscribed = %v; want %v", c.Subscribed, tt.subscribed)
			}
			if c.FullAccess != tt.fullAccess {
				t.Errorf("FullAccess = %v; want %v", c.FullAccess, tt.fullAccess)
			}
			if c.DisplayLabel != tt.label {
				t.Errorf("DisplayLabel = %q; want %q", c.DisplayLabel, tt.label)
			}
		})
	}
}

func TestClassifyMissingTrialEnd(t *testing.T) {
	_, err := Classify(Account{SubscriptionStatus: SubscriptionStatusTrial}, time.Now())
	if err == nil {
		t.Fatal("expected ConfigError for account without trial_end")
	}
	var ce *apperrors.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigError, got %T: %v", err, err)
	}
	if ce.Missing != "trial_end" {
		t.Errorf("Missing = %q; want trial_end", ce.Missing)
	}
}

func TestAccountClaimsRoundTrip(t *testing.T) {
	trialEnd := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	subscribedAt := time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)
	acct := Account{
		UID:                "uid-1",
		Email:              "owner@example.com",
		FullName:           "Asha Rao",
		GymName:            "Iron Temple",
		TrialEnd:           &trialEnd,
		SubscriptionStatus: SubscriptionStatusActive,
		Plan:               "6 Months",
		SubscribedAt:       &subscribedAt,
	}

	got := AccountFromClaims("uid-1", "owner@example.com", acct.Claims())
	if got.FullName != acct.FullName || got.GymName != acct.GymName {
		t.Errorf("identity fields lost: %+v", got)
	}
	if got.SubscriptionStatus != SubscriptionStatusActive || got.Plan != "6 Months" {
		t.Errorf("subscription fields lost: %+v", got)
	}
	if got.TrialEnd == nil || !got.TrialEnd.Equal(trialEnd) {
		t.Errorf("TrialEnd = %v; want %v", got.TrialEnd, trialEnd)
	}
	if got.SubscribedAt == nil || !got.SubscribedAt.Equal(subscribedAt) {
		t.Errorf("SubscribedAt = %v; want %v", got.SubscribedAt, subscribedAt)
	}
}

func TestAccountFromClaimsIgnoresGarbageTimestamps(t *testing.T) {
	acct := AccountFromClaims("uid", "e@x.com", map[string]interface{}{
		"trial_end":           "not-a-date",
		"subscription_status": "trial",
	})
	if acct.TrialEnd != nil {
		t.Errorf("expected nil TrialEnd for unparsable claim, got %v", acct.TrialEnd)
	}
	// And the classifier must then refuse rather than guess.
	if _, err := Classify(acct, time.Now()); err == nil {
		t.Error("expected ConfigError after dropping unparsable trial_end")
	}
}
