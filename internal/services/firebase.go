package services

import (
	"context"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"gymdesk/internal/apperrors"
	"gymdesk/internal/billing"
)

// InitFirebase initializes the Firebase Admin SDK and returns an auth client
func InitFirebase(credPath string) (*auth.Client, error) {
	opt := option.WithCredentialsFile(credPath)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return nil, err
	}
	return app.Auth(context.Background())
}

// AccountService is the account store: gym-owner identity plus the billing
// metadata (trial, subscription, plan) kept in custom claims.
type AccountService struct {
	auth *auth.Client
}

func NewAccountService(authClient *auth.Client) *AccountService {
	return &AccountService{auth: authClient}
}

// SignUp creates a gym-owner account and stamps the trial metadata.
// trial_end is written here exactly once and never advanced afterwards.
func (s *AccountService) SignUp(ctx context.Context, email, password, fullName, gymName string) (billing.Account, error) {
	if email == "" || password == "" {
		return billing.Account{}, apperrors.NewValidation("email", "Email and password are required")
	}

	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(fullName)

	user, err := s.auth.CreateUser(ctx, params)
	if err != nil {
		return billing.Account{}, apperrors.NewStore("create account", err)
	}

	trialEnd := time.Now().Add(billing.TrialDuration)
	acct := billing.Account{
		UID:                user.UID,
		Email:              email,
		FullName:           fullName,
		GymName:            gymName,
		TrialEnd:           &trialEnd,
		SubscriptionStatus: billing.SubscriptionStatusTrial,
	}

	if err := s.auth.SetCustomUserClaims(ctx, user.UID, acct.Claims()); err != nil {
		return billing.Account{}, apperrors.NewStore("set account metadata", err)
	}
	return acct, nil
}

// GetAccount reads the live account metadata. Callers must go through this
// on every protected access; the classification is never cached.
func (s *AccountService) GetAccount(ctx context.Context, uid string) (billing.Account, error) {
	user, err := s.auth.GetUser(ctx, uid)
	if err != nil {
		return billing.Account{}, apperrors.NewStore("get account", err)
	}
	return billing.AccountFromClaims(user.UID, user.Email, user.CustomClaims), nil
}

// ActivateSubscription flips the account to a paid plan after a verified
// checkout confirmation. Trial metadata is preserved as-is.
func (s *AccountService) ActivateSubscription(ctx context.Context, uid, planName string) error {
	acct, err := s.GetAccount(ctx, uid)
	if err != nil {
		return err
	}

	now := time.Now()
	acct.SubscriptionStatus = billing.SubscriptionStatusActive
	acct.Plan = planName
	acct.SubscribedAt = &now

	if err := s.auth.SetCustomUserClaims(ctx, uid, acct.Claims()); err != nil {
		return apperrors.NewStore("update account metadata", err)
	}
	return nil
}

// PasswordResetLink issues a reset link for the given email.
func (s *AccountService) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := s.auth.PasswordResetLink(ctx, email)
	if err != nil {
		return "", apperrors.NewStore("password reset link", err)
	}
	return link, nil
}

// Auth exposes the underlying client for session-cookie operations.
func (s *AccountService) Auth() *auth.Client {
	return s.auth
}
