package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	"gymdesk/internal/apperrors"
	"gymdesk/internal/billing"
	"gymdesk/internal/models"
)

// ErrAlreadyPaid is returned when checkout is initiated for an order the
// gateway already settled.
var ErrAlreadyPaid = errors.New("payment already made")

// ErrInvalidSignature is returned for notifications whose signature does not
// verify. Such callbacks are recorded but never acted on.
var ErrInvalidSignature = errors.New("invalid notification signature")

// CheckoutService drives the account-subscription purchase: opening Snap
// checkouts, resuming pending ones, and applying verified confirmations.
type CheckoutService struct {
	db             *gorm.DB
	midtransClient *MidtransService
	accounts       *AccountService
}

func NewCheckoutService(db *gorm.DB, midtransClient *MidtransService, accounts *AccountService) *CheckoutService {
	return &CheckoutService{
		db:             db,
		midtransClient: midtransClient,
		accounts:       accounts,
	}
}

// CheckActiveSession returns the owner's active checkout session, or nil.
func (s *CheckoutService) CheckActiveSession(ownerID string) (*models.CheckoutSession, error) {
	var session models.CheckoutSession
	err := s.db.Where("owner_id = ? AND is_active = ?", ownerID, true).
		Order("created_at desc").First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewStore("check checkout session", err)
	}
	return &session, nil
}

// InitiateCheckoutResult holds the outcome of an initiation attempt.
type InitiateCheckoutResult struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
	IsExisting  bool   `json:"is_existing"`
}

// InitiateCheckout starts or resumes a subscription checkout for the
// account. A pending gateway transaction is reused unless forceNew is set,
// in which case it is canceled and replaced.
func (s *CheckoutService) InitiateCheckout(acct billing.Account, plan billing.AccountPlan, forceNew bool, callbackURL string) (*InitiateCheckoutResult, error) {
	existing, err := s.CheckActiveSession(acct.UID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		statusResp, err := s.midtransClient.CheckTransaction(existing.OrderID)
		if err == nil {
			switch statusResp.TransactionStatus {
			case "settlement", "capture":
				return nil, ErrAlreadyPaid
			case "deny", "expire", "cancel", "failure":
				s.deactivateSession(existing)
			default: // pending
				if forceNew {
					// A failed cancel leaves the old transaction live at the
					// gateway; it expires on its own, but worth a trace.
					if err := s.midtransClient.CancelTransaction(existing.OrderID); err != nil {
						log.Printf("Failed to cancel pending transaction %s: %v", existing.OrderID, err)
					}
					s.deactivateSession(existing)
				} else {
					var midtransResp snap.Response
					if err := json.Unmarshal(existing.ResponseMetadata, &midtransResp); err == nil {
						return &InitiateCheckoutResult{
							Token:       midtransResp.Token,
							RedirectURL: midtransResp.RedirectURL,
							IsExisting:  true,
						}, nil
					}
					// Broken session record, replace it.
					s.deactivateSession(existing)
				}
			}
		} else {
			// Status check failed, assume the session is stale.
			s.deactivateSession(existing)
		}
	}

	orderID := fmt.Sprintf("sub-%s", uuid.New().String())

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: plan.PriceMinor,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: acct.FullName,
			Email: acct.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    fmt.Sprintf("plan-%s", plan.Code),
				Name:  fmt.Sprintf("%s subscription", plan.Name),
				Price: plan.PriceMinor,
				Qty:   1,
			},
		},
		Callbacks: &snap.Callbacks{
			Finish: callbackURL,
		},
	}

	resp, err := s.midtransClient.CreateTransaction(req)
	if err != nil {
		return nil, apperrors.NewGateway("midtrans", err)
	}

	reqBytes, _ := json.Marshal(req)
	respBytes, _ := json.Marshal(resp)

	session := models.CheckoutSession{
		OwnerID:          acct.UID,
		PlanCode:         plan.Code,
		OrderID:          orderID,
		GrossAmount:      plan.PriceMinor,
		IsActive:         true,
		RequestMetadata:  reqBytes,
		ResponseMetadata: respBytes,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, apperrors.NewStore("create checkout session", err)
	}

	return &InitiateCheckoutResult{
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
		IsExisting:  false,
	}, nil
}

func (s *CheckoutService) deactivateSession(session *models.CheckoutSession) {
	session.IsActive = false
	if err := s.db.Save(session).Error; err != nil {
		log.Printf("Failed to deactivate checkout session %d: %v", session.ID, err)
	}
}

// Notification is the subset of the gateway callback the service acts on.
type Notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
}

// HandleNotification applies a gateway callback. The signature is verified
// server-side before anything else happens; only a verified settlement or
// capture activates the subscription. Every callback, valid or not, is
// recorded for audit.
func (s *CheckoutService) HandleNotification(ctx context.Context, notif Notification, raw json.RawMessage) error {
	valid := s.midtransClient.VerifySignature(notif.OrderID, notif.StatusCode, notif.GrossAmount, notif.SignatureKey)

	callback := models.CheckoutCallback{
		OrderID:           notif.OrderID,
		TransactionStatus: notif.TransactionStatus,
		SignatureValid:    valid,
		Metadata:          raw,
	}
	if err := s.db.Create(&callback).Error; err != nil {
		return apperrors.NewStore("record checkout callback", err)
	}

	if !valid {
		return ErrInvalidSignature
	}

	var session models.CheckoutSession
	if err := s.db.Where("order_id = ?", notif.OrderID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("no checkout session for order %s", notif.OrderID)
		}
		return apperrors.NewStore("find checkout session", err)
	}

	switch notif.TransactionStatus {
	case "settlement", "capture":
		plan, ok := billing.AccountPlanByCode(session.PlanCode)
		if !ok {
			return fmt.Errorf("session %d references unknown plan %q", session.ID, session.PlanCode)
		}
		if err := s.accounts.ActivateSubscription(ctx, session.OwnerID, plan.Name); err != nil {
			return err
		}
		s.deactivateSession(&session)
	case "deny", "expire", "cancel", "failure":
		s.deactivateSession(&session)
	}
	// Pending and other intermediate states leave the session untouched.

	return nil
}
