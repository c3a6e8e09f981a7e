package services

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

// MidtransService is the checkout provider client. It opens Snap
// transactions for account subscriptions and verifies gateway notifications.
type MidtransService struct {
	SnapClient snap.Client
	CoreClient coreapi.Client
	serverKey  string
}

func NewMidtransService() *MidtransService {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	clientKey := os.Getenv("MIDTRANS_CLIENT_KEY")

	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}

	var s snap.Client
	s.New(serverKey, env)

	var c coreapi.Client
	c.New(serverKey, env)

	midtrans.ServerKey = serverKey
	midtrans.ClientKey = clientKey
	midtrans.Environment = env

	return &MidtransService{
		SnapClient: s,
		CoreClient: c,
		serverKey:  serverKey,
	}
}

// CreateTransaction opens a Snap transaction and returns its token and
// redirect URL.
func (s *MidtransService) CreateTransaction(param *snap.Request) (*snap.Response, error) {
	resp, err := s.SnapClient.CreateTransaction(param)
	if err != nil {
		return nil, fmt.Errorf("midtrans create transaction: %v", err)
	}
	return resp, nil
}

// CheckTransaction fetches the gateway-side status of an order.
func (s *MidtransService) CheckTransaction(orderID string) (*coreapi.TransactionStatusResponse, error) {
	resp, err := s.CoreClient.CheckTransaction(orderID)
	if err != nil {
		return nil, fmt.Errorf("midtrans check transaction: %v", err)
	}
	return resp, nil
}

// CancelTransaction voids a pending order at the gateway.
func (s *MidtransService) CancelTransaction(orderID string) error {
	if _, err := s.CoreClient.CancelTransaction(orderID); err != nil {
		return fmt.Errorf("midtrans cancel transaction: %v", err)
	}
	return nil
}

// VerifySignature checks a notification's signature_key against
// SHA512(order_id + status_code + gross_amount + server key). A client-side
// success report is never trusted without this check passing.
func (s *MidtransService) VerifySignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	return VerifyNotificationSignature(orderID, statusCode, grossAmount, s.serverKey, signatureKey)
}

// VerifyNotificationSignature implements the Midtrans notification digest.
func VerifyNotificationSignature(orderID, statusCode, grossAmount, serverKey, signatureKey string) bool {
	h := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	expected := hex.EncodeToString(h[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signatureKey)) == 1
}
