package services

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"
)

func TestVerifyNotificationSignature(t *testing.T) {
	orderID := "sub-uid1-1717500000"
	statusCode := "200"
	grossAmount := "49900.00"
	serverKey := "SB-Mid-server-test"

	h := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	valid := hex.EncodeToString(h[:])

	tests := []struct {
		name      string
		signature string
		expected  bool
	}{
		{"valid signature", valid, true},
		{"tampered signature", valid[:len(valid)-1] + "0", false},
		{"empty signature", "", false},
		{"wrong order id baked in", func() string {
			h := sha512.Sum512([]byte("sub-uid2-1717500000" + statusCode + grossAmount + serverKey))
			return hex.EncodeToString(h[:])
		}(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifyNotificationSignature(orderID, statusCode, grossAmount, serverKey, tt.signature)
			if got != tt.expected {
				t.Errorf("VerifyNotificationSignature = %v; want %v", got, tt.expected)
			}
		})
	}
}
