package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// CheckoutSession tracks one Snap checkout opened for an account
// subscription. At most one active session exists per owner; resuming or
// force-replacing it mirrors the gateway-side transaction state.
type CheckoutSession struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	OwnerID     string `gorm:"type:varchar(128);index;not null" json:"owner_id"`
	PlanCode    string `gorm:"type:varchar(50);not null" json:"plan_code"`
	OrderID     string `gorm:"type:varchar(100);index" json:"order_id"`
	GrossAmount int64  `json:"gross_amount"` // minor units
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	RequestMetadata  json.RawMessage `gorm:"type:jsonb" json:"request_metadata"`
	ResponseMetadata json.RawMessage `gorm:"type:jsonb" json:"response_metadata"`
}

// CheckoutCallback is the audit record of one gateway notification, kept
// whether or not its signature verified. Rows are only ever inserted.
type CheckoutCallback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	OrderID           string          `gorm:"type:varchar(100);index" json:"order_id"`
	TransactionStatus string          `gorm:"type:varchar(50)" json:"transaction_status"`
	SignatureValid    bool            `json:"signature_valid"`
	Metadata          json.RawMessage `gorm:"type:jsonb" json:"metadata"`
}
