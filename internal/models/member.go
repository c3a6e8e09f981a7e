package models

import (
	"time"

	"gymdesk/internal/billing"
)

// Member is one gym member in an owner's roster. Every row is exclusively
// scoped to the owning account; cross-owner reads must never happen.
// Deletion is a hard delete; recorded payments outlive the member row.
type Member struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerID string             `gorm:"type:varchar(128);index;not null" json:"owner_id"`
	Name    string             `gorm:"type:varchar(255)" json:"name"`
	Phone   string             `gorm:"type:varchar(10)" json:"phone"`
	Plan    billing.MemberPlan `gorm:"type:varchar(20)" json:"plan"`

	JoinDate time.Time `gorm:"type:date" json:"join_date"`
	// ExpiryDate is derived from JoinDate and Plan, recomputed on every
	// create and edit. It is never taken from client input.
	ExpiryDate time.Time `gorm:"type:date" json:"expiry_date"`
	Paid       bool      `gorm:"default:false" json:"paid"`

	Payments []Payment `gorm:"foreignKey:MemberID;constraint:OnDelete:SET NULL" json:"payments,omitempty"`
}

// BillingRecord maps the member onto the summarizer's view.
func (m Member) BillingRecord() billing.MemberRecord {
	return billing.MemberRecord{
		Name:       m.Name,
		JoinDate:   m.JoinDate,
		ExpiryDate: m.ExpiryDate,
	}
}
