package models

import (
	"time"

	"github.com/shopspring/decimal"

	"gymdesk/internal/billing"
)

// Payment records money received from a member. Payments are immutable:
// there is no update or delete path, only create and read.
type Payment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// MemberID is nulled when the member is deleted; the payment row and its
	// amount stay in the revenue history.
	MemberID *uint           `gorm:"index" json:"member_id"`
	OwnerID  string          `gorm:"type:varchar(128);index;not null" json:"owner_id"`
	Amount   decimal.Decimal `gorm:"type:numeric(15,2)" json:"amount"`
	Method   string          `gorm:"type:varchar(20)" json:"method"` // "Cash" or "Online"

	// Joined back to the member for display (name and phone columns).
	Member *Member `gorm:"foreignKey:MemberID;constraint:OnDelete:SET NULL" json:"member,omitempty"`
}

// BillingRecord maps the payment (with its preloaded member) onto the
// summarizer's view. Payments whose member was deleted keep an empty name.
func (p Payment) BillingRecord() billing.PaymentRecord {
	rec := billing.PaymentRecord{
		Method:    p.Method,
		Amount:    p.Amount,
		CreatedAt: p.CreatedAt,
	}
	if p.Member != nil {
		rec.MemberName = p.Member.Name
	}
	return rec
}
