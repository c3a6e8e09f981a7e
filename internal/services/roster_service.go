package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gymdesk/internal/apperrors"
	"gymdesk/internal/billing"
	"gymdesk/internal/models"
)

// ErrMemberNotFound is returned when an id does not resolve inside the
// owner's roster. A member belonging to another account looks exactly the
// same as one that does not exist.
var ErrMemberNotFound = errors.New("member not found")

const metricsTTL = 5 * time.Minute

func metricsKey(ownerID string) string {
	return "gymdesk:metrics:" + ownerID
}

// RosterService is the roster store: members and payments, every query
// scoped to the owning account. All mutations end with Refresh so derived
// metrics are never served stale.
type RosterService struct {
	db    *gorm.DB
	cache *RedisCache // optional; nil disables metrics caching
}

func NewRosterService(db *gorm.DB, cache *RedisCache) *RosterService {
	return &RosterService{db: db, cache: cache}
}

// MemberInput carries the add/edit member form fields. ExpiryDate is absent
// on purpose: it is always derived server-side.
type MemberInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Plan     string `json:"plan"`
	JoinDate string `json:"join_date"` // YYYY-MM-DD; defaults to today
}

func (in MemberInput) joinDate() (time.Time, error) {
	if in.JoinDate == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", in.JoinDate)
	if err != nil {
		return time.Time{}, apperrors.NewValidation("join_date", "Please enter a valid date (YYYY-MM-DD)")
	}
	return t, nil
}

// apply validates the input and writes the member's stored fields, always
// rederiving the expiry date from plan and join date. Both create and edit
// funnel through here, so client input can never set expiry_date. On a
// validation failure the member is left untouched.
func (in MemberInput) apply(member *models.Member) error {
	if err := billing.ValidateRegistration(in.Name, in.Phone, in.Plan); err != nil {
		return err
	}
	plan, err := billing.ParseMemberPlan(in.Plan)
	if err != nil {
		return err
	}
	joinDate, err := in.joinDate()
	if err != nil {
		return err
	}
	expiry, err := billing.DeriveExpiry(joinDate, plan)
	if err != nil {
		return err
	}

	member.Name = in.Name
	member.Phone = in.Phone
	member.Plan = plan
	member.JoinDate = joinDate
	member.ExpiryDate = expiry
	return nil
}

// ListMembers returns the owner's full roster.
func (s *RosterService) ListMembers(ownerID string) ([]models.Member, error) {
	var members []models.Member
	if err := s.db.Where("owner_id = ?", ownerID).Order("id").Find(&members).Error; err != nil {
		return nil, apperrors.NewStore("list members", err)
	}
	return members, nil
}

func (s *RosterService) getMember(ownerID string, id uint) (*models.Member, error) {
	var member models.Member
	err := s.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, apperrors.NewStore("get member", err)
	}
	return &member, nil
}

// CreateMember validates the registration, derives the expiry date and
// inserts the member. Validation failures leave the store untouched.
func (s *RosterService) CreateMember(ctx context.Context, ownerID string, in MemberInput) (*models.Member, error) {
	member := models.Member{OwnerID: ownerID}
	if err := in.apply(&member); err != nil {
		return nil, err
	}

	if err := s.db.Create(&member).Error; err != nil {
		return nil, apperrors.NewStore("create member", err)
	}

	s.invalidateMetrics(ctx, ownerID)
	return &member, nil
}

// UpdateMember applies an edit. Expiry is recomputed from the new plan and
// join date, keeping the derived-field invariant.
func (s *RosterService) UpdateMember(ctx context.Context, ownerID string, id uint, in MemberInput) (*models.Member, error) {
	member, err := s.getMember(ownerID, id)
	if err != nil {
		return nil, err
	}

	if err := in.apply(member); err != nil {
		return nil, err
	}

	if err := s.db.Save(member).Error; err != nil {
		return nil, apperrors.NewStore("update member", err)
	}

	s.invalidateMetrics(ctx, ownerID)
	return member, nil
}

// SetPaid toggles the paid flag on a member.
func (s *RosterService) SetPaid(ctx context.Context, ownerID string, id uint, paid bool) (*models.Member, error) {
	member, err := s.getMember(ownerID, id)
	if err != nil {
		return nil, err
	}

	member.Paid = paid
	if err := s.db.Save(member).Error; err != nil {
		return nil, apperrors.NewStore("toggle paid", err)
	}

	s.invalidateMetrics(ctx, ownerID)
	return member, nil
}

// DeleteMember removes a member from the roster. Recorded payments stay:
// revenue history survives the member.
func (s *RosterService) DeleteMember(ctx context.Context, ownerID string, id uint) error {
	member, err := s.getMember(ownerID, id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(member).Error; err != nil {
		return apperrors.NewStore("delete member", err)
	}

	s.invalidateMetrics(ctx, ownerID)
	return nil
}

// ListPayments returns the owner's payments joined with each member's name
// and phone for display.
func (s *RosterService) ListPayments(ownerID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.Preload("Member").
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&payments).Error
	if err != nil {
		return nil, apperrors.NewStore("list payments", err)
	}
	return payments, nil
}

// RecordPayment validates and inserts a payment. The member must belong to
// the same owner; payments are immutable once written.
func (s *RosterService) RecordPayment(ctx context.Context, ownerID string, memberID uint, amount decimal.Decimal, method string) (*models.Payment, error) {
	if err := billing.ValidatePayment(memberID, amount); err != nil {
		return nil, err
	}
	if _, err := s.getMember(ownerID, memberID); err != nil {
		return nil, err
	}

	payment := models.Payment{
		MemberID: &memberID,
		OwnerID:  ownerID,
		Amount:   amount,
		Method:   billing.NormalizeMethod(method),
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, apperrors.NewStore("record payment", err)
	}

	s.invalidateMetrics(ctx, ownerID)
	return &payment, nil
}

// Metrics returns the owner's dashboard aggregates, served from cache when
// fresh and recomputed from a full refetch otherwise.
func (s *RosterService) Metrics(ctx context.Context, ownerID string) (billing.Metrics, error) {
	if s.cache == nil {
		return s.computeMetrics(ownerID)
	}
	return GetOrSet(s.cache, ctx, metricsKey(ownerID), metricsTTL, func() (billing.Metrics, error) {
		return s.computeMetrics(ownerID)
	})
}

// Refresh drops the cached aggregates and recomputes them from a full
// refetch. Every mutating operation funnels through this contract.
func (s *RosterService) Refresh(ctx context.Context, ownerID string) (billing.Metrics, error) {
	s.invalidateMetrics(ctx, ownerID)
	return s.Metrics(ctx, ownerID)
}

func (s *RosterService) invalidateMetrics(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, metricsKey(ownerID))
}

func (s *RosterService) computeMetrics(ownerID string) (billing.Metrics, error) {
	members, err := s.ListMembers(ownerID)
	if err != nil {
		return billing.Metrics{}, err
	}
	payments, err := s.ListPayments(ownerID)
	if err != nil {
		return billing.Metrics{}, err
	}

	memberRecords := make([]billing.MemberRecord, 0, len(members))
	for _, m := range members {
		memberRecords = append(memberRecords, m.BillingRecord())
	}
	paymentRecords := make([]billing.PaymentRecord, 0, len(payments))
	for _, p := range payments {
		paymentRecords = append(paymentRecords, p.BillingRecord())
	}

	return billing.Summarize(memberRecords, paymentRecords, time.Now()), nil
}

// ExpiringMembers returns every member of every owner inside the reminder
// window. Used by the daily sweep, which runs across tenants.
func (s *RosterService) ExpiringMembers(now time.Time) ([]models.Member, error) {
	var members []models.Member
	err := s.db.Where("expiry_date > ? AND expiry_date < ?", now, now.Add(billing.ExpiringSoonWindow)).
		Find(&members).Error
	if err != nil {
		return nil, apperrors.NewStore("list expiring members", err)
	}
	return members, nil
}
