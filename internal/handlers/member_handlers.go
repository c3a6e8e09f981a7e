package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"gymdesk/internal/billing"
	"gymdesk/internal/middleware"
	"gymdesk/internal/models"
	"gymdesk/internal/services"
)

// MemberHandler exposes the owner-scoped roster CRUD.
type MemberHandler struct {
	roster *services.RosterService
}

func NewMemberHandler(roster *services.RosterService) *MemberHandler {
	return &MemberHandler{roster: roster}
}

// memberView is a member plus its computed status label.
type memberView struct {
	models.Member
	Status string `json:"status"`
}

func toMemberViews(members []models.Member, now time.Time) []memberView {
	views := make([]memberView, 0, len(members))
	for _, m := range members {
		views = append(views, memberView{
			Member: m,
			Status: billing.MemberStatus(m.ExpiryDate, now),
		})
	}
	return views
}

// ListMembers returns the roster, optionally filtered by the q search param
// (case-insensitive name substring).
func (h *MemberHandler) ListMembers(c echo.Context) error {
	ownerID := getStringFromContext(c, middleware.ContextUserUID)

	members, err := h.roster.ListMembers(ownerID)
	if err != nil {
		return err
	}

	query := c.QueryParam("q")
	filtered := members[:0:0]
	for _, m := range members {
		if billing.MatchesMemberQuery(m.Name, query) {
			filtered = append(filtered, m)
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"members": toMemberViews(filtered, time.Now()),
	})
}

// RegisterMember validates and inserts a new member. The expiry date comes
// back derived from the join date and plan.
func (h *MemberHandler) RegisterMember(c echo.Context) error {
	ownerID := getStringFromContext(c, middleware.ContextUserUID)

	var in services.MemberInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	member, err := h.roster.CreateMember(c.Request().Context(), ownerID, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, memberView{
		Member: *member,
		Status: billing.MemberStatus(member.ExpiryDate, time.Now()),
	})
}

// UpdateMember applies a structured edit; expiry is recomputed server-side.
func (h *MemberHandler) UpdateMember(c echo.Context) error {
	ownerID := getStringFromContext(c, middleware.ContextUserUID)
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var in services.MemberInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	member, err := h.roster.UpdateMember(c.Request().Context(), ownerID, id, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, memberView{
		Member: *member,
		Status: billing.MemberStatus(member.ExpiryDate, time.Now()),
	})
}

type paidRequest struct {
	Paid bool `json:"paid"`
}

// SetPaid toggles the member's paid flag.
func (h *MemberHandler) SetPaid(c echo.Context) error {
	ownerID := getStringFromContext(c, middleware.ContextUserUID)
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req paidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	member, err := h.roster.SetPaid(c.Request().Context(), ownerID, id, req.Paid)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, member)
}

// DeleteMember removes a member from the roster.
func (h *MemberHandler) DeleteMember(c echo.Context) error {
	ownerID := getStringFromContext(c, middleware.ContextUserUID)
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.roster.DeleteMember(c.Request().Context(), ownerID, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
