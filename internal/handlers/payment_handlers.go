package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"gymdesk/internal/billing"
	"gymdesk/internal/middleware"
	"gymdesk/internal/services"
)

// PaymentHandler exposes the payment ledger endpoints.
type PaymentHandler struct {
	roster *services.RosterService
}

func NewPaymentHandler(roster *services.RosterService) *PaymentHandler {
	return &PaymentHandler{roster: roster}
}

// ListPayments returns the owner's payments newest first, optionally filtered
// by the q search param (member name, method, amount or dd/mm/yyyy date).
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	ownerID := getStringFromContext(c, middleware.ContextUserUID)

	payments, err := h.roster.ListPayments(ownerID)
	if err != nil {
		return err
	}

	query := c.QueryParam("q")
	filtered := payments[:0:0]
	for _, p := range payments {
		if billing.MatchesPaymentQuery(p.BillingRecord(), query) {
			filtered = append(filtered, p)
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"payments": filtered,
	})
}

type recordPaymentRequest struct {
	MemberID uint            `json:"member_id"`
	Amount   decimal.Decimal `json:"amount"`
	Method   string          `json:"method"`
}

// RecordPayment inserts a payment row for one of the owner's members.
func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	ownerID := getStringFromContext(c, middleware.ContextUserUID)

	var req recordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	payment, err := h.roster.RecordPayment(c.Request().Context(), ownerID, req.MemberID, req.Amount, req.Method)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, payment)
}
