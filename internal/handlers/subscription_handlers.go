package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"gymdesk/internal/billing"
	"gymdesk/internal/middleware"
	"gymdesk/internal/services"
)

// SubscriptionHandler covers the account's own billing: classification,
// plan listing, checkout and the gateway webhook. These routes sit behind
// authentication only, never the access gate, so an owner whose trial has
// ended can still pay.
type SubscriptionHandler struct {
	accounts *services.AccountService
	checkout *services.CheckoutService
}

func NewSubscriptionHandler(accounts *services.AccountService, checkout *services.CheckoutService) *SubscriptionHandler {
	return &SubscriptionHandler{accounts: accounts, checkout: checkout}
}

// GetSubscription returns the account's current billing classification.
func (h *SubscriptionHandler) GetSubscription(c echo.Context) error {
	uid := getStringFromContext(c, middleware.ContextUserUID)

	acct, err := h.accounts.GetAccount(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	classification, err := billing.Classify(acct, time.Now())
	if err != nil {
		return err
	}

	resp := map[string]interface{}{
		"subscription": classification,
		"gym_name":     acct.GymName,
	}
	if acct.TrialEnd != nil {
		resp["trial_end"] = acct.TrialEnd.Format(time.RFC3339)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListPlans returns the purchasable subscription plans.
func (h *SubscriptionHandler) ListPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"plans": billing.AccountPlans,
	})
}

type initiateCheckoutRequest struct {
	PlanCode    string `json:"plan_code"`
	CallbackURL string `json:"callback_url"`
}

// InitiateCheckout opens (or resumes) a Snap checkout for the chosen plan.
// Passing force_new=true cancels a pending transaction and opens a fresh one.
func (h *SubscriptionHandler) InitiateCheckout(c echo.Context) error {
	uid := getStringFromContext(c, middleware.ContextUserUID)

	var req initiateCheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	plan, ok := billing.AccountPlanByCode(req.PlanCode)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown plan")
	}

	acct, err := h.accounts.GetAccount(c.Request().Context(), uid)
	if err != nil {
		return err
	}

	forceNew := c.QueryParam("force_new") == "true"

	result, err := h.checkout.InitiateCheckout(acct, plan, forceNew, req.CallbackURL)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// HandleMidtransNotification receives the gateway's payment callbacks. The
// raw body is kept alongside the parsed fields so the audit row stores
// exactly what arrived.
func (h *SubscriptionHandler) HandleMidtransNotification(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot read request body")
	}

	var notif services.Notification
	if err := json.Unmarshal(raw, &notif); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification payload")
	}

	if err := h.checkout.HandleNotification(c.Request().Context(), notif, raw); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
