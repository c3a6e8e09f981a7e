package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"gymdesk/internal/billing"
	"gymdesk/internal/services"
)

// ContextAccount holds the live billing.Account fetched by the gate.
const ContextAccount = "account"

// RequireFullAccess gates roster and payment screens behind an active trial
// or subscription. The account metadata is re-read from the account store on
// every request; the decision is never cached. Broken records (no trial_end)
// surface as ConfigError rather than granting or denying silently.
func RequireFullAccess(accounts *services.AccountService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get(ContextUserUID).(string)
			if !ok || uid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Please log in to continue.")
			}

			acct, err := accounts.GetAccount(c.Request().Context(), uid)
			if err != nil {
				return err
			}

			classification, err := billing.Classify(acct, time.Now())
			if err != nil {
				return err // ConfigError, mapped centrally
			}

			if !classification.FullAccess {
				return c.JSON(http.StatusPaymentRequired, map[string]interface{}{
					"error":   "subscription_required",
					"message": "Your free trial has ended. Please subscribe to continue using all services.",
					"plans":   billing.AccountPlans,
				})
			}

			c.Set(ContextAccount, acct)
			return next(c)
		}
	}
}
