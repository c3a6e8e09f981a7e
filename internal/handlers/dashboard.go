package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gymdesk/internal/billing"
	"gymdesk/internal/middleware"
	"gymdesk/internal/services"
)

// DashboardHandler serves the aggregate metrics for the owner's gym.
type DashboardHandler struct {
	roster *services.RosterService
}

func NewDashboardHandler(roster *services.RosterService) *DashboardHandler {
	return &DashboardHandler{roster: roster}
}

func accountFromContext(c echo.Context) (billing.Account, bool) {
	acct, ok := c.Get(middleware.ContextAccount).(billing.Account)
	return acct, ok
}

// GetMetrics returns the cached dashboard numbers plus the account's
// subscription label.
func (h *DashboardHandler) GetMetrics(c echo.Context) error {
	ownerID := getStringFromContext(c, middleware.ContextUserUID)

	metrics, err := h.roster.Metrics(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}

	resp := map[string]interface{}{"metrics": metrics}
	if acct, ok := accountFromContext(c); ok {
		resp["gym_name"] = acct.GymName
		resp["owner_name"] = acct.FullName
	}
	return c.JSON(http.StatusOK, resp)
}

// RefreshMetrics drops the cached numbers and recomputes them from the
// database before responding.
func (h *DashboardHandler) RefreshMetrics(c echo.Context) error {
	ownerID := getStringFromContext(c, middleware.ContextUserUID)

	metrics, err := h.roster.Refresh(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"metrics": metrics})
}
