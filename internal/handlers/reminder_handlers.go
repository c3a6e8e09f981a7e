package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gymdesk/internal/apperrors"
	"gymdesk/internal/services"
)

// ReminderHandler sends one-off expiry reminders to a member over WhatsApp
// or email.
type ReminderHandler struct {
	waha  *services.WahaService
	email *services.EmailService
}

func NewReminderHandler(waha *services.WahaService, email *services.EmailService) *ReminderHandler {
	return &ReminderHandler{waha: waha, email: email}
}

type whatsappReminderRequest struct {
	Phone      string `json:"phone"`
	Name       string `json:"name"`
	ExpiryDate string `json:"expiry_date"`
}

// SendWhatsAppReminder pushes the expiry message to the member's phone.
func (h *ReminderHandler) SendWhatsAppReminder(c echo.Context) error {
	var req whatsappReminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	switch {
	case req.Phone == "":
		return apperrors.NewValidation("phone", "Phone number is required")
	case req.Name == "":
		return apperrors.NewValidation("name", "Member name is required")
	case req.ExpiryDate == "":
		return apperrors.NewValidation("expiry_date", "Expiry date is required")
	}

	if err := h.waha.SendExpiryReminder(req.Phone, req.Name, req.ExpiryDate); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "sent"})
}

type emailReminderRequest struct {
	ToName     string `json:"to_name"`
	ToEmail    string `json:"to_email"`
	ExpiryDate string `json:"expiry_date"`
}

// SendEmailReminder mails the expiry notice to the member.
func (h *ReminderHandler) SendEmailReminder(c echo.Context) error {
	var req emailReminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	switch {
	case req.ToEmail == "":
		return apperrors.NewValidation("to_email", "Recipient email is required")
	case req.ToName == "":
		return apperrors.NewValidation("to_name", "Recipient name is required")
	case req.ExpiryDate == "":
		return apperrors.NewValidation("expiry_date", "Expiry date is required")
	}

	if err := h.email.SendExpiryEmail(req.ToName, req.ToEmail, req.ExpiryDate); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "sent"})
}
