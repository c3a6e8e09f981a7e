package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"gymdesk/internal/apperrors"
	"gymdesk/internal/services"
)

// errorResponse is the JSON envelope every failed request gets.
type errorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// CustomErrorHandler converts the domain error taxonomy into JSON responses.
// Every error is caught here and turned into a user-visible message; nothing
// crashes the session.
func CustomErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	resp := errorResponse{
		Error:   "internal_error",
		Message: "Something went wrong. Please try again later.",
	}

	var (
		validationErr *apperrors.ValidationError
		storeErr      *apperrors.StoreError
		configErr     *apperrors.ConfigError
		gatewayErr    *apperrors.GatewayError
		httpErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &validationErr):
		// Recoverable input error; message is shown inline, nothing was written.
		code = http.StatusBadRequest
		resp = errorResponse{
			Error:   "validation_error",
			Field:   validationErr.Field,
			Message: validationErr.Message,
		}
	case errors.As(err, &configErr):
		// Fatal to the screen; the client must sign out and retry.
		code = http.StatusConflict
		resp = errorResponse{
			Error:   "config_error",
			Message: configErr.Message,
			Action:  "signout",
		}
	case errors.As(err, &gatewayErr):
		code = http.StatusBadGateway
		resp = errorResponse{
			Error:   "gateway_error",
			Message: "Failed to deliver the notification. Please try again.",
		}
	case errors.As(err, &storeErr):
		code = http.StatusInternalServerError
		resp = errorResponse{
			Error:   "store_error",
			Message: "The operation could not be completed. Please try again.",
		}
	case errors.Is(err, services.ErrMemberNotFound):
		code = http.StatusNotFound
		resp = errorResponse{
			Error:   "not_found",
			Message: "Member not found.",
		}
	case errors.Is(err, services.ErrAlreadyPaid):
		code = http.StatusBadRequest
		resp = errorResponse{
			Error:   "already_paid",
			Message: "Payment is already made. Please check the status.",
		}
	case errors.Is(err, services.ErrInvalidSignature):
		code = http.StatusForbidden
		resp = errorResponse{
			Error:   "invalid_signature",
			Message: "Notification signature did not verify.",
		}
	case errors.As(err, &httpErr):
		code = httpErr.Code
		resp.Error = http.StatusText(code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			resp.Message = msg
		}
	}

	c.Logger().Error(err)

	if jsonErr := c.JSON(code, resp); jsonErr != nil {
		c.Logger().Error(jsonErr)
	}
}
