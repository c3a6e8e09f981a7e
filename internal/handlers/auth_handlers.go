package handlers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"gymdesk/internal/apperrors"
	"gymdesk/internal/services"
)

// sessionDuration is how long a login session cookie stays valid.
const sessionDuration = time.Hour * 24 * 5

// AuthHandler handles sign-up, login, logout and password reset.
type AuthHandler struct {
	authClient *auth.Client
	accounts   *services.AccountService
	email      *services.EmailService
}

func NewAuthHandler(authClient *auth.Client, accounts *services.AccountService, email *services.EmailService) *AuthHandler {
	return &AuthHandler{authClient: authClient, accounts: accounts, email: email}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	GymName  string `json:"gym_name"`
}

// HandleSignup registers a gym owner and starts their 14-day trial.
func (h *AuthHandler) HandleSignup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.NewValidation("", "Invalid request body")
	}

	acct, err := h.accounts.SignUp(c.Request().Context(), req.Email, req.Password, req.FullName, req.GymName)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"status":    "success",
		"uid":       acct.UID,
		"trial_end": acct.TrialEnd,
	})
}

// HandleLogin verifies the Firebase ID token and creates a session cookie
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	if h.authClient == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authentication is not configured")
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
	}

	if _, err := h.authClient.VerifyIDToken(c.Request().Context(), tokenString); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	cookieValue, err := h.authClient.SessionCookie(c.Request().Context(), tokenString, sessionDuration)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}

	cookie := &http.Cookie{
		Name:     "session",
		Value:    cookieValue,
		MaxAge:   int(sessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   os.Getenv("ENV") == "production",
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, map[string]string{
		"status": "success",
	})
}

// HandleLogout clears the session cookie
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	cookie := &http.Cookie{
		Name:     "session",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, map[string]string{
		"status": "logged out",
	})
}

type resetRequest struct {
	Email string `json:"email"`
}

// HandleResetPassword mails a password reset link. The response is the same
// whether or not the email exists.
func (h *AuthHandler) HandleResetPassword(c echo.Context) error {
	var req resetRequest
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return apperrors.NewValidation("email", "Please enter your email")
	}

	link, err := h.accounts.PasswordResetLink(c.Request().Context(), req.Email)
	if err == nil {
		// Failures here must not reveal whether the account exists.
		_ = h.email.SendEmail([]string{req.Email}, "Reset your password", "Reset your password: "+link)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "success",
		"message": "If that email exists, a password reset link has been sent.",
	})
}
