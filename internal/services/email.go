package services

import (
	"fmt"
	"net/smtp"
	"os"

	"gymdesk/internal/apperrors"
)

// EmailService sends reminder mail over plain SMTP.
type EmailService struct {
	host     string
	port     string
	user     string
	password string
	from     string
}

func NewEmailService() *EmailService {
	return &EmailService{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		user:     os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASS"),
		from:     os.Getenv("EMAIL_FROM"),
	}
}

func (s *EmailService) SendEmail(to []string, subject, body string) error {
	if s.host == "" || s.port == "" || s.user == "" || s.password == "" {
		return &apperrors.ConfigError{Missing: "SMTP credentials", Message: "email sending is not configured"}
	}

	auth := smtp.PlainAuth("", s.user, s.password, s.host)

	message := []byte(fmt.Sprintf("To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", to[0], subject, body))

	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	if err := smtp.SendMail(addr, auth, s.from, to, message); err != nil {
		return apperrors.NewGateway("email", err)
	}

	return nil
}

// SendExpiryEmail mails a member the same reminder the WhatsApp path sends.
func (s *EmailService) SendExpiryEmail(toName, toEmail, expiryDate string) error {
	subject := "Your gym membership is expiring soon"
	body := ExpiryReminderMessage(toName, expiryDate)
	return s.SendEmail([]string{toEmail}, subject, body)
}
