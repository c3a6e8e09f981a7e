package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gymdesk/internal/apperrors"
)

// WahaService sends WhatsApp messages through a WAHA instance. Reminders are
// fire-and-forget: a failure is reported to the caller, never retried here.
type WahaService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewWahaService() *WahaService {
	url := os.Getenv("WAHA_BASE_URL")
	if url == "" {
		url = "http://waha:3000"
	}
	return &WahaService{
		baseURL: url,
		apiKey:  os.Getenv("WAHA_API_KEY"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *WahaService) makeRequest(method, endpoint string, payload interface{}) error {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		bodyReader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, fmt.Sprintf("%s%s", s.baseURL, endpoint), bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

func (s *WahaService) sendSeen(chatID string) error {
	return s.makeRequest("POST", "/api/sendSeen", map[string]string{
		"chatId":  chatID,
		"session": "default",
	})
}

func (s *WahaService) startTyping(chatID string) error {
	return s.makeRequest("POST", "/api/startTyping", map[string]string{
		"chatId":  chatID,
		"session": "default",
	})
}

func (s *WahaService) stopTyping(chatID string) error {
	return s.makeRequest("POST", "/api/stopTyping", map[string]string{
		"chatId":  chatID,
		"session": "default",
	})
}

func (s *WahaService) sendText(chatID, text string) error {
	return s.makeRequest("POST", "/api/sendText", map[string]string{
		"chatId":  chatID,
		"text":    text,
		"session": "default",
	})
}

// NormalizeChatID turns a roster phone number into a WhatsApp chat ID.
// Bare 10-digit Indian numbers get the 91 country code; group IDs pass
// through untouched.
func NormalizeChatID(chatID string) string {
	chatID = strings.TrimSpace(chatID)

	if strings.HasSuffix(chatID, "@g.us") {
		return chatID
	}

	chatID = strings.TrimSuffix(chatID, "@c.us")

	if len(chatID) == 10 {
		chatID = "91" + chatID
	}

	return chatID + "@c.us"
}

// SendMessage sends a message with authentic behavior (seen -> typing ->
// stop typing -> send).
func (s *WahaService) SendMessage(chatID, text string) error {
	chatID = NormalizeChatID(chatID)

	if err := s.sendSeen(chatID); err != nil {
		return fmt.Errorf("failed to send seen: %w", err)
	}
	time.Sleep(100 * time.Millisecond)

	if err := s.startTyping(chatID); err != nil {
		return fmt.Errorf("failed to start typing: %w", err)
	}
	time.Sleep(150 * time.Millisecond)

	if err := s.stopTyping(chatID); err != nil {
		return fmt.Errorf("failed to stop typing: %w", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := s.sendText(chatID, text); err != nil {
		return fmt.Errorf("failed to send text: %w", err)
	}

	return nil
}

// ExpiryReminderMessage formats the membership expiry reminder text.
func ExpiryReminderMessage(name, expiryDate string) string {
	return fmt.Sprintf("Hi %s, your gym membership expires on %s.", name, expiryDate)
}

// SendExpiryReminder messages a member that their membership is about to
// lapse.
func (s *WahaService) SendExpiryReminder(phone, name, expiryDate string) error {
	if err := s.SendMessage(phone, ExpiryReminderMessage(name, expiryDate)); err != nil {
		return apperrors.NewGateway("whatsapp", err)
	}
	return nil
}
