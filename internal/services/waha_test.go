package services

import (
	"testing"
)

func TestNormalizeChatID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "ten digit number gets country code",
			input:    "9876543210",
			expected: "919876543210@c.us",
		},
		{
			name:     "number already carrying country code",
			input:    "919876543210",
			expected: "919876543210@c.us",
		},
		{
			name:     "group id",
			input:    "120363407813232111@g.us",
			expected: "120363407813232111@g.us",
		},
		{
			name:     "ten digit number with suffix",
			input:    "9876543210@c.us",
			expected: "919876543210@c.us",
		},
		{
			name:     "surrounding whitespace",
			input:    " 9876543210 ",
			expected: "919876543210@c.us",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeChatID(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeChatID(%q) = %q; want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestExpiryReminderMessage(t *testing.T) {
	got := ExpiryReminderMessage("Ravi", "2024-07-01")
	want := "Hi Ravi, your gym membership expires on 2024-07-01."
	if got != want {
		t.Errorf("ExpiryReminderMessage = %q; want %q", got, want)
	}
}
