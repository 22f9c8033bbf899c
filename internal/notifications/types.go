package notifications

import "time"

// Type categorises the event that triggered the notification.
type Type string

const (
	TypePasswordReset Type = "password_reset"
	TypeWelcome       Type = "welcome"
)

// Notification is the JSON payload posted to the webhook. The receiver is
// expected to turn it into an email.
type Notification struct {
	Type      Type      `json:"type"`
	Email     string    `json:"email"`
	Link      string    `json:"link,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
	CreatedAt time.Time `json:"created_at"`
}
