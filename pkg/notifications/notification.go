package notifications

import (
	"time"
)

// Type represents the notification type/severity.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
)

// Notification is a single message shown to the user.
type Notification struct {
	ID        string     `json:"id"`
	Type      Type       `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// IsExpired reports whether the notification has an expiry at or before now.
func (n Notification) IsExpired(now time.Time) bool {
	if n.ExpiresAt == nil {
		return false
	}
	return !now.Before(*n.ExpiresAt)
}

// Success builds a success notification.
func Success(title, message string) Notification {
	return Notification{Type: TypeSuccess, Title: title, Message: message}
}

// Failure builds an error notification.
func Failure(title, message string) Notification {
	return Notification{Type: TypeError, Title: title, Message: message}
}

// State is what a consumer renders. Notification is nil while hidden.
type State struct {
	Visible      bool          `json:"visible"`
	Notification *Notification `json:"notification,omitempty"`
}

// CreatedAt returns when the visible notification was shown.
func (s State) CreatedAt() (time.Time, bool) {
	if !s.Visible || s.Notification == nil {
		return time.Time{}, false
	}
	return s.Notification.CreatedAt, true
}
