package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component names the package or subsystem emitting the record.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event names the input event being handled, e.g. "field_change".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Field records a form field name. Never pass field values: they may hold passwords.
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// NotificationID records a notification identifier.
func NotificationID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("notification_id", id)
}

// Outcome records the result status of an operation.
func Outcome(status string) slog.Attr {
	return slog.String("outcome", status)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
