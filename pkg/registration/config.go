package registration

import "time"

// Config holds engine settings read from the environment.
type Config struct {
	NotificationDuration        time.Duration `env:"NOTIFICATION_DURATION" envDefault:"3s"`
	FailureNotificationDuration time.Duration `env:"FAILURE_NOTIFICATION_DURATION" envDefault:"0s"`
	SuccessMessage              string        `env:"SUCCESS_MESSAGE" envDefault:"Registration successfully submitted"`
	FailureMessage              string        `env:"FAILURE_MESSAGE" envDefault:"Registration could not be submitted. Please try again."`
	PasswordHashCost            int           `env:"PASSWORD_HASH_COST" envDefault:"10"`
	EventBuffer                 int           `env:"EVENT_BUFFER" envDefault:"16"`
}

// DefaultConfig returns the settings used when no environment is configured.
func DefaultConfig() Config {
	return Config{
		NotificationDuration: 3 * time.Second,
		SuccessMessage:       "Registration successfully submitted",
		FailureMessage:       "Registration could not be submitted. Please try again.",
		PasswordHashCost:     10,
		EventBuffer:          16,
	}
}
