package validator_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/regform/pkg/validator"
)

func TestMatchesPattern(t *testing.T) {
	t.Parallel()
	digits := regexp.MustCompile(`^[0-9]{10}$`)

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"ten digits", "9876543210", true},
		{"nine digits", "987654321", false},
		{"letters", "98765432ab", false},
		{"empty", "", false},
		{"whitespace", "          ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rule := validator.MatchesPattern("mobile", tt.value, digits, "10-digit number")
			assert.Equal(t, tt.want, rule.Check())
		})
	}

	rule := validator.MatchesPattern("mobile", "x", digits, "10-digit number")
	assert.Equal(t, "must match 10-digit number pattern", rule.Error.Message)
	assert.Equal(t, `^[0-9]{10}$`, rule.Error.TranslationValues["pattern"])
}
