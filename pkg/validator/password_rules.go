package validator

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex = regexp.MustCompile(`[a-z]`)
	digitRegex     = regexp.MustCompile(`[0-9]`)
	lineBreakRegex = regexp.MustCompile(`[\n\r\x{2028}\x{2029}]`)
)

// DefaultSpecialChars is the set of characters counted as "special" when
// PasswordStrengthConfig.SpecialChars is empty.
const DefaultSpecialChars = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?~`"

type PasswordStrengthConfig struct {
	MinLength        int
	MaxLength        int // 0 means unlimited
	RequireUppercase bool
	RequireLowercase bool
	RequireDigits    bool
	RequireSpecial   bool
	MinCharClasses   int    // Minimum number of different character classes required
	SpecialChars     string // Empty means DefaultSpecialChars
	SingleLine       bool   // Reject line breaks anywhere in the value
}

func (c PasswordStrengthConfig) specials() string {
	if c.SpecialChars == "" {
		return DefaultSpecialChars
	}
	return c.SpecialChars
}

func StrongPassword(field, value string, config PasswordStrengthConfig) Rule {
	return Rule{
		Check: func() bool {
			length := Length(value)
			if length < config.MinLength {
				return false
			}
			if config.MaxLength > 0 && length > config.MaxLength {
				return false
			}
			if config.SingleLine && lineBreakRegex.MatchString(value) {
				return false
			}

			hasUpper := uppercaseRegex.MatchString(value)
			hasLower := lowercaseRegex.MatchString(value)
			hasDigit := digitRegex.MatchString(value)
			hasSpecial := strings.ContainsAny(value, config.specials())

			charClasses := 0
			for _, ok := range []bool{hasUpper, hasLower, hasDigit, hasSpecial} {
				if ok {
					charClasses++
				}
			}

			if config.RequireUppercase && !hasUpper {
				return false
			}
			if config.RequireLowercase && !hasLower {
				return false
			}
			if config.RequireDigits && !hasDigit {
				return false
			}
			if config.RequireSpecial && !hasSpecial {
				return false
			}

			return charClasses >= config.MinCharClasses
		},
		Error: ValidationError{
			Field:          field,
			Message:        passwordMessage(config),
			TranslationKey: "validation.password_strength",
			TranslationValues: map[string]any{
				"field":             field,
				"min_length":        config.MinLength,
				"max_length":        config.MaxLength,
				"require_uppercase": config.RequireUppercase,
				"require_lowercase": config.RequireLowercase,
				"require_digits":    config.RequireDigits,
				"require_special":   config.RequireSpecial,
				"min_char_classes":  config.MinCharClasses,
			},
		},
	}
}

func passwordMessage(config PasswordStrengthConfig) string {
	if config.MaxLength > 0 {
		return fmt.Sprintf("password must be %d-%d characters with required character types", config.MinLength, config.MaxLength)
	}
	return fmt.Sprintf("password must be at least %d characters with required character types", config.MinLength)
}
