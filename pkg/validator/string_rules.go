package validator

import (
	"fmt"
	"unicode/utf16"
)

// Length counts UTF-16 code units, so characters outside the Basic
// Multilingual Plane count twice as they do in a browser input.
func Length(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// MinLenString requires at least min characters as counted by Length.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return Length(value) >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at least %d characters long", min),
			TranslationKey: "validation.min_length",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}
