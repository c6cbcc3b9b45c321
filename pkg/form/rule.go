package form

import (
	"regexp"
	"unicode/utf16"

	"github.com/dmitrymomot/regform/pkg/validator"
)

// Kind describes how a field's Value is read.
type Kind int

const (
	KindText Kind = iota
	KindCheckbox
)

// Constraint builds the validation rule for a non-empty value.
// values carries the whole form so cross-field constraints can read siblings.
type Constraint func(field FieldName, value Value, values Values) validator.Rule

// FieldRule is the declarative definition of one field's validation.
type FieldRule struct {
	Field           FieldName
	Kind            Kind
	Required        bool
	RequiredMessage string
	// MaxLength caps text input in UTF-16 code units, like an input's maxlength.
	// Zero means no cap.
	MaxLength int
	// DependsOn lists fields whose values the constraints read.
	// A change to any of them revalidates this field.
	DependsOn   []FieldName
	Constraints []Constraint
}

func (r FieldRule) isEmpty(v Value) bool {
	if r.Kind == KindCheckbox {
		return !v.Checked
	}
	return v.Text == ""
}

func (r FieldRule) requiredRule(v Value) validator.Rule {
	if r.Kind == KindCheckbox {
		return validator.RequiredComparable(string(r.Field), v.Checked).WithMessage(r.RequiredMessage)
	}
	return validator.RequiredComparable(string(r.Field), v.Text).WithMessage(r.RequiredMessage)
}

// normalize applies input-level restrictions the way the input element would.
func (r FieldRule) normalize(v Value) Value {
	if r.Kind == KindCheckbox {
		return Value{Checked: v.Checked}
	}
	if r.MaxLength > 0 && validator.Length(v.Text) > r.MaxLength {
		v.Text = truncate(v.Text, r.MaxLength)
	}
	return Value{Text: v.Text}
}

// truncate keeps the longest prefix of s within max UTF-16 code units
// without splitting a character.
func truncate(s string, max int) string {
	n := 0
	for i, r := range s {
		l := utf16.RuneLen(r)
		if l < 0 {
			l = 1
		}
		if n+l > max {
			return s[:i]
		}
		n += l
	}
	return s
}

// MinLength requires at least n characters.
func MinLength(n int, msg string) Constraint {
	return func(field FieldName, value Value, _ Values) validator.Rule {
		return validator.MinLenString(string(field), value.Text, n).WithMessage(msg)
	}
}

// Pattern requires the text to match re.
func Pattern(re *regexp.Regexp, msg string) Constraint {
	return func(field FieldName, value Value, _ Values) validator.Rule {
		return validator.MatchesPattern(string(field), value.Text, re, re.String()).WithMessage(msg)
	}
}

// PasswordStrength requires the text to satisfy the given password policy.
func PasswordStrength(cfg validator.PasswordStrengthConfig, msg string) Constraint {
	return func(field FieldName, value Value, _ Values) validator.Rule {
		return validator.StrongPassword(string(field), value.Text, cfg).WithMessage(msg)
	}
}

// MatchesField requires the text to equal the live text of other.
// The owning rule must list other in DependsOn.
func MatchesField(other FieldName, msg string) Constraint {
	return func(field FieldName, value Value, values Values) validator.Rule {
		return validator.EqualTo(string(field), value.Text, string(other), values.Text(other)).WithMessage(msg)
	}
}
