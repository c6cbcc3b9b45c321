package form

import (
	"fmt"
	"regexp"

	"github.com/dmitrymomot/regform/pkg/validator"
)

// whitespace is the JavaScript \s class. RE2's \s is ASCII only.
const whitespace = `\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var (
	emailPattern  = regexp.MustCompile(`^[^` + whitespace + `]+@[^` + whitespace + `]+\.[^` + whitespace + `]+$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

	// passwordPolicy is the RE2 form of ^(?=.*[a-z])(?=.*[A-Z])(?=.*\d)(?=.*[!@#$%^&*]).{8,}$
	passwordPolicy = validator.PasswordStrengthConfig{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireDigits:    true,
		RequireSpecial:   true,
		MinCharClasses:   4,
		SpecialChars:     "!@#$%^&*",
		SingleLine:       true,
	}

	defaultRegistry = MustNewRegistry(RegistrationRules()...)
)

// RegistrationRules returns the rule table of the registration form.
func RegistrationRules() []FieldRule {
	return []FieldRule{
		{
			Field:           FullName,
			Required:        true,
			RequiredMessage: "Full Name is required",
			Constraints:     []Constraint{MinLength(3, "Minimum 3 characters")},
		},
		{
			Field:           Email,
			Required:        true,
			RequiredMessage: "Email is required",
			Constraints:     []Constraint{Pattern(emailPattern, "Invalid email format")},
		},
		{
			Field:           Mobile,
			Required:        true,
			RequiredMessage: "Mobile number is required",
			MaxLength:       10,
			Constraints:     []Constraint{Pattern(mobilePattern, "Enter a valid 10-digit number")},
		},
		{
			Field:           Password,
			Required:        true,
			RequiredMessage: "Password is required",
			Constraints: []Constraint{
				PasswordStrength(passwordPolicy, "Min 8 chars, with upper/lowercase, number, and special char"),
			},
		},
		{
			Field:           ConfirmPassword,
			Required:        true,
			RequiredMessage: "Confirm Password is required",
			DependsOn:       []FieldName{Password},
			Constraints:     []Constraint{MatchesField(Password, "Passwords do not match")},
		},
		{
			Field:           Terms,
			Kind:            KindCheckbox,
			Required:        true,
			RequiredMessage: "You must accept the terms",
		},
	}
}

// Registry is an immutable lookup table of field rules plus the reverse
// dependency graph derived from each rule's DependsOn.
type Registry struct {
	order      []FieldName
	rules      map[FieldName]FieldRule
	dependents map[FieldName][]FieldName
}

// DefaultRegistry returns the shared registration form registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// NewRegistry builds a registry from rules, keeping their order as the form order.
func NewRegistry(rules ...FieldRule) (*Registry, error) {
	r := &Registry{
		order:      make([]FieldName, 0, len(rules)),
		rules:      make(map[FieldName]FieldRule, len(rules)),
		dependents: make(map[FieldName][]FieldName),
	}

	for _, rule := range rules {
		if rule.Field == "" {
			return nil, ErrEmptyFieldName
		}
		if _, exists := r.rules[rule.Field]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, rule.Field)
		}
		r.order = append(r.order, rule.Field)
		r.rules[rule.Field] = rule
	}

	for _, field := range r.order {
		for _, dep := range r.rules[field].DependsOn {
			if dep == field {
				return nil, fmt.Errorf("%w: %s", ErrSelfDependency, field)
			}
			if _, ok := r.rules[dep]; !ok {
				return nil, fmt.Errorf("%w: %s depends on %s", ErrUnknownDependency, field, dep)
			}
			r.dependents[dep] = append(r.dependents[dep], field)
		}
	}

	return r, nil
}

// MustNewRegistry works like NewRegistry but panics on invalid rule sets.
func MustNewRegistry(rules ...FieldRule) *Registry {
	r, err := NewRegistry(rules...)
	if err != nil {
		panic(fmt.Sprintf("failed to build field registry: %v", err))
	}
	return r
}

// Rule returns the rule for field. Unknown fields get an empty rule that accepts anything.
func (r *Registry) Rule(field FieldName) FieldRule {
	if rule, ok := r.rules[field]; ok {
		return rule
	}
	return FieldRule{Field: field}
}

func (r *Registry) Has(field FieldName) bool {
	_, ok := r.rules[field]
	return ok
}

// Lookup resolves a raw field name, e.g. from a request path.
func (r *Registry) Lookup(name string) (FieldName, bool) {
	field := FieldName(name)
	return field, r.Has(field)
}

// Fields returns the registered fields in form order.
func (r *Registry) Fields() []FieldName {
	return append([]FieldName(nil), r.order...)
}

// Dependents returns the fields whose rules read field directly.
func (r *Registry) Dependents(field FieldName) []FieldName {
	return append([]FieldName(nil), r.dependents[field]...)
}

// affected returns field followed by all of its transitive dependents, each once.
func (r *Registry) affected(field FieldName) []FieldName {
	out := []FieldName{field}
	seen := map[FieldName]bool{field: true}
	for i := 0; i < len(out); i++ {
		for _, dep := range r.dependents[out[i]] {
			if !seen[dep] {
				seen[dep] = true
				out = append(out, dep)
			}
		}
	}
	return out
}
