package form

import "errors"

var (
	// ErrDuplicateRule is returned when two rules are registered for the same field.
	ErrDuplicateRule = errors.New("duplicate field rule")

	// ErrUnknownDependency is returned when a rule depends on a field without a rule.
	ErrUnknownDependency = errors.New("rule depends on unknown field")

	// ErrSelfDependency is returned when a rule lists its own field as a dependency.
	ErrSelfDependency = errors.New("rule depends on itself")

	// ErrEmptyFieldName is returned for rules without a field name.
	ErrEmptyFieldName = errors.New("field name is empty")
)
