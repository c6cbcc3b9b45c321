package form

import (
	"github.com/dmitrymomot/regform/pkg/validator"
)

// Result is the outcome of validating one field. Message is empty when Valid.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Validate evaluates field's rule against value; values supplies the rest of
// the form for cross-field constraints. It is pure: equal inputs give equal results.
func (r *Registry) Validate(field FieldName, value Value, values Values) Result {
	rule := r.Rule(field)

	if rule.Required {
		if err := validator.First(rule.requiredRule(value)); err != nil {
			return failed(err)
		}
	} else if rule.isEmpty(value) {
		return Result{Valid: true}
	}

	rules := make([]validator.Rule, 0, len(rule.Constraints))
	for _, constraint := range rule.Constraints {
		rules = append(rules, constraint(field, value, values))
	}
	if err := validator.First(rules...); err != nil {
		return failed(err)
	}

	return Result{Valid: true}
}

// ValidateForm validates every registered field against values and returns
// validator.ValidationErrors holding one message per failing field, or nil.
func (r *Registry) ValidateForm(values Values) error {
	var errs validator.ValidationErrors
	for _, field := range r.order {
		if res := r.Validate(field, values.Get(field), values); !res.Valid {
			errs.Add(validator.ValidationError{Field: string(field), Message: res.Message})
		}
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func failed(err error) Result {
	if verrs := validator.ExtractValidationErrors(err); len(verrs) > 0 {
		return Result{Message: verrs[0].Message}
	}
	return Result{Message: err.Error()}
}
