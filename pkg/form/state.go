package form

// State is a point-in-time copy of the form.
type State struct {
	Values  Values               `json:"values"`
	Results map[FieldName]Result `json:"results"`
	Touched map[FieldName]bool   `json:"touched"`
	IsValid bool                 `json:"isValid"`
}

// Result returns the validation result of field.
func (s State) Result(field FieldName) Result {
	return s.Results[field]
}

// Error returns the message to display for field, or "" when the field is
// valid or has not been touched since the last reset.
func (s State) Error(field FieldName) string {
	if !s.Touched[field] {
		return ""
	}
	return s.Results[field].Message
}

// ShowValid reports whether field should be rendered as valid:
// touched, non-empty and passing.
func (s State) ShowValid(field FieldName) bool {
	if !s.Touched[field] || !s.Results[field].Valid {
		return false
	}
	v := s.Values[field]
	return v.Text != "" || v.Checked
}

// VisibleErrors returns the displayable message of every touched, invalid field.
func (s State) VisibleErrors() map[FieldName]string {
	out := make(map[FieldName]string)
	for field := range s.Results {
		if msg := s.Error(field); msg != "" {
			out[field] = msg
		}
	}
	return out
}

func (s State) clone() State {
	out := State{
		Values:  s.Values.Clone(),
		Results: make(map[FieldName]Result, len(s.Results)),
		Touched: make(map[FieldName]bool, len(s.Touched)),
		IsValid: s.IsValid,
	}
	for k, v := range s.Results {
		out.Results[k] = v
	}
	for k, v := range s.Touched {
		out.Touched[k] = v
	}
	return out
}
