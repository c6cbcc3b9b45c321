package form

// FieldName identifies one input of the registration form.
type FieldName string

const (
	FullName        FieldName = "fullName"
	Email           FieldName = "email"
	Mobile          FieldName = "mobile"
	Password        FieldName = "password"
	ConfirmPassword FieldName = "confirmPassword"
	Terms           FieldName = "terms"
)

// Fields returns the registration fields in form order.
func Fields() []FieldName {
	return []FieldName{FullName, Email, Mobile, Password, ConfirmPassword, Terms}
}

func (f FieldName) String() string {
	return string(f)
}

// Value is the raw input of a single field. Text inputs use Text, checkboxes use Checked.
type Value struct {
	Text    string `json:"value,omitempty"`
	Checked bool   `json:"checked,omitempty"`
}

// Text returns a text input value.
func Text(s string) Value {
	return Value{Text: s}
}

// Checked returns a checkbox value.
func Checked(b bool) Value {
	return Value{Checked: b}
}

// Values holds the current input of every field. Missing fields read as empty.
type Values map[FieldName]Value

func (v Values) Get(field FieldName) Value {
	return v[field]
}

func (v Values) Text(field FieldName) string {
	return v[field].Text
}

func (v Values) Checked(field FieldName) bool {
	return v[field].Checked
}

// Clone returns an independent copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}
