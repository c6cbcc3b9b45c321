// Package form implements the field validation and state engine behind the
// registration form.
//
// The package is built from three pieces:
//
//   - Registry: a declarative table mapping each FieldName to a FieldRule
//     (required flag and message, input cap, constraints, cross-field
//     dependencies). DefaultRegistry returns the registration rule set.
//   - Registry.Validate: a single evaluation routine that turns a rule and a
//     candidate value into a Result. The required check short-circuits; the
//     remaining constraints run in order and the first failure wins.
//   - Manager: the mutable store. SetValue revalidates the changed field and,
//     through the registry's dependency graph, every field that reads it, then
//     recomputes aggregate validity before the call returns.
//
// Invalid input is data, never an error: every field always has a Result and
// State.IsValid is the conjunction of all of them.
//
// # Usage
//
//	m := form.NewManager(form.WithLogger(log))
//	m.SetValue(form.Password, form.Text("Abcdef1!"))
//	m.SetValue(form.ConfirmPassword, form.Text("Abcdef1!"))
//	m.SetValue(form.Password, form.Text("Abcdef2!")) // confirmPassword is now invalid
//
//	st := m.State()
//	st.Error(form.ConfirmPassword) // "Passwords do not match"
//
// Error messages are only exposed through State.Error for touched fields, so a
// freshly reset form is invalid without showing any message.
package form
