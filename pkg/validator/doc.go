// Package validator provides small, declarative validation rules used by the
// registration form engine.
//
// A Rule pairs a boolean Check function with error metadata. Rules are plain
// values with no hidden state, so they can be built per keystroke and thrown
// away. First evaluates rules in order and stops at the first failure, since
// field-level validation shows one message per field.
//
// # Usage
//
//	err := validator.First(
//	    validator.RequiredComparable("email", email),
//	    validator.MatchesPattern("email", email, emailPattern, "email").WithMessage("Invalid email format"),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    msg := verrs[0].Message
//	}
//
// # Error Handling
//
// ValidationErrors implements the error interface so it can be returned and
// detected with errors.As. Field errors are read back with Get and Fields.
// Length counts characters in UTF-16 code units.
package validator
