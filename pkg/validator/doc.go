// Package validator validates request input.
//
// Two styles are available. Rules are small values built from plain Go
// data and evaluated with Apply:
//
//	err := validator.Apply(
//		validator.Required("text", in.Text),
//		validator.MaxLen("text", in.Text, 140),
//	)
//
// Request checkers work on the parsed body. The Stage attaches one per
// request; handlers chain checks by field name and read the result:
//
//	v, _ := validator.FromRequest(r)
//	v.Check("rating", "Rating must be between 1 and 5").NotEmpty().IsInt().Gte(1).Lte(5)
//	if err := v.Errors(); err != nil {
//		// show validator.ExtractValidationErrors(err).Messages()
//	}
//
// The lte and gte custom validators compare loosely: two strings compare
// lexically, otherwise both sides are read as numbers and a value that is
// not a number fails.
//
// # Error Handling
//
// Failures are collected as ValidationErrors, which matches
// ErrValidationFailed with errors.Is. The checker never writes a response.
package validator
