// Package validation validates configuration and task input.
//
// Validate checks structs tagged for go-playground/validator and reports
// failing fields by their config key. Validator is a small fluent checker
// for values that are easier to test by hand. Both return
// *errors.AppError with code INVALID_INPUT.
package validation
