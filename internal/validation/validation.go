// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or length limits) defined in struct tags
// and turns validation errors into messages the client can
// understand
package validation
