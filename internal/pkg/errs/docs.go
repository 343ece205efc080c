// Package errs provides standardized error types for the dispatch service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type carrying error details
//   - constructor functions with and without cause
//   - Error() method for formatting and Unwrap() for errors.Is/As support
//
// This keeps error classification uniform: callers match on the sentinel via
// errors.Is, or extract details via errors.As against the struct type.
package errs
