// Package errs provides standardized error types for the fulfillment engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// The taxonomy mirrors how callers must react: not-found and invalid-value
// errors are rejected before any mutation, while ConflictError marks a lost
// race that was rejected atomically with zero side effects.
package errs
