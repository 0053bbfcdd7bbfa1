// Package errs provides standardized error types for the order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the failure classes of the order lifecycle:
//   - ValueIsRequiredError: a required request value is missing (validation)
//   - ValueIsInvalidError: a request value is present but unacceptable (validation)
//   - ObjectNotFoundError: an order id is unknown to the store
//   - NotificationError: an email or real-time delivery failed; logged, never surfaced
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so callers can classify with errors.Is
package errs
