// Package errs provides standardized error types for the marketplace application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the error taxonomy the service surfaces to callers:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: a referenced entity is absent
//   - NotAuthorizedError: the caller lacks rights over the entity
//   - InvalidOperationError: a valid request against the wrong entity state
//   - ConflictError: a store-enforced uniqueness violation
//   - OperationTimedOutError: a transient store failure, retry with care
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// The HTTP adapter maps each sentinel to a stable status code, so component
// code never deals in transport concerns and transport code never inspects
// message strings.
package errs
