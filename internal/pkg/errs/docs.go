// Package errs provides standardized error types for the cargolink application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Two families of errors live here:
//
//   - Value errors used by constructors and setters:
//     ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     ObjectNotFoundError
//
//   - The domain error taxonomy used at operation boundaries:
//     ValidationError (recoverable input problems, reports every violation),
//     StateConflictError (invalid transition or stale state, re-fetch before retry),
//     ExternalServiceError (rate/distance/payment collaborator failures),
//     BlockedAccountError (outstanding storage debt, names the remedy)
//
// Each error type follows a consistent pattern: a sentinel error variable,
// a struct with fields for error details, constructor functions, and
// Error()/Unwrap() methods so errors.Is can classify any error against
// its sentinel.
package errs
