// Package errs provides the error types shared by the dispatch service.
//
// Each type wraps a sentinel so callers classify with errors.Is:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: bad input (HTTP 400)
//   - ObjectNotFoundError: referenced order, user or notification is absent (HTTP 404)
//   - AccessDeniedError: the principal has no rights over the resource (HTTP 403)
//   - ConflictError: an order transition was attempted from the wrong state (HTTP 409)
//
// Anything else is treated as an upstream failure by the HTTP adapter.
package errs
