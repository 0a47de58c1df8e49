// Package apperror defines the typed errors shared by the catalog service and
// the HTTP handlers.
//
// NotFound and Validation errors propagate to the API boundary where StatusCode
// maps them to 404 and 400. ProviderUnavailable exists for logging and metrics;
// the reconcile engine never returns it to callers.
package apperror
