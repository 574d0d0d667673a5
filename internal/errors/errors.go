package errors

import "errors"

// This package defines a centralized set of sentinel errors for the application.
// Services wrap them with additional context and the API layer uses `errors.Is()`
// to map them to HTTP status codes, keeping transport concerns out of the
// business logic.

var (
	// ErrNotFound signifies that a requested resource could not be located,
	// such as a saved session with an unknown identifier.
	// This is typically mapped to a 404 Not Found HTTP status.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client (or the
	// process configuration) failed validation.
	// This is typically mapped to a 400 Bad Request HTTP status.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that an operation could not be completed because
	// it conflicts with the current state, e.g. submitting a message while a
	// completion exchange is still outstanding.
	// This is typically mapped to a 409 Conflict HTTP status.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the caller is not allowed to perform the
	// requested action.
	// This is typically mapped to a 403 Forbidden HTTP status.
	ErrPermission = errors.New("permission denied")

	// ErrInternal signifies an unexpected failure, for example the archive
	// storage slot could not be written.
	// This is typically mapped to a 500 Internal Server Error HTTP status.
	ErrInternal = errors.New("internal server error")
)
