package errors

import "errors"

// Centralized sentinel errors for the application. Services return these
// (usually wrapped with fmt.Errorf and %w) instead of HTTP status codes; the
// API layer maps them to responses with errors.Is. This keeps business logic
// decoupled from the transport.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data failed business rule validation
	// before any external call was made.
	// Mapped to 422 Unprocessable Entity.
	ErrValidation = errors.New("validation failed")

	// ErrPermission signifies that the caller does not own the resource it is
	// trying to modify or delete.
	// Mapped to 403 Forbidden.
	ErrPermission = errors.New("permission denied")

	// ErrRetrievalUnavailable signifies that the embedding provider or vector
	// index could not be reached. The query pipeline recovers from this
	// locally by degrading to context-free generation, so it normally never
	// reaches the API layer; document ingestion surfaces it as a 500.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")

	// ErrGenerationUnavailable signifies a transport-level failure talking to
	// the generative service (timeout, malformed response). Distinct from a
	// content-policy refusal, which is handled inside the generation
	// orchestrator and never surfaced directly.
	// Mapped to 500 Internal Server Error.
	ErrGenerationUnavailable = errors.New("generation unavailable")

	// ErrInternal signifies an unexpected server-side error. Used to avoid
	// leaking implementation details to the client.
	// Mapped to 500 Internal Server Error.
	ErrInternal = errors.New("internal server error")
)
