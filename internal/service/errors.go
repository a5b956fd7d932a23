package service

// Error taxonomy for the service boundary. Handlers translate these into
// structured HTTP responses; anything else is a generic failure.

// ValidationError is a user-correctable input problem.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

// NotFoundError means a referenced item or user does not exist.
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string { return e.Detail }

// ConflictError means the request was well formed but the current state
// forbids it, e.g. insufficient stock.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string { return e.Detail }

// AuthError is a failed credential check.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string { return e.Detail }
