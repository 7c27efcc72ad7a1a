package domain

import "errors"

// Sentinel errors used by the relay API.
// Handlers translate these to HTTP status codes via a single mapError function.
var (
	ErrEmptyMessage   = errors.New("message must not be empty")
	ErrMessageTooLong = errors.New("message exceeds 20000 bytes")
	ErrInvalidKind    = errors.New("invalid kind: must be plain, text, or markdown")
	ErrDeliveryFailed = errors.New("alert delivery failed")
)
