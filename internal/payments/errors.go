package payments

import "errors"

// One terminal error per failure mode; handlers map these onto stable HTTP
// responses. Nothing here is retried.
var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrPaymentNotFound    = errors.New("payment reference not found")
	ErrReferenceMismatch  = errors.New("payment reference mismatch")
	ErrVerificationFailed = errors.New("transaction verification failed")
	ErrNotConfigured      = errors.New("server configuration error")
)
