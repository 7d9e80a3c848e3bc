package domain

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies a tool failure. The set is closed: calling clients key
// retry decisions off these strings, so they must stay stable.
type Kind string

const (
	KindValidation     Kind = "ValidationError"
	KindAuthentication Kind = "AuthenticationError"
	KindPermission     Kind = "PermissionError"
	KindNotFound       Kind = "NotFoundError"
	KindRateLimit      Kind = "RateLimitError"
	KindUnavailable    Kind = "UnavailableError"
	KindUnknown        Kind = "UnknownError"
)

// Retryable reports whether a caller may usefully retry a failure of this
// kind. Validation, permission and not-found failures are deterministic.
func (k Kind) Retryable() bool {
	return k == KindRateLimit || k == KindUnavailable
}

// Envelope is the normalized failure shape returned to the calling client.
// RetryAfter is only populated for rate-limit failures and is expressed in
// seconds, matching the platform's advertised wait.
type Envelope struct {
	Kind       Kind    `json:"kind"`
	Message    string  `json:"message"`
	RetryAfter float64 `json:"retry_after,omitempty"`
}

func (e *Envelope) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds an envelope with a formatted message.
func NewError(kind Kind, format string, args ...any) *Envelope {
	return &Envelope{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewRateLimitError builds a rate-limit envelope carrying the platform's
// advertised wait.
func NewRateLimitError(retryAfter time.Duration, format string, args ...any) *Envelope {
	return &Envelope{
		Kind:       KindRateLimit,
		Message:    fmt.Sprintf(format, args...),
		RetryAfter: retryAfter.Seconds(),
	}
}

// PartialError reports a composite operation that committed some of its
// platform calls before failing. Progress carries the structured payload
// describing what did succeed; Cause is the platform failure that stopped
// the operation. Committed calls are never rolled back.
type PartialError struct {
	Progress any
	Cause    error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("partial success: %v", e.Cause)
}

func (e *PartialError) Unwrap() error { return e.Cause }

// AsPartial extracts a PartialError from an error chain, if present.
func AsPartial(err error) (*PartialError, bool) {
	var pe *PartialError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
