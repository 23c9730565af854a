package exchange

import (
	"errors"
	"fmt"
)

// Kind classifies a client error. The session manager handles auth errors
// internally; every other kind propagates to the caller unchanged.
type Kind int

const (
	// KindTransport is a network or TLS failure reaching an endpoint.
	KindTransport Kind = iota + 1

	// KindAuth means the current session token is missing or no longer
	// accepted. Auth errors are resolved internally by re-login and are
	// never surfaced by Client.Execute.
	KindAuth

	// KindLogin is a failure of the certificate login call itself, either
	// rejected credentials or a transport failure during login.
	KindLogin

	// KindRemote is a business error reported by the exchange with an
	// error code outside the session-invalid set.
	KindRemote

	// KindProtocol is a request/response protocol violation: an envelope
	// with neither result nor error, with both, or with a correlation ID
	// that does not match the request.
	KindProtocol
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindLogin:
		return "login"
	case KindRemote:
		return "remote"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// Error is a structured client error carrying a kind, the exchange error
// code when one was reported, and an optional cause.
type Error struct {
	Kind    Kind   // Error classification
	Code    string // Exchange error code (e.g. "INVALID_SESSION_INFORMATION"), if any
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("[%s] %s", e.Code, msg)
	}
	if e.Details != "" {
		msg = msg + ": " + e.Details
	}
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support. Two exchange errors match when their
// kinds match and, if the target names a code, their codes match too.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Code == "" || e.Code == t.Code
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(details string) *Error {
	return &Error{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *Error) WithCause(cause error) *Error {
	return &Error{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// NewError creates a new Error with the given kind and message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// ============================================================================
// Auth errors
// ============================================================================

var (
	// ErrNoSession indicates no session token is present; the client has
	// never logged in or the cell was never populated.
	ErrNoSession = NewError(KindAuth, "no session token present")

	// ErrSessionRejected indicates the exchange rejected the session token
	// as invalid or expired.
	ErrSessionRejected = NewError(KindAuth, "session token invalid or expired")
)

// ============================================================================
// Login errors
// ============================================================================

var (
	// ErrLoginRejected indicates the identity service rejected the
	// credentials; Details carries the login status string.
	ErrLoginRejected = NewError(KindLogin, "login rejected")

	// ErrLoginTransport indicates the identity endpoint could not be
	// reached or TLS negotiation failed during login.
	ErrLoginTransport = NewError(KindLogin, "login transport failure")

	// ErrLoginAborted indicates the login retry loop was cancelled before
	// a login attempt succeeded.
	ErrLoginAborted = NewError(KindLogin, "login aborted")
)

// ============================================================================
// Transport and protocol errors
// ============================================================================

var (
	// ErrTransport indicates a network failure reaching an endpoint.
	ErrTransport = NewError(KindTransport, "transport failure")

	// ErrProtocol indicates a malformed request/response exchange.
	ErrProtocol = NewError(KindProtocol, "protocol violation")
)

// ErrorKind extracts the kind from an error chain, or 0 if the chain
// contains no exchange error.
func ErrorKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ErrorCode extracts the exchange error code from an error chain, or ""
// when none was reported.
func ErrorCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsAuthError reports whether the error means the session token is missing
// or no longer accepted.
func IsAuthError(err error) bool {
	return ErrorKind(err) == KindAuth
}

// IsTransportError reports whether the error is a network/TLS failure.
func IsTransportError(err error) bool {
	return ErrorKind(err) == KindTransport
}

// IsLoginError reports whether the error came from the login path.
func IsLoginError(err error) bool {
	return ErrorKind(err) == KindLogin
}

// IsRemoteError reports whether the error is a non-auth business error
// reported by the exchange.
func IsRemoteError(err error) bool {
	return ErrorKind(err) == KindRemote
}

// IsProtocolError reports whether the error is an envelope violation.
func IsProtocolError(err error) bool {
	return ErrorKind(err) == KindProtocol
}
