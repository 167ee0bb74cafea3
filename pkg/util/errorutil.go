package util

import (
	"errors"
	"fmt"
)

// AuthReason distinguishes why a credential problem occurred.
type AuthReason string

const (
	// AuthMissing means no credential was stored; the operation was
	// never attempted against the network.
	AuthMissing AuthReason = "missing"
	// AuthExpired means the server rejected the presented credential.
	AuthExpired AuthReason = "expired"
)

// AuthError reports a credential problem.
type AuthError struct {
	Reason AuthReason
}

func (e *AuthError) Error() string {
	if e.Reason == AuthExpired {
		return "session expired, please log in again"
	}
	return "no session found, please log in"
}

// ServerError is a non-success response carrying a body.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// NetworkError means the request was sent but no response arrived.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error, please check your connection"
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewAuthMissing constructs an AuthError for an absent credential.
func NewAuthMissing() error {
	return &AuthError{Reason: AuthMissing}
}

// NewAuthExpired constructs an AuthError for a rejected credential.
func NewAuthExpired() error {
	return &AuthError{Reason: AuthExpired}
}

// NewServerError constructs a ServerError from a response.
func NewServerError(status int, message string) error {
	return &ServerError{StatusCode: status, Message: message}
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(err error) error {
	return &NetworkError{Err: err}
}

// IsAuthMissing reports whether err is an absent-credential error.
func IsAuthMissing(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) && authErr.Reason == AuthMissing
}

// IsAuthExpired reports whether err is a session-expiry error.
func IsAuthExpired(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) && authErr.Reason == AuthExpired
}

// UserMessage maps any error to the string surfaced to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Error()
	}
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Error()
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Error()
	}
	return err.Error()
}
