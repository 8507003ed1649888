// Package errors provides custom error types for the nexichat client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrRequestFailed   = errors.New("request failed")
	ErrEmptyMessage    = errors.New("message cannot be empty")
	ErrInvalidEndpoint = errors.New("invalid endpoint")
)

// FailureKind records where an exchange broke down. It is diagnostic only:
// every kind is handled the same way by the conversation.
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailureTransport
	FailureStatus
	FailureDecode
)

// String returns a short name for the failure kind
func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureStatus:
		return "status"
	case FailureDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// RequestFailedError represents any failed exchange with the chat collaborator
type RequestFailedError struct {
	Kind       FailureKind
	StatusCode int
	Endpoint   string
	Message    string
	Cause      error
	// RequestID correlates the failure with the client's log entries
	RequestID string
}

func (e *RequestFailedError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String() + " failure"
	}
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s [%d]", msg, e.StatusCode)
	}
	if e.Endpoint != "" {
		msg = fmt.Sprintf("%s at %s", msg, e.Endpoint)
	}
	if e.Cause != nil {
		return fmt.Sprintf("request failed: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("request failed: %s", msg)
}

// Unwrap returns the underlying cause
func (e *RequestFailedError) Unwrap() error {
	return e.Cause
}

// Is allows comparison with sentinel errors
func (e *RequestFailedError) Is(target error) bool {
	if target == ErrRequestFailed {
		return true
	}
	_, ok := target.(*RequestFailedError)
	return ok
}

// NewTransportError creates a RequestFailedError for a network-level failure
func NewTransportError(endpoint string, cause error) *RequestFailedError {
	return &RequestFailedError{
		Kind:     FailureTransport,
		Endpoint: endpoint,
		Message:  "transport error",
		Cause:    cause,
	}
}

// NewStatusError creates a RequestFailedError for a non-2xx response
func NewStatusError(statusCode int, endpoint string) *RequestFailedError {
	return &RequestFailedError{
		Kind:       FailureStatus,
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    "unexpected status",
	}
}

// NewDecodeError creates a RequestFailedError for a body that is not a valid reply
func NewDecodeError(endpoint, message string) *RequestFailedError {
	return &RequestFailedError{
		Kind:     FailureDecode,
		Endpoint: endpoint,
		Message:  message,
	}
}

// ConfigError represents an invalid configuration value
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Message)
}

// Is matches ErrInvalidEndpoint for endpoint problems
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidEndpoint && e.Field == "endpoint"
}

// NewConfigError creates a new ConfigError
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// IsRequestFailed reports whether err is (or wraps) a failed exchange
func IsRequestFailed(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}

// GetFailureKind extracts the failure kind from an error chain
func GetFailureKind(err error) FailureKind {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.Kind
	}
	return FailureUnknown
}

// GetHTTPStatus extracts the HTTP status code from an error chain, or 0
func GetHTTPStatus(err error) int {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.StatusCode
	}
	return 0
}

// GetEndpoint extracts the endpoint from an error chain
func GetEndpoint(err error) string {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.Endpoint
	}
	return ""
}

// GetRequestID extracts the request ID from an error chain
func GetRequestID(err error) string {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.RequestID
	}
	return ""
}
