package requiem

import (
	"errors"
	"fmt"
)

// ErrRequestConsumed is returned by Send when a request is sent twice.
// Requests are single-use; construct a new one per call.
var ErrRequestConsumed = errors.New("requiem: request already sent")

// ErrorCode classifies client errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates the context expired during the call.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates a transport-level failure (refused, DNS, etc).
	ErrCodeConnection
	// ErrCodeAuth indicates an authentication/authorization failure (401/403).
	ErrCodeAuth
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeValidation indicates a client-side build error or other 4xx.
	ErrCodeValidation
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer
	// ErrCodeRedirect indicates a redirect response without a Location header.
	ErrCodeRedirect
	// ErrCodeRedirectLoop indicates the redirect hop bound was exceeded.
	ErrCodeRedirectLoop
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeServer:
		return "server"
	case ErrCodeRedirect:
		return "redirect"
	case ErrCodeRedirectLoop:
		return "redirect_loop"
	default:
		return "unknown"
	}
}

// Error is a structured client error with classification. HTTP error
// statuses (>= 400) always surface as an *Error carrying the exact status
// code and the response body.
type Error struct {
	// StatusCode is the HTTP status code (0 for transport-level errors).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Body is the response body, when one was received.
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("requiem: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("requiem: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{
		Code:    ErrCodeTimeout,
		Message: err.Error(),
		Err:     err,
	}
}

// NewConnectionError creates a transport-level error.
func NewConnectionError(err error) *Error {
	return &Error{
		Code:    ErrCodeConnection,
		Message: err.Error(),
		Err:     err,
	}
}

// NewValidationError creates a client-side validation error.
func NewValidationError(msg string) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// NewRedirectError creates an error for a redirect without a Location header.
func NewRedirectError(statusCode int) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeRedirect,
		Message:    fmt.Sprintf("HTTP %d without Location header", statusCode),
	}
}

// NewRedirectLoopError creates an error for an exceeded redirect bound.
func NewRedirectLoopError(limit int, url string) *Error {
	return &Error{
		Code:    ErrCodeRedirectLoop,
		Message: fmt.Sprintf("more than %d redirects (last location %s)", limit, url),
	}
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for status codes below 400.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	switch {
	case statusCode < 400:
		return nil
	case statusCode == 401 || statusCode == 403:
		return &Error{
			StatusCode: statusCode,
			Code:       ErrCodeAuth,
			Message:    fmt.Sprintf("HTTP %d", statusCode),
			Body:       body,
		}
	case statusCode == 404:
		return &Error{
			StatusCode: statusCode,
			Code:       ErrCodeNotFound,
			Message:    "HTTP 404",
			Body:       body,
		}
	case statusCode == 429:
		return &Error{
			StatusCode: statusCode,
			Code:       ErrCodeRateLimit,
			Message:    "HTTP 429",
			Body:       body,
		}
	case statusCode < 500:
		return &Error{
			StatusCode: statusCode,
			Code:       ErrCodeValidation,
			Message:    fmt.Sprintf("HTTP %d", statusCode),
			Body:       body,
		}
	default:
		return &Error{
			StatusCode: statusCode,
			Code:       ErrCodeServer,
			Message:    fmt.Sprintf("HTTP %d", statusCode),
			Body:       body,
		}
	}
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsConnection checks if an error is a transport-level error.
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsAuth checks if an error is an authentication error.
func IsAuth(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeAuth
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNotFound
}

// IsRateLimit checks if an error is a rate-limit error.
func IsRateLimit(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeRateLimit
}

// IsServerError checks if an error is a server error.
func IsServerError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeServer
}

// IsRedirectLoop checks if an error is an exceeded redirect bound.
func IsRedirectLoop(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeRedirectLoop
}

// IsHTTPError checks if an error carries an HTTP error status (>= 400).
// The status code is returned alongside.
func IsHTTPError(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && e.StatusCode >= 400 {
		return e.StatusCode, true
	}
	return 0, false
}
