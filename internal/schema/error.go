package schema

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ValidationError ErrorCode = "VALIDATION_ERROR"
	AuthError       ErrorCode = "AUTH_ERROR"
	ServerError     ErrorCode = "SERVER_ERROR"
	TimeoutError    ErrorCode = "TIMEOUT_ERROR"
	NetworkError    ErrorCode = "NETWORK_ERROR"
	UnknownError    ErrorCode = "UNKNOWN_ERROR"
	NotFoundError   ErrorCode = "NOT_FOUND"
	ConflictError   ErrorCode = "CONFLICT"
)

const (
	AuthErrorMessage    = "Authentication failed, please login again"
	ServerErrorMessage  = "Server error, try again later"
	TimeoutErrorMessage = "Request timeout, check your connection"
	NetworkErrorMessage = "Network error, check your internet connection"
)

// ResponseError is the user facing error of every operation. Message is what
// the vendor sees, Reason keeps the raw cause for the logs.
type ResponseError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`

	// Status is the upstream status code, 0 when no response was received.
	Status int    `json:"-"`
	Reason string `json:"-"`
}

func (e *ResponseError) Error() string {
	if e.Reason != "" && e.Reason != e.Message {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPStatus is the status the gateway answers with for the error.
func (e *ResponseError) HTTPStatus() int {
	switch e.Code {
	case ValidationError:
		return http.StatusUnprocessableEntity
	case AuthError:
		return http.StatusUnauthorized
	case TimeoutError:
		return http.StatusGatewayTimeout
	case NotFoundError:
		return http.StatusNotFound
	case ConflictError:
		return http.StatusConflict
	case UnknownError:
		if e.Status >= 400 && e.Status < 500 {
			return e.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

func NewValidationError(field string, msg string) *ResponseError {
	return &ResponseError{
		Code:    ValidationError,
		Message: msg,
		Field:   field,
	}
}

func NewAuthError(status int) *ResponseError {
	return &ResponseError{
		Code:    AuthError,
		Message: AuthErrorMessage,
		Status:  status,
	}
}

func NewServerError(status int) *ResponseError {
	return &ResponseError{
		Code:    ServerError,
		Message: ServerErrorMessage,
		Status:  status,
		Reason:  fmt.Sprintf("marketplace returned status code %d", status),
	}
}

func NewTimeoutError(reason string) *ResponseError {
	return &ResponseError{
		Code:    TimeoutError,
		Message: TimeoutErrorMessage,
		Reason:  reason,
	}
}

func NewNetworkError(reason string) *ResponseError {
	return &ResponseError{
		Code:    NetworkError,
		Message: NetworkErrorMessage,
		Reason:  reason,
	}
}

// NewUnknownError keeps the upstream message, which may be empty until a
// fallback is applied with Describe.
func NewUnknownError(status int, msg string) *ResponseError {
	return &ResponseError{
		Code:    UnknownError,
		Message: msg,
		Status:  status,
		Reason:  msg,
	}
}

func NewNotFoundError(msg string) *ResponseError {
	return &ResponseError{
		Code:    NotFoundError,
		Message: msg,
	}
}

func NewConflictError(msg string) *ResponseError {
	return &ResponseError{
		Code:    ConflictError,
		Message: msg,
	}
}

// Describe turns any error into a ResponseError. Classified errors keep
// their taxonomy message, anything without a message gets the fallback.
func Describe(err error, fallback string) *ResponseError {
	if err == nil {
		return nil
	}

	var responseError *ResponseError
	if !errors.As(err, &responseError) {
		return &ResponseError{
			Code:    UnknownError,
			Message: fallback,
			Reason:  err.Error(),
		}
	}

	if responseError.Message != "" {
		return responseError
	}

	described := *responseError
	described.Message = fallback

	return &described
}
