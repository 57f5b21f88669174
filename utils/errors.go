package utils

import (
	"fmt"
	"net/http"
)

// APIError is an error that carries the HTTP status it maps to
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

func newAPIError(status int, format string, args ...interface{}) *APIError {
	return &APIError{Status: status, Message: fmt.Sprintf(format, args...)}
}

func ValidationError(format string, args ...interface{}) *APIError {
	return newAPIError(http.StatusBadRequest, format, args...)
}

func AuthError(format string, args ...interface{}) *APIError {
	return newAPIError(http.StatusUnauthorized, format, args...)
}

func NotFoundError(format string, args ...interface{}) *APIError {
	return newAPIError(http.StatusNotFound, format, args...)
}

func MethodNotAllowedError() *APIError {
	return newAPIError(http.StatusMethodNotAllowed, "Method not allowed")
}

func ConflictError(format string, args ...interface{}) *APIError {
	return newAPIError(http.StatusConflict, format, args...)
}

func RateLimitError() *APIError {
	return newAPIError(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
}

func UnavailableError(format string, args ...interface{}) *APIError {
	return newAPIError(http.StatusServiceUnavailable, format, args...)
}

func UnexpectedError(format string, args ...interface{}) *APIError {
	return newAPIError(http.StatusInternalServerError, format, args...)
}
