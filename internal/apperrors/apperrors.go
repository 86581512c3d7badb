package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeConflict      = "CONFLICT"
	CodeNotFound      = "NOT_FOUND"
	CodeConfiguration = "CONFIGURATION_ERROR"
	CodeFetchTimeout  = "FETCH_TIMEOUT"
	CodeUpstreamHTTP  = "UPSTREAM_HTTP"
	CodeEmptyFeed     = "EMPTY_FEED"
	CodeInternal      = "INTERNAL_ERROR"
)

// AppError is the error type crossing service boundaries. The Code drives
// caller behavior; HTTPStatus is used by the API layer when rendering.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is makes two AppErrors match on Code, so callers can test with a bare
// sentinel like errors.Is(err, apperrors.Validation("")).
func (e *AppError) Is(target error) bool {
	var ae *AppError
	if errors.As(target, &ae) {
		return e.Code == ae.Code
	}
	return false
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}

func Validation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Conflict(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
		Details:    details,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func Configuration(message string) *AppError {
	return &AppError{
		Code:       CodeConfiguration,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func FetchTimeout(err error, url string) *AppError {
	return &AppError{
		Code:       CodeFetchTimeout,
		Message:    "feed fetch timed out",
		HTTPStatus: http.StatusGatewayTimeout,
		Details:    map[string]any{"url": url},
		Err:        err,
	}
}

func UpstreamHTTP(err error, status int) *AppError {
	return &AppError{
		Code:       CodeUpstreamHTTP,
		Message:    "feed fetch failed",
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"upstream_status": status},
		Err:        err,
	}
}

func EmptyFeed(url string) *AppError {
	return &AppError{
		Code:       CodeEmptyFeed,
		Message:    "feed contained no usable events",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"url": url},
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "internal error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// CodeOf extracts the AppError code from an error chain, or CodeInternal.
func CodeOf(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}
