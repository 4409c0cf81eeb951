// Package apperr defines the error taxonomy shared by the store, the token
// service, the access gate and the HTTP handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeMissingToken      Code = "MISSING_TOKEN"
	CodeInvalidToken      Code = "INVALID_TOKEN"
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeNotFound          Code = "NOT_FOUND"
	CodeInsufficientStock Code = "INSUFFICIENT_STOCK"
	CodeDuplicateEmail    Code = "DUPLICATE_EMAIL"
	CodeDuplicateUsername Code = "DUPLICATE_USERNAME"
	CodeValidation        Code = "VALIDATION"
	CodeRateLimited       Code = "RATE_LIMITED"
	CodeInternal          Code = "INTERNAL_FAILURE"
)

// Error is a classified failure. Message is safe to show to clients.
type Error struct {
	Code       Code
	Message    string
	HTTPStatus int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error carrying the same code, so callers can write
// errors.Is(err, apperr.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrMissingToken      = &Error{Code: CodeMissingToken}
	ErrInvalidToken      = &Error{Code: CodeInvalidToken}
	ErrUnauthorized      = &Error{Code: CodeUnauthorized}
	ErrNotFound          = &Error{Code: CodeNotFound}
	ErrInsufficientStock = &Error{Code: CodeInsufficientStock}
	ErrDuplicateEmail    = &Error{Code: CodeDuplicateEmail}
	ErrDuplicateUsername = &Error{Code: CodeDuplicateUsername}
	ErrValidation        = &Error{Code: CodeValidation}
	ErrRateLimited       = &Error{Code: CodeRateLimited}
	ErrInternal          = &Error{Code: CodeInternal}
)

func MissingToken() *Error {
	return &Error{Code: CodeMissingToken, Message: "Unauthorized", HTTPStatus: http.StatusUnauthorized}
}

func InvalidToken(err error) *Error {
	return &Error{Code: CodeInvalidToken, Message: "Invalid token", HTTPStatus: http.StatusUnauthorized, Err: err}
}

func Unauthorized(msg string) *Error {
	if msg == "" {
		msg = "Unauthorized"
	}
	return &Error{Code: CodeUnauthorized, Message: msg, HTTPStatus: http.StatusUnauthorized}
}

// NotFound names the missing entity, e.g. NotFound("User").
func NotFound(entity string) *Error {
	return &Error{Code: CodeNotFound, Message: entity + " not found", HTTPStatus: http.StatusNotFound}
}

func InsufficientStock(productName string) *Error {
	return &Error{
		Code:       CodeInsufficientStock,
		Message:    "Not enough stock for product " + productName,
		HTTPStatus: http.StatusConflict,
	}
}

func DuplicateEmail() *Error {
	return &Error{Code: CodeDuplicateEmail, Message: "Email already in use", HTTPStatus: http.StatusBadRequest}
}

func DuplicateUsername() *Error {
	return &Error{Code: CodeDuplicateUsername, Message: "Username already in use", HTTPStatus: http.StatusBadRequest}
}

func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg, HTTPStatus: http.StatusBadRequest}
}

func RateLimited() *Error {
	return &Error{Code: CodeRateLimited, Message: "Too many requests. Please try again later.", HTTPStatus: http.StatusTooManyRequests}
}

func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "Internal server error", HTTPStatus: http.StatusInternalServerError, Err: err}
}

// From classifies err. Unclassified errors become InternalFailure so their
// details never reach the client.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
