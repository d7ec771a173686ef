// Package errors provides the structured error type shared by services and handlers.
// Services return *AppError values so handlers can render a consistent response
// without leaking storage details to clients.
package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind classifies an AppError. Handlers and callers branch on the kind rather
// than on individual codes.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindAuth       Kind = "auth"
	KindInternal   Kind = "internal"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Kind       Kind   `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so copies made by
// Wrap and WithMessage still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Kind:       sentinel.Kind,
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Kind:       sentinel.Kind,
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// KindOf returns the kind of err, or KindInternal for anything that is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Authentication errors. Codes for the identity endpoints are part of the
// browser contract and keep their PascalCase spelling.
var (
	ErrUnauthorized             = &AppError{Kind: KindAuth, Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials       = &AppError{Kind: KindAuth, Code: "InvalidCredentials", Message: "Invalid login credentials", StatusCode: http.StatusUnauthorized}
	ErrEmailAndPasswordRequired = &AppError{Kind: KindValidation, Code: "EmailAndPasswordRequired", Message: "Email and password are required", StatusCode: http.StatusBadRequest}
	ErrPasswordsDoNotMatch      = &AppError{Kind: KindValidation, Code: "PasswordsDoNotMatch", Message: "Passwords do not match", StatusCode: http.StatusBadRequest}
	ErrPasswordTooShort         = &AppError{Kind: KindValidation, Code: "PasswordTooShort", Message: "Password must be at least 6 characters", StatusCode: http.StatusBadRequest}
	ErrEmailAlreadyExists       = &AppError{Kind: KindAuth, Code: "EmailAlreadyExists", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Kind: KindValidation, Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Kind: KindNotFound, Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Kind: KindInternal, Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound = &AppError{Kind: KindNotFound, Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
)

// Budget errors.
var (
	ErrBudgetNotFound     = &AppError{Kind: KindNotFound, Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrBudgetItemNotFound = &AppError{Kind: KindNotFound, Code: "BUDGET_ITEM_NOT_FOUND", Message: "Budget item not found", StatusCode: http.StatusNotFound}
	ErrInvalidName        = &AppError{Kind: KindValidation, Code: "INVALID_NAME", Message: "Name must be between 1 and 200 characters", StatusCode: http.StatusBadRequest}
	ErrInvalidAmount      = &AppError{Kind: KindValidation, Code: "INVALID_AMOUNT", Message: "Amount must have at most 2 decimal places and fit decimal(18,2)", StatusCode: http.StatusBadRequest}
)
