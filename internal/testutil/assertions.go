package testutil

import (
	"errors"
	"testing"

	apperrors "budgetdash/internal/errors"
)

// requireAppError unwraps err to an *AppError or stops the test.
func requireAppError(t *testing.T, err error) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatal("expected an AppError, got nil")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	// Every AppError is derived from a sentinel, which always carries both.
	if appErr.Kind == "" || appErr.StatusCode == 0 {
		t.Fatalf("AppError %q was not built from a sentinel (kind=%q status=%d)", appErr.Code, appErr.Kind, appErr.StatusCode)
	}
	return appErr
}

// AssertAppError checks that err is a well-formed *AppError with the expected code.
func AssertAppError(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()

	appErr := requireAppError(t, err)
	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q [%s] (message: %s)", expectedCode, appErr.Code, appErr.Kind, appErr.Message)
	}
	return appErr
}

// AssertAppErrorKind checks that err is an *AppError of the given kind,
// whatever its code.
func AssertAppErrorKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()

	appErr := requireAppError(t, err)
	if appErr.Kind != kind {
		t.Errorf("expected %s error, got %s (%s: %s)", kind, appErr.Kind, appErr.Code, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
