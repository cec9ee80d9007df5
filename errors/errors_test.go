package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_New(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
}

func TestAppError_Validation(t *testing.T) {
	err := Validation("Email is required.")
	if err.Code != ErrCodeValidation {
		t.Errorf("expected VALIDATION, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus)
	}
}

func TestAppError_Conflict(t *testing.T) {
	err := Conflict("This email is already registered.")
	if err.Code != ErrCodeConflict {
		t.Errorf("expected CONFLICT, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("expected 409, got %d", err.HTTPStatus)
	}
	if err.Message != "This email is already registered." {
		t.Errorf("unexpected message: %q", err.Message)
	}
}

func TestAppError_Unauthorized_DefaultMessage(t *testing.T) {
	err := Unauthorized("")
	if err.Message != "Authentication required." {
		t.Errorf("expected default message, got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", err.HTTPStatus)
	}
}

func TestAppError_Internal_HidesCause(t *testing.T) {
	cause := fmt.Errorf("db connection lost")
	err := Internal(cause)
	if err.Message != "Internal server error" {
		t.Errorf("internal errors must carry a generic message, got %q", err.Message)
	}
	if err.Cause != cause {
		t.Error("expected cause to be retained")
	}
	if err.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", err.HTTPStatus)
	}
}

func TestAppError_Error_IncludesCause(t *testing.T) {
	err := DatabaseError(fmt.Errorf("disk full"))
	if got := err.Error(); got != "DATABASE_ERROR: A database error occurred. Please try again. (cause: disk full)" {
		t.Errorf("unexpected Error() output: %q", got)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Internal(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause through Unwrap")
	}
}

func TestAsAppError(t *testing.T) {
	base := Conflict("dup")
	wrapped := fmt.Errorf("creating user: %w", base)

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to unwrap the AppError")
	}
	if got.Code != ErrCodeConflict {
		t.Errorf("expected CONFLICT, got %s", got.Code)
	}

	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected false for a non-AppError")
	}
	if IsAppError(fmt.Errorf("plain")) {
		t.Error("expected IsAppError false for a non-AppError")
	}
}
