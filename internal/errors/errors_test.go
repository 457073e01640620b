package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
)

func TestWrapKeepsSentinelFields(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrInternalServer, cause)

	if err.Code != "INTERNAL_ERROR" || err.StatusCode != http.StatusInternalServerError {
		t.Errorf("unexpected code/status: %s/%d", err.Code, err.StatusCode)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable with errors.Is")
	}
	if ErrInternalServer.Internal != nil {
		t.Error("sentinel must not be mutated")
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "username is required")
	if err.Message != "username is required" || err.Code != "INVALID_INPUT" {
		t.Errorf("unexpected error: %+v", err)
	}
	if ErrInvalidInput.Message != "Invalid input" {
		t.Error("sentinel must not be mutated")
	}
}

func TestWithDetails(t *testing.T) {
	err := WithDetails(ErrWeakPassword, map[string]string{"password": "too short"})
	if err.Details["password"] != "too short" {
		t.Errorf("expected password detail, got %v", err.Details)
	}
	if ErrWeakPassword.Details != nil {
		t.Error("sentinel must not be mutated")
	}

	var appErr *AppError
	if !stderrors.As(error(err), &appErr) {
		t.Fatal("expected *AppError")
	}
}
