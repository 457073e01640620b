package testutil

import (
	"errors"
	"sort"
	"strings"
	"testing"

	apperrors "plantonize/internal/errors"
	"plantonize/internal/models"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
	return appErr
}

// AssertAppErrorDetail checks the error code and that a detail is reported for field.
func AssertAppErrorDetail(t *testing.T, err error, expectedCode, field string) {
	t.Helper()

	appErr := AssertAppError(t, err, expectedCode)
	if _, ok := appErr.Details[field]; !ok {
		t.Errorf("expected a detail for field %q, got %v", field, appErr.Details)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertEvolutionIDs checks that got holds exactly the evolutions in want,
// ignoring order.
func AssertEvolutionIDs(t *testing.T, got []models.Evolution, want ...*models.Evolution) {
	t.Helper()

	gotIDs := make([]string, len(got))
	for i := range got {
		gotIDs[i] = got[i].ID
	}
	wantIDs := make([]string, len(want))
	for i, e := range want {
		wantIDs[i] = e.ID
	}
	sort.Strings(gotIDs)
	sort.Strings(wantIDs)

	if strings.Join(gotIDs, ",") != strings.Join(wantIDs, ",") {
		t.Errorf("expected evolutions %v, got %v", wantIDs, gotIDs)
	}
}
