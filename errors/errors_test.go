package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestInvalidCredentials_GenericMessage(t *testing.T) {
	err := InvalidCredentials()
	if err.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", err.HTTPStatus)
	}
	if err.Message != "Invalid email or password" {
		t.Errorf("unexpected message: %q", err.Message)
	}
	// The message must not hint at which factor failed.
	for _, leak := range []string{"not found", "wrong password", "unknown"} {
		if strings.Contains(strings.ToLower(err.Message), leak) {
			t.Errorf("message leaks failure detail %q", leak)
		}
	}
}

func TestForbidden_DefaultReason(t *testing.T) {
	err := Forbidden("")
	if err.Code != ErrCodeForbidden {
		t.Errorf("expected FORBIDDEN, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusForbidden {
		t.Errorf("expected 403, got %d", err.HTTPStatus)
	}
	if err.Message == "" {
		t.Error("expected a default reason")
	}
}

func TestTokenErrors_MapTo401(t *testing.T) {
	for _, err := range []*AppError{InvalidToken(), TokenExpired(), Unauthorized("")} {
		if err.HTTPStatus != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", err.Code, err.HTTPStatus)
		}
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := DatabaseError(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if err.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", err.HTTPStatus)
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("user")
	wrapped := fmt.Errorf("handler: %w", appErr)

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed on wrapped error")
	}
	if got.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", got.Code)
	}

	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("expected AsAppError to fail on plain error")
	}
}

func TestToResponse_FlatShape(t *testing.T) {
	resp := Validation("email: must be a valid email").WithDetail("field", "email").ToResponse()
	if resp.Message == "" {
		t.Error("response must carry a message")
	}
	if resp.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", resp.Code)
	}
	if resp.Details["field"] != "email" {
		t.Errorf("expected field detail, got %v", resp.Details)
	}
}
