package validation_test

import (
	"testing"

	"github.com/skillsenselab/identity/errors"
	"github.com/skillsenselab/identity/validation"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestValidate_Success(t *testing.T) {
	body := loginBody{Email: "alice@example.com", Password: "correct-horse"}
	if err := validation.Validate(body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_FieldLevelDetails(t *testing.T) {
	body := loginBody{Email: "not-an-email", Password: "short"}
	err := validation.Validate(body)
	if err == nil {
		t.Fatal("expected validation error")
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}

	fields, ok := appErr.Details["fields"].([]validation.FieldError)
	if !ok {
		t.Fatalf("expected field details, got %v", appErr.Details)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %v", len(fields), fields)
	}
	// Field names follow json tags.
	if fields[0].Field != "email" {
		t.Errorf("expected json tag field name, got %s", fields[0].Field)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	err := validation.Validate(loginBody{})
	if err == nil {
		t.Fatal("expected validation error for empty body")
	}
	appErr, _ := errors.AsAppError(err)
	if appErr.HTTPStatus != 400 {
		t.Errorf("expected 400, got %d", appErr.HTTPStatus)
	}
}
