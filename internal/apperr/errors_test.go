package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("noise level is required")

	if err.Error() != "noise level is required" {
		t.Errorf("expected 'noise level is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid time period", inner)

	if err.Error() != "invalid time period: parse failed" {
		t.Errorf("expected 'invalid time period: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("empty noise band")

	wrapped := fmt.Errorf("failed to parse: %w", original)
	doubleWrapped := fmt.Errorf("enumerate strata: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "empty noise band" {
		t.Errorf("expected 'empty noise band', got %q", ve.Message)
	}
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("token mismatch")
	wrapped := fmt.Errorf("evaluate column: %w", plain)

	var ve *apperr.ValidationError
	if errors.As(wrapped, &ve) {
		t.Fatal("errors.As should NOT find ValidationError in plain error chain")
	}
}

func TestConfigError(t *testing.T) {
	err := fmt.Errorf("check options: %w", apperr.NewConfig("Alternative annotations are only allowed for the NEL evaluation."))

	var ce *apperr.ConfigError
	if !errors.As(err, &ce) {
		t.Fatal("errors.As should find ConfigError")
	}
	want := "The provided arguments are not valid. Alternative annotations are only allowed for the NEL evaluation."
	if ce.Error() != want {
		t.Errorf("expected %q, got %q", want, ce.Error())
	}
}
