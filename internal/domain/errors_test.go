package domain

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{"empty", &ValidationError{}, "validation failed"},
		{"single field", NewValidationError("title", "required"), "validation: title: required"},
		{
			name: "several fields",
			err:  NewValidationError("title", "required").Add("creator", "required"),
			want: "validation: 2 errors (title, creator)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, ErrValidation) {
				t.Error("errors.Is(err, ErrValidation) = false")
			}
		})
	}
}

func TestValidationError_Collector(t *testing.T) {
	t.Parallel()

	var clean ValidationError
	clean.Check(true, "title", "required")
	if err := clean.Err(); err != nil {
		t.Fatalf("clean collector returned %v", err)
	}

	var verr ValidationError
	verr.Check(false, "title", "required")
	verr.Check(true, "category", "unknown")
	verr.Check(false, "creator", "required")

	if verr.Err() == nil {
		t.Fatal("expected an error after failed checks")
	}
	want := []FieldError{
		{Field: "title", Message: "required"},
		{Field: "creator", Message: "required"},
	}
	if !reflect.DeepEqual(verr.Errors, want) {
		t.Errorf("Errors = %+v, want %+v", verr.Errors, want)
	}
}

func TestValidationError_SurvivesWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("submit draft: %w", NewValidationError("title", "required"))

	var ve *ValidationError
	if !errors.As(wrapped, &ve) {
		t.Fatal("errors.As should find the ValidationError")
	}
	if len(ve.Errors) != 1 {
		t.Errorf("expected 1 field error, got %d", len(ve.Errors))
	}
	if !errors.Is(wrapped, ErrValidation) {
		t.Error("wrapped error should match ErrValidation")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation,
		ErrUnauthorized, ErrConflict, ErrNotConfigured,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
