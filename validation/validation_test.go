package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/taskstats/errors"
)

func TestValidatorRequired(t *testing.T) {
	if err := New().Required("title", "Buy milk").Validate(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	err := New().Required("title", "   ").Validate()
	if err == nil {
		t.Fatal("expected error for blank title")
	}
	if !strings.Contains(err.Error(), "title: is required") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestValidatorRequiredUUID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", uuid.NewString(), false},
		{"empty", "", true},
		{"malformed", "not-a-uuid", true},
		{"nil uuid", uuid.Nil.String(), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := New().RequiredUUID("id", tc.value).Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("RequiredUUID(%q) error = %v, wantErr %v", tc.value, err, tc.wantErr)
			}
		})
	}
}

func TestValidatorCollectsAll(t *testing.T) {
	v := New().
		Required("title", "").
		MaxLength("description", strings.Repeat("x", 11), 10).
		Custom(false, "created_at", "must be set")
	if len(v.Errors()) != 3 {
		t.Fatalf("expected 3 errors, got %d", len(v.Errors()))
	}
	appErr, ok := errors.AsAppError(v.Validate())
	if !ok {
		t.Fatal("expected AppError")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if fields, ok := appErr.Details["fields"].([]FieldError); !ok || len(fields) != 3 {
		t.Errorf("expected 3 field details, got %v", appErr.Details["fields"])
	}
}

type retrySection struct {
	MaxAttempts    int           `mapstructure:"max_attempts" validate:"min=1,max=10"`
	InitialBackoff time.Duration `mapstructure:"initial_backoff" validate:"gte=0"`
}

type sourceSection struct {
	Driver string       `mapstructure:"driver" validate:"required,oneof=memory sqlite"`
	Path   string       `mapstructure:"path" validate:"required_if=Driver sqlite"`
	Retry  retrySection `mapstructure:"retry"`
}

func TestValidateStruct(t *testing.T) {
	ok := sourceSection{Driver: "memory", Retry: retrySection{MaxAttempts: 3}}
	if err := Validate(ok); err != nil {
		t.Errorf("expected valid, got %v", err)
	}

	bad := sourceSection{Driver: "sqlite", Retry: retrySection{MaxAttempts: 0}}
	err := Validate(bad)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"path: is required when Driver sqlite", "retry.max_attempts: must be at least 1"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestValidateStructOneOf(t *testing.T) {
	err := Validate(sourceSection{Driver: "postgres", Retry: retrySection{MaxAttempts: 1}})
	if err == nil || !strings.Contains(err.Error(), "driver: must be one of: memory sqlite") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("MaxAttempts"); got != "max_attempts" {
		t.Errorf("expected max_attempts, got %q", got)
	}
}
