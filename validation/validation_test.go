package validation

import (
	"strings"
	"testing"
)

type sample struct {
	Name  string `mapstructure:"name" validate:"required"`
	Level string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn"`
	Count int    `mapstructure:"count" validate:"min=1,max=10"`
}

func TestValidate_OK(t *testing.T) {
	s := sample{Name: "x", Level: "info", Count: 5}
	if err := Validate(s); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_Required(t *testing.T) {
	s := sample{Count: 5}
	err := Validate(s)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "name") {
		t.Errorf("expected mapstructure tag name in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "is required") {
		t.Errorf("expected required message, got %q", err.Error())
	}
}

func TestValidate_OneOf(t *testing.T) {
	s := sample{Name: "x", Level: "loud", Count: 5}
	err := Validate(s)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "must be one of") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestValidate_Range(t *testing.T) {
	s := sample{Name: "x", Count: 0}
	if err := Validate(s); err == nil {
		t.Error("expected error for count below minimum")
	}
	s.Count = 11
	if err := Validate(s); err == nil {
		t.Error("expected error for count above maximum")
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("BaseURL"); got != "base_u_r_l" {
		t.Errorf("got %q", got)
	}
	if got := toSnakeCase("Timeout"); got != "timeout" {
		t.Errorf("got %q", got)
	}
}
