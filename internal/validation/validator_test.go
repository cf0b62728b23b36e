// Cinerec - Item-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package validation

import (
	"strings"
	"testing"
)

type queryParams struct {
	Title string `json:"title" validate:"required,max=10"`
	K     int    `form:"k" validate:"min=0,max=100"`
	Mode  string `koanf:"mode" validate:"omitempty,oneof=fast slow"`
	Plain int    `validate:"gte=0"`
}

type nestedParams struct {
	Inner queryParams `koanf:"inner"`
}

func TestGetValidatorSingleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStructValid(t *testing.T) {
	t.Parallel()

	if err := ValidateStruct(&queryParams{Title: "Heat", K: 100, Mode: "fast"}); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestValidateStructFieldNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   queryParams
		field   string
		message string
	}{
		{"json name", queryParams{K: 1}, "title", "title is required"},
		{"string max", queryParams{Title: "Much Too Long"}, "title", "title must be at most 10 characters"},
		{"form name", queryParams{Title: "x", K: 101}, "k", "k must be at most 100"},
		{"koanf name", queryParams{Title: "x", Mode: "warp"}, "mode", "mode must be one of: fast slow"},
		{"go name", queryParams{Title: "x", Plain: -1}, "Plain", "Plain must be greater than or equal to 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if len(err.Errors()) != 1 {
				t.Fatalf("Expected 1 error, got %d: %v", len(err.Errors()), err)
			}
			fe := err.Errors()[0]
			if fe.Field() != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, fe.Field())
			}
			if fe.Error() != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, fe.Error())
			}
		})
	}
}

func TestValidateStructNested(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&nestedParams{Inner: queryParams{K: -1}})
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(err.Error(), "inner.title is required") {
		t.Errorf("Expected nested field path, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "inner.k must be at least 0") {
		t.Errorf("Expected nested field path, got %q", err.Error())
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&queryParams{Title: "x", K: 500}).ToAPIError()
	if single.Code != CodeValidation {
		t.Errorf("Expected code %s, got %s", CodeValidation, single.Code)
	}
	if single.Details["field"] != "k" || single.Details["tag"] != "max" {
		t.Errorf("Unexpected details: %v", single.Details)
	}

	multi := ValidateStruct(&queryParams{K: 500}).ToAPIError()
	fields, ok := multi.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Expected 2 field entries, got %v", multi.Details)
	}
	if !strings.Contains(multi.Message, "; ") {
		t.Errorf("Expected joined message, got %q", multi.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("Unexpected empty message %q", empty.Message)
	}
}
