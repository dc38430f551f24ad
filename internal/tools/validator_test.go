// In file: internal/tools/validator_test.go
package tools

import (
	"strings"
	"testing"
)

func locationSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]*JSONSchema{
			"location": {Type: "string", Description: "The city and state."},
			"days":     {Type: "integer", Description: "Forecast horizon."},
		},
		Required: []string{"location"},
	}
}

func TestValidateArgumentsAccepts(t *testing.T) {
	cases := []struct {
		name      string
		arguments string
	}{
		{"required only", `{"location":"Paris, France"}`},
		{"with optional integer", `{"location":"Paris","days":3}`},
		{"whole float as integer", `{"location":"Paris","days":3.0}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateArguments("get_current_weather", locationSchema(), tc.arguments); err != nil {
				t.Errorf("ValidateArguments(%q) = %v, want nil", tc.arguments, err)
			}
		})
	}
}

func TestValidateArgumentsRejects(t *testing.T) {
	cases := []struct {
		name      string
		arguments string
		wantIn    string
	}{
		{"missing required", `{}`, "missing required field 'location'"},
		{"unknown field", `{"location":"Paris","units":"metric"}`, "unknown field 'units'"},
		{"wrong type", `{"location":42}`, "field 'location'"},
		{"fractional integer", `{"location":"Paris","days":2.5}`, "field 'days'"},
		{"not an object", `["Paris"]`, "not a JSON object"},
		{"empty payload with required", ``, "missing required field 'location'"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateArguments("get_current_weather", locationSchema(), tc.arguments)
			if err == nil {
				t.Fatalf("ValidateArguments(%q) = nil, want error", tc.arguments)
			}
			argErr, ok := err.(*ArgumentError)
			if !ok {
				t.Fatalf("error type = %T, want *ArgumentError", err)
			}
			if argErr.Tool != "get_current_weather" {
				t.Errorf("ArgumentError.Tool = %q, want get_current_weather", argErr.Tool)
			}
			if !strings.Contains(err.Error(), tc.wantIn) {
				t.Errorf("error %q does not mention %q", err.Error(), tc.wantIn)
			}
		})
	}
}

func TestValidateArgumentsEmptyPayloadNoRequirements(t *testing.T) {
	schema := JSONSchema{Type: "object"}
	if err := ValidateArguments("ping", schema, ""); err != nil {
		t.Errorf("empty payload with no requirements should pass, got %v", err)
	}
	if err := ValidateArguments("ping", schema, "{}"); err != nil {
		t.Errorf("empty object with no requirements should pass, got %v", err)
	}
}
