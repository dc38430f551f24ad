// In file: internal/tools/validator.go
package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ArgumentError reports a tool-call arguments payload that does not satisfy
// the tool's declared schema. The dispatch loop renders it as an
// invalid-arguments response instead of running the tool.
type ArgumentError struct {
	// Tool is the name of the tool whose schema was violated.
	Tool string
	// Reason is a short human-readable description of the violation.
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for tool '%s': %s", e.Tool, e.Reason)
}

// ValidateArguments checks a raw JSON arguments string against a tool's
// parameter schema before the tool is invoked.
//
// The reasoning service generates these payloads, and models do drift: they
// hallucinate parameter names, drop required fields, or send a bare string
// where an object belongs. Rejecting those up front means no tool ever has to
// defend against arguments it never declared. The check covers: the payload
// must be a JSON object, every required field must be present, every present
// field must be declared, and primitive values must match their declared
// type ("string", "number", "integer", "boolean").
func ValidateArguments(toolName string, schema JSONSchema, arguments string) error {
	args := make(map[string]interface{})
	// Providers encode "no arguments" as an empty string or "{}".
	if strings.TrimSpace(arguments) != "" {
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return &ArgumentError{Tool: toolName, Reason: fmt.Sprintf("arguments are not a JSON object: %v", err)}
		}
	}

	for _, field := range schema.Required {
		if _, exists := args[field]; !exists {
			return &ArgumentError{Tool: toolName, Reason: fmt.Sprintf("missing required field '%s'", field)}
		}
	}

	for key, value := range args {
		propSchema, declared := schema.Properties[key]
		if !declared {
			return &ArgumentError{Tool: toolName, Reason: fmt.Sprintf("unknown field '%s'", key)}
		}
		if err := checkType(value, propSchema.Type); err != nil {
			return &ArgumentError{Tool: toolName, Reason: fmt.Sprintf("field '%s': %v", key, err)}
		}
	}

	return nil
}

// checkType verifies that a decoded JSON value matches the declared schema
// type. Values arrive from encoding/json, so numbers are float64.
func checkType(value interface{}, expected string) error {
	switch expected {
	case "", "object", "array":
		// Nested shapes are not declared by any Scout tool; accept as-is.
		return nil
	case "string":
		if _, ok := value.(string); ok {
			return nil
		}
	case "number":
		if _, ok := value.(float64); ok {
			return nil
		}
	case "integer":
		if v, ok := value.(float64); ok && math.Trunc(v) == v {
			return nil
		}
	case "boolean":
		if _, ok := value.(bool); ok {
			return nil
		}
	}
	return fmt.Errorf("expected %s but got %T", expected, value)
}
