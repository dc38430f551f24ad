// In file: internal/tools/types.go

// Package tools holds Scout's tool registry and the three tools the agent can
// dispatch to: OpenCage geocoding, Open-Meteo weather, and SerpApi search.
// The types here are a provider-agnostic description of a callable function;
// the llm package translates them into whatever schema format the reasoning
// service expects.
package tools

// ToolTypeFunction is the standard type for function-based tools.
const ToolTypeFunction = "function"

// Tool is the schema for a function as it is described to the reasoning
// service. This is the information sent *to* the model so it knows the tool
// exists and how to invoke it.
type Tool struct {
	// Type is the kind of tool. Scout only defines function tools.
	Type string `json:"type"`
	// Function holds the full definition of the callable function.
	Function Function `json:"function"`
}

// Function names a callable tool and declares its parameters as a JSON
// Schema. The description matters: it is the only prose the reasoning
// service sees when deciding whether this tool fits the user's request.
type Function struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  JSONSchema `json:"parameters"`
}

// JSONSchema is a typed subset of JSON Schema sufficient for declaring tool
// parameters. Using a struct rather than map[string]interface{} keeps tool
// definitions honest and lets the registry validate incoming arguments
// against the declared shape before a tool ever runs.
type JSONSchema struct {
	// Type is the data type of this schema node ("object", "string",
	// "number", "integer", "boolean"). The top-level parameters node is
	// always "object".
	Type string `json:"type"`
	// Description explains what a parameter is for.
	Description string `json:"description,omitempty"`
	// Properties maps parameter names to their schemas when Type is "object".
	Properties map[string]*JSONSchema `json:"properties,omitempty"`
	// Required lists the parameter names that must be present.
	Required []string `json:"required,omitempty"`
}

// ToolCall is a request *from* the reasoning service to run one tool with
// the given arguments.
type ToolCall struct {
	// ID identifies this specific call in provider replies and log lines.
	ID string `json:"id"`
	// Type mirrors Tool.Type and is always "function" here.
	Type string `json:"type"`
	// Function carries the requested tool name and its raw arguments.
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction holds the name and arguments of a requested call. The
// arguments arrive as a JSON object string exactly as the model produced
// them; the registry validates and the tool unmarshals.
type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// NewFunctionTool builds a Tool with the correct function type, trimming the
// boilerplate from tool definitions.
func NewFunctionTool(name, description string, parameters JSONSchema) Tool {
	return Tool{
		Type: ToolTypeFunction,
		Function: Function{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}
