// In file: internal/tools/manager.go
package tools

import (
	"errors"
	"fmt"
	"sort"
)

// ErrToolNotFound reports a dispatch request for a name that was never
// registered. The agent turns it into the fixed missing-tool response; no
// tool code runs and no network request is made for an unknown name.
var ErrToolNotFound = errors.New("tool not found")

// ToolManager holds the registry of all available tools.
//
// Registration happens once at startup; after that the registry is
// read-only, so concurrent lookups from server request goroutines need no
// locking.
type ToolManager struct {
	tools map[string]ToolExecutor
}

func NewToolManager() *ToolManager {
	return &ToolManager{
		tools: make(map[string]ToolExecutor),
	}
}

// Register adds a tool under its declared function name. Registering a
// second tool with the same name replaces the first.
func (tm *ToolManager) Register(tool ToolExecutor) {
	name := tool.Definition().Function.Name
	tm.tools[name] = tool
}

// Get returns the executor registered under name.
func (tm *ToolManager) Get(name string) (ToolExecutor, bool) {
	tool, ok := tm.tools[name]
	return tool, ok
}

// GetDefinitions returns every registered tool definition sorted by name, so
// the payload sent to the reasoning service is deterministic across runs.
func (tm *ToolManager) GetDefinitions() []Tool {
	defs := make([]Tool, 0, len(tm.tools))
	for _, tool := range tm.tools {
		defs = append(defs, tool.Definition())
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Function.Name < defs[j].Function.Name
	})
	return defs
}

// Execute looks up a tool by name, validates the raw JSON arguments against
// the tool's declared schema, and runs it.
//
// An unknown name returns ErrToolNotFound before anything else happens. A
// payload that is not a JSON object, omits a required field, carries an
// undeclared field, or mistypes a value returns an *ArgumentError; the tool
// itself is never invoked with arguments it did not declare.
func (tm *ToolManager) Execute(name, arguments string) (string, error) {
	tool, ok := tm.tools[name]
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrToolNotFound, name)
	}
	if err := ValidateArguments(name, tool.Definition().Function.Parameters, arguments); err != nil {
		return "", err
	}
	return tool.Execute(arguments)
}

// ToolCount returns the number of registered tools.
func (tm *ToolManager) ToolCount() int {
	return len(tm.tools)
}
