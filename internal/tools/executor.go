// In file: internal/tools/executor.go
package tools

// ToolExecutor is the contract every Scout tool implements. The registry
// stores executors by name and the dispatch loop runs them without knowing
// anything about their internals.
//
// Tools report their own failures as ordinary string results: a missing
// credential, a non-2xx upstream status, or an unreachable host all come back
// through the first return value so the agent can relay them to the user.
// The error return is reserved for a malformed arguments payload, which the
// registry's schema validation makes rare.
type ToolExecutor interface {
	// Definition returns the tool's schema, which is forwarded to the
	// reasoning service so it knows the tool's name, purpose, and arguments.
	Definition() Tool

	// Execute runs the tool with the JSON arguments object produced by the
	// reasoning service. Network calls are bounded by the tool's own HTTP
	// client timeout, so Execute never blocks indefinitely.
	Execute(arguments string) (string, error)
}
