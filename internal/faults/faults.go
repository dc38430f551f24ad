// In file: internal/faults/faults.go

// Package faults centralizes how Scout renders recoverable faults into the
// human-readable strings that travel back to the user on the success path.
//
// The agent never lets a downstream failure escape as a Go error or a panic.
// Credentials that were never configured, non-2xx provider replies, transport
// failures, and unparsable response bodies all become ordinary response text.
// Keeping every template in one package means a fault class reads the same no
// matter which tool or client hit it, and call sites never hand-format these
// strings.
package faults

import "fmt"

// CredentialMissing reports an API key that was absent from the environment.
// The rendered string names the exact environment variable and tells the user
// where to obtain a key. Callers must check credentials before any network
// I/O so that a missing key never costs a request.
func CredentialMissing(envVar, hint string) string {
	return fmt.Sprintf("Error: %s is not set. %s", envVar, hint)
}

// ProviderHTTPError reports a non-2xx status from an upstream provider. The
// body is included verbatim when the provider sent one, since upstream error
// payloads usually explain the rejection better than the status code alone.
func ProviderHTTPError(provider string, statusCode int, body string) string {
	if body == "" {
		return fmt.Sprintf("Error: %s request failed with status %d.", provider, statusCode)
	}
	return fmt.Sprintf("Error: %s request failed with status %d. Details: %s", provider, statusCode, body)
}

// TransportFailure reports a request that never produced an HTTP response:
// DNS errors, connection refusals, timeouts from the per-tool http.Client.
func TransportFailure(provider string, err error) string {
	return fmt.Sprintf("Error: %s request failed: %v", provider, err)
}

// ResponseParseFailure reports a 2xx reply whose body did not match the
// provider's documented shape.
func ResponseParseFailure(provider string, err error) string {
	return fmt.Sprintf("Error: could not parse %s response: %v", provider, err)
}
