// In file: internal/llm/client.go

// Package llm talks to the hosted reasoning services Scout can use and folds
// their replies into a single TurnDecision the agent acts on. Two providers
// are wired: Google Gemini through the official genai SDK and OpenAI through
// the openai-go SDK. The model ID prefix picks the provider.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/coriolis-labs/scout/internal/tools"
)

// =================================================================================
// Core Data Structures
// =================================================================================

// Role identifies the originator of a message sent to the reasoning service.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single message in the payload sent to the reasoning service.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// GenerationConfig controls how the reasoning service generates a reply.
type GenerationConfig struct {
	// Model is the provider model ID (e.g. "gemini-2.5-flash", "gpt-4o-mini").
	Model string
	// Temperature controls randomness. A pointer distinguishes an explicit
	// 0.0 from an unset value, which leaves the provider default in place.
	Temperature *float32
	// MaxTokens caps the length of the generated reply.
	MaxTokens int
}

// Usage holds the token accounting a provider reports for one generation.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// GenerationResult is the complete reply from one reasoning-service call.
type GenerationResult struct {
	// Content is the generated text, empty when the model chose a tool.
	Content string
	// ToolCalls lists the function calls the model requested. Scout
	// dispatches at most one per turn, but providers can return several.
	ToolCalls []*tools.ToolCall
	// Usage is the provider-reported token accounting.
	Usage Usage
}

// =================================================================================
// LLM Client Interface
// =================================================================================

// LLMClient is the interface every provider client implements. Scout only
// needs blocking generation; replies are short and composed into a template
// before anyone sees them, so there is nothing to stream.
type LLMClient interface {
	Generate(
		ctx context.Context,
		messages []Message,
		config *GenerationConfig,
		availableTools []tools.Tool,
	) (*GenerationResult, error)
}

// NewClient selects a provider client from the model ID prefix. Unknown
// prefixes are an error so a typo in configuration surfaces at startup
// instead of on the first request.
func NewClient(modelID, apiKey string) (LLMClient, error) {
	switch {
	case strings.HasPrefix(modelID, "gemini"):
		return NewGeminiClient(apiKey, modelID)
	case strings.HasPrefix(modelID, "gpt"):
		return NewOpenAIClient(apiKey)
	default:
		return nil, fmt.Errorf("no reasoning client available for model '%s'", modelID)
	}
}
