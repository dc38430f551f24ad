// In file: internal/llm/reasoner.go
package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/coriolis-labs/scout/internal/tools"
)

// reasonerTimeout bounds one reasoning call, independent of the caller's
// context. Tool calls carry their own shorter timeouts.
const reasonerTimeout = 120 * time.Second

// DecisionKind tags the three possible outcomes of a reasoning call.
type DecisionKind string

const (
	// DecisionFinalResponse means the model answered directly; the text is
	// relayed to the user verbatim.
	DecisionFinalResponse DecisionKind = "final_response"
	// DecisionCallTool means the model wants exactly one tool invoked.
	DecisionCallTool DecisionKind = "call_tool"
	// DecisionError means no usable reply could be obtained. The agent
	// substitutes its fixed apology; Response here is diagnostic only.
	DecisionError DecisionKind = "error"
)

// TurnDecision is the reasoning service's verdict for one turn, already
// normalized so the dispatch loop never touches provider types.
type TurnDecision struct {
	Kind DecisionKind
	// Response holds the final text for DecisionFinalResponse and a short
	// diagnostic for DecisionError. Empty for DecisionCallTool.
	Response string
	// ToolCall is set only when Kind is DecisionCallTool.
	ToolCall *tools.ToolCall
}

// reasoningFailedDiagnostic is the one fixed diagnostic recorded when the
// reasoning service could not produce a reply, whatever the underlying cause.
// The full error goes to the log; the user-facing apology is the agent's.
const reasoningFailedDiagnostic = "the reasoning service request failed"

// Reasoner wraps an LLMClient and turns its raw replies, and its failures,
// into TurnDecisions. Decide is total: whatever the provider does, the agent
// gets back a decision it can act on, never an error and never a panic.
type Reasoner struct {
	client         LLMClient
	config         *GenerationConfig
	disabledReason string
}

// NewReasoner builds a Reasoner for the given model. An empty API key or an
// unknown model prefix leaves the reasoner disabled rather than failing: the
// process still starts, and every turn resolves to an error decision until
// the configuration is fixed.
func NewReasoner(modelID, apiKey string, maxTokens int) *Reasoner {
	r := &Reasoner{
		config: &GenerationConfig{Model: modelID, MaxTokens: maxTokens},
	}
	if apiKey == "" {
		r.disabledReason = fmt.Sprintf("no API key configured for model '%s'", modelID)
		log.Printf("⚠️ Reasoner disabled: %s", r.disabledReason)
		return r
	}
	client, err := NewClient(modelID, apiKey)
	if err != nil {
		r.disabledReason = err.Error()
		log.Printf("⚠️ Reasoner disabled: %s", r.disabledReason)
		return r
	}
	r.client = client
	return r
}

// Model returns the configured model ID, for startup logging.
func (r *Reasoner) Model() string {
	return r.config.Model
}

// Decide sends the utterance and the available tool definitions to the
// reasoning service and folds the reply into a TurnDecision.
//
// A reply carrying a function call wins over any text alongside it; if the
// model requested several calls, only the first is dispatched. A plain text
// reply becomes a final response. Transport faults, API errors, and empty
// replies all become error decisions with the detail logged here.
func (r *Reasoner) Decide(ctx context.Context, utterance string, available []tools.Tool) TurnDecision {
	if r.client == nil {
		log.Printf("📌 Decision: error (reasoner disabled: %s)", r.disabledReason)
		return TurnDecision{Kind: DecisionError, Response: r.disabledReason}
	}

	ctx, cancel := context.WithTimeout(ctx, reasonerTimeout)
	defer cancel()

	messages := []Message{{Role: RoleUser, Content: utterance}}
	result, err := r.client.Generate(ctx, messages, r.config, available)
	if err != nil {
		log.Printf("❌ Reasoning service call failed: %v", err)
		return TurnDecision{Kind: DecisionError, Response: reasoningFailedDiagnostic}
	}
	log.Printf("🧮 Token usage for %s: prompt=%d completion=%d total=%d",
		r.config.Model, result.Usage.PromptTokens, result.Usage.CompletionTokens, result.Usage.TotalTokens)

	if len(result.ToolCalls) > 0 {
		call := result.ToolCalls[0]
		if len(result.ToolCalls) > 1 {
			log.Printf("⚠️ Reasoning service requested %d tool calls; dispatching only '%s'",
				len(result.ToolCalls), call.Function.Name)
		}
		log.Printf("📌 Decision: call_tool '%s' with args %s", call.Function.Name, call.Function.Arguments)
		return TurnDecision{Kind: DecisionCallTool, ToolCall: call}
	}

	if result.Content != "" {
		log.Printf("📌 Decision: final_response (%d chars)", len(result.Content))
		return TurnDecision{Kind: DecisionFinalResponse, Response: result.Content}
	}

	log.Printf("📌 Decision: error (empty reply from reasoning service)")
	return TurnDecision{Kind: DecisionError, Response: "the reasoning service returned an empty reply"}
}
