// In file: internal/agent/agent.go

package agent

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/coriolis-labs/scout/internal/llm"
	"github.com/coriolis-labs/scout/internal/tools"
)

// ==================================================================================
// RESPONSE TEMPLATES
// Every response the agent produces is either the reasoner's text verbatim or
// one of these fixed templates. Callers can rely on the exact wording.
// ==================================================================================

const (
	// toolResultTemplate wraps whatever a tool returned, including tool-level
	// "Error: ..." strings. The agent does not reinterpret tool output.
	toolResultTemplate = "I used my tool to get the information. Here's what I found: %s"

	// missingToolTemplate answers a request for a tool that is not registered.
	missingToolTemplate = "Error: The requested tool '%s' does not exist."

	// invalidArgsTemplate answers a tool call whose arguments failed schema
	// validation, naming the tool and the first violation found.
	invalidArgsTemplate = "Error: Invalid arguments for tool '%s': %s."

	// apologyCannotProcess answers a failed or disabled reasoning step.
	apologyCannotProcess = "I'm sorry, I'm unable to process that request."

	// apologyUnexpected answers any fault the agent did not anticipate,
	// including recovered panics.
	apologyUnexpected = "I'm sorry, an unexpected error occurred."
)

// Reasoner decides what to do with one utterance: answer directly, call a
// tool, or report that it cannot decide. *llm.Reasoner is the production
// implementation; tests script their own.
type Reasoner interface {
	Decide(ctx context.Context, utterance string, available []tools.Tool) llm.TurnDecision
}

// ==================================================================================
// AGENT
// ==================================================================================

// Agent runs single, independent turns: one utterance in, one response out.
// Each turn consults the reasoner once, executes at most one tool, and
// appends exactly two entries (user, then assistant) to the transcript.
// Run never returns an error and never panics; every fault becomes a fixed
// apology in the response itself.
type Agent struct {
	name       string
	reasoner   Reasoner
	tools      *tools.ToolManager
	transcript Transcript
	stats      *TurnStats
}

// NewAgent wires the dispatch loop together. The stats recorder may be nil
// when no Redis is configured.
func NewAgent(name string, reasoner Reasoner, manager *tools.ToolManager, transcript Transcript, stats *TurnStats) (*Agent, error) {
	if name == "" {
		return nil, fmt.Errorf("agent name cannot be empty")
	}
	if reasoner == nil {
		return nil, fmt.Errorf("agent requires a reasoner")
	}
	if manager == nil {
		return nil, fmt.Errorf("agent requires a tool manager")
	}
	if transcript == nil {
		return nil, fmt.Errorf("agent requires a transcript")
	}
	return &Agent{
		name:       name,
		reasoner:   reasoner,
		tools:      manager,
		transcript: transcript,
		stats:      stats,
	}, nil
}

// Name returns the agent's display name.
func (a *Agent) Name() string {
	return a.name
}

// Transcript returns the conversation log the agent appends to.
func (a *Agent) Transcript() Transcript {
	return a.transcript
}

// Run executes one turn for the given utterance and returns the response.
//
// The method is total: reasoning failures, unknown tools, invalid arguments,
// and even panics inside a tool all fold into a fixed response string, and
// the user/assistant entry pair is appended regardless of the path taken.
func (a *Agent) Run(ctx context.Context, utterance string) (response string) {
	turnID := uuid.NewString()
	log.Printf("--- [%s] %s received: %q ---", turnID, a.name, utterance)

	a.append(ctx, turnID, ConversationEntry{Role: RoleUser, Content: utterance})

	// The assistant entry is appended on the way out so that every path,
	// including panic recovery, leaves exactly two entries for this turn.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ [%s] Recovered from panic during turn: %v", turnID, r)
			response = apologyUnexpected
		}
		a.append(ctx, turnID, ConversationEntry{Role: RoleAssistant, Content: response})
		log.Printf("--- [%s] %s replied: %q ---", turnID, a.name, response)
	}()

	decision := a.reasoner.Decide(ctx, utterance, a.tools.GetDefinitions())
	a.stats.RecordDecision(ctx, decision.Kind)

	switch decision.Kind {
	case llm.DecisionFinalResponse:
		response = decision.Response
	case llm.DecisionCallTool:
		response = a.dispatch(ctx, turnID, decision.ToolCall)
	default:
		log.Printf("⚠️ [%s] Reasoning step failed: %s", turnID, decision.Response)
		response = apologyCannotProcess
	}
	return response
}

// dispatch executes the requested tool and composes the response for it.
func (a *Agent) dispatch(ctx context.Context, turnID string, call *tools.ToolCall) string {
	if call == nil {
		log.Printf("⚠️ [%s] call_tool decision carried no tool call", turnID)
		return apologyCannotProcess
	}
	name := call.Function.Name
	a.stats.RecordToolCall(ctx, name)
	log.Printf("🛠️ [%s] Dispatching tool '%s' with arguments: %s", turnID, name, call.Function.Arguments)

	result, err := a.tools.Execute(name, call.Function.Arguments)
	if err == nil {
		log.Printf("✅ [%s] Tool '%s' completed.", turnID, name)
		return fmt.Sprintf(toolResultTemplate, result)
	}

	var argErr *tools.ArgumentError
	switch {
	case errors.Is(err, tools.ErrToolNotFound):
		log.Printf("⚠️ [%s] Requested tool '%s' is not registered.", turnID, name)
		return fmt.Sprintf(missingToolTemplate, name)
	case errors.As(err, &argErr):
		log.Printf("⚠️ [%s] Rejected arguments for tool '%s': %s", turnID, name, argErr.Reason)
		return fmt.Sprintf(invalidArgsTemplate, name, argErr.Reason)
	default:
		log.Printf("❌ [%s] Tool '%s' failed: %v", turnID, name, err)
		return apologyUnexpected
	}
}

// append writes one entry, logging rather than failing when the log store is
// unavailable. A broken transcript must not break the turn.
func (a *Agent) append(ctx context.Context, turnID string, entry ConversationEntry) {
	if err := a.transcript.Append(ctx, entry); err != nil {
		log.Printf("⚠️ [%s] Failed to append %s entry to transcript: %v", turnID, entry.Role, err)
	}
}
