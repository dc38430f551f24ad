// In file: internal/llm/reasoner_test.go
package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/coriolis-labs/scout/internal/tools"
)

// fakeClient scripts one Generate outcome and records what it was asked.
type fakeClient struct {
	result *GenerationResult
	err    error

	calls        int
	lastMessages []Message
	lastTools    []tools.Tool
}

func (f *fakeClient) Generate(ctx context.Context, messages []Message, config *GenerationConfig, availableTools []tools.Tool) (*GenerationResult, error) {
	f.calls++
	f.lastMessages = messages
	f.lastTools = availableTools
	return f.result, f.err
}

func testReasoner(client LLMClient) *Reasoner {
	return &Reasoner{
		client: client,
		config: &GenerationConfig{Model: "gemini-2.5-flash", MaxTokens: 1024},
	}
}

func TestDecideFinalResponseVerbatim(t *testing.T) {
	fake := &fakeClient{result: &GenerationResult{Content: "The capital of France is Paris."}}
	r := testReasoner(fake)

	decision := r.Decide(context.Background(), "What is the capital of France?", nil)
	if decision.Kind != DecisionFinalResponse {
		t.Fatalf("Kind = %q, want %q", decision.Kind, DecisionFinalResponse)
	}
	if decision.Response != "The capital of France is Paris." {
		t.Errorf("Response = %q, want the model text verbatim", decision.Response)
	}
}

func TestDecideToolCall(t *testing.T) {
	fake := &fakeClient{result: &GenerationResult{
		ToolCalls: []*tools.ToolCall{{
			ID:   "call-1",
			Type: tools.ToolTypeFunction,
			Function: tools.ToolCallFunction{
				Name:      "get_current_weather",
				Arguments: `{"location":"Paris, France"}`,
			},
		}},
	}}
	r := testReasoner(fake)

	decision := r.Decide(context.Background(), "What's the weather in Paris?", nil)
	if decision.Kind != DecisionCallTool {
		t.Fatalf("Kind = %q, want %q", decision.Kind, DecisionCallTool)
	}
	if decision.ToolCall == nil || decision.ToolCall.Function.Name != "get_current_weather" {
		t.Fatalf("ToolCall = %+v, want get_current_weather", decision.ToolCall)
	}
	if decision.ToolCall.Function.Arguments != `{"location":"Paris, France"}` {
		t.Errorf("Arguments = %q", decision.ToolCall.Function.Arguments)
	}
}

func TestDecideToolCallWinsOverContent(t *testing.T) {
	fake := &fakeClient{result: &GenerationResult{
		Content: "Let me check that for you.",
		ToolCalls: []*tools.ToolCall{{
			Function: tools.ToolCallFunction{Name: "get_search_results", Arguments: `{"query":"go 1.24"}`},
		}},
	}}
	r := testReasoner(fake)

	decision := r.Decide(context.Background(), "Search for go 1.24", nil)
	if decision.Kind != DecisionCallTool {
		t.Errorf("Kind = %q, want call_tool when both text and a call are present", decision.Kind)
	}
}

func TestDecideDispatchesOnlyFirstToolCall(t *testing.T) {
	fake := &fakeClient{result: &GenerationResult{
		ToolCalls: []*tools.ToolCall{
			{Function: tools.ToolCallFunction{Name: "get_location_coords", Arguments: `{"location_name":"Paris"}`}},
			{Function: tools.ToolCallFunction{Name: "get_search_results", Arguments: `{"query":"Paris"}`}},
		},
	}}
	r := testReasoner(fake)

	decision := r.Decide(context.Background(), "Tell me about Paris", nil)
	if decision.Kind != DecisionCallTool {
		t.Fatalf("Kind = %q, want %q", decision.Kind, DecisionCallTool)
	}
	if decision.ToolCall.Function.Name != "get_location_coords" {
		t.Errorf("dispatched %q, want the first requested call", decision.ToolCall.Function.Name)
	}
}

func TestDecideClientErrorBecomesErrorDecision(t *testing.T) {
	fake := &fakeClient{err: errors.New("dial tcp: connection refused")}
	r := testReasoner(fake)

	decision := r.Decide(context.Background(), "Anything", nil)
	if decision.Kind != DecisionError {
		t.Fatalf("Kind = %q, want %q", decision.Kind, DecisionError)
	}
	if decision.Response != reasoningFailedDiagnostic {
		t.Errorf("Response = %q, want the fixed diagnostic", decision.Response)
	}
}

func TestDecideEmptyReplyBecomesErrorDecision(t *testing.T) {
	fake := &fakeClient{result: &GenerationResult{}}
	r := testReasoner(fake)

	decision := r.Decide(context.Background(), "Anything", nil)
	if decision.Kind != DecisionError {
		t.Errorf("Kind = %q, want %q for an empty reply", decision.Kind, DecisionError)
	}
}

func TestDecideDisabledReasoner(t *testing.T) {
	r := NewReasoner("gemini-2.5-flash", "", 1024)

	decision := r.Decide(context.Background(), "Anything", nil)
	if decision.Kind != DecisionError {
		t.Fatalf("Kind = %q, want %q from a disabled reasoner", decision.Kind, DecisionError)
	}
}

func TestDecideUnknownModelPrefixDisablesReasoner(t *testing.T) {
	r := NewReasoner("llama-3-70b", "some-key", 1024)

	decision := r.Decide(context.Background(), "Anything", nil)
	if decision.Kind != DecisionError {
		t.Errorf("Kind = %q, want %q for an unsupported model", decision.Kind, DecisionError)
	}
}

func TestDecideSendsUtteranceAndTools(t *testing.T) {
	fake := &fakeClient{result: &GenerationResult{Content: "ok"}}
	r := testReasoner(fake)

	available := []tools.Tool{
		tools.NewFunctionTool("get_current_weather", "weather", tools.JSONSchema{Type: "object"}),
	}
	r.Decide(context.Background(), "What's the weather?", available)

	if fake.calls != 1 {
		t.Fatalf("Generate called %d times, want 1", fake.calls)
	}
	if len(fake.lastMessages) != 1 || fake.lastMessages[0].Role != RoleUser {
		t.Fatalf("messages = %+v, want a single user message", fake.lastMessages)
	}
	if fake.lastMessages[0].Content != "What's the weather?" {
		t.Errorf("utterance = %q", fake.lastMessages[0].Content)
	}
	if len(fake.lastTools) != 1 || fake.lastTools[0].Function.Name != "get_current_weather" {
		t.Errorf("tools forwarded = %+v", fake.lastTools)
	}
}
