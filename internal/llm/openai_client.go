// In file: internal/llm/openai_client.go
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/coriolis-labs/scout/internal/tools"
)

// OpenAIClient talks to OpenAI chat models through the openai-go SDK.
type OpenAIClient struct {
	client *openai.Client
}

// Statically verify that OpenAIClient implements the LLMClient interface.
var _ LLMClient = (*OpenAIClient)(nil)

// NewOpenAIClient creates a client for the OpenAI API. The model is chosen
// per request through GenerationConfig, so one client covers every GPT model.
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key cannot be empty")
	}
	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// Generate performs a blocking chat-completion request.
func (c *OpenAIClient) Generate(
	ctx context.Context,
	messages []Message,
	config *GenerationConfig,
	availableTools []tools.Tool,
) (*GenerationResult, error) {
	if len(messages) == 0 {
		return nil, errors.New("no messages to send to OpenAI")
	}

	params := openai.ChatCompletionNewParams{
		Messages: openai.F(toOpenAIMessages(messages)),
		Model:    openai.F(config.Model),
	}
	if config.MaxTokens > 0 {
		params.MaxTokens = openai.F(int64(config.MaxTokens))
	}
	if config.Temperature != nil {
		params.Temperature = openai.F(float64(*config.Temperature))
	}
	if len(availableTools) > 0 {
		params.Tools = openai.F(toOpenAITools(availableTools))
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai API call failed: %w", err)
	}
	return parseOpenAICompletion(completion)
}

// toOpenAIMessages converts our messages to the SDK's param unions.
func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		case RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}

// toOpenAITools converts our tool definitions to the SDK's param shapes.
func toOpenAITools(toolsToConvert []tools.Tool) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, 0, len(toolsToConvert))
	for _, t := range toolsToConvert {
		out = append(out, openai.ChatCompletionToolParam{
			Type: openai.F(openai.ChatCompletionToolTypeFunction),
			Function: openai.F(openai.FunctionDefinitionParam{
				Name:        openai.F(t.Function.Name),
				Description: openai.F(t.Function.Description),
				Parameters:  openai.F(toFunctionParameters(t.Function.Parameters)),
			}),
		})
	}
	return out
}

// toFunctionParameters renders a JSONSchema into the loose map the SDK takes.
func toFunctionParameters(schema tools.JSONSchema) openai.FunctionParameters {
	return openai.FunctionParameters(schemaToMap(schema))
}

func schemaToMap(schema tools.JSONSchema) map[string]interface{} {
	out := map[string]interface{}{
		"type": schema.Type,
	}
	if schema.Description != "" {
		out["description"] = schema.Description
	}
	if len(schema.Properties) > 0 {
		properties := make(map[string]interface{}, len(schema.Properties))
		for name, prop := range schema.Properties {
			properties[name] = schemaToMap(*prop)
		}
		out["properties"] = properties
	}
	if len(schema.Required) > 0 {
		out["required"] = schema.Required
	}
	return out
}

// parseOpenAICompletion folds a chat completion into our GenerationResult.
func parseOpenAICompletion(completion *openai.ChatCompletion) (*GenerationResult, error) {
	if completion == nil || len(completion.Choices) == 0 {
		return nil, errors.New("no choices returned from OpenAI")
	}

	message := completion.Choices[0].Message
	result := &GenerationResult{Content: message.Content}
	for _, call := range message.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, &tools.ToolCall{
			ID:   call.ID,
			Type: tools.ToolTypeFunction,
			Function: tools.ToolCallFunction{
				Name:      call.Function.Name,
				Arguments: call.Function.Arguments,
			},
		})
	}
	result.Usage = Usage{
		PromptTokens:     int(completion.Usage.PromptTokens),
		CompletionTokens: int(completion.Usage.CompletionTokens),
		TotalTokens:      int(completion.Usage.TotalTokens),
	}
	return result, nil
}
