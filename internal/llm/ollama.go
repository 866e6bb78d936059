package llm

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// OllamaModel implements the ADK model.LLM interface against a local Ollama server
type OllamaModel struct {
	client    *api.Client
	modelName string
}

// NewOllamaModel creates a new Ollama model
func NewOllamaModel(ctx context.Context, cfg Config) (model.LLM, error) {
	ollamaURL := cfg.OllamaURL
	if ollamaURL == "" {
		ollamaURL = "http://localhost:11434"
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "llama3.2"
	}

	u, err := url.Parse(ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid OLLAMA_URL: %w", err)
	}

	return &OllamaModel{
		client:    api.NewClient(u, http.DefaultClient),
		modelName: modelName,
	}, nil
}

// Name returns the model name
func (m *OllamaModel) Name() string {
	return m.modelName
}

// GenerateContent implements the ADK model.LLM interface
func (m *OllamaModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		chatReq := &api.ChatRequest{
			Model:    m.modelName,
			Messages: toOllamaMessages(req.Contents),
			Stream:   &stream,
		}
		if len(req.Tools) > 0 {
			chatReq.Tools = toOllamaTools(req.Tools)
		}

		if stream {
			err := m.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
				if resp.Message.Content != "" {
					llmResp := textResponse(resp.Message.Content)
					llmResp.Partial = !resp.Done
					llmResp.TurnComplete = resp.Done
					if !yield(llmResp, nil) {
						return fmt.Errorf("iteration stopped")
					}
				}
				if len(resp.Message.ToolCalls) > 0 {
					llmResp := toolCallResponse(resp.Message.ToolCalls)
					llmResp.TurnComplete = resp.Done
					if !yield(llmResp, nil) {
						return fmt.Errorf("iteration stopped")
					}
				}
				return nil
			})
			if err != nil {
				yield(nil, fmt.Errorf("Ollama chat error: %w", err))
			}
			return
		}

		var final api.ChatResponse
		err := m.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
			final = resp
			return nil
		})
		if err != nil {
			yield(nil, fmt.Errorf("Ollama chat error: %w", err))
			return
		}

		llmResp := textResponse(final.Message.Content)
		if len(final.Message.ToolCalls) > 0 {
			llmResp = toolCallResponse(final.Message.ToolCalls)
		}
		llmResp.TurnComplete = true
		yield(llmResp, nil)
	}
}

func textResponse(text string) *model.LLMResponse {
	return &model.LLMResponse{
		Content: &genai.Content{
			Role:  "model",
			Parts: []*genai.Part{genai.NewPartFromText(text)},
		},
	}
}

// toOllamaMessages converts genai.Content history to Ollama chat messages
func toOllamaMessages(contents []*genai.Content) []api.Message {
	var messages []api.Message

	for _, content := range contents {
		role := content.Role
		if role == "model" {
			role = "assistant"
		}

		var text string
		var toolCalls []api.ToolCall
		for _, part := range content.Parts {
			if part.Text != "" {
				text += part.Text
			}
			if part.FunctionCall != nil {
				args := make(api.ToolCallFunctionArguments)
				for k, v := range part.FunctionCall.Args {
					args[k] = v
				}
				toolCalls = append(toolCalls, api.ToolCall{
					Function: api.ToolCallFunction{
						Name:      part.FunctionCall.Name,
						Arguments: args,
					},
				})
			}
		}

		messages = append(messages, api.Message{
			Role:      role,
			Content:   text,
			ToolCalls: toolCalls,
		})
	}

	return messages
}

// toOllamaTools converts ADK tool declarations to Ollama tool definitions
func toOllamaTools(tools map[string]any) []api.Tool {
	var ollamaTools []api.Tool

	for name, tool := range tools {
		toolMap, ok := tool.(map[string]any)
		if !ok {
			continue
		}

		description, _ := toolMap["description"].(string)
		parameters, _ := toolMap["parameters"].(map[string]any)

		ollamaTools = append(ollamaTools, api.Tool{
			Type: "function",
			Function: api.ToolFunction{
				Name:        name,
				Description: description,
				Parameters: api.ToolFunctionParameters{
					Type:       "object",
					Properties: toOllamaProperties(parameters),
				},
			},
		})
	}

	return ollamaTools
}

func toOllamaProperties(params map[string]any) map[string]api.ToolProperty {
	result := make(map[string]api.ToolProperty)

	props, ok := params["properties"].(map[string]any)
	if !ok {
		return result
	}

	for name, prop := range props {
		propMap, ok := prop.(map[string]any)
		if !ok {
			continue
		}

		p := api.ToolProperty{Type: api.PropertyType{"string"}}
		if t, ok := propMap["type"].(string); ok {
			p.Type = api.PropertyType{t}
		}
		if d, ok := propMap["description"].(string); ok {
			p.Description = d
		}
		result[name] = p
	}

	return result
}

// toolCallResponse converts Ollama tool calls to an ADK response
func toolCallResponse(toolCalls []api.ToolCall) *model.LLMResponse {
	var parts []*genai.Part

	for _, tc := range toolCalls {
		args := make(map[string]any)
		for k, v := range tc.Function.Arguments {
			args[k] = v
		}
		parts = append(parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				Name: tc.Function.Name,
				Args: args,
			},
		})
	}

	return &model.LLMResponse{
		Content: &genai.Content{
			Role:  "model",
			Parts: parts,
		},
	}
}
