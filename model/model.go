// Package model defines the normalized request/response contract between
// agents and hosted language model providers, plus a scripted MockModel for
// tests and offline demos.
package model

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hupe1980/agentlab/core"
)

// ToolCall represents a function call request surfaced by a model provider.
// Unified across vendors so downstream logic does not need per-provider branching.
type ToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"` // "function"
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction describes the concrete function target of a tool call.
type ToolCallFunction struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"` // JSON string of arguments
}

// ToolDefinition declaratively exposes a callable function to the model.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual function (tool) exposed to the
// model. Parameters is a JSON Schema object.
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures the normalized model input produced by an agent run.
type Request struct {
	Instructions string           `json:"instructions"` // System prompt for the model
	Contents     []core.Content   `json:"contents"`     // Conversation converted to provider messages
	Tools        []ToolDefinition `json:"tools,omitempty"`
	Stream       bool             `json:"stream,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is a (partial or final) chunk emitted by a model.
type Response struct {
	ID           string       `json:"id"`
	Partial      bool         `json:"partial"` // True for streaming deltas
	Content      core.Content `json:"content"`
	FinishReason string       `json:"finish_reason"` // "stop", "length", "tool_calls", etc.
	Usage        *TokenUsage  `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "mock", etc.
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required by agents to drive generation.
// Generate emits zero or more partial responses followed by a final response
// on the first channel; a terminal error, if any, arrives on the second. Both
// channels are closed when generation ends.
type Model interface {
	Generate(ctx context.Context, req Request) (<-chan Response, <-chan error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockTurn scripts one assistant turn for MockModel: plain text, tool calls,
// or both.
type MockTurn struct {
	Text  string
	Calls []core.FunctionCall
}

// MockModel is a lightweight in-memory Model useful for tests & offline
// examples. Turns can be scripted in order (AddTurn) or keyed by the exact
// text of the last user message (AddResponse). Unscripted prompts fall back
// to an echo response.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	turns     []MockTurn
	next      int
	responses map[string]string
}

// NewMockModel constructs a MockModel with tool support enabled.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info: Info{
			Name:          name,
			Provider:      "mock",
			SupportsTools: true,
		},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[prompt] = response
}

// AddTurn appends a scripted assistant turn consumed in FIFO order. Scripted
// turns take precedence over prompt-keyed responses.
func (m *MockModel) AddTurn(turn MockTurn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, turn)
}

// Generate implements Model; emits optional streaming rune chunks then the
// final response.
func (m *MockModel) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(respCh)
		defer close(errCh)

		if len(req.Contents) == 0 {
			errCh <- fmt.Errorf("no contents provided")
			return
		}

		turn, ok := m.takeTurn()
		if !ok {
			turn = MockTurn{Text: "Mock response to: " + lastUserText(req.Contents)}
			if canned := m.lookupResponse(lastUserText(req.Contents)); canned != "" {
				turn.Text = canned
			}
		}

		if req.Stream && len(turn.Calls) == 0 {
			for _, r := range turn.Text {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				case respCh <- Response{
					Partial: true,
					Content: core.NewAssistantText(string(r)),
				}:
				}
			}
		}

		parts := make([]core.Part, 0, len(turn.Calls)+1)
		if turn.Text != "" {
			parts = append(parts, core.TextPart{Text: turn.Text})
		}
		for _, fc := range turn.Calls {
			parts = append(parts, core.FunctionCallPart{FunctionCall: fc})
		}

		finish := "stop"
		if len(turn.Calls) > 0 {
			finish = "tool_calls"
		}

		respCh <- Response{
			Partial:      false,
			Content:      core.Content{Role: "assistant", Parts: parts},
			FinishReason: finish,
		}
	}()

	return respCh, errCh
}

func (m *MockModel) takeTurn() (MockTurn, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.next >= len(m.turns) {
		return MockTurn{}, false
	}

	turn := m.turns[m.next]
	m.next++

	return turn, true
}

func (m *MockModel) lookupResponse(prompt string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.responses[prompt]
}

func lastUserText(contents []core.Content) string {
	for i := len(contents) - 1; i >= 0; i-- {
		if contents[i].Role == "user" {
			return contents[i].Text()
		}
	}

	return ""
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
