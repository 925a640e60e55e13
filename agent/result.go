package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/agentlab/core"
	"github.com/hupe1980/agentlab/model"
)

// Result is the outcome of a completed agent run.
type Result struct {
	// Output is the final answer. For structured-output agents it is the
	// validated JSON payload.
	Output string

	// Messages is the full conversation, including any seeded history.
	Messages []core.Content

	// Usage aggregates token consumption across all model turns of the run.
	Usage model.TokenUsage

	newMessages []core.Content
}

// NewMessages returns only the messages produced during this run, excluding
// seeded history. Feed these into the next Run via WithHistory to continue a
// conversation.
func (r *Result) NewMessages() []core.Content { return r.newMessages }

// Decode unmarshals a structured output into v.
func (r *Result) Decode(v any) error {
	if err := json.Unmarshal([]byte(r.Output), v); err != nil {
		return fmt.Errorf("decode output: %w", err)
	}

	return nil
}

// RunTyped runs the agent and decodes its structured output into T. The agent
// must be configured with OutputType for the same shape.
func RunTyped[T any](ctx context.Context, a *Agent, prompt string, optFns ...func(*RunConfig)) (T, error) {
	var out T

	result, err := a.Run(ctx, prompt, optFns...)
	if err != nil {
		return out, err
	}

	if err := result.Decode(&out); err != nil {
		return out, err
	}

	return out, nil
}
