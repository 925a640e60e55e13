package agent

import (
	"fmt"

	"github.com/hupe1980/agentlab/core"
	"github.com/hupe1980/agentlab/tool"
)

// AsTool wraps an agent as a callable tool so another agent can delegate to
// it. The wrapped agent receives the "input" argument as its prompt and
// inherits the caller's deps.
func AsTool(a *Agent, description string) tool.Tool {
	parameters := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"input": map[string]any{
				"type":        "string",
				"description": "The request to forward to the " + a.Name() + " agent.",
			},
		},
		"required": []string{"input"},
	}

	fn := func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
		input, ok := args["input"].(string)
		if !ok {
			return nil, fmt.Errorf("input must be a string")
		}

		result, err := a.Run(toolCtx.Context(), input, WithDeps(toolCtx.Deps()))
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", a.Name(), err)
		}

		return result.Output, nil
	}

	return tool.NewFunctionTool(a.Name(), description, parameters, fn)
}
