package tool

import (
	"time"

	"github.com/hupe1980/agentlab/core"
	"github.com/hupe1980/agentlab/internal/schema"
)

// Func is the signature of a plain callback exposed to the model. Arguments
// arrive schema validated; the returned value must be JSON-serializable.
type Func func(toolCtx *core.ToolContext, args map[string]any) (any, error)

// FunctionTool is a generic adapter that exposes a plain Go function as a tool.
//
// Responsibilities:
//   - Holds a JSON schema describing the accepted arguments
//   - Validates model supplied arguments against that schema before execution
//   - Invokes the wrapped function with a *core.ToolContext
//   - Normalizes error handling so callers receive *ToolError with consistent
//     codes (VALIDATION_ERROR for schema mismatch, EXECUTION_ERROR otherwise;
//     custom codes preserved if the function returns *ToolError directly)
//
// A FunctionTool has no internal mutable state after construction and is safe
// for concurrent use by multiple goroutines.
type FunctionTool struct {
	name        string
	description string
	parameters  map[string]any
	fn          Func
}

// NewFunctionTool constructs a FunctionTool from an explicit schema and function.
//
// Example:
//
//	rollDie := tool.NewFunctionTool(
//		"roll_die",
//		"Roll a die with the given number of sides and return the result",
//		map[string]any{
//			"type": "object",
//			"properties": map[string]any{
//				"sides": map[string]any{"type": "integer", "description": "Number of sides, default 6"},
//			},
//		},
//		func(tc *core.ToolContext, args map[string]any) (any, error) { ... },
//	)
func NewFunctionTool(name, description string, parameters map[string]any, fn Func) *FunctionTool {
	return &FunctionTool{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}
}

// NewFunctionToolFromStruct derives the parameter schema from a struct sample
// using reflection. Struct tags (description, pattern, minimum, maximum, enum,
// format) map onto schema keywords.
//
// Example:
//
//	type rollArgs struct {
//		Sides int `json:"sides,omitempty" description:"Number of sides" minimum:"2"`
//	}
//
//	rollDie := tool.NewFunctionToolFromStruct("roll_die", "Roll a die", rollArgs{}, rollFn)
func NewFunctionToolFromStruct(name, description string, sample any, fn Func) *FunctionTool {
	return NewFunctionTool(name, description, schema.For(sample), fn)
}

// Name returns the unique tool name used in function call declarations and routing.
func (t *FunctionTool) Name() string { return t.name }

// Description returns the short natural language description exposed to models.
func (t *FunctionTool) Description() string { return t.description }

// Parameters returns the JSON schema describing expected arguments.
func (t *FunctionTool) Parameters() map[string]any { return t.parameters }

// Call validates the provided args against the declared schema then invokes
// the underlying function. Validation or execution failures are wrapped (or
// passed through) as *ToolError.
func (t *FunctionTool) Call(toolCtx *core.ToolContext, args map[string]any) (any, error) {
	logger := toolCtx.Logger()
	start := time.Now()

	logger.Debug("tool.call.start", "tool", t.name, "fc_id", toolCtx.FunctionCallID())

	if err := ValidateArguments(args, t.parameters); err != nil {
		logger.Warn("tool.call.validation_failed", "tool", t.name, "error", err.Error())

		return nil, &ToolError{
			Tool:    t.name,
			Message: "parameter validation failed: " + err.Error(),
			Code:    CodeValidation,
			Details: err,
		}
	}

	result, err := t.fn(toolCtx, args)
	if err != nil {
		if toolErr, ok := err.(*ToolError); ok {
			logger.Error("tool.call.error", "tool", t.name, "error", toolErr.Message)

			return nil, toolErr
		}

		logger.Error("tool.call.error", "tool", t.name, "error", err.Error())

		return nil, &ToolError{
			Tool:    t.name,
			Message: err.Error(),
			Code:    CodeExecution,
		}
	}

	logger.Info("tool.call.success", "tool", t.name, "duration_ms", time.Since(start).Milliseconds())

	return result, nil
}
