package core

import (
	"context"

	"github.com/hupe1980/agentlab/logging"
)

// ToolContext provides a constrained, auditable surface for tool / function
// implementations invoked by an agent. It exposes the ambient context, the
// function call id correlating request and response, the run dependencies and
// a logger, without granting tools access to the full run state.
type ToolContext struct {
	runCtx         *RunContext
	functionCallID string
}

// NewToolContext constructs a tool context bound to a parent RunContext and
// unique functionCallID.
func NewToolContext(runCtx *RunContext, functionCallID string) *ToolContext {
	return &ToolContext{runCtx: runCtx, functionCallID: functionCallID}
}

// Context returns the context associated with the tool invocation.
func (tc *ToolContext) Context() context.Context { return tc.runCtx.Context }

// RunID returns the run ID associated with the tool invocation.
func (tc *ToolContext) RunID() string { return tc.runCtx.RunID }

// FunctionCallID returns the function call ID associated with the tool invocation.
func (tc *ToolContext) FunctionCallID() string { return tc.functionCallID }

// Deps returns the run dependencies supplied by the caller.
func (tc *ToolContext) Deps() any { return tc.runCtx.Deps }

// Logger returns the logger associated with the tool invocation.
func (tc *ToolContext) Logger() logging.Logger { return tc.runCtx.Logger() }
