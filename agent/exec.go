package agent

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/agentlab/core"
	"github.com/hupe1980/agentlab/tool"
)

// executeCalls runs all tool calls requested in one model turn. Calls run
// concurrently up to MaxParallelTools; results are returned in call order.
// Tool failures never abort the run, they are reported back to the model as
// function responses carrying an error string.
func (a *Agent) executeCalls(runCtx *core.RunContext, calls []core.FunctionCall) []core.Part {
	responses := make([]core.Part, len(calls))

	limit := a.maxParallel
	if limit <= 0 {
		limit = 1
	}

	g, _ := errgroup.WithContext(runCtx.Context)
	g.SetLimit(limit)

	for i, call := range calls {
		g.Go(func() error {
			responses[i] = core.FunctionResponsePart{
				FunctionResponse: a.executeCall(runCtx, call),
			}

			return nil
		})
	}

	_ = g.Wait()

	return responses
}

func (a *Agent) executeCall(runCtx *core.RunContext, call core.FunctionCall) core.FunctionResponse {
	resp := core.FunctionResponse{ID: call.ID, Name: call.Name}

	if a.tracer != nil {
		spanCtx, span := a.tracer.Start(runCtx.Context, "agent.tool.call",
			trace.WithAttributes(
				attribute.String("agent.name", a.name),
				attribute.String("tool.name", call.Name),
			))
		defer span.End()

		runCtx = runCtx.WithContext(spanCtx)

		defer func() {
			if resp.Error != "" {
				span.SetStatus(codes.Error, resp.Error)
			} else {
				span.SetStatus(codes.Ok, "")
			}
		}()
	}

	t, ok := a.tools[call.Name]
	if !ok {
		runCtx.LogWarn("agent.tool.unknown", "agent", a.name, "tool", call.Name)
		resp.Error = fmt.Sprintf("unknown tool %q", call.Name)

		return resp
	}

	args, err := tool.DecodeArguments(call.Arguments)
	if err != nil {
		resp.Error = fmt.Sprintf("invalid arguments: %v", err)

		return resp
	}

	ctx := runCtx.Context
	if a.toolTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(runCtx.Context, a.toolTimeout)
		defer cancel()
	}

	callCtx := runCtx.WithContext(ctx)
	toolCtx := core.NewToolContext(callCtx, call.ID)

	result, err := t.Call(toolCtx, args)
	if err != nil {
		runCtx.LogWarn("agent.tool.failed", "agent", a.name, "tool", call.Name, "error", err.Error())
		resp.Error = err.Error()

		return resp
	}

	resp.Response = result

	return resp
}
