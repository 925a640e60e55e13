// Package agent implements the conversational agent at the heart of agentlab:
// a configured wrapper around a hosted language model plus a set of callback
// tools it may invoke. An Agent resolves its instructions (static or derived
// from run dependencies), drives a bounded tool-call loop against the model,
// optionally validates structured output against a JSON schema with automatic
// retries, and supports token-level streaming.
package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hupe1980/agentlab/core"
	"github.com/hupe1980/agentlab/logging"
	"github.com/hupe1980/agentlab/model"
	"github.com/hupe1980/agentlab/tool"
)

// Options configures an Agent instance. Use functional options with New to
// override defaults.
type Options struct {
	// Instructions form the system prompt. Static text and dynamic providers
	// may be mixed; resolved values are joined with blank lines.
	Instructions []Instruction

	// Tools exposed to the model for function calling.
	Tools []tool.Tool

	// Output declares a structured result shape. Nil means free text.
	Output *Output

	// OutputRetries bounds how many corrective round trips are allowed when
	// output validation fails (schema or validator).
	OutputRetries int

	// OutputValidator inspects the final output before it is returned.
	// Returning *RetryError sends the reason back to the model for another
	// attempt; any other error aborts the run.
	OutputValidator func(runCtx *core.RunContext, output string) error

	// MaxTurns caps the tool-call loop. It is the only termination guarantee.
	MaxTurns int

	// MaxHistoryMessages limits how many trailing conversation messages are
	// sent to the model. Zero means no limit.
	MaxHistoryMessages int

	// MaxParallelTools bounds concurrent tool execution within one turn.
	MaxParallelTools int

	// ToolTimeout is the per-tool-call deadline.
	ToolTimeout time.Duration

	// Logger receives structured run/tool/model logs. Defaults to NoOp.
	Logger logging.Logger

	// Tracer, when set, records spans for model and tool calls.
	Tracer trace.Tracer
}

// Agent is a reusable, safe-for-concurrent-runs wrapper around a model and
// its registered tools. Construct with New; per-run state lives in RunContext.
type Agent struct {
	name            string
	llm             model.Model
	instructions    []Instruction
	tools           map[string]tool.Tool
	toolOrder       []string
	output          *Output
	outputRetries   int
	outputValidator func(*core.RunContext, string) error
	maxTurns        int
	maxHistory      int
	maxParallel     int
	toolTimeout     time.Duration
	logger          logging.Logger
	tracer          trace.Tracer
}

// New creates an agent with sensible defaults: a generic assistant prompt,
// ten loop turns, two output retries, four parallel tool slots and a
// 15 second tool timeout.
func New(name string, llm model.Model, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Instructions:     []Instruction{NewInstructionFromText(fmt.Sprintf("You are %s, a helpful AI assistant.", name))},
		OutputRetries:    2,
		MaxTurns:         10,
		MaxParallelTools: 4,
		ToolTimeout:      15 * time.Second,
		Logger:           logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	a := &Agent{
		name:            name,
		llm:             llm,
		instructions:    opts.Instructions,
		tools:           make(map[string]tool.Tool),
		output:          opts.Output,
		outputRetries:   opts.OutputRetries,
		outputValidator: opts.OutputValidator,
		maxTurns:        opts.MaxTurns,
		maxHistory:      opts.MaxHistoryMessages,
		maxParallel:     opts.MaxParallelTools,
		toolTimeout:     opts.ToolTimeout,
		logger:          opts.Logger,
		tracer:          opts.Tracer,
	}

	a.RegisterTools(opts.Tools...)

	return a
}

// Name returns the agent name used in prompts and logs.
func (a *Agent) Name() string { return a.name }

// Model returns the underlying language model.
func (a *Agent) Model() model.Model { return a.llm }

// RegisterTool adds a function tool to the agent's capability set. Later
// registrations with the same name replace earlier ones.
func (a *Agent) RegisterTool(t tool.Tool) {
	if _, exists := a.tools[t.Name()]; !exists {
		a.toolOrder = append(a.toolOrder, t.Name())
	}

	a.tools[t.Name()] = t
}

// RegisterTools adds multiple tools at once.
func (a *Agent) RegisterTools(tools ...tool.Tool) {
	for _, t := range tools {
		a.RegisterTool(t)
	}
}

// Tool retrieves a registered tool by name.
func (a *Agent) Tool(name string) (tool.Tool, bool) {
	t, ok := a.tools[name]
	return t, ok
}

// RunConfig carries per-run inputs: prior conversation history and arbitrary
// dependencies surfaced to dynamic instructions and tools.
type RunConfig struct {
	History []core.Content
	Deps    any
}

// WithHistory seeds the run with prior conversation messages.
func WithHistory(history []core.Content) func(*RunConfig) {
	return func(c *RunConfig) { c.History = history }
}

// WithDeps injects run dependencies available to dynamic instructions and tools.
func WithDeps(deps any) func(*RunConfig) {
	return func(c *RunConfig) { c.Deps = deps }
}

// Run executes the agent synchronously: it sends the prompt (plus history) to
// the model, executes requested tool calls, feeds results back, and repeats
// until the model produces a final text answer or MaxTurns is exhausted.
func (a *Agent) Run(ctx context.Context, prompt string, optFns ...func(*RunConfig)) (*Result, error) {
	return a.run(ctx, prompt, false, nil, optFns...)
}

func (a *Agent) run(
	ctx context.Context,
	prompt string,
	stream bool,
	onDelta func(string),
	optFns ...func(*RunConfig),
) (*Result, error) {
	cfg := RunConfig{}
	for _, fn := range optFns {
		fn(&cfg)
	}

	runCtx := core.NewRunContext(ctx, cfg.Deps, a.logger)

	instructions, err := resolveAll(runCtx, a.instructions)
	if err != nil {
		return nil, fmt.Errorf("resolve instructions: %w", err)
	}

	if a.output != nil {
		instructions += "\n\n" + a.output.instructions()
	}

	messages := make([]core.Content, 0, len(cfg.History)+1)
	messages = append(messages, cfg.History...)
	messages = append(messages, core.NewUserText(prompt))

	newStart := len(cfg.History)

	runCtx.LogDebug("agent.run.start", "agent", a.name, "run", runCtx.RunID)

	var usage model.TokenUsage
	retriesLeft := a.outputRetries

	for turn := 0; turn < a.maxTurns; turn++ {
		req := model.Request{
			Instructions: instructions,
			Contents:     a.trimHistory(messages),
			Tools:        a.toolDefinitions(),
			Stream:       stream,
		}

		resp, err := a.generate(runCtx, req, onDelta)
		if err != nil {
			return nil, err
		}

		if resp.Usage != nil {
			usage.PromptTokens += resp.Usage.PromptTokens
			usage.CompletionTokens += resp.Usage.CompletionTokens
			usage.TotalTokens += resp.Usage.TotalTokens
		}

		resp.Content = ensureCallIDs(resp.Content)
		messages = append(messages, resp.Content)

		if calls := resp.Content.FunctionCalls(); len(calls) > 0 {
			runCtx.LogDebug("agent.turn.tool_calls", "agent", a.name, "count", len(calls))

			responses := a.executeCalls(runCtx, calls)
			messages = append(messages, core.Content{Role: "tool", Parts: responses})

			continue
		}

		output := resp.Content.Text()

		if a.output != nil {
			payload, vErr := a.output.validate(output)
			if vErr != nil {
				if retriesLeft > 0 {
					retriesLeft--
					runCtx.LogInfo("agent.output.retry", "agent", a.name, "error", vErr.Error())
					messages = append(messages, core.NewUserText(
						"Your previous response failed validation: "+vErr.Error()+
							". Respond again with a corrected JSON object."))

					continue
				}

				return nil, fmt.Errorf("%w: %v", ErrOutputValidation, vErr)
			}

			output = payload
		}

		if a.outputValidator != nil {
			if vErr := a.outputValidator(runCtx, output); vErr != nil {
				var retry *RetryError
				if errors.As(vErr, &retry) && retriesLeft > 0 {
					retriesLeft--
					runCtx.LogInfo("agent.output.rejected", "agent", a.name, "reason", retry.Reason)
					messages = append(messages, core.NewUserText(
						"Your previous response was rejected: "+retry.Reason+
							". Produce an improved response."))

					continue
				}

				return nil, fmt.Errorf("%w: %v", ErrOutputValidation, vErr)
			}
		}

		runCtx.LogDebug("agent.run.complete", "agent", a.name, "run", runCtx.RunID)

		return &Result{
			Output:      output,
			Messages:    messages,
			newMessages: messages[newStart:],
			Usage:       usage,
		}, nil
	}

	return nil, ErrMaxTurns
}

// generate drains the model channels, forwarding partial text deltas to
// onDelta (if set) and returning the final response.
func (a *Agent) generate(runCtx *core.RunContext, req model.Request, onDelta func(string)) (model.Response, error) {
	ctx := runCtx.Context

	if a.tracer != nil {
		var span trace.Span
		ctx, span = a.tracer.Start(runCtx.Context, "agent.model.generate",
			trace.WithAttributes(
				attribute.String("agent.name", a.name),
				attribute.String("model.provider", a.llm.Info().Provider),
				attribute.String("model.name", a.llm.Info().Name),
			))
		defer span.End()
	}

	start := time.Now()
	respCh, errCh := a.llm.Generate(ctx, req)

	var final model.Response
	var haveFinal bool

	for respCh != nil || errCh != nil {
		select {
		case resp, ok := <-respCh:
			if !ok {
				respCh = nil
				continue
			}

			if resp.Partial {
				if onDelta != nil {
					if text := resp.Content.Text(); text != "" {
						onDelta(text)
					}
				}

				continue
			}

			final = resp
			haveFinal = true
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}

			if err != nil {
				runCtx.LogError("agent.model.error", "agent", a.name, "error", err.Error())

				return model.Response{}, fmt.Errorf("model generate: %w", err)
			}
		case <-ctx.Done():
			return model.Response{}, ctx.Err()
		}
	}

	if !haveFinal {
		return model.Response{}, ErrNoResponse
	}

	runCtx.LogDebug("agent.model.response",
		"agent", a.name,
		"finish", final.FinishReason,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return final, nil
}

// toolDefinitions exposes registered tools in stable registration order.
func (a *Agent) toolDefinitions() []model.ToolDefinition {
	if len(a.toolOrder) == 0 {
		return nil
	}

	defs := make([]model.ToolDefinition, 0, len(a.toolOrder))

	for _, name := range a.toolOrder {
		t := a.tools[name]
		defs = append(defs, model.ToolDefinition{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}

	return defs
}

// trimHistory keeps the trailing MaxHistoryMessages messages. If trimming
// would orphan tool responses from their assistant tool-call message, the
// window is widened to keep the pair intact.
func (a *Agent) trimHistory(messages []core.Content) []core.Content {
	if a.maxHistory <= 0 || len(messages) <= a.maxHistory {
		return messages
	}

	start := len(messages) - a.maxHistory
	for start > 0 && messages[start].Role == "tool" {
		start--
	}

	return messages[start:]
}

// ensureCallIDs assigns a correlation id to every function call that arrived
// without one. The id must live on the assistant message itself so provider
// adapters can pair the call with its tool response on later turns.
func ensureCallIDs(c core.Content) core.Content {
	for i, p := range c.Parts {
		fc, ok := p.(core.FunctionCallPart)
		if !ok || fc.FunctionCall.ID != "" {
			continue
		}

		fc.FunctionCall.ID = uuid.NewString()
		c.Parts[i] = fc
	}

	return c
}
