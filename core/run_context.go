package core

import (
	"context"

	"github.com/google/uuid"

	"github.com/hupe1980/agentlab/logging"
)

// RunContext carries execution state & helpers for a single agent run.
// It aggregates the ambient cancellation Context, a unique RunID, the caller
// supplied dependencies (available to dynamic instructions and tools) and a
// Logger. RunContext values are created per Run invocation and must not be
// shared across runs.
type RunContext struct {
	Context context.Context
	RunID   string
	Deps    any

	logger logging.Logger
}

// NewRunContext constructs a RunContext with a fresh run id. A nil logger is
// substituted with NoOpLogger.
func NewRunContext(ctx context.Context, deps any, logger logging.Logger) *RunContext {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	return &RunContext{
		Context: ctx,
		RunID:   uuid.NewString(),
		Deps:    deps,
		logger:  logger,
	}
}

// WithContext returns a shallow copy of the run context bound to ctx. RunID,
// Deps and the logger are shared with the original.
func (rc *RunContext) WithContext(ctx context.Context) *RunContext {
	clone := *rc
	clone.Context = ctx

	return &clone
}

// Logger returns the run logger, never nil.
func (rc *RunContext) Logger() logging.Logger { return rc.logger }

// Done returns a channel closed when the underlying context is cancelled.
func (rc *RunContext) Done() <-chan struct{} { return rc.Context.Done() }

// Err returns the cancellation error (if any) from the underlying context.
func (rc *RunContext) Err() error { return rc.Context.Err() }

// LogDebug logs a debug message on the run logger.
func (rc *RunContext) LogDebug(msg string, args ...any) { rc.logger.Debug(msg, args...) }

// LogInfo logs an info message on the run logger.
func (rc *RunContext) LogInfo(msg string, args ...any) { rc.logger.Info(msg, args...) }

// LogWarn logs a warning message on the run logger.
func (rc *RunContext) LogWarn(msg string, args ...any) { rc.logger.Warn(msg, args...) }

// LogError logs an error message on the run logger.
func (rc *RunContext) LogError(msg string, args ...any) { rc.logger.Error(msg, args...) }

// Deps returns the dependencies of a run context asserted to T. The second
// return reports whether the assertion held.
func Deps[T any](rc *RunContext) (T, bool) {
	t, ok := rc.Deps.(T)
	return t, ok
}
