package agent

import (
	"context"
)

// StreamChunk is one token-level fragment of a streamed answer. Final marks
// the chunk carrying the complete result.
type StreamChunk struct {
	// Delta is the incremental text since the previous chunk.
	Delta string

	// Final is true on the last chunk, whose Result field is then populated.
	Final bool

	// Result is the completed run outcome, set only when Final is true.
	Result *Result
}

// RunStream executes the agent like Run but emits text deltas as the model
// produces them. The chunk channel is closed after the final chunk; a run
// failure is delivered on the error channel instead. Both channels must be
// drained.
func (a *Agent) RunStream(ctx context.Context, prompt string, optFns ...func(*RunConfig)) (<-chan StreamChunk, <-chan error) {
	chunkCh := make(chan StreamChunk)
	errCh := make(chan error, 1)

	go func() {
		defer close(chunkCh)
		defer close(errCh)

		onDelta := func(delta string) {
			select {
			case chunkCh <- StreamChunk{Delta: delta}:
			case <-ctx.Done():
			}
		}

		result, err := a.run(ctx, prompt, true, onDelta, optFns...)
		if err != nil {
			errCh <- err
			return
		}

		select {
		case chunkCh <- StreamChunk{Final: true, Result: result}:
		case <-ctx.Done():
		}
	}()

	return chunkCh, errCh
}
