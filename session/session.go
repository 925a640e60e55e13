// Package session provides conversation history storage so multi-turn
// programs can feed prior messages back into subsequent agent runs.
package session

import (
	"context"

	"github.com/hupe1980/agentlab/core"
)

// Store persists conversation messages keyed by session id.
type Store interface {
	// Append adds messages to the session history, creating the session if needed.
	Append(ctx context.Context, sessionID string, messages ...core.Content) error

	// Messages returns a copy of the full history for a session. Unknown
	// sessions yield an empty slice.
	Messages(ctx context.Context, sessionID string) ([]core.Content, error)

	// Clear removes all messages for a session.
	Clear(ctx context.Context, sessionID string) error
}
