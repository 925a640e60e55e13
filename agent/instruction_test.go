package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentlab/core"
)

func TestInstruction_Static(t *testing.T) {
	in := NewInstructionFromText("be brief")
	assert.True(t, in.IsStatic())

	rc := core.NewRunContext(context.Background(), nil, nil)

	text, err := in.Resolve(rc)
	require.NoError(t, err)
	assert.Equal(t, "be brief", text)
}

func TestInstruction_Dynamic(t *testing.T) {
	in := NewInstructionFromFunc(func(rc *core.RunContext) (string, error) {
		name, _ := core.Deps[string](rc)
		return "assist " + name, nil
	})
	assert.False(t, in.IsStatic())

	rc := core.NewRunContext(context.Background(), "Ada", nil)

	text, err := in.Resolve(rc)
	require.NoError(t, err)
	assert.Equal(t, "assist Ada", text)
}

func TestResolveAll_JoinsNonEmpty(t *testing.T) {
	rc := core.NewRunContext(context.Background(), nil, nil)

	text, err := resolveAll(rc, []Instruction{
		NewInstructionFromText("first"),
		NewInstructionFromFunc(func(*core.RunContext) (string, error) { return "", nil }),
		NewInstructionFromText("second"),
	})
	require.NoError(t, err)
	assert.Equal(t, "first\n\nsecond", text)
}

func TestResolveAll_PropagatesError(t *testing.T) {
	rc := core.NewRunContext(context.Background(), nil, nil)

	_, err := resolveAll(rc, []Instruction{
		NewInstructionFromFunc(func(*core.RunContext) (string, error) {
			return "", errors.New("no profile")
		}),
	})
	assert.Error(t, err)
}
