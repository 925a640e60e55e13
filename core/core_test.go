package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContent_Text(t *testing.T) {
	content := Content{
		Role: "assistant",
		Parts: []Part{
			TextPart{Text: "Hello"},
			FunctionCallPart{FunctionCall: FunctionCall{ID: "fc-1", Name: "lookup"}},
			TextPart{Text: " world"},
		},
	}

	assert.Equal(t, "Hello world", content.Text())
}

func TestContent_FunctionCalls(t *testing.T) {
	content := Content{
		Role: "assistant",
		Parts: []Part{
			TextPart{Text: "calling"},
			FunctionCallPart{FunctionCall: FunctionCall{ID: "fc-1", Name: "a"}},
			FunctionCallPart{FunctionCall: FunctionCall{ID: "fc-2", Name: "b"}},
		},
	}

	calls := content.FunctionCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "a", calls[0].Name)
	assert.Equal(t, "b", calls[1].Name)
}

func TestNewUserText(t *testing.T) {
	content := NewUserText("hi")

	assert.Equal(t, "user", content.Role)
	assert.Equal(t, "hi", content.Text())
	assert.Empty(t, content.FunctionCalls())
}

func TestRunContext_Deps(t *testing.T) {
	type deps struct{ Name string }

	rc := NewRunContext(context.Background(), deps{Name: "Ada"}, nil)

	d, ok := Deps[deps](rc)
	require.True(t, ok)
	assert.Equal(t, "Ada", d.Name)

	_, ok = Deps[string](rc)
	assert.False(t, ok)
}

func TestRunContext_UniqueRunIDs(t *testing.T) {
	a := NewRunContext(context.Background(), nil, nil)
	b := NewRunContext(context.Background(), nil, nil)

	assert.NotEmpty(t, a.RunID)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRunContext_WithContext(t *testing.T) {
	rc := NewRunContext(context.Background(), "deps", nil)

	ctx, cancel := context.WithCancel(context.Background())
	clone := rc.WithContext(ctx)

	assert.Equal(t, rc.RunID, clone.RunID)
	assert.Equal(t, rc.Deps, clone.Deps)

	cancel()
	assert.Error(t, clone.Err())
	assert.NoError(t, rc.Err())
}

func TestToolContext(t *testing.T) {
	rc := NewRunContext(context.Background(), 42, nil)
	tc := NewToolContext(rc, "fc-7")

	assert.Equal(t, "fc-7", tc.FunctionCallID())
	assert.Equal(t, rc.RunID, tc.RunID())
	assert.Equal(t, 42, tc.Deps())
	assert.NotNil(t, tc.Logger())
	assert.Equal(t, rc.Context, tc.Context())
}
