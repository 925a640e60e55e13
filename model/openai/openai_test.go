package openai

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentlab/core"
	"github.com/hupe1980/agentlab/model"
)

func TestFinalChunk_OrdersToolCallsByStreamIndex(t *testing.T) {
	// Enough entries that random map iteration order would be caught.
	toolAgg := map[int64]*aggCall{}
	for i := int64(0); i < 8; i++ {
		toolAgg[i] = &aggCall{
			id:   fmt.Sprintf("call-%d", i),
			name: fmt.Sprintf("tool_%d", i),
			args: "{}",
		}
	}

	var builder strings.Builder

	resp := finalChunk("tool_calls", &builder, toolAgg)
	require.False(t, resp.Partial)
	assert.Equal(t, "tool_calls", resp.FinishReason)

	calls := resp.Content.FunctionCalls()
	require.Len(t, calls, 8)

	for i, call := range calls {
		assert.Equal(t, fmt.Sprintf("call-%d", i), call.ID)
		assert.Equal(t, fmt.Sprintf("tool_%d", i), call.Name)
	}
}

func TestFinalChunk_IncludesAccumulatedText(t *testing.T) {
	var builder strings.Builder
	builder.WriteString("partial answer")

	resp := finalChunk("stop", &builder, map[int64]*aggCall{})
	assert.Equal(t, "partial answer", resp.Content.Text())
	assert.Empty(t, resp.Content.FunctionCalls())
}

func TestFinalChunk_PreservesAggregatedArguments(t *testing.T) {
	agg := map[int64]*aggCall{
		0: {id: "call-0", name: "lookup", args: `{"city":"Tokyo"}`},
	}

	var builder strings.Builder

	calls := finalChunk("tool_calls", &builder, agg).Content.FunctionCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "lookup", calls[0].Name)
	assert.Equal(t, `{"city":"Tokyo"}`, calls[0].Arguments)
}

func TestCollectToolResponses_FirstSeenOrder(t *testing.T) {
	req := model.Request{Contents: []core.Content{
		{Role: "tool", Parts: []core.Part{
			core.FunctionResponsePart{FunctionResponse: core.FunctionResponse{ID: "b", Name: "t", Response: "two"}},
			core.FunctionResponsePart{FunctionResponse: core.FunctionResponse{ID: "a", Name: "t", Response: "one"}},
		}},
		{Role: "tool", Parts: []core.Part{
			core.FunctionResponsePart{FunctionResponse: core.FunctionResponse{ID: "b", Name: "t", Response: "dup"}},
		}},
	}}

	responses, order := collectToolResponses(req)
	assert.Equal(t, []string{"b", "a"}, order)
	assert.Equal(t, "two", responses["b"])
	assert.Equal(t, "one", responses["a"])
}

func TestFunctionResponseText_ErrorWins(t *testing.T) {
	assert.Equal(t, "error: boom", functionResponseText(core.FunctionResponse{Error: "boom", Response: "ignored"}))
	assert.Equal(t, "plain", functionResponseText(core.FunctionResponse{Response: "plain"}))
	assert.Equal(t, "42", functionResponseText(core.FunctionResponse{Response: 42}))
}
