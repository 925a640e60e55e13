package mcpx

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputSchemaToParameters(t *testing.T) {
	schema := mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]any{
			"namespace": map[string]any{
				"type":        "string",
				"description": "Kubernetes namespace.",
			},
		},
		Required: []string{"namespace"},
	}

	params := inputSchemaToParameters(schema)

	assert.Equal(t, "object", params["type"])
	assert.Equal(t, []string{"namespace"}, params["required"])

	props, ok := params["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "namespace")
}

func TestInputSchemaToParameters_Empty(t *testing.T) {
	params := inputSchemaToParameters(mcp.ToolInputSchema{})

	assert.Equal(t, "object", params["type"])
	assert.NotNil(t, params["properties"])
	assert.NotContains(t, params, "required")
}

func TestFlattenContent(t *testing.T) {
	blocks := []mcp.Content{
		mcp.NewTextContent("line one"),
		mcp.NewTextContent("line two"),
	}

	assert.Equal(t, "line one\nline two", flattenContent(blocks))
	assert.Empty(t, flattenContent(nil))
}
