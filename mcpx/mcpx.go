// Package mcpx bridges Model Context Protocol servers into the agent tool
// system. A Toolset connects to an MCP server over stdio, discovers its
// tools and exposes each one as a tool.Tool the agent can call.
package mcpx

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hupe1980/agentlab/core"
	"github.com/hupe1980/agentlab/tool"
)

// Toolset is a live connection to one MCP server.
type Toolset struct {
	client *client.Client
	name   string
}

// Connect launches an MCP server as a subprocess, performs the protocol
// handshake and returns a ready Toolset. Close it when done.
func Connect(ctx context.Context, command string, env []string, args ...string) (*Toolset, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("start mcp server: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "agentlab",
		Version: "0.1.0",
	}

	initResult, err := c.Initialize(ctx, initReq)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("initialize mcp server: %w", err)
	}

	return &Toolset{
		client: c,
		name:   initResult.ServerInfo.Name,
	}, nil
}

// ServerName returns the name reported by the server during the handshake.
func (ts *Toolset) ServerName() string { return ts.name }

// Tools lists the server's tools and wraps each as a tool.Tool.
func (ts *Toolset) Tools(ctx context.Context) ([]tool.Tool, error) {
	result, err := ts.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("list mcp tools: %w", err)
	}

	tools := make([]tool.Tool, 0, len(result.Tools))
	for _, t := range result.Tools {
		tools = append(tools, &remoteTool{
			toolset:     ts,
			name:        t.Name,
			description: t.Description,
			parameters:  inputSchemaToParameters(t.InputSchema),
		})
	}

	return tools, nil
}

// Close terminates the server subprocess and the connection.
func (ts *Toolset) Close() error {
	return ts.client.Close()
}

// remoteTool proxies tool calls to the MCP server.
type remoteTool struct {
	toolset     *Toolset
	name        string
	description string
	parameters  map[string]any
}

func (t *remoteTool) Name() string { return t.name }

func (t *remoteTool) Description() string { return t.description }

func (t *remoteTool) Parameters() map[string]any { return t.parameters }

// Call implements tool.Tool by forwarding to the server and flattening the
// returned content blocks into text.
func (t *remoteTool) Call(toolCtx *core.ToolContext, args map[string]any) (any, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = t.name
	req.Params.Arguments = args

	result, err := t.toolset.client.CallTool(toolCtx.Context(), req)
	if err != nil {
		return nil, &tool.ToolError{
			Tool:    t.name,
			Message: err.Error(),
			Code:    tool.CodeExecution,
		}
	}

	text := flattenContent(result.Content)

	if result.IsError {
		return nil, &tool.ToolError{
			Tool:    t.name,
			Message: text,
			Code:    tool.CodeExecution,
		}
	}

	return text, nil
}

// inputSchemaToParameters converts an MCP input schema to the JSON Schema
// object shape used by tool.Tool.
func inputSchemaToParameters(schema mcp.ToolInputSchema) map[string]any {
	params := map[string]any{
		"type": "object",
	}

	if schema.Type != "" {
		params["type"] = schema.Type
	}

	if len(schema.Properties) > 0 {
		params["properties"] = schema.Properties
	} else {
		params["properties"] = map[string]any{}
	}

	if len(schema.Required) > 0 {
		params["required"] = schema.Required
	}

	return params
}

func flattenContent(blocks []mcp.Content) string {
	var sb strings.Builder

	for _, block := range blocks {
		if tc, ok := mcp.AsTextContent(block); ok {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}

			sb.WriteString(tc.Text)
		}
	}

	return sb.String()
}
