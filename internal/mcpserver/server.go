// Package mcpserver exposes the action catalogue as MCP tools so LLM
// tool-calling clients can drive the agent.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/pkg/logger"
)

const (
	serverName    = "solana-agent-layer"
	serverVersion = "1.0.0"
)

// Server bridges the action registry to the MCP protocol.
type Server struct {
	mcpServer *mcp.Server
	log       *logger.Logger
}

// New builds an MCP server with one tool per registered action.
func New(registry *actions.Registry, ag *agent.Agent, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.NewDefault("mcp")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	for _, meta := range registry.Catalogue() {
		tool, err := toolFromMetadata(meta)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", meta.Name, err)
		}
		mcpServer.AddTool(tool, dispatchHandler(registry, ag, meta.Name))
	}
	return &Server{mcpServer: mcpServer, log: log}, nil
}

// Run serves the MCP protocol over stdio until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	s.log.WithField("server", serverName).Info("serving MCP over stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// toolFromMetadata converts action metadata into an MCP tool declaration.
// The action's input schema is already draft-07 compatible JSON Schema.
func toolFromMetadata(meta actions.Metadata) (*mcp.Tool, error) {
	encoded, err := json.Marshal(meta.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal input schema: %w", err)
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(encoded, &schema); err != nil {
		return nil, fmt.Errorf("parse input schema: %w", err)
	}
	return &mcp.Tool{
		Name:        meta.Name,
		Description: meta.Description,
		InputSchema: &schema,
	}, nil
}

// dispatchHandler adapts registry dispatch to the MCP tool contract. Error
// envelopes and propagated errors both surface as tool errors with text
// content; successes carry the JSON envelope.
func dispatchHandler(registry *actions.Registry, ag *agent.Agent, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var input json.RawMessage
		if req.Params != nil {
			input = req.Params.Arguments
		}
		result, err := registry.Execute(ctx, name, ag, input)
		if err != nil {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			}, nil
		}

		encoded, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("marshal result: %w", err)
		}
		return &mcp.CallToolResult{
			Content:           []mcp.Content{&mcp.TextContent{Text: string(encoded)}},
			StructuredContent: result,
		}, nil
	}
}
