package mcptools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"go-chi-calculator/internal/calculator"
)

const serverName = "calc"

// NewServer creates an MCP server with one tool per calculator operation.
func NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer(serverName, version, server.WithToolCapabilities(false))
	for _, tool := range Tools() {
		s.AddTool(tool.GetTool(), tool.Handle)
	}
	return s
}

// Tools returns the operation tools in display order.
func Tools() []*OperationTool {
	tools := make([]*OperationTool, 0, len(calculator.Operators))
	for _, op := range calculator.Operators {
		tools = append(tools, NewOperationTool(op))
	}
	return tools
}

// ServeStdio serves s over stdin and stdout until the input closes.
func ServeStdio(s *server.MCPServer) error {
	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("failed to serve MCP server: %w", err)
	}
	return nil
}
