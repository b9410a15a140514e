package main

import (
	"github.com/spf13/cobra"

	"go-chi-calculator/internal/mcptools"
	"go-chi-calculator/internal/observability"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the calculator operations as MCP tools on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			observability.Logger.Info("starting MCP server")
			return mcptools.ServeStdio(mcptools.NewServer(version))
		},
	}
}
