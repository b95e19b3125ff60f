package cmd

import (
	"fmt"

	"github.com/artmamedov/ios-sim-mcp/internal/output"
	"github.com/artmamedov/ios-sim-mcp/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing simulator tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes simulator control
as tools. AI agents can call tools directly without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients that spawn the server)
  sse               Server-sent events over HTTP
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  ios-sim-mcp serve
  ios-sim-mcp serve --input host
  ios-sim-mcp serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", server.TransportStdio, "Transport: stdio, sse, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for sse and streamable-http transports")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	svc, err := newService()
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	cfg := server.Config{
		Transport: transport,
		Port:      port,
		Format:    output.OutputFormat,
	}
	return server.New(svc, cfg, logger).Serve(cfg)
}
