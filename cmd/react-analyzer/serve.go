package main

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/DeusData/react-analyzer/internal/store"
	"github.com/DeusData/react-analyzer/internal/tools"
)

func newServeCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored analysis results over MCP (stdio)",
		Long:  "serve exposes previously analyzed projects as MCP tools over stdio.\nRun an analysis first, or use the analyze_project tool from the client.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var s *store.Store
			var err error
			if dbPath != "" {
				s, err = store.OpenPath(dbPath)
			} else {
				s, err = store.Open()
			}
			if err != nil {
				return fmt.Errorf("open analysis db: %w", err)
			}
			defer s.Close()

			srv := tools.NewServer(s)
			return srv.MCPServer().Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "path of the analysis database (default: user cache dir)")
	return cmd
}
