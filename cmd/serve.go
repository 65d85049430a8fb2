package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ogtechminds/orgchart/internal/mcp"
	"github.com/ogtechminds/orgchart/internal/members"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing tools to list teams, fetch a team's org chart and look up members with their reporting chain.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "orgchart MCP server started on stdio (db=%s, teams=%v)\n", dbPath(cfg), cfg.Teams)

		srv := mcpserver.NewServer(chartService(cfg, members.NewStore(database)))
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
