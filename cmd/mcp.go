package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/web-inv/sitebuilder/internal/catalog"
	"github.com/web-inv/sitebuilder/internal/exportlog"
	mcpserver "github.com/web-inv/sitebuilder/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing template lookup and page rendering tools for AI agents.`,
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

		cat := catalog.Builtin()
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "webinv MCP server started on stdio (templates=%d)\n", cat.Len())

		srv := mcpserver.NewServer(cat, exportlog.NewStore(database))
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
