package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "webinv",
	Short: "Website template marketplace and drag-and-drop page builder",
	Long: `webinv serves a catalog of ready-made website templates and a
browser-based builder for assembling pages from sections. Pages are
exported as standalone HTML files, from the browser, from the command
line, or through MCP tools for AI agents.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".webinv.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
