package cmd

import (
	"github.com/spf13/cobra"

	"github.com/web-inv/sitebuilder/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize webinv configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the server, site styling and document globs, and writes a .webinv.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
