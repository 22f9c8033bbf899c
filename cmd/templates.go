package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/web-inv/sitebuilder/internal/catalog"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Browse the template catalog",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates, optionally filtered by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		cat := catalog.Builtin()

		templates := cat.List()
		if category != "" && category != "All" {
			templates = cat.Filter(catalog.Category(category))
		}
		if len(templates) == 0 {
			fmt.Printf("No templates in category %q.\n", category)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tRATING\tDOWNLOADS")
		for _, t := range templates {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%d\n", t.ID, t.Name, t.Category, t.Rating, t.Downloads)
		}
		return w.Flush()
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a template definition as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, ok := catalog.Builtin().Get(args[0])
		if !ok {
			return fmt.Errorf("template %q not found", args[0])
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(t)
	},
}

var templatesCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories that have templates",
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range catalog.Builtin().Categories() {
			fmt.Println(c)
		}
	},
}

func init() {
	templatesListCmd.Flags().String("category", "", "only list templates in this category")
	templatesCmd.AddCommand(templatesListCmd, templatesShowCmd, templatesCategoriesCmd)
	rootCmd.AddCommand(templatesCmd)
}
