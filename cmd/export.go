package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/web-inv/sitebuilder/internal/catalog"
	"github.com/web-inv/sitebuilder/internal/exportlog"
	"github.com/web-inv/sitebuilder/internal/progress"
	"github.com/web-inv/sitebuilder/internal/render"
)

var exportCmd = &cobra.Command{
	Use:   "export [template-id...]",
	Short: "Export catalog templates as standalone HTML pages",
	Long:  `Renders the named templates, or every template with --all, into the output directory as <slug>-template.html files.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().Bool("all", false, "export every template in the catalog")
	exportCmd.Flags().String("category", "", "with --all, only export this category")
	exportCmd.Flags().StringP("out", "o", "", "output directory (overrides config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outDir := cfg.OutputDir
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		outDir = out
	}
	all, _ := cmd.Flags().GetBool("all")
	category, _ := cmd.Flags().GetString("category")

	cat := catalog.Builtin()
	var templates []catalog.Template
	switch {
	case all && category != "":
		templates = cat.Filter(catalog.Category(category))
	case all:
		templates = cat.List()
	case len(args) == 0:
		return fmt.Errorf("name at least one template id, or pass --all")
	default:
		for _, id := range args {
			t, ok := cat.Get(id)
			if !ok {
				return fmt.Errorf("template %q not found", id)
			}
			templates = append(templates, t)
		}
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()
	exports := exportlog.NewStore(database)

	reporter := progress.NewReporter("Exporting")
	reporter.Start(len(templates))
	var written []string
	for i, t := range templates {
		path, err := exportDocument(ctx, exports, outDir, render.FromTemplate(t))
		if err != nil {
			reporter.Finish()
			return fmt.Errorf("exporting %s: %w", t.ID, err)
		}
		written = append(written, path)
		reporter.Update(i+1, t.ID)
	}
	reporter.Finish()

	for _, p := range written {
		fmt.Println(p)
	}
	return nil
}
