package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/web-inv/sitebuilder/internal/catalog"
	"github.com/web-inv/sitebuilder/internal/docfile"
	"github.com/web-inv/sitebuilder/internal/exportlog"
	"github.com/web-inv/sitebuilder/internal/progress"
	"github.com/web-inv/sitebuilder/internal/render"
)

var buildCmd = &cobra.Command{
	Use:   "build [glob...]",
	Short: "Render site files into standalone HTML pages",
	Long: `Finds YAML and JSON site files matching the given globs (or the
documents globs from the config), resolves each against the template
catalog and writes the rendered pages to the output directory.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringSlice("exclude", nil, "glob patterns to skip")
	buildCmd.Flags().StringP("out", "o", "", "output directory (overrides config)")
	buildCmd.Flags().Bool("check", false, "validate site files without writing pages")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outDir := cfg.OutputDir
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		outDir = out
	}
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	check, _ := cmd.Flags().GetBool("check")

	include := cfg.Documents
	if len(args) > 0 {
		include = args
	}

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	files, err := docfile.Find(root, include, exclude)
	if err != nil {
		return fmt.Errorf("finding site files: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Found %d site files\n", len(files))
	}
	if len(files) == 0 {
		fmt.Println("No site files found.")
		return nil
	}

	cat := catalog.Builtin()
	docs := make([]render.Document, 0, len(files))
	for _, f := range files {
		d, err := docfile.Load(f, cat)
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		docs = append(docs, d)
	}
	if err := uniqueIDs(files, docs); err != nil {
		return err
	}
	if check {
		fmt.Printf("%d site files OK\n", len(docs))
		return nil
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()
	exports := exportlog.NewStore(database)

	reporter := progress.NewReporter("Building")
	reporter.Start(len(docs))
	for i, d := range docs {
		path, err := exportDocument(ctx, exports, outDir, d)
		if err != nil {
			reporter.Finish()
			return fmt.Errorf("building %s: %w", files[i], err)
		}
		reporter.Update(i+1, path)
	}
	reporter.Finish()

	fmt.Printf("Built %d pages into %s\n", len(docs), outDir)
	return nil
}

// uniqueIDs rejects two site files that would write the same page.
func uniqueIDs(files []string, docs []render.Document) error {
	seen := make(map[string]string, len(docs))
	for i, d := range docs {
		name := render.Filename(d.ID)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("%s and %s both render to %s", prev, files[i], name)
		}
		seen[name] = files[i]
	}
	return nil
}
