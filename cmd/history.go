package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/web-inv/sitebuilder/internal/exportlog"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent exports from every surface",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		source, _ := cmd.Flags().GetString("source")
		document, _ := cmd.Flags().GetString("document")

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		entries, err := exportlog.NewStore(database).Query(context.Background(), exportlog.QueryFilter{
			DocumentID: document,
			Source:     exportlog.Source(source),
			Limit:      limit,
		})
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No exports recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tACTION\tSOURCE\tDOCUMENT\tBYTES\tACTOR")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
				e.Timestamp.Local().Format(time.DateTime), e.Action, e.Source, e.DocumentID, e.Bytes, e.Actor)
		}
		return w.Flush()
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete export records older than --older-than",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		age, _ := cmd.Flags().GetDuration("older-than")
		if age <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		n, err := exportlog.NewStore(database).DeleteBefore(context.Background(), time.Now().Add(-age))
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d records.\n", n)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of records")
	historyCmd.Flags().String("source", "", "only show records from this source (http, cli, mcp)")
	historyCmd.Flags().String("document", "", "only show records for this document id")
	historyPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "age of records to delete")
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}
