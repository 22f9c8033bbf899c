package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"runtime"

	"github.com/web-inv/sitebuilder/internal/config"
	"github.com/web-inv/sitebuilder/internal/db"
	"github.com/web-inv/sitebuilder/internal/exportlog"
	"github.com/web-inv/sitebuilder/internal/render"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `webinv init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openDatabase opens the SQLite database under the configured data dir.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}

// recordExport logs a CLI export. Failures are reported but never fail the
// command, since the page has already been written.
func recordExport(ctx context.Context, exports *exportlog.Store, d render.Document, path string, size int) {
	if exports == nil {
		return
	}
	err := exports.Log(ctx, exportlog.Entry{
		Action:     exportlog.ActionExport,
		Source:     exportlog.SourceCLI,
		DocumentID: d.ID,
		Filename:   path,
		Bytes:      size,
		Sections:   len(d.Sections),
	})
	if err != nil {
		log.Printf("cmd: recording export of %s: %v", d.ID, err)
	}
}

// exportDocument writes d into dir and records it.
func exportDocument(ctx context.Context, exports *exportlog.Store, dir string, d render.Document) (string, error) {
	path, err := render.Export(dir, d)
	if err != nil {
		return "", err
	}
	var size int
	if info, err := os.Stat(path); err == nil {
		size = int(info.Size())
	}
	recordExport(ctx, exports, d, path, size)
	return path, nil
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
