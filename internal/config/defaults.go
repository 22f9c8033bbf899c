package config

import (
	"path/filepath"
	"time"
)

// FileName is the config file looked up in the working directory.
const FileName = ".webinv.yml"

// DefaultDocuments are the globs `webinv build` reads document files from
// when none are given.
var DefaultDocuments = []string{
	"sites/**/*.yml",
	"sites/**/*.yaml",
	"sites/**/*.json",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:     "dist",
		DataDir:       ".webinv",
		Port:          8080,
		RequireSignIn: true,
		OptimizeDelay: 1500 * time.Millisecond,
		SessionTTL:    24 * time.Hour,
		Documents:     DefaultDocuments,
	}
}

// DatabasePath is the sqlite file under the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "webinv.db")
}
