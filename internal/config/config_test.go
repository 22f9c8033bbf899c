package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/web-inv/sitebuilder/internal/catalog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.OutputDir != "dist" {
		t.Errorf("expected default output_dir %q, got %q", "dist", cfg.OutputDir)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.OptimizeDelay != 1500*time.Millisecond {
		t.Errorf("expected default optimize_delay 1.5s, got %s", cfg.OptimizeDelay)
	}
	if cfg.DatabasePath() != filepath.Join(".webinv", "webinv.db") {
		t.Errorf("unexpected database path %q", cfg.DatabasePath())
	}
	if cfg.Palette != (catalog.Palette{}) {
		t.Errorf("default palette should be unset, got %+v", cfg.Palette)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.webinv.yml")

	original := DefaultConfig()
	original.OutputDir = "out"
	original.Port = 9000
	original.OptimizeDelay = 250 * time.Millisecond
	original.Documents = []string{"a/*.yml", "b/**/*.json"}
	original.SiteTitle = "Acme"
	original.Palette = catalog.Palette{Primary: "#111111", Secondary: "#222222", Accent: "#333333"}
	original.Google = GoogleConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb"}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.OutputDir != original.OutputDir {
		t.Errorf("output_dir: got %q, want %q", loaded.OutputDir, original.OutputDir)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.OptimizeDelay != original.OptimizeDelay {
		t.Errorf("optimize_delay: got %s, want %s", loaded.OptimizeDelay, original.OptimizeDelay)
	}
	if loaded.SiteTitle != "Acme" {
		t.Errorf("site_title: got %q", loaded.SiteTitle)
	}
	if loaded.Palette != original.Palette {
		t.Errorf("palette: got %+v, want %+v", loaded.Palette, original.Palette)
	}
	if loaded.Google != original.Google {
		t.Errorf("google: got %+v, want %+v", loaded.Google, original.Google)
	}
	if len(loaded.Documents) != len(original.Documents) {
		t.Fatalf("documents length: got %d, want %d", len(loaded.Documents), len(original.Documents))
	}
	for i, v := range loaded.Documents {
		if v != original.Documents[i] {
			t.Errorf("documents[%d]: got %q, want %q", i, v, original.Documents[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadHumanDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yml")
	data := "optimize_delay: 2s\nsession_ttl: 30m\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OptimizeDelay != 2*time.Second || cfg.SessionTTL != 30*time.Minute {
		t.Errorf("durations = %s, %s", cfg.OptimizeDelay, cfg.SessionTTL)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("WEBINV_PORT", "9191")
	t.Setenv("WEBINV_OUTPUT_DIR", "public")
	t.Setenv("WEBINV_GOOGLE_CLIENT_ID", "from-env")
	t.Setenv("WEBINV_REQUIRE_SIGN_IN", "false")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 9191 {
		t.Errorf("env override failed: got port %d, want 9191", loaded.Port)
	}
	if loaded.OutputDir != "public" {
		t.Errorf("env override failed: got output_dir %q", loaded.OutputDir)
	}
	if loaded.RequireSignIn {
		t.Error("env override failed: require_sign_in still true")
	}
	if loaded.Google.ClientID != "from-env" {
		t.Errorf("nested env override failed: got %q", loaded.Google.ClientID)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"WEBINV_PORT":                      "port",
		"WEBINV_ALLOW_ALL_ORIGINS":         "allow_all_origins",
		"WEBINV_GOOGLE_CLIENT_SECRET":      "google.client_secret",
		"WEBINV_PALETTE_PRIMARY":           "palette.primary",
		"WEBINV_NOTIFICATIONS_WEBHOOK_URL": "notifications.webhook_url",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty output_dir", func(c *Config) { c.OutputDir = "" }, true},
		{"empty data_dir", func(c *Config) { c.DataDir = "" }, true},
		{"port zero", func(c *Config) { c.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Port = 70000 }, true},
		{"negative delay", func(c *Config) { c.OptimizeDelay = -time.Second }, true},
		{"zero delay", func(c *Config) { c.OptimizeDelay = 0 }, false},
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }, true},
		{"bad palette", func(c *Config) { c.Palette = catalog.Palette{Primary: "red", Secondary: "#000", Accent: "#fff"} }, true},
		{"good palette", func(c *Config) { c.Palette = catalog.Palette{Primary: "#f00", Secondary: "#000", Accent: "#fff"} }, false},
		{"google without secret", func(c *Config) { c.Google.ClientID = "id" }, true},
		{"google complete", func(c *Config) {
			c.Google = GoogleConfig{ClientID: "id", ClientSecret: "s", RedirectURL: "http://x/cb"}
		}, false},
		{"webhook without public url", func(c *Config) { c.Notifications.WebhookURL = "http://hook" }, true},
		{"webhook complete", func(c *Config) {
			c.Notifications = Notifications{WebhookURL: "http://hook", PublicURL: "https://site"}
		}, false},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"sites/**/*.yml", []string{"sites/**/*.yml"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
