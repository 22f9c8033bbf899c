package config

import (
	"time"

	"github.com/web-inv/sitebuilder/internal/catalog"
)

// Config is the top-level webinv configuration, corresponding to .webinv.yml.
type Config struct {
	OutputDir       string          `yaml:"output_dir" koanf:"output_dir"`
	DataDir         string          `yaml:"data_dir" koanf:"data_dir"`
	Port            int             `yaml:"port" koanf:"port"`
	AllowAllOrigins bool            `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	RequireSignIn   bool            `yaml:"require_sign_in" koanf:"require_sign_in"`
	OptimizeDelay   time.Duration   `yaml:"optimize_delay" koanf:"optimize_delay"`
	SessionTTL      time.Duration   `yaml:"session_ttl" koanf:"session_ttl"`
	Documents       []string        `yaml:"documents" koanf:"documents"`
	SiteTitle       string          `yaml:"site_title,omitempty" koanf:"site_title"`
	SiteDescription string          `yaml:"site_description,omitempty" koanf:"site_description"`
	Palette         catalog.Palette `yaml:"palette,omitempty" koanf:"palette"`
	Google          GoogleConfig    `yaml:"google,omitempty" koanf:"google"`
	Notifications   Notifications   `yaml:"notifications,omitempty" koanf:"notifications"`
}

// GoogleConfig holds the OAuth client used for Google sign-in.
type GoogleConfig struct {
	ClientID     string `yaml:"client_id,omitempty" koanf:"client_id"`
	ClientSecret string `yaml:"client_secret,omitempty" koanf:"client_secret"`
	RedirectURL  string `yaml:"redirect_url,omitempty" koanf:"redirect_url"`
}

// Enabled reports whether Google sign-in is configured.
func (g GoogleConfig) Enabled() bool { return g.ClientID != "" }

// Notifications configures where account emails are handed off.
type Notifications struct {
	WebhookURL string `yaml:"webhook_url,omitempty" koanf:"webhook_url"`
	PublicURL  string `yaml:"public_url,omitempty" koanf:"public_url"`
}
