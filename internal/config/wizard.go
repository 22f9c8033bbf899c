package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/web-inv/sitebuilder/internal/catalog"
)

const customPaletteChoice = "custom (pink/purple)"

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .webinv.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to webinv! Let's configure your builder.")
	fmt.Println()

	cfg := DefaultConfig()

	outputPrompt := promptui.Prompt{
		Label:   "Output directory for exported pages",
		Default: cfg.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	portPrompt := promptui.Prompt{
		Label:   "Port for webinv serve",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	titlePrompt := promptui.Prompt{
		Label:   "Title for custom sites (blank keeps the default)",
		Default: "",
	}
	if cfg.SiteTitle, err = titlePrompt.Run(); err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}

	// Palette for custom sites, borrowed from a catalog template.
	templates := catalog.Builtin().List()
	items := []string{customPaletteChoice}
	for _, t := range templates {
		items = append(items, fmt.Sprintf("%s (%s)", t.Name, t.Colors.Primary))
	}
	palettePrompt := promptui.Select{
		Label: "Palette for custom sites",
		Items: items,
	}
	idx, _, err := palettePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("palette selection: %w", err)
	}
	if idx > 0 {
		cfg.Palette = templates[idx-1].Colors
	}

	docsPrompt := promptui.Prompt{
		Label:   "Document file globs for webinv build (comma-separated)",
		Default: strings.Join(DefaultDocuments, ","),
	}
	docsStr, err := docsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("document globs: %w", err)
	}
	if docs := splitAndTrim(docsStr); len(docs) > 0 {
		cfg.Documents = docs
	}

	googlePrompt := promptui.Select{
		Label: "Enable Google sign-in",
		Items: []string{"no", "yes"},
	}
	_, google, err := googlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("google selection: %w", err)
	}
	if google == "yes" {
		fmt.Printf("\nNote: set %sGOOGLE_CLIENT_ID, %sGOOGLE_CLIENT_SECRET and %sGOOGLE_REDIRECT_URL before running webinv serve.\n",
			envPrefix, envPrefix, envPrefix)
	}

	if err := cfg.Save(FileName); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", FileName)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and drops empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
