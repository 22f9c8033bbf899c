package catalog

import (
	"fmt"

	"github.com/web-inv/sitebuilder/internal/content"
)

// Category labels a template for filtering and icon choice.
type Category string

const (
	CategoryBusiness   Category = "Business"
	CategoryEcommerce  Category = "E-commerce"
	CategoryPortfolio  Category = "Portfolio"
	CategoryRestaurant Category = "Restaurant"
	CategoryFitness    Category = "Fitness"
	CategoryLanding    Category = "Landing Page"
	CategoryCustom     Category = "Custom"
)

// Palette is the color triple a template uses for accent styling.
type Palette struct {
	Primary   string `json:"primary" yaml:"primary" koanf:"primary" validate:"required,hexcolor"`
	Secondary string `json:"secondary" yaml:"secondary" koanf:"secondary" validate:"required,hexcolor"`
	Accent    string `json:"accent" yaml:"accent" koanf:"accent" validate:"required,hexcolor"`
}

// Gradient is the default hero/cta background derived from the palette.
func (p Palette) Gradient() string {
	return fmt.Sprintf("linear-gradient(135deg, %s 0%%, %s 100%%)", p.Primary, p.Secondary)
}

// CustomPalette and CustomBackground style documents that were not started
// from a catalog template.
var (
	CustomPalette    = Palette{Primary: "#e6007a", Secondary: "#8b00e6", Accent: "#ff00ff"}
	CustomBackground = "linear-gradient(135deg, hsl(330 100% 45%), hsl(280 100% 50%))"
)

// Template is an immutable, reusable starting document.
type Template struct {
	ID          string            `json:"id" yaml:"id" validate:"required"`
	Name        string            `json:"name" yaml:"name" validate:"required"`
	Category    Category          `json:"category" yaml:"category" validate:"required"`
	Thumbnail   string            `json:"thumbnail" yaml:"thumbnail"`
	Background  string            `json:"background,omitempty" yaml:"background,omitempty"`
	Description string            `json:"description" yaml:"description"`
	Rating      float64           `json:"rating" yaml:"rating" validate:"gte=0,lte=5"`
	Downloads   int               `json:"downloads" yaml:"downloads" validate:"gte=0"`
	Colors      Palette           `json:"colors" yaml:"colors"`
	Sections    []content.Section `json:"sections" yaml:"sections" validate:"min=1"`
}

// HeroBackground returns the CSS background used by hero and cta bands.
func (t Template) HeroBackground() string {
	if t.Background != "" {
		return t.Background
	}
	return t.Colors.Gradient()
}

// Clone returns a deep copy, so callers can never reach catalog storage.
func (t Template) Clone() Template {
	t.Sections = content.CloneSections(t.Sections)
	return t
}
