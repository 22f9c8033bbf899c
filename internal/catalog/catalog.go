package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/web-inv/sitebuilder/internal/content"
)

//go:embed templates.yaml
var builtinYAML []byte

// Catalog is a fixed, ordered set of templates. It is safe for concurrent
// use because nothing mutates it after construction and every accessor
// returns deep copies.
type Catalog struct {
	templates []Template
	byID      map[string]int
}

var builtin = sync.OnceValues(func() (*Catalog, error) {
	return Parse(builtinYAML)
})

// Builtin returns the catalog compiled into the binary.
func Builtin() *Catalog {
	c, err := builtin()
	if err != nil {
		// The embedded file is covered by tests; failing here means the
		// binary was built from a broken tree.
		panic(fmt.Sprintf("catalog: embedded templates invalid: %v", err))
	}
	return c
}

// Parse decodes and validates a YAML list of templates.
func Parse(data []byte) (*Catalog, error) {
	var templates []Template
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("decoding templates: %w", err)
	}
	return New(templates)
}

// New builds a catalog from templates, validating each one.
func New(templates []Template) (*Catalog, error) {
	v := validator.New()
	c := &Catalog{byID: make(map[string]int, len(templates))}
	for _, t := range templates {
		if err := v.Struct(t); err != nil {
			return nil, fmt.Errorf("template %q: %w", t.ID, err)
		}
		if err := content.ValidateSections(t.Sections); err != nil {
			return nil, fmt.Errorf("template %q: %w", t.ID, err)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		c.byID[t.ID] = len(c.templates)
		c.templates = append(c.templates, t.Clone())
	}
	return c, nil
}

// List returns every template in catalog order.
func (c *Catalog) List() []Template {
	out := make([]Template, len(c.templates))
	for i, t := range c.templates {
		out[i] = t.Clone()
	}
	return out
}

// Get returns the template with the given id.
func (c *Catalog) Get(id string) (Template, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Template{}, false
	}
	return c.templates[i].Clone(), true
}

// Filter returns the templates in the given category. An empty category
// matches everything.
func (c *Catalog) Filter(category Category) []Template {
	if category == "" {
		return c.List()
	}
	var out []Template
	for _, t := range c.templates {
		if t.Category == category {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, t := range c.templates {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

// Len returns the number of templates.
func (c *Catalog) Len() int { return len(c.templates) }
