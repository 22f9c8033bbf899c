// Package docfile loads page documents from YAML or JSON files so pages
// can be kept in version control and exported without the builder UI.
//
// A file names an optional catalog template to start from and overrides
// any of its metadata, styling or sections:
//
//	id: acme
//	template: startup-modern
//	title: Acme Rockets
//	sections:
//	  - {id: hero, name: Hero, type: hero, content: {title: Lift Off}}
package docfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/web-inv/sitebuilder/internal/catalog"
	"github.com/web-inv/sitebuilder/internal/content"
	"github.com/web-inv/sitebuilder/internal/render"
)

// ErrUnknownTemplate is returned when a file names a template the catalog
// does not have.
var ErrUnknownTemplate = errors.New("unknown template")

// File is the on-disk shape of a document.
type File struct {
	ID          string            `json:"id,omitempty" yaml:"id,omitempty"`
	Template    string            `json:"template,omitempty" yaml:"template,omitempty"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Palette     *catalog.Palette  `json:"palette,omitempty" yaml:"palette,omitempty"`
	Background  string            `json:"background,omitempty" yaml:"background,omitempty"`
	Sections    []content.Section `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// Parse decodes data as JSON when it starts with '{' and as YAML
// otherwise. Unknown keys are rejected.
func Parse(data []byte) (File, error) {
	var f File
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return File{}, fmt.Errorf("decoding json: %w", err)
		}
		return f, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("decoding yaml: %w", err)
	}
	return f, nil
}

// Document resolves f against cat. Without a template the document starts
// from the custom page defaults. Sections, when given, replace the
// template's sections entirely.
func (f File) Document(cat *catalog.Catalog) (render.Document, error) {
	var doc render.Document
	if f.Template != "" {
		t, ok := cat.Get(f.Template)
		if !ok {
			return render.Document{}, fmt.Errorf("%w %q", ErrUnknownTemplate, f.Template)
		}
		doc = render.FromTemplate(t)
	} else {
		doc = render.Custom(nil)
	}

	if f.ID != "" {
		doc.ID = f.ID
	}
	if f.Title != "" {
		doc.Title = f.Title
	}
	if f.Description != "" {
		doc.Description = f.Description
	}
	if f.Palette != nil {
		doc.Palette = *f.Palette
		doc.Background = f.Palette.Gradient()
	}
	if f.Background != "" {
		doc.Background = f.Background
	}
	if len(f.Sections) > 0 {
		doc.Sections = content.CloneSections(f.Sections)
	}

	if err := doc.Validate(); err != nil {
		return render.Document{}, err
	}
	return doc, nil
}

// Load reads and resolves the document at path. A file without an id and
// without a template is named after the file.
func Load(path string, cat *catalog.Catalog) (render.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return render.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return render.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	if f.ID == "" && f.Template == "" {
		f.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	doc, err := f.Document(cat)
	if err != nil {
		return render.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
