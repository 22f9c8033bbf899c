// Package render turns a Document into a standalone HTML page. Output is a
// pure function of its inputs: the same document always yields the same
// bytes.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/web-inv/sitebuilder/internal/catalog"
	"github.com/web-inv/sitebuilder/internal/content"
)

// ContentType is the MIME type of an exported page.
const ContentType = "text/html; charset=utf-8"

// ErrUnsafeBackground is returned for a background value that cannot be
// placed inside a style attribute.
var ErrUnsafeBackground = errors.New("background is not a plain CSS value")

// Document is the export input: an ordered section list plus the metadata
// and styling that surround it.
type Document struct {
	ID          string            `json:"id" yaml:"id" validate:"required"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Palette     catalog.Palette   `json:"palette" yaml:"palette"`
	Background  string            `json:"background,omitempty" yaml:"background,omitempty"`
	Sections    []content.Section `json:"sections" yaml:"sections"`
}

// Style returns the styling part of d.
func (d Document) Style() Style {
	return Style{Palette: d.Palette, Background: d.Background}
}

// Validate checks the document metadata and every section.
func (d Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("document %q: %w", d.ID, err)
	}
	if _, err := d.Style().resolve(); err != nil {
		return fmt.Errorf("document %q: %w", d.ID, err)
	}
	return content.ValidateSections(d.Sections)
}

// FromTemplate builds the document for a catalog template.
func FromTemplate(t catalog.Template) Document {
	return Document{
		ID:          t.ID,
		Title:       t.Name,
		Description: t.Description,
		Palette:     t.Colors,
		Background:  t.HeroBackground(),
		Sections:    content.CloneSections(t.Sections),
	}
}

// Custom builds the document for a page assembled in the builder.
func Custom(sections []content.Section) Document {
	return Document{
		ID:          "custom-website",
		Title:       "My Custom Website",
		Description: "Custom built website",
		Palette:     catalog.CustomPalette,
		Background:  catalog.CustomBackground,
		Sections:    content.CloneSections(sections),
	}
}

// Style carries the palette and hero background a section is drawn with.
// An empty Background falls back to the palette gradient.
type Style struct {
	Palette    catalog.Palette
	Background string
}

type resolvedStyle struct {
	Primary    template.CSS
	Background template.CSS
}

var (
	validate = validator.New()

	plainCSS = regexp.MustCompile(`^[A-Za-z0-9#%(),. -]+$`)

	tmpl = template.Must(template.New("sections").Parse(sectionTemplates))
	page = template.Must(template.New("page").Parse(pageTemplate))
)

// resolve checks the style and marks its values as trusted CSS. Colors must
// be hex; the background may only use characters found in colors and
// gradients.
func (s Style) resolve() (resolvedStyle, error) {
	if err := validate.Struct(s.Palette); err != nil {
		return resolvedStyle{}, fmt.Errorf("palette: %w", err)
	}
	bg := s.Background
	if bg == "" {
		bg = s.Palette.Gradient()
	}
	if !plainCSS.MatchString(bg) {
		return resolvedStyle{}, ErrUnsafeBackground
	}
	return resolvedStyle{
		Primary:    template.CSS(s.Palette.Primary),
		Background: template.CSS(bg),
	}, nil
}

// CSS validates s and returns its primary color and background as trusted
// CSS values.
func (s Style) CSS() (primary, background template.CSS, err error) {
	rs, err := s.resolve()
	return rs.Primary, rs.Background, err
}

type sectionData struct {
	View
	Primary    template.CSS
	Background template.CSS
}

// RenderSection writes the markup fragment for a single section. Unknown
// kinds render a fallback block showing the section name.
func RenderSection(w io.Writer, sec content.Section, st Style) error {
	rs, err := st.resolve()
	if err != nil {
		return err
	}
	return renderSection(w, sec, rs)
}

func renderSection(w io.Writer, sec content.Section, rs resolvedStyle) error {
	v := ViewOf(sec)
	name := "unknown"
	if v.Known {
		name = string(v.Kind)
	}
	if err := tmpl.ExecuteTemplate(w, name, sectionData{View: v, Primary: rs.Primary, Background: rs.Background}); err != nil {
		return fmt.Errorf("rendering section %q: %w", sec.ID, err)
	}
	return nil
}

// SectionHTML renders a single section to a string.
func SectionHTML(sec content.Section, st Style) (string, error) {
	var buf bytes.Buffer
	if err := RenderSection(&buf, sec, st); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderDocument writes the complete standalone page for d.
func RenderDocument(w io.Writer, d Document) error {
	rs, err := d.Style().resolve()
	if err != nil {
		return fmt.Errorf("document %q: %w", d.ID, err)
	}

	var body strings.Builder
	for i, sec := range d.Sections {
		if i > 0 {
			body.WriteByte('\n')
		}
		if err := renderSection(&body, sec, rs); err != nil {
			return err
		}
	}

	data := struct {
		Title       string
		Description string
		Body        template.HTML
	}{
		Title:       d.Title,
		Description: d.Description,
		// Produced by the escaping section templates above.
		Body: template.HTML(body.String()),
	}
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

// HTML renders d to a byte slice.
func HTML(d Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderDocument(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
