// Package preview draws a document for the interactive editor. It reads
// section content through render.ViewOf, the same mapping the exporter
// uses, and adds selection and editing chrome on top.
package preview

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/web-inv/sitebuilder/internal/content"
	"github.com/web-inv/sitebuilder/internal/render"
)

// Mode is the width of the simulated browser viewport.
type Mode string

const (
	ModeDesktop Mode = "desktop"
	ModeTablet  Mode = "tablet"
	ModeMobile  Mode = "mobile"
)

// ParseMode returns the mode named s, defaulting to desktop.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeTablet, ModeMobile:
		return Mode(s)
	default:
		return ModeDesktop
	}
}

// Options control the editing chrome.
type Options struct {
	// SelectedID is highlighted.
	SelectedID string
	// EditingID gets an inline form for its content fields.
	EditingID string
	// Editable adds the per-section toolbar with status and score.
	Editable bool
}

type field struct {
	Name      string
	Label     string
	Value     string
	Multiline bool
}

type blockData struct {
	ID         string
	Status     content.Status
	Score      int
	View       render.View
	Selected   bool
	Editing    bool
	Editable   bool
	First      bool
	Background template.CSS
	Fields     []field
}

var tmpl = template.Must(template.New("preview").Parse(blockTemplates))
var page = template.Must(template.New("page").Parse(pageTemplate))

// Render writes the editor canvas for sections.
func Render(w io.Writer, sections []content.Section, st render.Style, opts Options) error {
	primary, background, err := st.CSS()
	if err != nil {
		return fmt.Errorf("preview style: %w", err)
	}

	blocks := make([]blockData, len(sections))
	for i, sec := range sections {
		b := blockData{
			ID:         sec.ID,
			Status:     sec.Status,
			Score:      sec.Score,
			View:       render.ViewOf(sec),
			Selected:   sec.ID != "" && sec.ID == opts.SelectedID,
			Editing:    sec.ID != "" && sec.ID == opts.EditingID,
			Editable:   opts.Editable,
			First:      i == 0,
			Background: background,
		}
		if b.Editing {
			b.Fields = editorFields(sec)
		}
		blocks[i] = b
	}

	data := struct {
		Primary template.CSS
		Blocks  []blockData
	}{primary, blocks}
	if err := tmpl.ExecuteTemplate(w, "canvas", data); err != nil {
		return fmt.Errorf("rendering preview: %w", err)
	}
	return nil
}

// Page writes a full preview page: the document canvas inside a browser
// frame whose address bar shows the document id.
func Page(w io.Writer, d render.Document, mode Mode, opts Options) error {
	var canvas bytes.Buffer
	if err := Render(&canvas, d.Sections, d.Style(), opts); err != nil {
		return err
	}
	data := struct {
		Title   string
		Address string
		Mode    Mode
		Canvas  template.HTML
	}{
		Title:   d.Title,
		Address: Address(d.ID),
		Mode:    ParseMode(string(mode)),
		Canvas:  template.HTML(canvas.String()),
	}
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("rendering preview page: %w", err)
	}
	return nil
}

// Address is the URL shown in the preview frame for a document id.
func Address(id string) string {
	return "https://" + render.Slug(id) + ".template.com"
}

// editorFields lists the content fields that can be edited for a section,
// with their current raw values (no fallbacks).
func editorFields(sec content.Section) []field {
	var f content.Fields
	if sec.Content != nil {
		f = sec.Content.Fields()
	}
	title := field{Name: "title", Label: "Title", Value: deref(f.Title)}
	subtitle := field{Name: "subtitle", Label: "Subtitle", Value: deref(f.Subtitle)}
	description := field{Name: "description", Label: "Description", Value: deref(f.Description), Multiline: true}
	button := field{Name: "buttonText", Label: "Button Text", Value: deref(f.ButtonText)}

	switch sec.Kind() {
	case content.KindHero:
		return []field{title, subtitle, button}
	case content.KindFeatures, content.KindText:
		return []field{title, description}
	case content.KindGallery, content.KindTestimonials:
		return []field{title}
	case content.KindPricing:
		return []field{title, subtitle}
	case content.KindCTA:
		return []field{title, button}
	case content.KindFooter:
		return []field{description}
	default:
		return []field{title, description}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
