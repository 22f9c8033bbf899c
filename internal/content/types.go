package content

// Kind identifies the type of a page section.
type Kind string

const (
	KindHero         Kind = "hero"
	KindFeatures     Kind = "features"
	KindGallery      Kind = "gallery"
	KindTestimonials Kind = "testimonials"
	KindPricing      Kind = "pricing"
	KindCTA          Kind = "cta"
	KindText         Kind = "text"
	KindFooter       Kind = "footer"
)

// knownKinds is the closed set of kinds with a dedicated renderer, in
// palette order.
var knownKinds = []Kind{
	KindHero,
	KindFeatures,
	KindGallery,
	KindTestimonials,
	KindPricing,
	KindCTA,
	KindText,
	KindFooter,
}

// Kinds returns the known section kinds.
func Kinds() []Kind {
	out := make([]Kind, len(knownKinds))
	copy(out, knownKinds)
	return out
}

// Known reports whether k has a dedicated renderer.
func (k Kind) Known() bool {
	for _, known := range knownKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Status is the presentational optimization state of a section.
type Status string

const (
	StatusOptimized Status = "optimized"
	StatusNeedsWork Status = "needs-work"
	StatusCritical  Status = "critical"
)

// Item is one entry of a features grid or gallery.
type Item struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Fields is the loose content record used on the wire and for partial
// edits. A nil pointer (or nil Items) means the field is absent.
type Fields struct {
	Title       *string `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle    *string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	ButtonText  *string `json:"buttonText,omitempty" yaml:"buttonText,omitempty"`
	Items       []Item  `json:"items,omitempty" yaml:"items,omitempty"`
}

// Str returns a pointer to s, for building Fields literals.
func Str(s string) *string { return &s }

// Clone returns a deep copy of f.
func (f Fields) Clone() Fields {
	out := Fields{
		Title:       clonePtr(f.Title),
		Subtitle:    clonePtr(f.Subtitle),
		Description: clonePtr(f.Description),
		ButtonText:  clonePtr(f.ButtonText),
	}
	if f.Items != nil {
		out.Items = cloneItems(f.Items)
	}
	return out
}

// IsEmpty reports whether no field is present.
func (f Fields) IsEmpty() bool {
	return f.Title == nil && f.Subtitle == nil && f.Description == nil && f.ButtonText == nil && f.Items == nil
}

// merge overlays every present field of p onto f.
func (f Fields) merge(p Fields) Fields {
	out := f.Clone()
	if p.Title != nil {
		out.Title = clonePtr(p.Title)
	}
	if p.Subtitle != nil {
		out.Subtitle = clonePtr(p.Subtitle)
	}
	if p.Description != nil {
		out.Description = clonePtr(p.Description)
	}
	if p.ButtonText != nil {
		out.ButtonText = clonePtr(p.ButtonText)
	}
	if p.Items != nil {
		out.Items = cloneItems(p.Items)
	}
	return out
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// value dereferences an optional field, treating absence as "".
func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// optional turns "" into an absent field.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
