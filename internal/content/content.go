package content

// Content is the typed payload of a section. Each known Kind has exactly
// one implementation; anything else is carried by Unknown so documents
// from newer clients still load and render through the fallback path.
type Content interface {
	Kind() Kind
	// Fields flattens the content into the loose wire record.
	Fields() Fields
	// Clone returns a deep copy.
	Clone() Content
}

// Hero is a full-bleed banner with a heading and optional call to action.
type Hero struct {
	Title      string
	Subtitle   string
	ButtonText string
}

// Features is a heading with an optional description and a card grid.
type Features struct {
	Title       string
	Description string
	Items       []Item
}

// Gallery is a heading over a grid of square tiles.
type Gallery struct {
	Title string
	Items []Item
}

// Testimonials is a heading over fixed placeholder quotes.
type Testimonials struct {
	Title string
}

// Pricing is a heading over the fixed three-tier price table.
type Pricing struct {
	Title    string
	Subtitle string
}

// CTA is a centered heading with an optional action link.
type CTA struct {
	Title      string
	ButtonText string
}

// Text is a centered heading with an optional paragraph.
type Text struct {
	Title       string
	Description string
}

// Footer is the single-line footer band.
type Footer struct {
	Description string
}

// Unknown keeps the raw type tag and fields of a kind this build has no
// renderer for.
type Unknown struct {
	Type Kind
	Raw  Fields
}

func (Hero) Kind() Kind         { return KindHero }
func (Features) Kind() Kind     { return KindFeatures }
func (Gallery) Kind() Kind      { return KindGallery }
func (Testimonials) Kind() Kind { return KindTestimonials }
func (Pricing) Kind() Kind      { return KindPricing }
func (CTA) Kind() Kind          { return KindCTA }
func (Text) Kind() Kind         { return KindText }
func (Footer) Kind() Kind       { return KindFooter }
func (u Unknown) Kind() Kind    { return u.Type }

func (c Hero) Fields() Fields {
	return Fields{Title: optional(c.Title), Subtitle: optional(c.Subtitle), ButtonText: optional(c.ButtonText)}
}

func (c Features) Fields() Fields {
	return Fields{Title: optional(c.Title), Description: optional(c.Description), Items: cloneItems(c.Items)}
}

func (c Gallery) Fields() Fields {
	return Fields{Title: optional(c.Title), Items: cloneItems(c.Items)}
}

func (c Testimonials) Fields() Fields {
	return Fields{Title: optional(c.Title)}
}

func (c Pricing) Fields() Fields {
	return Fields{Title: optional(c.Title), Subtitle: optional(c.Subtitle)}
}

func (c CTA) Fields() Fields {
	return Fields{Title: optional(c.Title), ButtonText: optional(c.ButtonText)}
}

func (c Text) Fields() Fields {
	return Fields{Title: optional(c.Title), Description: optional(c.Description)}
}

func (c Footer) Fields() Fields {
	return Fields{Description: optional(c.Description)}
}

func (u Unknown) Fields() Fields { return u.Raw.Clone() }

func (c Hero) Clone() Content         { return c }
func (c Testimonials) Clone() Content { return c }
func (c Pricing) Clone() Content      { return c }
func (c CTA) Clone() Content          { return c }
func (c Text) Clone() Content         { return c }
func (c Footer) Clone() Content       { return c }

func (c Features) Clone() Content {
	c.Items = cloneItems(c.Items)
	return c
}

func (c Gallery) Clone() Content {
	c.Items = cloneItems(c.Items)
	return c
}

func (u Unknown) Clone() Content {
	u.Raw = u.Raw.Clone()
	return u
}

// FromFields builds the variant for kind from a loose record. Fields that
// are not meaningful for kind are dropped, except for unknown kinds which
// keep everything.
func FromFields(kind Kind, f Fields) Content {
	switch kind {
	case KindHero:
		return Hero{Title: value(f.Title), Subtitle: value(f.Subtitle), ButtonText: value(f.ButtonText)}
	case KindFeatures:
		return Features{Title: value(f.Title), Description: value(f.Description), Items: cloneItems(f.Items)}
	case KindGallery:
		return Gallery{Title: value(f.Title), Items: cloneItems(f.Items)}
	case KindTestimonials:
		return Testimonials{Title: value(f.Title)}
	case KindPricing:
		return Pricing{Title: value(f.Title), Subtitle: value(f.Subtitle)}
	case KindCTA:
		return CTA{Title: value(f.Title), ButtonText: value(f.ButtonText)}
	case KindText:
		return Text{Title: value(f.Title), Description: value(f.Description)}
	case KindFooter:
		return Footer{Description: value(f.Description)}
	default:
		return Unknown{Type: kind, Raw: f.Clone()}
	}
}

// Merge overlays the present fields of partial onto c and returns the new
// content. Fields absent from partial keep their current value.
func Merge(c Content, partial Fields) Content {
	if c == nil {
		return nil
	}
	return FromFields(c.Kind(), c.Fields().merge(partial))
}

// DefaultContent returns the starting content for a newly inserted section
// of the given kind. It never fails: unknown kinds get an empty Unknown.
func DefaultContent(kind Kind) Content {
	title := "New " + BlockName(kind)
	const body = "Add your content here"

	switch kind {
	case KindHero:
		return Hero{Title: title}
	case KindFeatures:
		return Features{Title: title, Description: body}
	case KindGallery:
		return Gallery{Title: title}
	case KindTestimonials:
		return Testimonials{Title: title}
	case KindPricing:
		return Pricing{Title: title}
	case KindCTA:
		return CTA{Title: title}
	case KindText:
		return Text{Title: title, Description: body}
	case KindFooter:
		return Footer{}
	default:
		return Unknown{Type: kind, Raw: Fields{Title: Str(title), Description: Str(body)}}
	}
}
