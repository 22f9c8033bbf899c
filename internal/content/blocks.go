package content

// Block is an entry of the add-section palette.
type Block struct {
	Kind     Kind   `json:"kind"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

var blocks = []Block{
	{Kind: KindHero, Name: "Hero Section", Category: "Layout"},
	{Kind: KindFeatures, Name: "Features Grid", Category: "Content"},
	{Kind: KindTestimonials, Name: "Testimonials", Category: "Social"},
	{Kind: KindPricing, Name: "Pricing Table", Category: "Conversion"},
	{Kind: KindGallery, Name: "Image Gallery", Category: "Media"},
	{Kind: "video", Name: "Video Section", Category: "Media"},
	{Kind: KindText, Name: "Text Block", Category: "Content"},
	{Kind: KindCTA, Name: "Call to Action", Category: "Conversion"},
	{Kind: KindFooter, Name: "Footer", Category: "Layout"},
}

// Blocks returns the add-section palette in display order.
func Blocks() []Block {
	out := make([]Block, len(blocks))
	copy(out, blocks)
	return out
}

// BlockName returns the palette display name for kind, or the kind itself
// when it is not in the palette.
func BlockName(kind Kind) string {
	for _, b := range blocks {
		if b.Kind == kind {
			return b.Name
		}
	}
	if kind == "" {
		return "Section"
	}
	return string(kind)
}
