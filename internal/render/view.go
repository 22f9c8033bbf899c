package render

import (
	"strconv"

	"github.com/web-inv/sitebuilder/internal/content"
)

// Fallback texts used when a required field is absent.
const (
	FallbackHero         = "Welcome"
	FallbackFeatures     = "Features"
	FallbackGallery      = "Gallery"
	FallbackTestimonials = "Testimonials"
	FallbackPricing      = "Pricing"
	FallbackCTA          = "Get Started Today"
	FallbackText         = "About Us"
	FallbackFooter       = "© 2024 Your Company. All rights reserved."
)

// Card is one tile of a features or gallery grid.
type Card struct {
	Title       string
	Description string
}

// Quote is a placeholder testimonial.
type Quote struct {
	Text   string
	Author string
	Role   string
}

// Tier is one column of the pricing table.
type Tier struct {
	Name     string
	Price    int
	Featured bool
}

// PriceLabel returns the tier price formatted as "$29".
func (t Tier) PriceLabel() string {
	return "$" + strconv.Itoa(t.Price)
}

// View is the resolved, render-ready form of a section: fallbacks applied,
// absent optional fields left empty and placeholders filled in. Both the
// exporter and the preview draw from it.
type View struct {
	Kind        content.Kind
	Known       bool
	Name        string
	Title       string
	Subtitle    string
	Description string
	ButtonText  string
	Cards       []Card
	Quotes      []Quote
	Tiers       []Tier
}

var (
	quotes = []Quote{
		{Text: "Great product! Highly recommended.", Author: "Customer Name", Role: "Verified Buyer"},
		{Text: "Amazing service and support!", Author: "Another Customer", Role: "Verified Buyer"},
	}
	tiers = []Tier{
		{Name: "Basic", Price: 29},
		{Name: "Pro", Price: 59, Featured: true},
		{Name: "Enterprise", Price: 99},
	}
)

// placeholderTiles is the number of gallery tiles shown when no items are set.
const placeholderTiles = 3

// ViewOf maps a section onto its View.
func ViewOf(sec content.Section) View {
	v := View{Kind: sec.Kind(), Known: true, Name: sec.Name}

	switch c := sec.Content.(type) {
	case content.Hero:
		v.Title = or(c.Title, FallbackHero)
		v.Subtitle = c.Subtitle
		v.ButtonText = c.ButtonText
	case content.Features:
		v.Title = or(c.Title, FallbackFeatures)
		v.Description = c.Description
		v.Cards = cards(c.Items)
	case content.Gallery:
		v.Title = or(c.Title, FallbackGallery)
		// Gallery tiles show titles only.
		for _, it := range c.Items {
			v.Cards = append(v.Cards, Card{Title: it.Title})
		}
		if len(v.Cards) == 0 {
			for i := 1; i <= placeholderTiles; i++ {
				v.Cards = append(v.Cards, Card{Title: "Image " + strconv.Itoa(i)})
			}
		}
	case content.Testimonials:
		v.Title = or(c.Title, FallbackTestimonials)
		v.Quotes = append([]Quote(nil), quotes...)
	case content.Pricing:
		v.Title = or(c.Title, FallbackPricing)
		v.Subtitle = c.Subtitle
		v.Tiers = append([]Tier(nil), tiers...)
	case content.CTA:
		v.Title = or(c.Title, FallbackCTA)
		v.ButtonText = c.ButtonText
	case content.Text:
		v.Title = or(c.Title, FallbackText)
		v.Description = c.Description
	case content.Footer:
		v.Description = or(c.Description, FallbackFooter)
	default:
		v.Known = false
	}
	return v
}

func cards(items []content.Item) []Card {
	if len(items) == 0 {
		return nil
	}
	out := make([]Card, len(items))
	for i, it := range items {
		out[i] = Card{Title: it.Title, Description: it.Description}
	}
	return out
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
