package builder

import "github.com/web-inv/sitebuilder/internal/content"

// DefaultSections returns the starter page a fresh session opens with.
func DefaultSections() []content.Section {
	return []content.Section{
		{
			ID:   "1",
			Name: "Hero",
			Content: content.Hero{
				Title:      "Welcome to Our Platform",
				Subtitle:   "The best solution for your needs",
				ButtonText: "Get Started",
			},
			Status: content.StatusOptimized,
			Score:  95,
		},
		{
			ID:   "2",
			Name: "Features Grid",
			Content: content.Features{
				Title:       "Our Features",
				Description: "Discover what makes us different",
			},
			Status: content.StatusNeedsWork,
			Score:  72,
		},
		{
			ID:      "3",
			Name:    "Testimonials",
			Content: content.Testimonials{Title: "What Our Customers Say"},
			Status:  content.StatusOptimized,
			Score:   88,
		},
		{
			ID:   "4",
			Name: "Pricing Table",
			Content: content.Pricing{
				Title:    "Choose Your Plan",
				Subtitle: "Simple, transparent pricing",
			},
			Status: content.StatusCritical,
			Score:  54,
		},
		{
			ID:      "5",
			Name:    "Footer",
			Content: content.Footer{Description: "© 2024 Your Company. All rights reserved."},
			Status:  content.StatusOptimized,
			Score:   91,
		},
	}
}
