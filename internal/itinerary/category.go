package itinerary

import "strings"

// categoryRules is evaluated top to bottom and the first rule with a keyword
// contained in the lowercased description decides the category. The order is
// the tie-break: "hotel breakfast" is a meal, "train to the museum" is
// transport.
var categoryRules = []struct {
	category Category
	keywords []string
}{
	{CategoryMeal, []string{"breakfast", "lunch", "dinner", "meal", "restaurant", "café", "cafe"}},
	{CategoryAccommodation, []string{"hotel", "check", "accommodation"}},
	{CategoryTransport, []string{"drive", "flight", "train", "taxi", "transport"}},
	{CategorySightseeing, []string{"visit", "explore", "see", "tour", "museum", "temple"}},
}

// Categorize assigns a category by keyword scan, defaulting to activity.
func Categorize(text string) Category {
	lower := strings.ToLower(text)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return CategoryActivity
}

// DefaultDuration is the assumed length in minutes of an activity of cat.
func DefaultDuration(cat Category) int {
	switch cat {
	case CategoryMeal:
		return 90
	case CategoryTransport:
		return 60
	default:
		return 120
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTransport, CategoryAccommodation, CategoryActivity, CategoryMeal, CategorySightseeing:
		return true
	}
	return false
}
