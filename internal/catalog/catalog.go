// Package catalog holds the buyer-side view rules over deals.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/fairyhunter13/surplus-deals/internal/model"
)

const placeholderImageBase = "https://loremflickr.com/400/300/"

// Image keywords for the placeholder service, per category.
var categoryImages = map[string]string{
	"Cake":   "cake",
	"Pizza":  "pizza",
	"Indian": "samosa",
	"Burger": "burger",
	"Fruits": "fruit",
}

// Visible reports whether a deal still has stock. Depleted deals stay in
// storage but drop out of listings.
func Visible(d model.Deal) bool {
	return d.Quantity > 0
}

// fold applies Unicode case folding, so that e.g. final and medial sigma
// compare equal.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Filter returns the visible deals whose location contains query under
// Unicode case folding. A blank query matches every visible deal.
func Filter(deals []model.Deal, query string) []model.Deal {
	q := fold(strings.TrimSpace(query))

	out := make([]model.Deal, 0, len(deals))
	for _, d := range deals {
		if !Visible(d) {
			continue
		}
		if q != "" && !strings.Contains(fold(d.Location), q) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Locations is the fixed list of neighbourhoods deals can be posted in.
type Locations []string

// Canonical returns the listed spelling of loc. An empty list accepts any
// location as given.
func (l Locations) Canonical(loc string) (string, bool) {
	loc = strings.TrimSpace(loc)
	if len(l) == 0 {
		return loc, true
	}
	want := fold(loc)
	for _, known := range l {
		known = strings.TrimSpace(known)
		if fold(known) == want {
			return known, true
		}
	}
	return "", false
}

// PlaceholderImage returns a stock photo URL for a category. Unknown or empty
// categories get a generic food picture.
func PlaceholderImage(category string) string {
	if kw, ok := categoryImages[category]; ok {
		return placeholderImageBase + kw
	}
	return placeholderImageBase + "food"
}
