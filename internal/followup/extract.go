// Package followup derives follow-up obligations from the order ledger:
// a keyword extractor picks the qualifying orders, and a scheduler computes
// due dates and urgency tiers against an explicit reference time.
package followup

import (
	"strings"

	"orderdash/internal/model"
)

// DefaultKeywords qualify an order for a follow-up. Matching is a
// case-insensitive substring check against the product description.
var DefaultKeywords = []string{"broomer", "sweeper", "brush"}

// Matches reports whether the product description contains any keyword,
// ignoring case. An empty product never matches.
func Matches(product string, keywords []string) bool {
	if product == "" {
		return false
	}
	product = strings.ToLower(product)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(product, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Extract returns the orders whose product matches the keyword list,
// preserving input order. It is a pure filter.
func Extract(orders []model.Order, keywords []string) []model.Order {
	var matched []model.Order
	for _, o := range orders {
		if Matches(o.Product, keywords) {
			matched = append(matched, o)
		}
	}
	return matched
}
