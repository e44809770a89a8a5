// Package catalog implements the marketplace browse filters.
package catalog

import (
	"strings"

	"github.com/assoumso/au-djassa/pkg/models"
)

// AllCategories is the category filter value that matches everything.
const AllCategories = "Tout"

// Filter is the buyer-side browse query.
type Filter struct {
	Search     string
	Category   string
	SupplierID string
}

func matchesCategory(filter, category string) bool {
	return filter == "" || filter == AllCategories || filter == category
}

// Products returns the products matching the filter. The search term matches
// name, description, supplier name or any tag, case-insensitively.
func Products(products []models.Product, f Filter) []models.Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !matchesCategory(f.Category, p.Category) {
			continue
		}
		if f.SupplierID != "" && p.SupplierID != f.SupplierID {
			continue
		}
		if search != "" && !productMatches(p, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func productMatches(p models.Product, search string) bool {
	if strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Description), search) ||
		strings.Contains(strings.ToLower(p.SupplierName), search) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

// Suppliers returns the available suppliers matching the filter. Unavailable
// suppliers never appear, whatever the query.
func Suppliers(suppliers []models.Supplier, f Filter) []models.Supplier {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Supplier, 0, len(suppliers))
	for _, s := range suppliers {
		if !s.IsAvailable {
			continue
		}
		if !matchesCategory(f.Category, s.Category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Name), search) &&
			!strings.Contains(strings.ToLower(s.Category), search) {
			continue
		}
		out = append(out, s)
	}
	return out
}
