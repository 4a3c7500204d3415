package ui

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"meenora.in/store/internal/store/catalog"
)

// shopCategory is one entry in the shop's category selector.
type shopCategory struct {
	Name string
	Slug string
}

// preferredCategories lead the selector in a fixed order; categories found on
// the current page are appended after them.
var preferredCategories = []string{"Hair Care", "Skincare"}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}

// filterProducts narrows the listing to one category slug and a free-text
// search term. The slug matches either the category or the concern, so
// concern links ("hair-growth") work the same as category links.
func filterProducts(products []catalog.Product, category, query string) []catalog.Product {
	filtered := append([]catalog.Product(nil), products...)

	if category != "" && category != "all" {
		kept := filtered[:0]
		for _, p := range filtered {
			if slugify(p.Category) == category || slugify(p.Concern) == category {
				kept = append(kept, p)
			}
		}
		filtered = kept
	}

	if query != "" {
		needle := strings.ToLower(query)
		kept := filtered[:0]
		for _, p := range filtered {
			if strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle) {
				kept = append(kept, p)
			}
		}
		filtered = kept
	}

	return filtered
}

// sortProducts orders the listing in place. Name order is the default;
// price-low and price-high sort by price.
func sortProducts(products []catalog.Product, sortBy string) {
	switch sortBy {
	case "price-low":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "price-high":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	default:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	}
}

// categoryOptions builds the selector entries from the preferred categories
// plus whatever the current page carries, deduplicated by slug.
func categoryOptions(products []catalog.Product) []shopCategory {
	seen := make(map[string]bool)
	var options []shopCategory

	add := func(name string) {
		slug := slugify(name)
		if name == "" || seen[slug] {
			return
		}
		seen[slug] = true
		options = append(options, shopCategory{Name: name, Slug: slug})
	}

	for _, name := range preferredCategories {
		add(name)
	}
	for _, p := range products {
		add(p.Category)
		add(p.Concern)
	}
	return options
}

// shopURL rebuilds a /shop link keeping the active filters.
func shopURL(page int, query, category, sortBy string) string {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if query != "" {
		q.Set("q", query)
	}
	if category != "" {
		q.Set("category", category)
	}
	if sortBy != "" {
		q.Set("sort", sortBy)
	}
	if len(q) == 0 {
		return "/shop"
	}
	return "/shop?" + q.Encode()
}
