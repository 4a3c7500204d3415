package ui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"meenora.in/store/internal/store/catalog"
)

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "p1", Name: "Nourishing Shampoo", Description: "Daily shampoo for shine.", Price: 24.99, Category: "Hair Care", Concern: "Hair Growth"},
		{ID: "p2", Name: "Hydrating Conditioner", Description: "Detangles and smooths.", Price: 26.99, Category: "Hair Care", Concern: "Hair Damage"},
		{ID: "p3", Name: "Daily Glow Moisturiser", Description: "Hydrates and illuminates.", Price: 28.99, Category: "Skincare", Concern: "Face Care"},
	}
}

func TestFilterProductsByCategorySlug(t *testing.T) {
	t.Parallel()

	filtered := filterProducts(sampleProducts(), "skincare", "")
	require.Len(t, filtered, 1)
	require.Equal(t, "p3", filtered[0].ID)
}

func TestFilterProductsMatchesConcernSlug(t *testing.T) {
	t.Parallel()

	filtered := filterProducts(sampleProducts(), "hair-growth", "")
	require.Len(t, filtered, 1)
	require.Equal(t, "p1", filtered[0].ID)
}

func TestFilterProductsAllAndEmptyKeepEverything(t *testing.T) {
	t.Parallel()

	require.Len(t, filterProducts(sampleProducts(), "all", ""), 3)
	require.Len(t, filterProducts(sampleProducts(), "", ""), 3)
}

func TestFilterProductsSearchesNameAndDescription(t *testing.T) {
	t.Parallel()

	byName := filterProducts(sampleProducts(), "", "SHAMPOO")
	require.Len(t, byName, 1)
	require.Equal(t, "p1", byName[0].ID)

	byDescription := filterProducts(sampleProducts(), "", "detangles")
	require.Len(t, byDescription, 1)
	require.Equal(t, "p2", byDescription[0].ID)

	require.Empty(t, filterProducts(sampleProducts(), "", "nothing matches this"))
}

func TestFilterProductsCombinesCategoryAndSearch(t *testing.T) {
	t.Parallel()

	filtered := filterProducts(sampleProducts(), "hair-care", "conditioner")
	require.Len(t, filtered, 1)
	require.Equal(t, "p2", filtered[0].ID)
}

func TestFilterProductsDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	products := sampleProducts()
	filterProducts(products, "skincare", "")
	require.Equal(t, "p1", products[0].ID)
	require.Equal(t, "p2", products[1].ID)
}

func TestSortProducts(t *testing.T) {
	t.Parallel()

	products := sampleProducts()
	sortProducts(products, "price-high")
	require.Equal(t, "p3", products[0].ID)
	require.Equal(t, "p1", products[2].ID)

	sortProducts(products, "price-low")
	require.Equal(t, "p1", products[0].ID)
	require.Equal(t, "p3", products[2].ID)

	sortProducts(products, "name")
	require.Equal(t, "Daily Glow Moisturiser", products[0].Name)

	// Anything unknown falls back to name order.
	sortProducts(products, "bogus")
	require.Equal(t, "Daily Glow Moisturiser", products[0].Name)
}

func TestCategoryOptionsDeduplicatesBySlug(t *testing.T) {
	t.Parallel()

	options := categoryOptions(sampleProducts())

	seen := map[string]bool{}
	for _, opt := range options {
		require.False(t, seen[opt.Slug], "duplicate slug %q", opt.Slug)
		seen[opt.Slug] = true
	}

	// Preferred categories lead, page concerns follow.
	require.Equal(t, "hair-care", options[0].Slug)
	require.Equal(t, "skincare", options[1].Slug)
	require.True(t, seen["hair-growth"])
	require.True(t, seen["face-care"])
}

func TestShopURLKeepsActiveFilters(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/shop", shopURL(1, "", "", ""))
	require.Equal(t, "/shop?page=2", shopURL(2, "", "", ""))
	require.Equal(t, "/shop?category=skincare&page=2&q=glow&sort=price-low", shopURL(2, "glow", "skincare", "price-low"))
}
