package services

import (
	"math/rand"
	"testing"
	"time"

	"mcommerce/internal/i18n"
	"mcommerce/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Fjallraven - Foldsack No. 1 Backpack, Fits 15 Laptops", "fjallraven-foldsack-no-1-backpack-fits-15-laptops"},
		{"Mens Cotton Jacket", "mens-cotton-jacket"},
		{"John Hardy Women's Legends Naga", "john-hardy-women-s-legends-naga"},
		{"Trailing punctuation!!!", "trailing-punctuation"},
		{"  leading space", "-leading-space"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestResolveCategory(t *testing.T) {
	bundle := testBundle(t)
	tr := bundle.T(i18n.TR).Categories

	assert.Equal(t, models.Category{ID: "3", Name: "Erkek Giyim", Slug: "erkek-giyim"}, resolveCategory("men's clothing", tr))
	assert.Equal(t, models.Category{ID: "4", Name: "Kadın Giyim", Slug: "kadin-giyim"}, resolveCategory("women's clothing", tr))

	unknown := resolveCategory("Home  Garden", tr)
	assert.Equal(t, "0", unknown.ID)
	assert.Equal(t, "Home  Garden", unknown.Name)
	assert.Equal(t, "home-garden", unknown.Slug)
}

func TestEnrich_WithoutDiscount(t *testing.T) {
	now := time.Date(2025, 8, 2, 12, 0, 0, 0, time.UTC)
	src := models.SourceProduct{ID: 1, Title: "Plain Shirt", Price: 10, Category: "men's clothing", Rating: models.Rating{Rate: 4.1, Count: 7}}

	p := enrich(src, testBundle(t).T(i18n.EN).Categories, DefaultUSDToTRY, Merchandise{Stock: 5, Age: time.Hour}, now)

	assert.Equal(t, "plain-shirt", p.Slug)
	assert.InDelta(t, 10, p.Price, 1e-9)
	assert.InDelta(t, 415.9, p.PriceInTRY, 1e-9)
	assert.Nil(t, p.Discount)
	assert.Nil(t, p.OriginalPrice)
	assert.Nil(t, p.OriginalPriceInTRY)
	assert.False(t, p.HasDiscount())
	assert.Equal(t, 5, p.Stock)
	assert.Equal(t, now.Add(-time.Hour), p.CreatedAt)
	assert.Equal(t, now, p.UpdatedAt)
	assert.Equal(t, "Men's Clothing", p.CategoryInfo.Name)
}

func TestEnrich_DiscountKeepsOriginals(t *testing.T) {
	discount := 20
	src := models.SourceProduct{ID: 1, Title: "Jacket", Price: 100, Category: "women's clothing"}

	p := enrich(src, testBundle(t).T(i18n.TR).Categories, DefaultUSDToTRY, Merchandise{Stock: 1, Discount: &discount}, time.Now())

	require.True(t, p.HasDiscount())
	assert.Equal(t, 20, *p.Discount)
	assert.InDelta(t, 100, *p.OriginalPrice, 1e-9)
	assert.InDelta(t, 4159, *p.OriginalPriceInTRY, 1e-9)
	assert.InDelta(t, 80, p.Price, 1e-9)
	assert.InDelta(t, 3327.2, p.PriceInTRY, 1e-9)
}

func TestDrawMerchandise_Ranges(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	sawDiscount := false

	for i := 0; i < 2000; i++ {
		m := drawMerchandise(r)
		assert.GreaterOrEqual(t, m.Stock, 1)
		assert.LessOrEqual(t, m.Stock, 50)
		assert.GreaterOrEqual(t, m.Age, time.Duration(0))
		assert.Less(t, m.Age, merchandiseWindow)
		if m.Discount != nil {
			sawDiscount = true
			assert.GreaterOrEqual(t, *m.Discount, 10)
			assert.LessOrEqual(t, *m.Discount, 39)
		}
	}
	assert.True(t, sawDiscount)
}

func TestSeededMerchandiser_Deterministic(t *testing.T) {
	var m SeededMerchandiser
	assert.Equal(t, m.Merchandise(7), m.Merchandise(7))
}
