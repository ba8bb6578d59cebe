package services

import (
	"sort"
	"strings"

	"mcommerce/internal/i18n"
	"mcommerce/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
)

// DefaultPageSize, sayfa boyutu verilmediğinde kullanılır
const DefaultPageSize = 12

// QueryProducts, kataloğa sırasıyla kategori, fiyat ve metin filtrelerini uygular,
// sonucu bir kez sıralar ve istenen sayfayı döndürür. G/Ç yapmaz, hata üretmez.
func QueryProducts(catalog []models.Product, filters models.ProductFilters, locale i18n.Locale) models.ProductListResponse {
	m := newMatcher(filters)
	filtered := make([]models.Product, 0, len(catalog))
	for _, p := range catalog {
		if m.matches(p) {
			filtered = append(filtered, p)
		}
	}

	sortProducts(filtered, filters.SortBy, locale)

	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}

	total := len(filtered)
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	// Çarpım taşmasın diye aralık dışı sayfa önce ayıklanır
	start, end := total, total
	if page <= totalPages {
		start = (page - 1) * limit
		end = start + min(limit, total-start)
	}

	return models.ProductListResponse{
		Products:    filtered[start:end],
		Total:       total,
		Page:        page,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// matcher, filtreleri AND ile birleştirir
type matcher struct {
	filters models.ProductFilters
	fold    cases.Caser
	term    string
}

func newMatcher(f models.ProductFilters) *matcher {
	m := &matcher{filters: f, fold: cases.Fold()}
	if f.Search != "" {
		m.term = m.fold.String(f.Search)
	}
	return m
}

func (m *matcher) matches(p models.Product) bool {
	f := m.filters
	if len(f.Categories) > 0 && !containsString(f.Categories, p.CategoryInfo.Slug) {
		return false
	}
	if f.MinPrice != nil && p.PriceInTRY < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.PriceInTRY > *f.MaxPrice {
		return false
	}
	if m.term != "" {
		if !strings.Contains(m.fold.String(p.Title), m.term) &&
			!strings.Contains(m.fold.String(p.Description), m.term) &&
			!strings.Contains(m.fold.String(p.CategoryInfo.Name), m.term) {
			return false
		}
	}
	return true
}

// sortProducts, kararlı sıralama yapar; bilinmeyen anahtarda katalog sırası korunur
func sortProducts(products []models.Product, sortBy string, locale i18n.Locale) {
	var less func(a, b models.Product) bool

	switch sortBy {
	case models.SortPriceAsc:
		less = func(a, b models.Product) bool { return a.PriceInTRY < b.PriceInTRY }
	case models.SortPriceDesc:
		less = func(a, b models.Product) bool { return a.PriceInTRY > b.PriceInTRY }
	case models.SortNameAsc, models.SortNameDesc:
		col := collate.New(locale.Tag())
		if sortBy == models.SortNameAsc {
			less = func(a, b models.Product) bool { return col.CompareString(a.Title, b.Title) < 0 }
		} else {
			less = func(a, b models.Product) bool { return col.CompareString(a.Title, b.Title) > 0 }
		}
	case models.SortNewest:
		less = func(a, b models.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	case models.SortPopular:
		less = func(a, b models.Product) bool { return a.Rating.Rate > b.Rating.Rate }
	default:
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
