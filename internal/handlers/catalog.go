package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"mcommerce/internal/i18n"
	"mcommerce/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	maxPageSize     = 100
	homeSectionSize = 8
	relatedCount    = 4
)

// Home, ana sayfa verilerini döndürür: kategoriler, öne çıkanlar ve en yeniler
func (h *Handler) Home(c *gin.Context) {
	locale := h.locale(c)
	t := h.bundle.T(locale)

	catalog := h.catalog.FetchCatalog(c.Request.Context(), locale)
	featured := make([]models.Product, 0, homeSectionSize)
	for _, p := range catalog {
		if p.IsFeatured {
			featured = append(featured, p)
			if len(featured) == homeSectionSize {
				break
			}
		}
	}

	newest := h.catalog.GetProducts(c.Request.Context(), locale, models.ProductFilters{
		SortBy: models.SortNewest,
		Limit:  homeSectionSize,
	})

	c.JSON(http.StatusOK, gin.H{
		"locale":     locale,
		"language":   t.Language,
		"flag":       t.Flag,
		"categories": h.catalog.ListCategories(locale),
		"featured":   featured,
		"newest":     newest.Products,
	})
}

// ListProducts, filtrelenmiş ve sayfalanmış ürün listesini döndürür
func (h *Handler) ListProducts(c *gin.Context) {
	locale := h.locale(c)
	filters := parseFilters(c)

	resp := h.catalog.GetProducts(c.Request.Context(), locale, filters)
	c.JSON(http.StatusOK, resp)
}

// ProductDetail, slug'a göre ürünü ve benzer ürünleri döndürür
func (h *Handler) ProductDetail(c *gin.Context) {
	locale := h.locale(c)
	slug := c.Param("slug")

	product, ok := h.catalog.GetBySlug(c.Request.Context(), slug, locale)
	if !ok {
		h.respondError(c, http.StatusNotFound, "product_not_found", h.bundle.T(locale).Messages.ProductNotFound)
		return
	}

	resp := gin.H{
		"product":        product,
		"related":        h.catalog.RelatedProducts(c.Request.Context(), *product, locale, relatedCount),
		"formattedPrice": i18n.FormatPrice(product.Price, product.PriceInTRY, locale),
		"createdAt":      h.bundle.FormatDate(product.CreatedAt, locale),
	}
	if product.HasDiscount() {
		resp["formattedOriginalPrice"] = i18n.FormatPrice(*product.OriginalPrice, *product.OriginalPriceInTRY, locale)
	}
	c.JSON(http.StatusOK, resp)
}

// ListCategories, dile göre kategori listesini döndürür
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.ListCategories(h.locale(c))})
}

// parseFilters, sorgu parametrelerini filtreye çevirir. Sayıya çevrilemeyen
// değerler verilmemiş sayılır.
func parseFilters(c *gin.Context) models.ProductFilters {
	var f models.ProductFilters

	if raw := c.Query("category"); raw != "" {
		for _, slug := range strings.Split(raw, ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				f.Categories = append(f.Categories, slug)
			}
		}
	}
	f.MinPrice = queryFloat(c, "minPrice")
	f.MaxPrice = queryFloat(c, "maxPrice")
	f.Search = strings.TrimSpace(c.Query("search"))
	f.SortBy = c.Query("sortBy")

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		f.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		if limit > maxPageSize {
			limit = maxPageSize
		}
		f.Limit = limit
	}
	return f
}

func queryFloat(c *gin.Context, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (h *Handler) findProduct(c *gin.Context, locale i18n.Locale, id int) *models.Product {
	product, ok := h.catalog.GetByID(c.Request.Context(), id, locale)
	if !ok {
		return nil
	}
	return product
}
