package models

import (
	"time"
)

// Rating, kaynak API'den olduğu gibi gelen puan bilgisidir
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// SourceProduct, dış ürün kaynağının döndürdüğü ham kayıttır
type SourceProduct struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
}

// Product, vitrinde gösterilen zenginleştirilmiş üründür.
// Stok, indirim ve yeni/öne çıkan bayrakları her katalog yenilemesinde yeniden üretilir.
type Product struct {
	ID           int      `json:"id"`
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Category     string   `json:"category"`
	CategoryInfo Category `json:"categoryInfo"`

	Price              float64  `json:"price"`
	PriceInTRY         float64  `json:"priceInTRY"`
	OriginalPrice      *float64 `json:"originalPrice,omitempty"`
	OriginalPriceInTRY *float64 `json:"originalPriceInTRY,omitempty"`
	Discount           *int     `json:"discount,omitempty"`

	Stock      int    `json:"stock"`
	IsNew      bool   `json:"isNew"`
	IsFeatured bool   `json:"isFeatured"`
	Rating     Rating `json:"rating"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasDiscount, ürüne indirim uygulanıp uygulanmadığını söyler
func (p Product) HasDiscount() bool {
	return p.Discount != nil
}

// ProductFilters, listeleme sorgusunun filtre, sıralama ve sayfalama parametreleridir
type ProductFilters struct {
	Categories []string `json:"categories,omitempty"`
	MinPrice   *float64 `json:"minPrice,omitempty"`
	MaxPrice   *float64 `json:"maxPrice,omitempty"`
	Search     string   `json:"search,omitempty"`
	SortBy     string   `json:"sortBy,omitempty"`
	Page       int      `json:"page,omitempty"`
	Limit      int      `json:"limit,omitempty"`
}

// Sıralama anahtarları
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
	SortNewest    = "newest"
	SortPopular   = "popular"
)

// ProductListResponse, sorgu motorunun döndürdüğü sayfadır
type ProductListResponse struct {
	Products    []Product `json:"products"`
	Total       int       `json:"total"`
	Page        int       `json:"page"`
	TotalPages  int       `json:"totalPages"`
	HasNextPage bool      `json:"hasNextPage"`
	HasPrevPage bool      `json:"hasPrevPage"`
}
