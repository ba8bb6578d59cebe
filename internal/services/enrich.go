package services

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"

	"mcommerce/internal/i18n"
	"mcommerce/internal/models"
)

// DefaultUSDToTRY, sabit dolar/TL çarpanıdır
const DefaultUSDToTRY = 41.59

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Slugify, başlıktan URL parçası üretir: küçük harf, harf/rakam dışı diziler tek "-", sondaki "-" atılır
func Slugify(title string) string {
	return strings.TrimRight(nonSlugChars.ReplaceAllString(strings.ToLower(title), "-"), "-")
}

// categoryDef, kaynak kategorisinin yerel kimlik ve etiket eşlemesidir
type categoryDef struct {
	source string
	id     string
	slug   string
	label  func(l i18n.CategoryLabels) string
}

var categoryDefs = []categoryDef{
	{source: "electronics", id: "1", slug: "elektronik", label: func(l i18n.CategoryLabels) string { return l.Electronics }},
	{source: "jewelery", id: "2", slug: "taki-aksesuar", label: func(l i18n.CategoryLabels) string { return l.Jewelery }},
	{source: "men's clothing", id: "3", slug: "erkek-giyim", label: func(l i18n.CategoryLabels) string { return l.MensClothing }},
	{source: "women's clothing", id: "4", slug: "kadin-giyim", label: func(l i18n.CategoryLabels) string { return l.WomensClothing }},
}

// resolveCategory, bilinmeyen kategoriler için türetilmiş slug ve ham adı kullanır
func resolveCategory(raw string, labels i18n.CategoryLabels) models.Category {
	for _, def := range categoryDefs {
		if def.source == raw {
			return models.Category{ID: def.id, Name: def.label(labels), Slug: def.slug}
		}
	}
	return models.Category{
		ID:   "0",
		Name: raw,
		Slug: whitespace.ReplaceAllString(strings.ToLower(raw), "-"),
	}
}

// Merchandise, ürüne eklenen stok/indirim/yenilik alanlarıdır
type Merchandise struct {
	Stock      int
	Discount   *int
	IsNew      bool
	IsFeatured bool
	Age        time.Duration
}

// Merchandiser, bir ürünün mağazacılık alanlarını üretir
type Merchandiser interface {
	Merchandise(productID int) Merchandise
}

// RandomMerchandiser, her çağrıda alanları yeniden rastgele üretir
type RandomMerchandiser struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomMerchandiser, verilen tohumla rastgele üretici oluşturur
func NewRandomMerchandiser(seed int64) *RandomMerchandiser {
	return &RandomMerchandiser{rnd: rand.New(rand.NewSource(seed))}
}

func (m *RandomMerchandiser) Merchandise(_ int) Merchandise {
	m.mu.Lock()
	defer m.mu.Unlock()
	return drawMerchandise(m.rnd)
}

// SeededMerchandiser, alanları ürün kimliğinden türetir; aynı ürün her yenilemede aynı değerleri alır
type SeededMerchandiser struct{}

func (SeededMerchandiser) Merchandise(productID int) Merchandise {
	return drawMerchandise(rand.New(rand.NewSource(int64(productID))))
}

const merchandiseWindow = 30 * 24 * time.Hour

// drawMerchandise: %30 ihtimalle %10-39 indirim, 1-50 stok, %20 yeni, %10 öne çıkan, son 30 gün
func drawMerchandise(r *rand.Rand) Merchandise {
	var m Merchandise
	if r.Float64() > 0.7 {
		discount := r.Intn(30) + 10
		m.Discount = &discount
	}
	m.Stock = r.Intn(50) + 1
	m.IsNew = r.Float64() > 0.8
	m.IsFeatured = r.Float64() > 0.9
	m.Age = time.Duration(r.Float64() * float64(merchandiseWindow))
	return m
}

// enrich, ham kaydı vitrin ürününe çevirir
func enrich(src models.SourceProduct, labels i18n.CategoryLabels, rate float64, merch Merchandise, now time.Time) models.Product {
	p := models.Product{
		ID:           src.ID,
		Slug:         Slugify(src.Title),
		Title:        src.Title,
		Description:  src.Description,
		Image:        src.Image,
		Category:     src.Category,
		CategoryInfo: resolveCategory(src.Category, labels),
		Price:        src.Price,
		PriceInTRY:   src.Price * rate,
		Stock:        merch.Stock,
		IsNew:        merch.IsNew,
		IsFeatured:   merch.IsFeatured,
		Rating:       src.Rating,
		CreatedAt:    now.Add(-merch.Age),
		UpdatedAt:    now,
	}

	if merch.Discount != nil {
		discount := *merch.Discount
		originalPrice := p.Price
		originalPriceInTRY := p.PriceInTRY
		factor := 1 - float64(discount)/100

		p.Discount = &discount
		p.OriginalPrice = &originalPrice
		p.OriginalPriceInTRY = &originalPriceInTRY
		p.Price = originalPrice * factor
		p.PriceInTRY = originalPriceInTRY * factor
	}
	return p
}
