package services

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"mcommerce/internal/i18n"
	"mcommerce/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

// DefaultCatalogTTL, katalog önbelleğinin geçerlilik süresidir
const DefaultCatalogTTL = 60 * time.Second

// globalCacheKey, dile göre bölünmemiş tek önbellek girdisinin anahtarıdır
const globalCacheKey = "global"

// ProductSource, ham ürün kayıtlarını getiren dış kaynaktır
type ProductSource interface {
	FetchProducts(ctx context.Context) ([]models.SourceProduct, error)
}

type catalogEntry struct {
	products  []models.Product
	fetchedAt time.Time
}

// CatalogService, dış kaynaktan gelen ürünleri zenginleştirir ve bellekte TTL ile saklar.
// Varsayılan olarak önbellek dilden bağımsızdır: bir dilde doldurulan katalog, süresi
// dolana kadar diğer dile de aynen verilir. WithPerLocaleCache bunu dile göre böler.
type CatalogService struct {
	source    ProductSource
	bundle    *i18n.Bundle
	merch     Merchandiser
	rate      float64
	ttl       time.Duration
	perLocale bool
	now       func() time.Time
	tracer    trace.Tracer

	mu      sync.RWMutex
	entries map[string]catalogEntry
	group   singleflight.Group

	hits    int64
	misses  int64
	fetches int64
}

// CatalogOption, CatalogService davranışını değiştirir
type CatalogOption func(*CatalogService)

// WithTTL, önbellek süresini ayarlar
func WithTTL(ttl time.Duration) CatalogOption {
	return func(s *CatalogService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock, zaman kaynağını değiştirir (testler için)
func WithClock(now func() time.Time) CatalogOption {
	return func(s *CatalogService) {
		s.now = now
	}
}

// WithPerLocaleCache, önbelleği dile göre böler
func WithPerLocaleCache(enabled bool) CatalogOption {
	return func(s *CatalogService) {
		s.perLocale = enabled
	}
}

// WithMerchandiser, stok/indirim alanlarının üreticisini değiştirir
func WithMerchandiser(m Merchandiser) CatalogOption {
	return func(s *CatalogService) {
		s.merch = m
	}
}

// WithUSDToTRY, dolar/TL çarpanını ayarlar
func WithUSDToTRY(rate float64) CatalogOption {
	return func(s *CatalogService) {
		if rate > 0 {
			s.rate = rate
		}
	}
}

// NewCatalogService, yeni bir CatalogService örneği oluşturur
func NewCatalogService(source ProductSource, bundle *i18n.Bundle, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{
		source:  source,
		bundle:  bundle,
		merch:   NewRandomMerchandiser(time.Now().UnixNano()),
		rate:    DefaultUSDToTRY,
		ttl:     DefaultCatalogTTL,
		now:     time.Now,
		tracer:  otel.Tracer("mcommerce/catalog"),
		entries: make(map[string]catalogEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchCatalog, zenginleştirilmiş kataloğu döndürür. Kaynak hatası hata olarak
// yüzeye çıkmaz; loglanır ve pencere boyunca boş katalog verilir.
func (s *CatalogService) FetchCatalog(ctx context.Context, locale i18n.Locale) []models.Product {
	key := s.cacheKey(locale)

	if entry, ok := s.lookup(key); ok && !s.expired(entry) {
		atomic.AddInt64(&s.hits, 1)
		return cloneProducts(entry.products)
	}

	atomic.AddInt64(&s.misses, 1)
	log.Printf("CatalogService.FetchCatalog - cache miss (key=%s)", key)
	return s.refill(ctx, key, locale)
}

// GetBySlug, slug'a sahip ürünü doğrusal taramayla bulur. Yalnızca hiç önbellek
// yoksa kaynağa gider; süresi dolmuş girdi de taranır.
func (s *CatalogService) GetBySlug(ctx context.Context, slug string, locale i18n.Locale) (*models.Product, bool) {
	return s.find(ctx, locale, func(p models.Product) bool { return p.Slug == slug })
}

// GetByID, kimliğe göre ürünü GetBySlug ile aynı kurallarla bulur
func (s *CatalogService) GetByID(ctx context.Context, id int, locale i18n.Locale) (*models.Product, bool) {
	return s.find(ctx, locale, func(p models.Product) bool { return p.ID == id })
}

func (s *CatalogService) find(ctx context.Context, locale i18n.Locale, match func(models.Product) bool) (*models.Product, bool) {
	key := s.cacheKey(locale)

	var products []models.Product
	if entry, ok := s.lookup(key); ok {
		products = entry.products
	} else {
		products = s.refill(ctx, key, locale)
	}

	for _, p := range products {
		if match(p) {
			found := p
			return &found, true
		}
	}
	return nil, false
}

// ListCategories, dört statik kategoriyi dilin adlarıyla döndürür
func (s *CatalogService) ListCategories(locale i18n.Locale) []models.Category {
	labels := s.bundle.T(locale).Categories
	categories := make([]models.Category, 0, len(categoryDefs))
	for _, def := range categoryDefs {
		categories = append(categories, models.Category{ID: def.id, Name: def.label(labels), Slug: def.slug})
	}
	return categories
}

// GetProducts, kataloğu getirip filtre/sıralama/sayfalama uygular
func (s *CatalogService) GetProducts(ctx context.Context, locale i18n.Locale, filters models.ProductFilters) models.ProductListResponse {
	return QueryProducts(s.FetchCatalog(ctx, locale), filters, locale)
}

// RelatedProducts, aynı kategorideki ilk ürünlerden mevcut ürün hariç en fazla n tanesini döndürür
func (s *CatalogService) RelatedProducts(ctx context.Context, product models.Product, locale i18n.Locale, n int) []models.Product {
	if n <= 0 {
		n = 4
	}
	page := s.GetProducts(ctx, locale, models.ProductFilters{
		Categories: []string{product.CategoryInfo.Slug},
		Limit:      n + 1,
	})

	related := make([]models.Product, 0, n)
	for _, p := range page.Products {
		if p.ID == product.ID {
			continue
		}
		related = append(related, p)
		if len(related) == n {
			break
		}
	}
	return related
}

// Invalidate, tüm önbellek girdilerini siler; sonraki okuma kaynağa gider
func (s *CatalogService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		s.group.Forget(key)
	}
	s.entries = make(map[string]catalogEntry)
	log.Printf("CatalogService.Invalidate - cache cleared")
}

// Stats, önbellek istatistiklerini döndürür
func (s *CatalogService) Stats() map[string]interface{} {
	s.mu.RLock()
	entries := len(s.entries)
	s.mu.RUnlock()

	return map[string]interface{}{
		"hits":       atomic.LoadInt64(&s.hits),
		"misses":     atomic.LoadInt64(&s.misses),
		"fetches":    atomic.LoadInt64(&s.fetches),
		"entries":    entries,
		"ttl":        s.ttl.String(),
		"per_locale": s.perLocale,
	}
}

func (s *CatalogService) cacheKey(locale i18n.Locale) string {
	if s.perLocale {
		return string(locale)
	}
	return globalCacheKey
}

func (s *CatalogService) lookup(key string) (catalogEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[key]
	return entry, ok
}

func (s *CatalogService) expired(entry catalogEntry) bool {
	return s.now().Sub(entry.fetchedAt) > s.ttl
}

// refill, aynı anahtar için eşzamanlı çağıranların tek bir kaynak çağrısını paylaşmasını sağlar
func (s *CatalogService) refill(ctx context.Context, key string, locale i18n.Locale) []models.Product {
	// Paylaşılan çağrı, ilk çağıranın isteği iptal edilse de tamamlanır
	fetchCtx := context.WithoutCancel(ctx)

	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		if entry, ok := s.lookup(key); ok && !s.expired(entry) {
			return entry.products, nil
		}

		products := s.fetch(fetchCtx, locale)

		s.mu.Lock()
		s.entries[key] = catalogEntry{products: products, fetchedAt: s.now()}
		s.mu.Unlock()
		return products, nil
	})
	return cloneProducts(v.([]models.Product))
}

func (s *CatalogService) fetch(ctx context.Context, locale i18n.Locale) []models.Product {
	ctx, span := s.tracer.Start(ctx, "CatalogService.fetch",
		trace.WithAttributes(attribute.String("locale", string(locale))),
	)
	defer span.End()

	atomic.AddInt64(&s.fetches, 1)

	raw, err := s.source.FetchProducts(ctx)
	if err != nil {
		log.Printf("CatalogService.fetch - Error fetching products: %v", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "product source failed")
		return []models.Product{}
	}

	labels := s.bundle.T(locale).Categories
	now := s.now()
	products := make([]models.Product, 0, len(raw))
	for _, src := range raw {
		products = append(products, enrich(src, labels, s.rate, s.merch.Merchandise(src.ID), now))
	}

	span.SetAttributes(attribute.Int("products", len(products)))
	log.Printf("CatalogService.fetch - %d products loaded (locale=%s)", len(products), locale)
	return products
}

func cloneProducts(in []models.Product) []models.Product {
	out := make([]models.Product, len(in))
	copy(out, in)
	return out
}
