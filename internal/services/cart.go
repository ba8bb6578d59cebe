package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"mcommerce/internal/database"
	"mcommerce/internal/events"
	"mcommerce/internal/models"
)

// CartService, oturum bazlı sepet işlemlerini yönetir. Her işlem sepeti yükler,
// değiştirir, kaydeder ve olay yayınlar. Depolama ve yayın hataları loglanır,
// çağırana hata olarak dönmez.
type CartService struct {
	repo      database.CartRepository
	publisher events.Publisher
	now       func() time.Time

	// Aynı oturumun eşzamanlı istekleri sırayla işlenir. Kilit, bekleyen
	// kalmayınca haritadan silinir.
	locksMu sync.Mutex
	locks   map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// CartOption, CartService davranışını değiştirir
type CartOption func(*CartService)

// WithCartClock, zaman kaynağını değiştirir
func WithCartClock(now func() time.Time) CartOption {
	return func(cs *CartService) {
		cs.now = now
	}
}

// WithPublisher, sepet olaylarının gönderileceği yayıncıyı ayarlar
func WithPublisher(p events.Publisher) CartOption {
	return func(cs *CartService) {
		if p != nil {
			cs.publisher = p
		}
	}
}

// NewCartService, yeni bir CartService örneği oluşturur
func NewCartService(repo database.CartRepository, opts ...CartOption) *CartService {
	cs := &CartService{
		repo:      repo,
		publisher: events.NoopPublisher{},
		now:       time.Now,
		locks:     make(map[string]*sessionLock),
	}
	for _, opt := range opts {
		opt(cs)
	}
	return cs
}

// GetCart, session ID'ye göre sepeti döndürür
func (cs *CartService) GetCart(ctx context.Context, sessionID string) *models.Cart {
	return cs.load(ctx, sessionID)
}

// AddItem, sepete ürün ekler; ürün varsa miktarı artırır
func (cs *CartService) AddItem(ctx context.Context, sessionID string, product models.Product, quantity int) *models.Cart {
	log.Printf("CartService.AddItem - SessionID: %s, ProductID: %d, Quantity: %d", sessionID, product.ID, quantity)

	return cs.mutate(ctx, sessionID, func(cart *models.Cart) *events.CartEvent {
		cart.AddItem(product, quantity, cs.now())
		item, _ := cart.Item(product.ID)
		return &events.CartEvent{Type: events.CartItemAdded, ProductID: product.ID, Quantity: item.Quantity}
	})
}

// RemoveItem, ürünün satırını kaldırır. Satır yoksa sepet değişmez.
func (cs *CartService) RemoveItem(ctx context.Context, sessionID string, productID int) *models.Cart {
	log.Printf("CartService.RemoveItem - SessionID: %s, ProductID: %d", sessionID, productID)

	return cs.mutate(ctx, sessionID, func(cart *models.Cart) *events.CartEvent {
		if !cart.RemoveItem(productID) {
			return nil
		}
		return &events.CartEvent{Type: events.CartItemRemoved, ProductID: productID}
	})
}

// UpdateQuantity, satırın miktarını mutlak değere ayarlar; 0 veya altı satırı kaldırır
func (cs *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID int, quantity int) *models.Cart {
	log.Printf("CartService.UpdateQuantity - SessionID: %s, ProductID: %d, Quantity: %d", sessionID, productID, quantity)

	return cs.mutate(ctx, sessionID, func(cart *models.Cart) *events.CartEvent {
		if !cart.UpdateQuantity(productID, quantity) {
			return nil
		}
		if quantity <= 0 {
			return &events.CartEvent{Type: events.CartItemRemoved, ProductID: productID}
		}
		item, _ := cart.Item(productID)
		return &events.CartEvent{Type: events.CartQuantityUpdated, ProductID: productID, Quantity: item.Quantity}
	})
}

// ClearCart, sepeti boşaltır ve oturumun kaydını siler
func (cs *CartService) ClearCart(ctx context.Context, sessionID string) *models.Cart {
	log.Printf("CartService.ClearCart - SessionID: %s", sessionID)

	return cs.mutate(ctx, sessionID, func(cart *models.Cart) *events.CartEvent {
		cart.Clear()
		return &events.CartEvent{Type: events.CartCleared}
	})
}

// GetItem, ürünün sepet satırını döndürür
func (cs *CartService) GetItem(ctx context.Context, sessionID string, productID int) (models.CartItem, bool) {
	return cs.load(ctx, sessionID).Item(productID)
}

// IsInCart, ürünün sepette olup olmadığını döndürür
func (cs *CartService) IsInCart(ctx context.Context, sessionID string, productID int) bool {
	return cs.load(ctx, sessionID).Contains(productID)
}

// GetCartCount, sepetteki toplam ürün sayısını döndürür
func (cs *CartService) GetCartCount(ctx context.Context, sessionID string) int {
	return cs.load(ctx, sessionID).TotalItems
}

func (cs *CartService) lock(sessionID string) func() {
	cs.locksMu.Lock()
	l, ok := cs.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		cs.locks[sessionID] = l
	}
	l.refs++
	cs.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		cs.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(cs.locks, sessionID)
		}
		cs.locksMu.Unlock()
	}
}


// load, kayıtlı sepeti okur. Kayıt yoksa veya okunamıyorsa boş sepet döner.
func (cs *CartService) load(ctx context.Context, sessionID string) *models.Cart {
	cart, err := cs.repo.LoadCart(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, database.ErrCartNotFound) {
			log.Printf("CartService.load - Error loading cart for session %s, starting empty: %v", sessionID, err)
		}
		return models.NewCart()
	}
	return cart
}

// mutate, değişikliği oturum kilidi altında uygular; fn nil olay dönerse sepet değişmemiştir
func (cs *CartService) mutate(ctx context.Context, sessionID string, fn func(*models.Cart) *events.CartEvent) *models.Cart {
	unlock := cs.lock(sessionID)
	defer unlock()

	cart := cs.load(ctx, sessionID)
	event := fn(cart)
	if event == nil {
		return cart.Clone()
	}

	// Boşaltılan sepetin kaydı tamamen silinir
	if event.Type == events.CartCleared {
		if err := cs.repo.DeleteCart(ctx, sessionID); err != nil {
			log.Printf("CartService.mutate - Error deleting cart: %v", err)
		}
	} else if err := cs.repo.SaveCart(ctx, sessionID, cart); err != nil {
		log.Printf("CartService.mutate - Error saving cart: %v", err)
	}

	event.SessionID = sessionID
	event.TotalItems = cart.TotalItems
	event.OccurredAt = cs.now()
	if err := cs.publisher.PublishCartEvent(ctx, *event); err != nil {
		log.Printf("CartService.mutate - Error publishing %s event: %v", event.Type, err)
	}

	log.Printf("CartService.mutate - %s: TotalItems=%d, TotalPriceInTRY=%.2f", event.Type, cart.TotalItems, cart.TotalPriceInTRY)
	return cart.Clone()
}
