package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mcommerce/internal/models"
)

// CartSchemaVersion, kalıcı sepet kaydının güncel şema sürümüdür
const CartSchemaVersion = 1

var (
	// ErrCartNotFound, oturuma ait kayıtlı sepet olmadığında döner
	ErrCartNotFound = errors.New("cart not found")
	// ErrUnsupportedVersion, kayıt bu sürümün bilmediği yeni bir şemadaysa döner
	ErrUnsupportedVersion = errors.New("unsupported cart schema version")
)

// CartRepository, oturum kimliğine göre sepetleri saklar
type CartRepository interface {
	LoadCart(ctx context.Context, sessionID string) (*models.Cart, error)
	SaveCart(ctx context.Context, sessionID string, cart *models.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

// persistedCart, diske/Redis'e yazılan sürümlü sepet kaydıdır
type persistedCart struct {
	Version int `json:"version"`
	models.Cart
}

// migrations[v], v sürümündeki kaydı v+1 sürümüne taşır
var migrations = map[int]func(*persistedCart){
	// 0: sürüm etiketi olmayan eski kayıt. Toplamlar güvenilmez, yeniden hesaplanır.
	0: func(p *persistedCart) {
		if p.Items == nil {
			p.Items = []models.CartItem{}
		}
		p.Recalculate()
	},
}

// EncodeCart, sepeti güncel şema sürümüyle serileştirir
func EncodeCart(cart *models.Cart) ([]byte, error) {
	return json.Marshal(persistedCart{Version: CartSchemaVersion, Cart: *cart})
}

// DecodeCart, kaydı okur ve gerekiyorsa güncel sürüme taşır
func DecodeCart(data []byte) (*models.Cart, error) {
	var p persistedCart
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if p.Version > CartSchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, p.Version)
	}

	for p.Version < CartSchemaVersion {
		migrate, ok := migrations[p.Version]
		if !ok {
			return nil, fmt.Errorf("%w: no migration from %d", ErrUnsupportedVersion, p.Version)
		}
		migrate(&p)
		p.Version++
	}

	cart := p.Cart
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	cart.Recalculate()
	return &cart, nil
}
