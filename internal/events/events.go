package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Sepet olay tipleri
const (
	CartItemAdded       = "item_added"
	CartItemRemoved     = "item_removed"
	CartQuantityUpdated = "quantity_updated"
	CartCleared         = "cart_cleared"
)

// CartEvent, sepet değişikliğinden sonra yayınlanan mesajdır
type CartEvent struct {
	Type       string    `json:"type"`
	SessionID  string    `json:"sessionId"`
	ProductID  int       `json:"productId,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	TotalItems int       `json:"totalItems"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Encode, olayı JSON gövdesine çevirir
func (e CartEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher, sepet olaylarını bir kuyruğa iletir
type Publisher interface {
	PublishCartEvent(ctx context.Context, event CartEvent) error
}

// NoopPublisher, olayları yok sayar. RabbitMQ yapılandırılmadığında kullanılır.
type NoopPublisher struct{}

func (NoopPublisher) PublishCartEvent(context.Context, CartEvent) error { return nil }

// MemoryPublisher, olayları bellekte biriktirir
type MemoryPublisher struct {
	mu     sync.Mutex
	events []CartEvent
}

// PublishCartEvent, olayı listeye ekler
func (m *MemoryPublisher) PublishCartEvent(_ context.Context, event CartEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events, o ana kadar biriken olayların kopyasını döndürür
func (m *MemoryPublisher) Events() []CartEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CartEvent, len(m.events))
	copy(out, m.events)
	return out
}
