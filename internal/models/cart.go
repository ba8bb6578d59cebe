package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxItemQuantity, bir satırın taşıyabileceği en yüksek miktardır
const MaxItemQuantity = 999

// Cart, sepet durumudur. Toplamlar yalnızca Recalculate ile, satırlardan yeniden hesaplanır.
type Cart struct {
	Items           []CartItem `json:"items"`
	TotalItems      int        `json:"totalItems"`
	TotalPrice      float64    `json:"totalPrice"`
	TotalPriceInTRY float64    `json:"totalPriceInTRY"`
}

// CartItem, sepet satırıdır. ID ürün kimliği değil, satırın oluşturulma zaman damgasıdır (ms).
type CartItem struct {
	ID       int64     `json:"id"`
	Product  Product   `json:"product"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
}

// NewCart, boş bir sepet döndürür
func NewCart() *Cart {
	return &Cart{Items: []CartItem{}}
}

// AddItem, ürün sepette varsa miktarını artırır, yoksa sona yeni satır ekler.
// Var olan satırdaki ürün görüntüsü değiştirilmez. Satır miktarı
// MaxItemQuantity'de sabitlenir.
func (c *Cart) AddItem(product Product, quantity int, now time.Time) {
	quantity = clampQuantity(quantity)

	for i := range c.Items {
		if c.Items[i].Product.ID == product.ID {
			c.Items[i].Quantity = clampQuantity(clampQuantity(c.Items[i].Quantity) + quantity)
			c.Recalculate()
			return
		}
	}

	c.Items = append(c.Items, CartItem{
		ID:       c.nextLineID(now),
		Product:  product,
		Quantity: quantity,
		AddedAt:  now,
	})
	c.Recalculate()
}

// RemoveItem, ürünün satırını kaldırır. Satır yoksa hiçbir şey yapmaz.
func (c *Cart) RemoveItem(productID int) bool {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.Recalculate()
			return true
		}
	}
	return false
}

// UpdateQuantity, satırın miktarını verilen değere ayarlar; 0 veya negatif değer satırı kaldırır.
// MaxItemQuantity üzerindeki değerler sabitlenir.
func (c *Cart) UpdateQuantity(productID int, quantity int) bool {
	if quantity <= 0 {
		return c.RemoveItem(productID)
	}

	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items[i].Quantity = clampQuantity(quantity)
			c.Recalculate()
			return true
		}
	}
	return false
}

// Clear, sepeti boşaltır ve toplamları sıfırlar
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.Recalculate()
}

// Item, ürünün satırını döndürür
func (c *Cart) Item(productID int) (CartItem, bool) {
	for _, item := range c.Items {
		if item.Product.ID == productID {
			return item, true
		}
	}
	return CartItem{}, false
}

// Contains, ürünün sepette olup olmadığını söyler
func (c *Cart) Contains(productID int) bool {
	_, ok := c.Item(productID)
	return ok
}

// Recalculate, tüm toplamları satırlardan yeniden hesaplar. Dışarıdan okunan
// satırların miktarı da izin verilen aralığa çekilir.
func (c *Cart) Recalculate() {
	totalItems := 0
	totalPrice := decimal.Zero
	totalPriceInTRY := decimal.Zero

	for i := range c.Items {
		c.Items[i].Quantity = clampQuantity(c.Items[i].Quantity)
		item := c.Items[i]
		qty := decimal.NewFromInt(int64(item.Quantity))
		totalItems += item.Quantity
		totalPrice = totalPrice.Add(decimal.NewFromFloat(item.Product.Price).Mul(qty))
		totalPriceInTRY = totalPriceInTRY.Add(decimal.NewFromFloat(item.Product.PriceInTRY).Mul(qty))
	}

	c.TotalItems = totalItems
	c.TotalPrice = totalPrice.InexactFloat64()
	c.TotalPriceInTRY = totalPriceInTRY.InexactFloat64()
}

// Clone, sepetin satır listesini paylaşmayan bir kopyasını döndürür
func (c *Cart) Clone() *Cart {
	out := *c
	out.Items = make([]CartItem, len(c.Items))
	copy(out.Items, c.Items)
	return &out
}

// nextLineID, zaman damgasını satır anahtarı olarak kullanır; aynı milisaniyede çakışmayı önler
func (c *Cart) nextLineID(now time.Time) int64 {
	id := now.UnixMilli()
	for _, item := range c.Items {
		if item.ID >= id {
			id = item.ID + 1
		}
	}
	return id
}

func clampQuantity(q int) int {
	switch {
	case q < 1:
		return 1
	case q > MaxItemQuantity:
		return MaxItemQuantity
	}
	return q
}
