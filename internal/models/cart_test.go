package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int, price, priceInTRY float64) Product {
	return Product{ID: id, Title: "p", Price: price, PriceInTRY: priceInTRY}
}

func assertTotalsConsistent(t *testing.T, c *Cart) {
	t.Helper()
	items, usd, try := 0, 0.0, 0.0
	for _, item := range c.Items {
		items += item.Quantity
		usd += item.Product.Price * float64(item.Quantity)
		try += item.Product.PriceInTRY * float64(item.Quantity)
	}
	assert.Equal(t, items, c.TotalItems)
	assert.InDelta(t, usd, c.TotalPrice, 1e-6)
	assert.InDelta(t, try, c.TotalPriceInTRY, 1e-6)
}

func TestCart_AddSameProductMergesLine(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewCart()

	c.AddItem(product(1, 24.04, 1000), 2, now)
	c.AddItem(product(1, 24.04, 1000), 1, now.Add(time.Second))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.Equal(t, 3, c.TotalItems)
	assert.InDelta(t, 3000, c.TotalPriceInTRY, 1e-9)
	assert.Equal(t, now, c.Items[0].AddedAt)
}

func TestCart_AddKeepsStoredSnapshot(t *testing.T) {
	now := time.Now()
	c := NewCart()

	c.AddItem(product(1, 10, 415.9), 1, now)
	c.AddItem(product(1, 99, 9999), 1, now)

	require.Len(t, c.Items, 1)
	assert.InDelta(t, 415.9, c.Items[0].Product.PriceInTRY, 1e-9)
	assert.InDelta(t, 831.8, c.TotalPriceInTRY, 1e-9)
}

func TestCart_AddNormalizesQuantity(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, 1, 1), 0, time.Now())
	c.AddItem(product(2, 1, 1), -4, time.Now())

	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.Equal(t, 1, c.Items[1].Quantity)
	assert.Equal(t, 2, c.TotalItems)
}

func TestCart_QuantityIsCapped(t *testing.T) {
	now := time.Now()
	c := NewCart()

	c.AddItem(product(1, 1, 41.59), 1, now)
	c.AddItem(product(1, 1, 41.59), math.MaxInt, now)
	require.Len(t, c.Items, 1)
	assert.Equal(t, MaxItemQuantity, c.Items[0].Quantity)
	assert.Equal(t, MaxItemQuantity, c.TotalItems)
	assert.Positive(t, c.TotalPriceInTRY)
	assertTotalsConsistent(t, c)

	c.AddItem(product(2, 1, 41.59), math.MaxInt, now)
	assert.True(t, c.UpdateQuantity(2, math.MaxInt))
	assert.Equal(t, MaxItemQuantity, c.Items[1].Quantity)
	assert.Equal(t, 2*MaxItemQuantity, c.TotalItems)
	assertTotalsConsistent(t, c)
}

func TestCart_RecalculateClampsStoredQuantities(t *testing.T) {
	c := &Cart{Items: []CartItem{
		{ID: 1, Product: product(1, 1, 41.59), Quantity: math.MaxInt},
		{ID: 2, Product: product(2, 1, 41.59), Quantity: -3},
	}}

	c.Recalculate()

	assert.Equal(t, MaxItemQuantity, c.Items[0].Quantity)
	assert.Equal(t, 1, c.Items[1].Quantity)
	assert.Equal(t, MaxItemQuantity+1, c.TotalItems)
	c.AddItem(product(1, 1, 41.59), 5, time.Now())
	assert.Equal(t, MaxItemQuantity, c.Items[0].Quantity)
}

func TestCart_LineIDsAreUniqueWithinSameMillisecond(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	c := NewCart()
	c.AddItem(product(1, 1, 1), 1, now)
	c.AddItem(product(2, 1, 1), 1, now)
	c.AddItem(product(3, 1, 1), 1, now)

	assert.Equal(t, int64(1_700_000_000_000), c.Items[0].ID)
	assert.Equal(t, int64(1_700_000_000_001), c.Items[1].ID)
	assert.Equal(t, int64(1_700_000_000_002), c.Items[2].ID)
}

func TestCart_UpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantLines int
		wantItems int
	}{
		{"absolute set", 5, 2, 6},
		{"zero removes", 0, 1, 1},
		{"negative removes", -1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCart()
			c.AddItem(product(1, 2, 83.18), 3, time.Now())
			c.AddItem(product(2, 1, 41.59), 1, time.Now())

			c.UpdateQuantity(1, tt.quantity)

			assert.Len(t, c.Items, tt.wantLines)
			assert.Equal(t, tt.wantItems, c.TotalItems)
			assertTotalsConsistent(t, c)
		})
	}
}

func TestCart_UpdateMissingIsNoop(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, 2, 83.18), 3, time.Now())
	before := c.Clone()

	assert.False(t, c.UpdateQuantity(42, 7))
	assert.Equal(t, before, c)
}

func TestCart_RemoveMissingIsNoop(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, 2, 83.18), 3, time.Now())
	before := c.Clone()

	assert.False(t, c.RemoveItem(99))
	assert.Equal(t, before, c)
}

func TestCart_ClearAlwaysZeroes(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, 2, 83.18), 3, time.Now())
	c.AddItem(product(2, 5, 207.95), 2, time.Now())

	c.Clear()

	assert.Equal(t, &Cart{Items: []CartItem{}}, c)

	c.Clear()
	assert.Equal(t, &Cart{Items: []CartItem{}}, c)
}

func TestCart_TotalsNeverDrift(t *testing.T) {
	c := NewCart()
	now := time.Now()
	prices := map[int]float64{1: 109.95, 2: 22.3, 3: 55.99, 4: 15.99, 5: 695}

	ops := []func(){
		func() { c.AddItem(product(1, prices[1], prices[1]*41.59), 2, now) },
		func() { c.AddItem(product(2, prices[2], prices[2]*41.59), 1, now) },
		func() { c.UpdateQuantity(1, 7) },
		func() { c.AddItem(product(3, prices[3], prices[3]*41.59), 4, now) },
		func() { c.RemoveItem(2) },
		func() { c.AddItem(product(1, prices[1], prices[1]*41.59), 3, now) },
		func() { c.UpdateQuantity(3, -1) },
		func() { c.AddItem(product(5, prices[5], prices[5]*41.59), 1, now) },
		func() { c.RemoveItem(404) },
	}

	for _, op := range ops {
		op()
		assertTotalsConsistent(t, c)
	}
	assert.Equal(t, 11, c.TotalItems)
}

func TestCart_ItemAndContains(t *testing.T) {
	c := NewCart()
	c.AddItem(product(7, 1, 41.59), 2, time.Now())

	item, ok := c.Item(7)
	require.True(t, ok)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, c.Contains(7))

	_, ok = c.Item(8)
	assert.False(t, ok)
	assert.False(t, c.Contains(8))
}

func TestCart_CloneDoesNotShareItems(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, 1, 41.59), 1, time.Now())

	clone := c.Clone()
	clone.UpdateQuantity(1, 9)

	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.Equal(t, 9, clone.Items[0].Quantity)
}
