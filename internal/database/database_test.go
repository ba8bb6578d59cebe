package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mcommerce/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCart() *models.Cart {
	cart := models.NewCart()
	now := time.Date(2025, 8, 2, 12, 0, 0, 0, time.UTC)
	cart.AddItem(models.Product{ID: 1, Slug: "backpack-1", Title: "Backpack", Price: 100, PriceInTRY: 4159}, 2, now)
	cart.AddItem(models.Product{ID: 2, Slug: "ring-2", Title: "Ring", Price: 10, PriceInTRY: 415.9}, 1, now)
	return cart
}

func TestJSONDatabase_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	db, err := NewDatabase(path)
	require.NoError(t, err)

	require.NoError(t, db.SaveCart(ctx, "session-a", sampleCart()))

	loaded, err := db.LoadCart(ctx, "session-a")
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 2)
	assert.Equal(t, 3, loaded.TotalItems)
	assert.InDelta(t, 210.0, loaded.TotalPrice, 0.0001)

	// Yeni örnek dosyadan okumalı
	reopened, err := NewDatabase(path)
	require.NoError(t, err)
	loaded, err = reopened.LoadCart(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.TotalItems)
}

func TestJSONDatabase_MissingCart(t *testing.T) {
	db, err := NewDatabase(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	_, err = db.LoadCart(context.Background(), "nobody")
	assert.True(t, errors.Is(err, ErrCartNotFound))
}

func TestJSONDatabase_DeleteCart(t *testing.T) {
	ctx := context.Background()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	require.NoError(t, db.SaveCart(ctx, "s", sampleCart()))
	require.NoError(t, db.DeleteCart(ctx, "s"))
	require.NoError(t, db.DeleteCart(ctx, "s"))

	_, err = db.LoadCart(ctx, "s")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestJSONDatabase_CorruptFileIsReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	db, err := NewDatabase(path)
	require.NoError(t, err)

	_, err = db.LoadCart(context.Background(), "s")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestJSONDatabase_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	db, err := NewDatabase(path)
	require.NoError(t, err)
	require.NoError(t, db.SaveCart(context.Background(), "s", sampleCart()))
}

func TestDecodeCart_Versions(t *testing.T) {
	t.Run("current version", func(t *testing.T) {
		data, err := EncodeCart(sampleCart())
		require.NoError(t, err)
		assert.Contains(t, string(data), `"version":1`)

		cart, err := DecodeCart(data)
		require.NoError(t, err)
		assert.Equal(t, 3, cart.TotalItems)
	})

	t.Run("legacy blob is migrated and totals recomputed", func(t *testing.T) {
		legacy := `{"items":[{"id":1,"product":{"id":7,"price":5,"priceInTRY":207.95},"quantity":4,"addedAt":"2025-08-02T12:00:00Z"}],"totalItems":99,"totalPrice":1,"totalPriceInTRY":1}`

		cart, err := DecodeCart([]byte(legacy))
		require.NoError(t, err)
		assert.Equal(t, 4, cart.TotalItems)
		assert.InDelta(t, 20.0, cart.TotalPrice, 0.0001)
		assert.InDelta(t, 831.8, cart.TotalPriceInTRY, 0.0001)
	})

	t.Run("future version is rejected", func(t *testing.T) {
		_, err := DecodeCart([]byte(`{"version":99,"items":[]}`))
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := DecodeCart([]byte(`[]`))
		assert.Error(t, err)
	})

	t.Run("null items become empty", func(t *testing.T) {
		cart, err := DecodeCart([]byte(`{"version":1,"items":null}`))
		require.NoError(t, err)
		assert.NotNil(t, cart.Items)
		assert.Empty(t, cart.Items)
	})
}
