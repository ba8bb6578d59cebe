package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBody = `[
  {"id":1,"title":"Fjallraven - Foldsack No. 1 Backpack, Fits 15 Laptops","price":109.95,
   "description":"Your perfect pack","category":"men's clothing","image":"https://img/1.jpg",
   "rating":{"rate":3.9,"count":120}},
  {"id":5,"title":"John Hardy Women's Legends Naga Bracelet","price":695,
   "description":"From our Legends Collection","category":"jewelery","image":"https://img/5.jpg",
   "rating":{"rate":4.6,"count":400}}
]`

func TestFetchProducts_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	c := NewProductSourceClient(srv.URL, 2*time.Second)
	products, err := c.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, "men's clothing", products[0].Category)
	assert.InDelta(t, 109.95, products[0].Price, 1e-9)
	assert.InDelta(t, 3.9, products[0].Rating.Rate, 1e-9)
	assert.Equal(t, 400, products[1].Rating.Count)
}

func TestFetchProducts_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewProductSourceClient(srv.URL, 2*time.Second)
	_, err := c.FetchProducts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamStatus)
	assert.Contains(t, err.Error(), "503")
}

func TestFetchProducts_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	c := NewProductSourceClient(srv.URL, 2*time.Second)
	_, err := c.FetchProducts(context.Background())
	assert.Error(t, err)
}

func TestFetchProducts_BodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	c := NewProductSourceClient(srv.URL, 2*time.Second)
	c.maxBody = 64
	_, err := c.FetchProducts(context.Background())
	assert.ErrorIs(t, err, ErrResponseTooLarge)

	c.maxBody = int64(len(sampleBody))
	products, err := c.FetchProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestFetchProducts_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewProductSourceClient(url, time.Second)
	_, err := c.FetchProducts(context.Background())
	assert.Error(t, err)
}
