package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"mcommerce/internal/models"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// MaxResponseBytes, ürün kaynağından okunacak en büyük gövde boyutudur
const MaxResponseBytes = 8 << 20

var (
	// ErrUpstreamStatus, ürün kaynağı 2xx dışı bir durum kodu döndürdüğünde kullanılır
	ErrUpstreamStatus = errors.New("upstream returned non-success status")
	// ErrResponseTooLarge, gövde MaxResponseBytes sınırını aştığında döner
	ErrResponseTooLarge = errors.New("upstream response too large")
)

// ProductSourceClient, dış ürün kataloğu API'sini çağırır
type ProductSourceClient struct {
	url        string
	httpClient *http.Client
	maxBody    int64
}

// NewProductSourceClient, verilen adres için izlenen (otelhttp) bir istemci oluşturur
func NewProductSourceClient(url string, timeout time.Duration) *ProductSourceClient {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}

	return &ProductSourceClient{
		url:     url,
		maxBody: MaxResponseBytes,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   timeout,
		},
	}
}

// FetchProducts, kaynağın tüm ürünlerini sırasıyla döndürür
func (c *ProductSourceClient) FetchProducts(ctx context.Context) ([]models.SourceProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call product source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %d: %s", ErrUpstreamStatus, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.maxBody)
	}

	var products []models.SourceProduct
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}
