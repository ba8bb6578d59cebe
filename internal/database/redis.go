package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mcommerce/internal/models"

	"github.com/go-redis/redis/v8"
)

// DefaultCartPrefix, Redis'teki sepet anahtarlarının ön ekidir
const DefaultCartPrefix = "mcommerce:cart:"

// RedisCartRepository, sepetleri Redis'te sürümlü JSON olarak saklar
type RedisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// RedisOption, RedisCartRepository ayarlarını değiştirir
type RedisOption func(*RedisCartRepository)

// WithCartTTL, sepet anahtarının ömrünü ayarlar. 0 süresiz demektir.
func WithCartTTL(ttl time.Duration) RedisOption {
	return func(r *RedisCartRepository) {
		r.ttl = ttl
	}
}

// WithKeyPrefix, anahtar ön ekini değiştirir
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *RedisCartRepository) {
		r.prefix = prefix
	}
}

// NewRedisClient, URL'den istemci oluşturur ve bağlantıyı doğrular
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisCartRepository, yeni bir RedisCartRepository örneği oluşturur
func NewRedisCartRepository(client *redis.Client, opts ...RedisOption) *RedisCartRepository {
	r := &RedisCartRepository{
		client: client,
		ttl:    30 * 24 * time.Hour,
		prefix: DefaultCartPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisCartRepository) key(sessionID string) string {
	return r.prefix + sessionID
}

// LoadCart, oturumun sepetini okur
func (r *RedisCartRepository) LoadCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	return DecodeCart(data)
}

// SaveCart, sepeti yazar ve ömrünü yeniler
func (r *RedisCartRepository) SaveCart(ctx context.Context, sessionID string, cart *models.Cart) error {
	data, err := EncodeCart(cart)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cart: %w", err)
	}
	return nil
}

// DeleteCart, oturumun sepetini siler
func (r *RedisCartRepository) DeleteCart(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
