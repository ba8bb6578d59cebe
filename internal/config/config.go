package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm çalışma zamanı ayarlarını taşır
type Config struct {
	Port     string
	LogLevel string

	// Katalog
	CatalogSourceURL      string
	UpstreamTimeout       time.Duration
	CatalogCacheTTL       time.Duration
	CatalogCachePerLocale bool
	MerchMode             string
	USDToTRY              float64
	DefaultLocale         string

	// Sepet
	CartStore  string
	CartDBPath string
	RedisURL   string
	CartTTL    time.Duration

	// Olaylar
	RabbitMQURL     string
	RabbitMQQueue   string
	ChannelPoolSize int

	BaseURL           string
	AdminUsername     string
	AdminPasswordHash string
	AuditLogPath      string
	Tracing           string
	TLSSelfSigned     bool
	HTTPSPort         string
	TrustedProxies    []string
}

// Load, .env dosyasını (varsa) ve ortam değişkenlerini okuyarak Config oluşturur
func Load() (*Config, error) {
	// .env yoksa sorun değil
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8082"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CatalogSourceURL:  getEnv("CATALOG_SOURCE_URL", "https://fakestoreapi.com/products"),
		MerchMode:         strings.ToLower(getEnv("MERCH_MODE", "random")),
		DefaultLocale:     strings.ToLower(getEnv("DEFAULT_LOCALE", "en")),
		CartStore:         strings.ToLower(getEnv("CART_STORE", "file")),
		CartDBPath:        getEnv("CART_DB_PATH", "./data.json"),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RabbitMQURL:       getEnv("RABBITMQ_URL", ""),
		RabbitMQQueue:     getEnv("RABBITMQ_QUEUE", "cart_events"),
		BaseURL:           strings.TrimRight(getEnv("BASE_URL", "https://mcommerce-six.vercel.app"), "/"),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AuditLogPath:      getEnv("AUDIT_LOG_PATH", "security.log"),
		Tracing:           strings.ToLower(getEnv("TRACING", "none")),
		HTTPSPort:         getEnv("HTTPS_PORT", "8443"),
		TrustedProxies:    splitList(getEnv("TRUSTED_PROXIES", "127.0.0.1,::1")),
	}

	var err error
	if cfg.UpstreamTimeout, err = getEnvAsDuration("UPSTREAM_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CatalogCacheTTL, err = getEnvAsDuration("CATALOG_CACHE_TTL", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.CartTTL, err = getEnvAsDuration("CART_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CatalogCachePerLocale, err = getEnvAsBool("CATALOG_CACHE_PER_LOCALE", false); err != nil {
		return nil, err
	}
	if cfg.TLSSelfSigned, err = getEnvAsBool("TLS_SELF_SIGNED", false); err != nil {
		return nil, err
	}
	if cfg.ChannelPoolSize, err = getEnvAsInt("CHANNEL_POOL_SIZE", 4); err != nil {
		return nil, err
	}
	if cfg.USDToTRY, err = getEnvAsFloat("USD_TO_TRY", 41.59); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.MerchMode {
	case "random", "seeded":
	default:
		return fmt.Errorf("MERCH_MODE geçersiz: %q (random|seeded)", c.MerchMode)
	}
	switch c.CartStore {
	case "file", "redis":
	default:
		return fmt.Errorf("CART_STORE geçersiz: %q (file|redis)", c.CartStore)
	}
	switch c.Tracing {
	case "none", "stdout":
	default:
		return fmt.Errorf("TRACING geçersiz: %q (none|stdout)", c.Tracing)
	}
	if c.USDToTRY <= 0 {
		return fmt.Errorf("USD_TO_TRY pozitif olmalı: %v", c.USDToTRY)
	}
	if c.CatalogCacheTTL <= 0 {
		return fmt.Errorf("CATALOG_CACHE_TTL pozitif olmalı: %v", c.CatalogCacheTTL)
	}
	if c.ChannelPoolSize < 1 {
		return fmt.Errorf("CHANNEL_POOL_SIZE en az 1 olmalı: %d", c.ChannelPoolSize)
	}
	return nil
}

// AdminEnabled, admin rotalarının açık olup olmadığını söyler
func (c *Config) AdminEnabled() bool {
	return c.AdminPasswordHash != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s sayı olmalı: %w", key, err)
	}
	return value, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("%s ondalık sayı olmalı: %w", key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("%s true/false olmalı: %w", key, err)
	}
	return value, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s süre olmalı (ör. 60s): %w", key, err)
	}
	return value, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
