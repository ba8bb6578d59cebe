package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mcommerce/internal/clients"
	"mcommerce/internal/config"
	"mcommerce/internal/database"
	"mcommerce/internal/events"
	"mcommerce/internal/handlers"
	"mcommerce/internal/i18n"
	"mcommerce/internal/services"
	"mcommerce/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "mcommerce"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ayarlar okunamadı: %v", err)
	}

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.Tracing)
	if err != nil {
		log.Fatalf("Telemetri başlatılamadı: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Printf("Telemetri kapatılamadı: %v", err)
		}
	}()

	bundle, err := i18n.Load()
	if err != nil {
		log.Fatalf("Çeviriler yüklenemedi: %v", err)
	}

	// Katalog
	source := clients.NewProductSourceClient(cfg.CatalogSourceURL, cfg.UpstreamTimeout)
	catalogOpts := []services.CatalogOption{
		services.WithTTL(cfg.CatalogCacheTTL),
		services.WithPerLocaleCache(cfg.CatalogCachePerLocale),
		services.WithUSDToTRY(cfg.USDToTRY),
	}
	if cfg.MerchMode == "seeded" {
		catalogOpts = append(catalogOpts, services.WithMerchandiser(services.SeededMerchandiser{}))
	}
	catalog := services.NewCatalogService(source, bundle, catalogOpts...)

	// Sepet
	repo, closeRepo, err := newCartRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("Sepet deposu başlatılamadı: %v", err)
	}
	defer closeRepo()

	publisher, closePublisher := newPublisher(cfg)
	defer closePublisher()

	carts := services.NewCartService(repo, services.WithPublisher(publisher))

	audit, err := services.NewAuditLogger(cfg.AuditLogPath)
	if err != nil {
		log.Printf("Güvenlik logu devre dışı: %v", err)
	}
	defer audit.Close()

	h := handlers.NewHandler(catalog, carts, bundle, audit, handlers.Options{
		BaseURL:           cfg.BaseURL,
		DefaultLocale:     i18n.Locale(cfg.DefaultLocale),
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: cfg.AdminPasswordHash,
		SecureCookies:     cfg.TLSSelfSigned,
	})

	// Engine'i manuel olarak oluştur (middleware'leri kontrol etmek için)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Fatalf("Geçersiz TRUSTED_PROXIES: %v", err)
	}

	h.RegisterRoutes(r)
	handler := otelhttp.NewHandler(r, serviceName)

	servers := []*http.Server{{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}}

	if cfg.TLSSelfSigned {
		cert, err := generateSelfSignedCert(nil)
		if err != nil {
			log.Fatalf("Self-signed sertifika oluşturulamadı: %v", err)
		}
		servers = append(servers, &http.Server{
			Addr:              ":" + cfg.HTTPSPort,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			TLSConfig: &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			},
		})
	}

	for _, srv := range servers {
		go func(srv *http.Server) {
			var err error
			if srv.TLSConfig != nil {
				log.Printf("HTTPS Server başlatılıyor: https://localhost%s", srv.Addr)
				err = srv.ListenAndServeTLS("", "")
			} else {
				log.Printf("HTTP Server başlatılıyor: http://localhost%s", srv.Addr)
				err = srv.ListenAndServe()
			}
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("Server başlatılamadı: %v", err)
			}
		}(srv)
	}

	<-ctx.Done()
	log.Printf("Kapatılıyor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server kapatılamadı: %v", err)
		}
	}
}

// newCartRepository, CART_STORE ayarına göre dosya ya da Redis deposu kurar
func newCartRepository(ctx context.Context, cfg *config.Config) (database.CartRepository, func(), error) {
	switch cfg.CartStore {
	case "redis":
		client, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Sepetler Redis'te tutuluyor (%s)", cfg.RedisURL)
		repo := database.NewRedisCartRepository(client, database.WithCartTTL(cfg.CartTTL))
		return repo, func() { client.Close() }, nil
	default:
		db, err := database.NewDatabase(cfg.CartDBPath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Sepetler dosyada tutuluyor (%s)", cfg.CartDBPath)
		return db, func() {}, nil
	}
}

// newPublisher, RABBITMQ_URL verilmişse RabbitMQ yayıncısını, yoksa no-op yayıncıyı döndürür.
// Bağlantı kurulamazsa sunucu yine başlar ve olaylar yayınlanmaz.
func newPublisher(cfg *config.Config) (events.Publisher, func()) {
	if cfg.RabbitMQURL == "" {
		return events.NoopPublisher{}, func() {}
	}

	pool, err := events.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize)
	if err != nil {
		log.Printf("RabbitMQ kullanılamıyor, sepet olayları yayınlanmayacak: %v", err)
		return events.NoopPublisher{}, func() {}
	}
	return events.NewRabbitPublisher(pool, cfg.RabbitMQQueue), pool.Close
}
