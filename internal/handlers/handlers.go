package handlers

import (
	"log"
	"net/http"
	"strconv"

	"mcommerce/internal/i18n"
	"mcommerce/internal/models"
	"mcommerce/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie    = "user_session"
	sessionMaxAge    = 3600 * 24 * 30
	localeCookie     = "locale"
	localeMaxAge     = 3600 * 24 * 365
	localeContextKey = "locale"
)

// Options, handler'ların çalışma ayarlarıdır
type Options struct {
	BaseURL           string
	DefaultLocale     i18n.Locale
	AdminUsername     string
	AdminPasswordHash string
	SecureCookies     bool
}

// Handler, HTTP isteklerini yönetir.
type Handler struct {
	catalog     *services.CatalogService
	cartService *services.CartService
	bundle      *i18n.Bundle
	audit       *services.AuditLogger
	opts        Options
}

// NewHandler, yeni bir Handler örneği oluşturur.
func NewHandler(catalog *services.CatalogService, carts *services.CartService, bundle *i18n.Bundle, audit *services.AuditLogger, opts Options) *Handler {
	if !i18n.IsValid(opts.DefaultLocale) {
		opts.DefaultLocale = i18n.DefaultLocale
	}
	return &Handler{
		catalog:     catalog,
		cartService: carts,
		bundle:      bundle,
		audit:       audit,
		opts:        opts,
	}
}

// RegisterRoutes, tüm rotaları engine'e bağlar
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(h.LocaleMiddleware())
	r.NoRoute(h.NotFound)

	// Dilden bağımsız rotalar
	r.GET("/healthz", h.Health)
	r.GET("/robots.txt", h.Robots)
	r.GET("/sitemap.xml", h.Sitemap)
	r.POST("/locale", h.SetLocale)

	if h.opts.AdminPasswordHash != "" {
		admin := r.Group("/admin")
		admin.Use(h.AdminAuthMiddleware())
		{
			admin.POST("/catalog/invalidate", h.InvalidateCatalog)
			admin.GET("/catalog/stats", h.CatalogStats)
		}
	} else {
		log.Printf("Handler.RegisterRoutes - ADMIN_PASSWORD_HASH not set, admin routes disabled")
	}

	localized := r.Group("/:locale")
	{
		localized.GET("", h.Home)
		localized.GET("/products", h.ListProducts)
		localized.GET("/products/:slug", h.ProductDetail)
		localized.GET("/categories", h.ListCategories)

		localized.GET("/cart", h.GetCart)
		localized.GET("/cart/count", h.GetCartCount)
		localized.GET("/cart/items/:productId", h.GetCartItem)
		localized.POST("/cart/add", h.AddToCart)
		localized.POST("/cart/update", h.UpdateCartItem)
		localized.POST("/cart/remove", h.RemoveFromCart)
		localized.POST("/cart/clear", h.ClearCart)
	}
}

// Health, servis durumunu döndürür
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// NotFound, eşleşmeyen rotalar için yerelleştirilmiş 404 döndürür
func (h *Handler) NotFound(c *gin.Context) {
	h.respondError(c, http.StatusNotFound, "not_found", h.t(c).Messages.PageNotFound)
}

// locale, middleware'in belirlediği dili döndürür
func (h *Handler) locale(c *gin.Context) i18n.Locale {
	if v, ok := c.Get(localeContextKey); ok {
		if l, ok := v.(i18n.Locale); ok {
			return l
		}
	}
	return h.opts.DefaultLocale
}

func (h *Handler) t(c *gin.Context) *i18n.Translations {
	return h.bundle.T(h.locale(c))
}

// sessionID, sepet oturumunu çerezden okur; yoksa yeni oturum açar
func (h *Handler) sessionID(c *gin.Context) string {
	sessionID, _ := c.Cookie(sessionCookie)
	if sessionID == "" {
		sessionID = generateSessionID()
		c.SetCookie(sessionCookie, sessionID, sessionMaxAge, "/", "", h.opts.SecureCookies, true)
		log.Printf("Handler.sessionID - Created new session ID: %s", sessionID)
	}
	return sessionID
}

func (h *Handler) respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error:   code,
		Message: message,
	})
}

func generateSessionID() string {
	return uuid.New().String()
}

// parseIntParam, yol parametresini pozitif tam sayıya çevirir
func parseIntParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}
