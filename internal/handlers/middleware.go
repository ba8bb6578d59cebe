package handlers

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"

	"mcommerce/internal/i18n"
	"mcommerce/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// localeExempt, dil önekine yönlendirilmeyen yollardır
func localeExempt(method, path string) bool {
	switch {
	case path == "/healthz", path == "/locale" && method == http.MethodPost:
		return true
	case path == "/robots.txt", path == "/sitemap.xml", path == "/favicon.ico":
		return true
	case strings.HasPrefix(path, "/admin/"), strings.HasPrefix(path, "/api/"), strings.HasPrefix(path, "/static/"):
		return true
	}
	return false
}

// LocaleMiddleware, yolun ilk parçasından dili belirler. Önek yoksa ya da
// desteklenmiyorsa istek çerez > Accept-Language > varsayılan sırasıyla seçilen
// dile 307 ile yönlendirilir; sorgu dizesi korunur.
func (h *Handler) LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if localeExempt(c.Request.Method, path) {
			cookie, _ := c.Cookie(localeCookie)
			c.Set(localeContextKey, i18n.Negotiate(cookie, c.GetHeader("Accept-Language"), h.opts.DefaultLocale))
			c.Next()
			return
		}

		segment := strings.TrimPrefix(path, "/")
		if i := strings.IndexByte(segment, '/'); i >= 0 {
			segment = segment[:i]
		}
		if locale := i18n.Locale(segment); i18n.IsValid(locale) {
			c.Set(localeContextKey, locale)
			c.Next()
			return
		}

		cookie, _ := c.Cookie(localeCookie)
		locale := i18n.Negotiate(cookie, c.GetHeader("Accept-Language"), h.opts.DefaultLocale)

		target := "/" + string(locale)
		if path != "/" {
			target += path
		}
		if c.Request.URL.RawQuery != "" {
			target += "?" + c.Request.URL.RawQuery
		}

		c.Redirect(http.StatusTemporaryRedirect, target)
		c.Abort()
	}
}

// AdminAuthMiddleware, yönetici rotalarını bcrypt ile doğrulanan basic auth ile korur
func (h *Handler) AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || !h.checkAdmin(username, password) {
			log.Printf("AdminAuthMiddleware - Unauthorized attempt from %s", c.ClientIP())
			h.audit.LogSecurityEvent(services.AuditAdminLoginFailed, "user="+username+" path="+c.Request.URL.Path, c.ClientIP())

			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			h.respondError(c, http.StatusUnauthorized, "unauthorized", h.t(c).Messages.Unauthorized)
			return
		}

		h.audit.LogSecurityEvent(services.AuditAdminLogin, "user="+username+" path="+c.Request.URL.Path, c.ClientIP())
		c.Set("admin_user", username)
		c.Next()
	}
}

func (h *Handler) checkAdmin(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(h.opts.AdminUsername)) == 1
	// Kullanıcı adı yanlış olsa da hash karşılaştırması yapılır
	passOK := CheckPasswordHash(password, h.opts.AdminPasswordHash)
	return userOK && passOK
}

// CheckPasswordHash helper function
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
