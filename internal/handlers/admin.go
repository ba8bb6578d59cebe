package handlers

import (
	"log"
	"net/http"

	"mcommerce/internal/services"

	"github.com/gin-gonic/gin"
)

// InvalidateCatalog, katalog önbelleğini boşaltır
func (h *Handler) InvalidateCatalog(c *gin.Context) {
	user := c.GetString("admin_user")

	h.catalog.Invalidate()
	h.audit.LogSecurityEvent(services.AuditCatalogInvalidate, "user="+user, c.ClientIP())
	log.Printf("InvalidateCatalog - cache cleared by %s", user)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": h.t(c).Messages.CacheInvalidated})
}

// CatalogStats, önbellek sayaçlarını döndürür
func (h *Handler) CatalogStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Stats())
}
