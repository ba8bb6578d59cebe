package handlers

import (
	"log"
	"net/http"

	"mcommerce/internal/i18n"

	"github.com/gin-gonic/gin"
)

// Quantity üst sınırı models.MaxItemQuantity ile aynıdır
type cartItemRequest struct {
	ProductID int `json:"product_id" binding:"required,min=1"`
	Quantity  int `json:"quantity" binding:"max=999"`
}

type cartRemoveRequest struct {
	ProductID int `json:"product_id" binding:"required,min=1"`
}

// GetCart, oturumun sepetini ve dile göre biçimlenmiş toplamı döndürür
func (h *Handler) GetCart(c *gin.Context) {
	locale := h.locale(c)
	sessionID := h.sessionID(c)

	cart := h.cartService.GetCart(c.Request.Context(), sessionID)
	log.Printf("GetCart - Cart has %d items, total: %.2f", len(cart.Items), cart.TotalPriceInTRY)

	c.JSON(http.StatusOK, gin.H{
		"cart":           cart,
		"formattedTotal": i18n.FormatPrice(cart.TotalPrice, cart.TotalPriceInTRY, locale),
	})
}

// GetCartCount, sepetteki toplam ürün adedini döndürür
func (h *Handler) GetCartCount(c *gin.Context) {
	sessionID, _ := c.Cookie(sessionCookie)
	if sessionID == "" {
		c.JSON(http.StatusOK, gin.H{"count": 0})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": h.cartService.GetCartCount(c.Request.Context(), sessionID)})
}

// GetCartItem, ürünün sepette olup olmadığını ve satırını döndürür
func (h *Handler) GetCartItem(c *gin.Context) {
	productID, ok := parseIntParam(c, "productId")
	if !ok {
		h.respondError(c, http.StatusBadRequest, "invalid_request", h.t(c).Messages.InvalidRequest)
		return
	}

	sessionID, _ := c.Cookie(sessionCookie)
	if sessionID == "" {
		c.JSON(http.StatusOK, gin.H{"inCart": false, "item": nil})
		return
	}

	item, found := h.cartService.GetItem(c.Request.Context(), sessionID, productID)
	if !found {
		c.JSON(http.StatusOK, gin.H{"inCart": false, "item": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"inCart": true, "item": item})
}

// AddToCart, katalogdaki ürünü sepete ekler
func (h *Handler) AddToCart(c *gin.Context) {
	locale := h.locale(c)
	t := h.bundle.T(locale)

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("AddToCart - JSON bind error: %v", err)
		h.respondError(c, http.StatusBadRequest, "invalid_request", t.Messages.InvalidRequest)
		return
	}

	product := h.findProduct(c, locale, req.ProductID)
	if product == nil {
		log.Printf("AddToCart - Product not found: %d", req.ProductID)
		h.respondError(c, http.StatusNotFound, "product_not_found", t.Messages.ProductNotFound)
		return
	}

	sessionID := h.sessionID(c)
	cart := h.cartService.AddItem(c.Request.Context(), sessionID, *product, req.Quantity)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": t.Messages.AddedToCart, "cart": cart})
}

// UpdateCartItem, satırın miktarını mutlak değere ayarlar
func (h *Handler) UpdateCartItem(c *gin.Context) {
	t := h.t(c)

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("UpdateCartItem - JSON bind error: %v", err)
		h.respondError(c, http.StatusBadRequest, "invalid_request", t.Messages.InvalidRequest)
		return
	}

	sessionID := h.sessionID(c)
	cart := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, req.ProductID, req.Quantity)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": t.Messages.CartUpdated, "cart": cart})
}

// RemoveFromCart, ürünü sepetten çıkarır
func (h *Handler) RemoveFromCart(c *gin.Context) {
	t := h.t(c)

	var req cartRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", t.Messages.InvalidRequest)
		return
	}

	sessionID := h.sessionID(c)
	cart := h.cartService.RemoveItem(c.Request.Context(), sessionID, req.ProductID)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": t.Messages.RemovedFromCart, "cart": cart})
}

// ClearCart, sepeti boşaltır
func (h *Handler) ClearCart(c *gin.Context) {
	sessionID := h.sessionID(c)
	cart := h.cartService.ClearCart(c.Request.Context(), sessionID)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": h.t(c).Messages.CartCleared, "cart": cart})
}
