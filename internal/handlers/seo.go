package handlers

import (
	"encoding/xml"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mcommerce/internal/i18n"

	"github.com/gin-gonic/gin"
)

// Robots, arama motoru kurallarını döndürür
func (h *Handler) Robots(c *gin.Context) {
	var b strings.Builder
	writeRobotsGroup(&b, "*", []string{
		"/api/", "/admin/", "/_next/", "/cart/", "/checkout/",
		"/login/", "/register/", "/profile/", "/*?*sort=*", "/*?*page=*",
	})
	writeRobotsGroup(&b, "Googlebot", []string{
		"/api/", "/admin/", "/cart/", "/checkout/",
		"/login/", "/register/", "/profile/",
	})
	b.WriteString("Host: " + h.opts.BaseURL + "\n")
	b.WriteString("Sitemap: " + h.opts.BaseURL + "/sitemap.xml\n")

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(b.String()))
}

func writeRobotsGroup(b *strings.Builder, agent string, disallow []string) {
	b.WriteString("User-Agent: " + agent + "\n")
	b.WriteString("Allow: /\n")
	for _, path := range disallow {
		b.WriteString("Disallow: " + path + "\n")
	}
	b.WriteString("\n")
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap, her dil için statik sayfaları, ürünleri ve kategori listelerini içeren site haritasını döndürür
func (h *Handler) Sitemap(c *gin.Context) {
	now := time.Now().UTC().Format(time.RFC3339)
	catalog := h.catalog.FetchCatalog(c.Request.Context(), h.opts.DefaultLocale)

	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, locale := range i18n.Locales {
		prefix := h.opts.BaseURL + "/" + string(locale)

		set.URLs = append(set.URLs,
			sitemapURL{Loc: prefix, LastMod: now, ChangeFreq: "daily", Priority: 1},
			sitemapURL{Loc: prefix + "/products", LastMod: now, ChangeFreq: "hourly", Priority: 0.9},
			sitemapURL{Loc: prefix + "/cart", LastMod: now, ChangeFreq: "monthly", Priority: 0.5},
		)

		seen := make(map[string]bool)
		var categories []string
		for _, p := range catalog {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:        prefix + "/products/" + p.Slug,
				LastMod:    p.UpdatedAt.UTC().Format(time.RFC3339),
				ChangeFreq: "weekly",
				Priority:   0.8,
			})
			if slug := p.CategoryInfo.Slug; !seen[slug] {
				seen[slug] = true
				categories = append(categories, slug)
			}
		}

		for _, slug := range categories {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:        prefix + "/products?category=" + url.QueryEscape(slug),
				LastMod:    now,
				ChangeFreq: "daily",
				Priority:   0.7,
			})
		}
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		log.Printf("Sitemap - XML encode error: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}

// SetLocale, dil tercihini bir yıllık çereze yazar
func (h *Handler) SetLocale(c *gin.Context) {
	var req struct {
		Locale string `json:"locale" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_request", h.t(c).Messages.InvalidRequest)
		return
	}

	locale, err := i18n.ParseLocale(req.Locale)
	if err != nil {
		h.respondError(c, http.StatusBadRequest, "invalid_locale", h.t(c).Messages.InvalidLocale)
		return
	}

	c.SetCookie(localeCookie, string(locale), localeMaxAge, "/", "", h.opts.SecureCookies, false)
	c.JSON(http.StatusOK, gin.H{
		"locale":  locale,
		"message": h.bundle.T(locale).Messages.LocaleChanged,
	})
}
