package services

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Güvenlik olay tipleri
const (
	AuditAdminLogin        = "ADMIN_LOGIN"
	AuditAdminLoginFailed  = "ADMIN_LOGIN_FAILED"
	AuditCatalogInvalidate = "CATALOG_INVALIDATE"
)

// AuditLogger, yönetici işlemlerini ve başarısız giriş denemelerini satır satır yazar
type AuditLogger struct {
	mu  sync.Mutex
	w   io.Writer
	c   io.Closer
	now func() time.Time
}

// NewAuditLogger, dosyaya ekleme kipinde yazan bir logger oluşturur
func NewAuditLogger(path string) (*AuditLogger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("güvenlik log dosyası oluşturulamadı: %w", err)
	}
	return &AuditLogger{w: file, c: file, now: time.Now}, nil
}

// NewAuditLoggerTo, verilen writer'a yazan bir logger oluşturur
func NewAuditLoggerTo(w io.Writer, now func() time.Time) *AuditLogger {
	if now == nil {
		now = time.Now
	}
	return &AuditLogger{w: w, now: now}
}

// LogSecurityEvent, güvenlik olayını loglar
func (al *AuditLogger) LogSecurityEvent(eventType, details, ipAddress string) {
	if al == nil || al.w == nil {
		return
	}

	timestamp := al.now().Format("2006-01-02 15:04:05")
	logEntry := fmt.Sprintf("[%s] %s - %s - IP: %s\n", timestamp, eventType, details, ipAddress)

	al.mu.Lock()
	defer al.mu.Unlock()
	if _, err := io.WriteString(al.w, logEntry); err != nil {
		log.Printf("Güvenlik log yazma hatası: %v", err)
	}
}

// Close, log dosyasını kapatır
func (al *AuditLogger) Close() error {
	if al == nil || al.c == nil {
		return nil
	}
	return al.c.Close()
}
