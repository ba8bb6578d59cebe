package database

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"

	"mcommerce/internal/models"
)

// dbData, JSON dosyasındaki tüm verileri temsil eder.
type dbData struct {
	Carts map[string]json.RawMessage `json:"carts"`
}

// JSONDatabase, sepetleri tek bir JSON dosyasında saklar. Her değişiklikte dosya yeniden yazılır.
type JSONDatabase struct {
	mu       sync.RWMutex
	data     dbData
	filePath string
}

// NewDatabase, yeni bir JSONDatabase örneği oluşturur ve verileri yükler.
func NewDatabase(filePath string) (*JSONDatabase, error) {
	db := &JSONDatabase{
		filePath: filePath,
	}
	if err := db.loadData(); err != nil {
		// Bozuk dosya: boş veriyle baştan başla
		if _, ok := err.(*json.SyntaxError); ok {
			log.Printf("JSONDatabase - %s okunamadı, sıfırlanıyor: %v", filePath, err)
			db.data.Carts = map[string]json.RawMessage{}
			if saveErr := db.saveData(); saveErr != nil {
				return nil, saveErr
			}
		} else {
			return nil, err
		}
	}
	return db, nil
}

func (db *JSONDatabase) loadData() error {
	if _, err := os.Stat(db.filePath); os.IsNotExist(err) {
		db.data.Carts = map[string]json.RawMessage{}
		return db.saveData()
	}

	fileData, err := os.ReadFile(db.filePath)
	if err != nil {
		return err
	}
	// Dosya boşsa hata vermemesi için kontrol
	if len(fileData) == 0 {
		db.data.Carts = map[string]json.RawMessage{}
		return nil
	}

	if err := json.Unmarshal(fileData, &db.data); err != nil {
		return err
	}
	if db.data.Carts == nil {
		db.data.Carts = map[string]json.RawMessage{}
	}
	return nil
}

func (db *JSONDatabase) saveData() error {
	data, err := json.MarshalIndent(db.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(db.filePath, data, 0644)
}

// LoadCart, session ID'ye göre sepeti döndürür
func (db *JSONDatabase) LoadCart(_ context.Context, sessionID string) (*models.Cart, error) {
	db.mu.RLock()
	raw, ok := db.data.Carts[sessionID]
	db.mu.RUnlock()

	if !ok {
		return nil, ErrCartNotFound
	}
	return DecodeCart(raw)
}

// SaveCart, sepeti kaydeder ve dosyaya yazar
func (db *JSONDatabase) SaveCart(_ context.Context, sessionID string, cart *models.Cart) error {
	encoded, err := EncodeCart(cart)
	if err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	db.data.Carts[sessionID] = encoded
	return db.saveData()
}

// DeleteCart, oturumun sepet kaydını siler
func (db *JSONDatabase) DeleteCart(_ context.Context, sessionID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.data.Carts[sessionID]; !ok {
		return nil
	}
	delete(db.data.Carts, sessionID)
	return db.saveData()
}
