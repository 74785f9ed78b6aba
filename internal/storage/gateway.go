// internal/storage/gateway.go
package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockflow/stockflow-backend/internal/models"
)

const (
	productsKey     = "stockflow_products"
	transactionsKey = "stockflow_transactions"
)

// KVEntry is one durable key-value row. The gateway stores each collection as
// a plain JSON array of full records under its own key; the compact tuple
// form is used only for share links.
type KVEntry struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"not null"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// SeedProducts returns the sample catalog a fresh installation starts with.
func SeedProducts() []models.Product {
	now := time.Now().UTC().Format(time.RFC3339)
	return []models.Product{
		{ID: "1", Name: "Premium Widget A", SKU: "WDG-001", Category: "Widgets", Quantity: 45, MinLevel: 10, Price: 25.00, LastUpdated: now},
		{ID: "2", Name: "Super Gadget X", SKU: "GDG-X01", Category: "Gadgets", Quantity: 5, MinLevel: 15, Price: 120.50, LastUpdated: now},
		{ID: "3", Name: "Basic Tool Set", SKU: "TLS-009", Category: "Tools", Quantity: 120, MinLevel: 20, Price: 45.99, LastUpdated: now},
		{ID: "4", Name: "Office Chair", SKU: "FUR-C02", Category: "Furniture", Quantity: 8, MinLevel: 5, Price: 250.00, LastUpdated: now},
	}
}

// Gateway persists the canonical collections. Losing a write is recoverable
// (the user can retry the mutation), so write failures are logged and the
// session continues in memory; read failures fall back to the seed data.
type Gateway struct {
	db *gorm.DB
}

func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

func (g *Gateway) LoadProducts() []models.Product {
	var entry KVEntry
	if err := g.db.First(&entry, "key = ?", productsKey).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).Warn("Failed to read stored products, using seed data")
		}
		return SeedProducts()
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(entry.Value), &products); err != nil {
		logrus.WithError(err).Warn("Stored products are corrupt, using seed data")
		return SeedProducts()
	}
	return products
}

func (g *Gateway) LoadTransactions() []models.Transaction {
	var entry KVEntry
	if err := g.db.First(&entry, "key = ?", transactionsKey).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).Warn("Failed to read stored transactions, starting with an empty log")
		}
		return []models.Transaction{}
	}

	var transactions []models.Transaction
	if err := json.Unmarshal([]byte(entry.Value), &transactions); err != nil {
		logrus.WithError(err).Warn("Stored transactions are corrupt, starting with an empty log")
		return []models.Transaction{}
	}
	return transactions
}

func (g *Gateway) SaveProducts(products []models.Product) {
	g.put(productsKey, products)
}

func (g *Gateway) SaveTransactions(transactions []models.Transaction) {
	g.put(transactionsKey, transactions)
}

func (g *Gateway) put(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to serialize collection")
		return
	}

	err = g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&KVEntry{Key: key, Value: string(raw)}).Error
	if err != nil {
		logrus.WithError(err).WithField("key", key).Error("Write-through failed, continuing in memory")
	}
}
