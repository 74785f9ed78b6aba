// internal/store/store.go
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stockflow/stockflow-backend/internal/models"
	"github.com/stockflow/stockflow-backend/internal/share"
	"github.com/stockflow/stockflow-backend/internal/storage"
)

// Outcome is the explicit result of a store mutation. Callers get a named
// rejection instead of a silently unchanged collection.
type Outcome int

const (
	Applied Outcome = iota
	UnknownProduct
	InsufficientStock
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case UnknownProduct:
		return "unknown_product"
	case InsufficientStock:
		return "insufficient_stock"
	}
	return "unknown"
}

// ProductDraft carries every product field the caller controls. ID and
// LastUpdated are stamped by the store.
type ProductDraft struct {
	Name     string
	SKU      string
	Category string
	Quantity int
	MinLevel int
	Price    float64
}

// Store is the single source of truth for the session's product and
// transaction collections. Products keep insertion order; transactions are
// newest first. Mutations are serialized by the mutex since the HTTP layer
// is concurrent even though a session is logically single-user.
type Store struct {
	mu           sync.RWMutex
	products     []models.Product
	transactions []models.Transaction
	mode         models.StoreMode
	gateway      *storage.Gateway
	share        *share.Service
}

func New(gateway *storage.Gateway, shareService *share.Service) *Store {
	return &Store{
		gateway: gateway,
		share:   shareService,
		mode:    models.StoreModePersistent,
	}
}

// Initialize bootstraps the session once. A snapshot on the launch URL wins
// and puts the store into shared mode: mutations stay in memory and are
// never written through, so a reload without the parameter reproduces the
// previously persisted state.
func (s *Store) Initialize(launchURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap := s.share.DetectIncomingSnapshot(launchURL); snap != nil {
		s.products = snap.Products
		s.transactions = snap.Transactions
		s.mode = models.StoreModeSharedReadOnly
		logrus.WithFields(logrus.Fields{
			"products":     len(s.products),
			"transactions": len(s.transactions),
		}).Info("Session started from shared snapshot, persistence disabled")
		return
	}

	s.products = s.gateway.LoadProducts()
	s.transactions = s.gateway.LoadTransactions()
	s.mode = models.StoreModePersistent
	logrus.WithFields(logrus.Fields{
		"products":     len(s.products),
		"transactions": len(s.transactions),
	}).Info("Session loaded from persisted storage")
}

func (s *Store) Mode() models.StoreMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Products returns a copy of the product collection in insertion order.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Transactions returns a copy of the transaction log, newest first.
func (s *Store) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

func (s *Store) AddProduct(draft ProductDraft) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := models.Product{
		ID:          uuid.New().String(),
		Name:        draft.Name,
		SKU:         draft.SKU,
		Category:    draft.Category,
		Quantity:    draft.Quantity,
		MinLevel:    draft.MinLevel,
		Price:       draft.Price,
		LastUpdated: now(),
	}
	s.products = append(s.products, product)
	s.persistProducts()
	return product
}

// EditProduct replaces the fields of the product matching updated.ID,
// keeping its position in the collection.
func (s *Store) EditProduct(updated models.Product) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == updated.ID {
			updated.LastUpdated = now()
			s.products[i] = updated
			s.persistProducts()
			return Applied
		}
	}
	return UnknownProduct
}

// DeleteProduct removes a product. Past transactions referencing it are left
// untouched; the link is historical, not a live foreign key.
func (s *Store) DeleteProduct(id string) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			s.persistProducts()
			return Applied
		}
	}
	return UnknownProduct
}

// RecordTransaction applies an IN or OUT stock movement. A decrease that
// would drive the quantity negative is rejected before anything changes, and
// no transaction record is created.
func (s *Store) RecordTransaction(productID string, txType models.TransactionType, quantity int, notes string) (models.Transaction, Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(productID)
	if idx < 0 {
		return models.Transaction{}, UnknownProduct
	}
	product := &s.products[idx]

	switch txType {
	case models.TransactionTypeIn:
		product.Quantity += quantity
	default:
		if product.Quantity < quantity {
			return models.Transaction{}, InsufficientStock
		}
		product.Quantity -= quantity
	}
	product.LastUpdated = now()

	tx := models.Transaction{
		ID:          uuid.New().String(),
		ProductID:   productID,
		ProductName: product.Name,
		Type:        txType,
		Quantity:    quantity,
		Date:        now(),
		Notes:       notes,
	}
	s.transactions = append([]models.Transaction{tx}, s.transactions...)

	s.persistProducts()
	s.persistTransactions()
	return tx, Applied
}

// AdjustStock sets a product's quantity directly and logs an ADJUSTMENT
// transaction carrying the absolute delta. A target equal to the current
// quantity changes nothing and logs nothing.
func (s *Store) AdjustStock(productID string, newQuantity int, notes string) (models.Transaction, Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if newQuantity < 0 {
		return models.Transaction{}, InsufficientStock
	}

	idx := s.indexOf(productID)
	if idx < 0 {
		return models.Transaction{}, UnknownProduct
	}
	product := &s.products[idx]

	delta := newQuantity - product.Quantity
	if delta == 0 {
		return models.Transaction{}, Applied
	}
	if delta < 0 {
		delta = -delta
	}

	product.Quantity = newQuantity
	product.LastUpdated = now()

	tx := models.Transaction{
		ID:          uuid.New().String(),
		ProductID:   productID,
		ProductName: product.Name,
		Type:        models.TransactionTypeAdjustment,
		Quantity:    delta,
		Date:        now(),
		Notes:       notes,
	}
	s.transactions = append([]models.Transaction{tx}, s.transactions...)

	s.persistProducts()
	s.persistTransactions()
	return tx, Applied
}

// ShareURL builds a shareable snapshot link from the current collections.
// It never mutates state or mode.
func (s *Store) ShareURL() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.share.BuildShareURL(s.products, s.transactions)
}

// callers hold s.mu
func (s *Store) indexOf(productID string) int {
	for i := range s.products {
		if s.products[i].ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) persistProducts() {
	if s.mode != models.StoreModePersistent {
		return
	}
	s.gateway.SaveProducts(s.products)
}

func (s *Store) persistTransactions() {
	if s.mode != models.StoreModePersistent {
		return
	}
	s.gateway.SaveTransactions(s.transactions)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
