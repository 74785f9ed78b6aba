// internal/metrics/stats.go

// Package metrics holds the read-only projections the dashboard, reports and
// PDF export consume. Everything here is a pure function of the store's
// collections.
package metrics

import "github.com/stockflow/stockflow-backend/internal/models"

// CategoryBreakdown aggregates one category's stock and value. Order follows
// first appearance in the product collection.
type CategoryBreakdown struct {
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Value    float64 `json:"value"`
}

// Overview bundles the dashboard tile numbers.
type Overview struct {
	TotalValue       float64             `json:"totalValue"`
	TotalUnits       int                 `json:"totalUnits"`
	LowStockCount    int                 `json:"lowStockCount"`
	TransactionCount int                 `json:"transactionCount"`
	Categories       []CategoryBreakdown `json:"categories"`
}

// IsLowStock reports whether a product is at or below its reorder threshold.
// The boundary is inclusive.
func IsLowStock(p models.Product) bool {
	return p.Quantity <= p.MinLevel
}

func TotalValue(products []models.Product) float64 {
	var sum float64
	for _, p := range products {
		sum += p.Price * float64(p.Quantity)
	}
	return sum
}

func TotalUnits(products []models.Product) int {
	var sum int
	for _, p := range products {
		sum += p.Quantity
	}
	return sum
}

func LowStockProducts(products []models.Product) []models.Product {
	low := make([]models.Product, 0)
	for _, p := range products {
		if IsLowStock(p) {
			low = append(low, p)
		}
	}
	return low
}

func LowStockCount(products []models.Product) int {
	return len(LowStockProducts(products))
}

func ByCategory(products []models.Product) []CategoryBreakdown {
	index := make(map[string]int)
	breakdown := make([]CategoryBreakdown, 0)
	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = len(breakdown)
			index[p.Category] = i
			breakdown = append(breakdown, CategoryBreakdown{Category: p.Category})
		}
		breakdown[i].Quantity += p.Quantity
		breakdown[i].Value += p.Price * float64(p.Quantity)
	}
	return breakdown
}

// Recent returns up to n transactions from the head of the log (the log is
// already newest first).
func Recent(transactions []models.Transaction, n int) []models.Transaction {
	if n > len(transactions) {
		n = len(transactions)
	}
	out := make([]models.Transaction, n)
	copy(out, transactions[:n])
	return out
}

func Summarize(products []models.Product, transactions []models.Transaction) Overview {
	return Overview{
		TotalValue:       TotalValue(products),
		TotalUnits:       TotalUnits(products),
		LowStockCount:    LowStockCount(products),
		TransactionCount: len(transactions),
		Categories:       ByCategory(products),
	}
}
