package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockflow/stockflow-backend/internal/models"
)

func fixtureProducts() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Widget", Category: "Widgets", Quantity: 10, MinLevel: 5, Price: 2.00},
		{ID: "2", Name: "Gadget", Category: "Gadgets", Quantity: 3, MinLevel: 3, Price: 10.00},
		{ID: "3", Name: "Widget XL", Category: "Widgets", Quantity: 2, MinLevel: 5, Price: 4.00},
	}
}

func TestLowStockBoundaryIsInclusive(t *testing.T) {
	assert.False(t, IsLowStock(models.Product{Quantity: 6, MinLevel: 5}))
	assert.True(t, IsLowStock(models.Product{Quantity: 5, MinLevel: 5}))
	assert.True(t, IsLowStock(models.Product{Quantity: 4, MinLevel: 5}))
	assert.True(t, IsLowStock(models.Product{Quantity: 0, MinLevel: 0}))
}

func TestTotals(t *testing.T) {
	products := fixtureProducts()

	assert.InDelta(t, 10*2.00+3*10.00+2*4.00, TotalValue(products), 1e-9)
	assert.Equal(t, 15, TotalUnits(products))
	assert.Equal(t, 2, LowStockCount(products))

	low := LowStockProducts(products)
	require.Len(t, low, 2)
	assert.Equal(t, "Gadget", low[0].Name)
	assert.Equal(t, "Widget XL", low[1].Name)
}

func TestByCategoryAggregatesInFirstSeenOrder(t *testing.T) {
	breakdown := ByCategory(fixtureProducts())

	require.Len(t, breakdown, 2)
	assert.Equal(t, "Widgets", breakdown[0].Category)
	assert.Equal(t, 12, breakdown[0].Quantity)
	assert.InDelta(t, 28.00, breakdown[0].Value, 1e-9)
	assert.Equal(t, "Gadgets", breakdown[1].Category)
	assert.Equal(t, 3, breakdown[1].Quantity)
}

func TestRecent(t *testing.T) {
	transactions := []models.Transaction{
		{ID: "c"}, {ID: "b"}, {ID: "a"},
	}

	assert.Len(t, Recent(transactions, 2), 2)
	assert.Equal(t, "c", Recent(transactions, 2)[0].ID)
	assert.Len(t, Recent(transactions, 10), 3)
	assert.Empty(t, Recent(transactions, 0))
	assert.Empty(t, Recent(nil, 20))
}

func TestSummarize(t *testing.T) {
	overview := Summarize(fixtureProducts(), []models.Transaction{{ID: "a"}, {ID: "b"}})

	assert.Equal(t, 15, overview.TotalUnits)
	assert.Equal(t, 2, overview.LowStockCount)
	assert.Equal(t, 2, overview.TransactionCount)
	assert.Len(t, overview.Categories, 2)
}

func TestEmptyCollections(t *testing.T) {
	assert.Zero(t, TotalValue(nil))
	assert.Zero(t, TotalUnits(nil))
	assert.Empty(t, ByCategory(nil))
	assert.Zero(t, LowStockCount(nil))
}
