// internal/models/product.go
package models

// Product is an inventory item. Timestamps are RFC 3339 strings because they
// travel through the snapshot wire format and the stored JSON unchanged.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	MinLevel    int     `json:"minLevel"`
	Price       float64 `json:"price"`
	LastUpdated string  `json:"lastUpdated"`
}
