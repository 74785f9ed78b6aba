// internal/models/transaction.go
package models

// Transaction is one entry of the stock movement log. ProductName is copied
// from the product at creation time and never re-resolved, so the log stays
// meaningful after renames and deletes.
type Transaction struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Type        TransactionType `json:"type"`
	Quantity    int             `json:"quantity"`
	Date        string          `json:"date"`
	Notes       string          `json:"notes,omitempty"`
}
