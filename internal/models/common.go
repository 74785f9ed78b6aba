// internal/models/common.go
package models

// Enums
type TransactionType string

const (
	TransactionTypeIn         TransactionType = "IN"
	TransactionTypeOut        TransactionType = "OUT"
	TransactionTypeAdjustment TransactionType = "ADJUSTMENT"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIn, TransactionTypeOut, TransactionTypeAdjustment:
		return true
	}
	return false
}

type StoreMode string

const (
	StoreModePersistent     StoreMode = "persistent"
	StoreModeSharedReadOnly StoreMode = "shared_read_only"
)
