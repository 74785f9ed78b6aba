// internal/codec/codec.go
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/stockflow/stockflow-backend/internal/models"
)

// FormatVersion tags the snapshot envelope. Decoders reject versions they do
// not know instead of guessing at tuple layouts.
const FormatVersion = 1

// Tuple positions are the wire format. Changing the order of the fields below
// requires a version bump.
const (
	productTupleLen     = 8
	transactionTupleLen = 7
)

type envelope struct {
	V int     `json:"v"`
	P [][]any `json:"p"`
	T [][]any `json:"t"`
}

// Encode serializes both collections into a compact URL-safe payload:
// positional tuples, JSON, DEFLATE, base64 (unpadded URL alphabet).
func Encode(products []models.Product, transactions []models.Transaction) (string, error) {
	env := envelope{
		V: FormatVersion,
		P: make([][]any, 0, len(products)),
		T: make([][]any, 0, len(transactions)),
	}
	for _, p := range products {
		env.P = append(env.P, []any{p.ID, p.Name, p.SKU, p.Category, p.Quantity, p.MinLevel, p.Price, p.LastUpdated})
	}
	for _, t := range transactions {
		env.T = append(env.T, []any{t.ID, t.ProductID, t.ProductName, string(t.Type), t.Quantity, t.Date, t.Notes})
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("failed to create compressor: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return "", fmt.Errorf("failed to compress snapshot: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to flush compressor: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reverses Encode. Any failure means the payload is not a snapshot;
// callers fall through to normal loading.
func Decode(payload string) ([]models.Product, []models.Transaction, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	r := flate.NewReader(bytes.NewReader(compressed))
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decompress payload: %w", err)
	}
	r.Close()

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if env.V != FormatVersion {
		return nil, nil, fmt.Errorf("unsupported snapshot version %d", env.V)
	}

	products := make([]models.Product, 0, len(env.P))
	for _, tup := range env.P {
		if len(tup) != productTupleLen {
			return nil, nil, fmt.Errorf("product tuple has %d fields, want %d", len(tup), productTupleLen)
		}
		products = append(products, models.Product{
			ID:          asString(tup[0]),
			Name:        asString(tup[1]),
			SKU:         asString(tup[2]),
			Category:    asString(tup[3]),
			Quantity:    asInt(tup[4]),
			MinLevel:    asInt(tup[5]),
			Price:       asFloat(tup[6]),
			LastUpdated: asString(tup[7]),
		})
	}

	transactions := make([]models.Transaction, 0, len(env.T))
	for _, tup := range env.T {
		if len(tup) != transactionTupleLen {
			return nil, nil, fmt.Errorf("transaction tuple has %d fields, want %d", len(tup), transactionTupleLen)
		}
		transactions = append(transactions, models.Transaction{
			ID:          asString(tup[0]),
			ProductID:   asString(tup[1]),
			ProductName: asString(tup[2]),
			Type:        models.TransactionType(asString(tup[3])),
			Quantity:    asInt(tup[4]),
			Date:        asString(tup[5]),
			Notes:       asString(tup[6]),
		})
	}

	return products, transactions, nil
}

// DecodeLegacy reads the old share format: standard base64 of a verbose JSON
// object with full field names. Read-only support; nothing encodes this
// anymore.
func DecodeLegacy(payload string) ([]models.Product, []models.Transaction, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode legacy payload: %w", err)
	}

	var legacy struct {
		P []models.Product     `json:"p"`
		T []models.Transaction `json:"t"`
	}
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, nil, fmt.Errorf("failed to parse legacy snapshot: %w", err)
	}

	if legacy.P == nil {
		legacy.P = []models.Product{}
	}
	if legacy.T == nil {
		legacy.T = []models.Transaction{}
	}
	return legacy.P, legacy.T, nil
}

// JSON numbers arrive as float64; nils (legacy null notes) as empty values.
func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	f, _ := v.(float64)
	return int(f)
}

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}
