package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockflow/stockflow-backend/internal/models"
)

func sampleProducts() []models.Product {
	return []models.Product{
		{ID: "p-1", Name: "Premium Widget A", SKU: "WDG-001", Category: "Widgets", Quantity: 45, MinLevel: 10, Price: 25.00, LastUpdated: "2025-01-02T10:00:00Z"},
		{ID: "p-2", Name: "Süper Gâdget 歯車", SKU: "GDG-X01", Category: "Gadgets", Quantity: 5, MinLevel: 15, Price: 120.50, LastUpdated: "2025-01-03T11:30:00Z"},
	}
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{ID: "t-2", ProductID: "p-2", ProductName: "Süper Gâdget 歯車", Type: models.TransactionTypeOut, Quantity: 3, Date: "2025-01-04T09:00:00Z", Notes: "vente — café ☕"},
		{ID: "t-1", ProductID: "p-1", ProductName: "Premium Widget A", Type: models.TransactionTypeIn, Quantity: 20, Date: "2025-01-03T08:00:00Z", Notes: ""},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	products := sampleProducts()
	transactions := sampleTransactions()

	payload, err := Encode(products, transactions)
	require.NoError(t, err)
	require.NotEmpty(t, payload)

	gotProducts, gotTransactions, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, products, gotProducts)
	assert.Equal(t, transactions, gotTransactions)
}

func TestEncodePayloadIsURLSafe(t *testing.T) {
	payload, err := Encode(sampleProducts(), sampleTransactions())
	require.NoError(t, err)

	assert.False(t, strings.ContainsAny(payload, "+/= "), "payload must be usable in a query string without escaping")
}

func TestEncodeDecodeEmptyCollections(t *testing.T) {
	payload, err := Encode([]models.Product{}, []models.Transaction{})
	require.NoError(t, err)

	products, transactions, err := Decode(payload)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Empty(t, transactions)
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	// Not base64 at all.
	_, _, err := Decode("%%% not base64 %%%")
	assert.Error(t, err)

	// Valid base64 but not compressed data.
	_, _, err = Decode(base64.RawURLEncoding.EncodeToString([]byte("plain text")))
	assert.Error(t, err)

	// Compressed, but not JSON.
	_, _, err = Decode(compressRaw(t, []byte("not json")))
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	_, _, err := Decode(compressRaw(t, []byte(`{"v":2,"p":[],"t":[]}`)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestDecodeRejectsShortTuples(t *testing.T) {
	_, _, err := Decode(compressRaw(t, []byte(`{"v":1,"p":[["id","name"]],"t":[]}`)))
	assert.Error(t, err)

	_, _, err = Decode(compressRaw(t, []byte(`{"v":1,"p":[],"t":[["id"]]}`)))
	assert.Error(t, err)
}

func TestDecodeLegacy(t *testing.T) {
	products := sampleProducts()
	transactions := sampleTransactions()

	legacy := map[string]any{"p": products, "t": transactions}
	raw, err := json.Marshal(legacy)
	require.NoError(t, err)
	payload := base64.StdEncoding.EncodeToString(raw)

	gotProducts, gotTransactions, err := DecodeLegacy(payload)
	require.NoError(t, err)
	assert.Equal(t, products, gotProducts)
	assert.Equal(t, transactions, gotTransactions)
}

func TestDecodeLegacyMissingKeys(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte(`{}`))

	products, transactions, err := DecodeLegacy(payload)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Empty(t, transactions)
}

func TestDecodeLegacyRejectsMalformedPayloads(t *testing.T) {
	_, _, err := DecodeLegacy("not base64 at all!")
	assert.Error(t, err)

	_, _, err = DecodeLegacy(base64.StdEncoding.EncodeToString([]byte("not json")))
	assert.Error(t, err)
}

func compressRaw(t *testing.T, raw []byte) string {
	t.Helper()

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	require.NoError(t, err)
	_, err = w.Write(raw)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return base64.RawURLEncoding.EncodeToString(buf.Bytes())
}
