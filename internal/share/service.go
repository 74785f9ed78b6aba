// internal/share/service.go
package share

import (
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/stockflow/stockflow-backend/internal/codec"
	"github.com/stockflow/stockflow-backend/internal/models"
)

// Query parameters recognized on a launch URL.
const (
	SnapshotParam       = "s"
	LegacySnapshotParam = "share"
)

// Snapshot is a decoded point-in-time copy of both collections.
type Snapshot struct {
	Products     []models.Product
	Transactions []models.Transaction
}

// Service bridges the store and the URL used as snapshot transport.
type Service struct {
	baseURL string
}

func NewService(baseURL string) *Service {
	return &Service{baseURL: baseURL}
}

// BuildShareURL encodes both collections into a single query parameter on the
// configured base URL. An existing fragment on the base URL is preserved.
func (s *Service) BuildShareURL(products []models.Product, transactions []models.Transaction) (string, error) {
	payload, err := codec.Encode(products, transactions)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse share base URL: %w", err)
	}

	q := u.Query()
	q.Set(SnapshotParam, payload)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// DetectIncomingSnapshot inspects the URL the session was launched from.
// The current format is tried first, then the legacy one. A malformed payload
// is treated as "no snapshot"; the caller falls through to persisted storage.
func (s *Service) DetectIncomingSnapshot(rawURL string) *Snapshot {
	if rawURL == "" {
		return nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		logrus.WithError(err).Debug("Launch URL is not parseable, assuming no snapshot")
		return nil
	}
	params := u.Query()

	if payload := params.Get(SnapshotParam); payload != "" {
		products, transactions, err := codec.Decode(payload)
		if err == nil {
			return &Snapshot{Products: products, Transactions: transactions}
		}
		logrus.WithError(err).Warn("Ignoring malformed snapshot parameter")
	}

	if payload := params.Get(LegacySnapshotParam); payload != "" {
		products, transactions, err := codec.DecodeLegacy(payload)
		if err == nil {
			return &Snapshot{Products: products, Transactions: transactions}
		}
		logrus.WithError(err).Warn("Ignoring malformed legacy snapshot parameter")
	}

	return nil
}
