// internal/report/service.go
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/stockflow/stockflow-backend/internal/config"
	"github.com/stockflow/stockflow-backend/internal/metrics"
	"github.com/stockflow/stockflow-backend/internal/models"
)

// FallbackText is returned whenever the completion call fails, instead of
// propagating the error past this boundary.
const FallbackText = "Unable to generate AI report at this time. Please check your API key and connection."

// ErrReportInProgress signals that a generation request is already
// outstanding. Only one request may be in flight per session.
var ErrReportInProgress = errors.New("a report is already being generated")

const recentTransactionsForReport = 20

// Service generates the inventory analysis via an external text-completion
// call.
type Service struct {
	cfg    config.ReportConfig
	client *http.Client

	mu   sync.Mutex
	busy bool
}

func NewService(cfg config.ReportConfig) *Service {
	return &Service{
		cfg:    cfg,
		client: &http.Client{},
	}
}

type productSummary struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Qty      int     `json:"qty"`
	Value    float64 `json:"value"`
	Status   string  `json:"status"`
}

// Generate produces the report text. A failure of the external call is
// recovered into FallbackText; the only error callers see is
// ErrReportInProgress.
func (s *Service) Generate(ctx context.Context, products []models.Product, transactions []models.Transaction) (string, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", ErrReportInProgress
	}
	s.busy = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	text, err := s.complete(ctx, s.buildPrompt(products, transactions))
	if err != nil {
		logrus.WithError(err).Error("Report generation failed, returning fallback text")
		return FallbackText, nil
	}
	return text, nil
}

func (s *Service) buildPrompt(products []models.Product, transactions []models.Transaction) string {
	summaries := make([]productSummary, 0, len(products))
	for _, p := range products {
		status := "OK"
		if metrics.IsLowStock(p) {
			status = "LOW STOCK"
		}
		summaries = append(summaries, productSummary{
			Name:     p.Name,
			Category: p.Category,
			Qty:      p.Quantity,
			Value:    p.Price * float64(p.Quantity),
			Status:   status,
		})
	}

	productsJSON, _ := json.Marshal(summaries)
	recentJSON, _ := json.Marshal(metrics.Recent(transactions, recentTransactionsForReport))

	return fmt.Sprintf(`Act as a senior supply chain analyst. Analyze this inventory data for a small business.

Current Inventory: %s
Recent Transactions: %s

Provide a concise, actionable report in Markdown format.
1. **Executive Summary**: Overall health of inventory.
2. **Critical Alerts**: Highlight low stock items that need immediate reordering.
3. **Value Analysis**: Which categories hold the most value?
4. **Recommendations**: Suggest 2-3 specific actions to optimize operations (e.g., dead stock to clear, fast movers to stock up on).

Keep the tone professional yet encouraging. Use bolding and lists for readability.`,
		productsJSON, recentJSON)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimSuffix(s.cfg.Endpoint, "/"), s.cfg.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion request returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("completion response contained no text")
	}

	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
