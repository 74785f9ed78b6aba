package report

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockflow/stockflow-backend/internal/config"
	"github.com/stockflow/stockflow-backend/internal/models"
)

func testProducts() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Widget", Category: "Widgets", Quantity: 2, MinLevel: 5, Price: 2.00},
	}
}

func newTestService(endpoint string) *Service {
	return NewService(config.ReportConfig{
		Endpoint: endpoint,
		APIKey:   "test-key",
		Model:    "test-model",
	})
}

func TestGenerateReturnsModelText(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"**Executive Summary**: all good."}]}}]}`))
	}))
	defer server.Close()

	svc := newTestService(server.URL)
	text, err := svc.Generate(context.Background(), testProducts(), nil)
	require.NoError(t, err)
	assert.Equal(t, "**Executive Summary**: all good.", text)

	// The summary sent out marks products at or below their reorder level.
	assert.Contains(t, gotBody, "LOW STOCK")
	assert.Contains(t, gotBody, "Widget")
}

func TestGenerateFallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestService(server.URL)
	text, err := svc.Generate(context.Background(), testProducts(), nil)
	require.NoError(t, err)
	assert.Equal(t, FallbackText, text)
}

func TestGenerateFallsBackOnUnreachableEndpoint(t *testing.T) {
	svc := newTestService("http://127.0.0.1:1")

	text, err := svc.Generate(context.Background(), testProducts(), nil)
	require.NoError(t, err)
	assert.Equal(t, FallbackText, text)
}

func TestGenerateRefusesConcurrentRequests(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"done"}]}}]}`))
	}))
	defer server.Close()

	svc := newTestService(server.URL)

	firstResult := make(chan string, 1)
	go func() {
		text, _ := svc.Generate(context.Background(), testProducts(), nil)
		firstResult <- text
	}()

	// Wait until the first request holds the in-flight slot.
	require.Eventually(t, func() bool {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		return svc.busy
	}, time.Second, 5*time.Millisecond)

	_, err := svc.Generate(context.Background(), testProducts(), nil)
	assert.ErrorIs(t, err, ErrReportInProgress)

	close(release)
	assert.Equal(t, "done", <-firstResult)

	// The slot is free again after completion.
	server2Text, err := svc.Generate(context.Background(), testProducts(), nil)
	require.NoError(t, err)
	assert.Equal(t, "done", server2Text)
}
