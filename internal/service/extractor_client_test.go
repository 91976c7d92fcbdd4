package service_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medikeep/config"
	"medikeep/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newExtractorClient(t *testing.T, handler http.HandlerFunc) *service.ExtractorClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	return service.NewExtractorClient(config.ExtractorConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, log)
}

func TestExtractorClient_AnalyzeInventoryDocument_SendsDataURI(t *testing.T) {
	var got struct {
		DocumentDataURI string `json:"documentDataUri"`
		Schema          string `json:"schema"`
	}
	client := newExtractorClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/analyze", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"inventory":[{"name":"Aspirin","boxes":3,"unitsPerBox":10,"medicinesPerUnit":10,"expiryDate":"2027-05-01"}]}`))
	})

	items, err := client.AnalyzeInventoryDocument(context.Background(), "aGVsbG8=", "image/png")
	require.NoError(t, err)
	require.Equal(t, "data:image/png;base64,aGVsbG8=", got.DocumentDataURI)
	require.Equal(t, "inventory", got.Schema)
	require.Len(t, items, 1)
	require.Equal(t, "Aspirin", items[0].Name)
	require.Equal(t, 3, items[0].Boxes)
}

func TestExtractorClient_AnalyzeMedicineDocument_ParsesList(t *testing.T) {
	client := newExtractorClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"medicines":[{"name":"Metformin","quantity":30,"expiryDate":"2027-01-01"},{"name":"Lisinopril","quantity":28,"expiryDate":"2026-12-01"}]}`))
	})

	medicines, err := client.AnalyzeMedicineDocument(context.Background(), "aGVsbG8=", "application/pdf")
	require.NoError(t, err)
	require.Len(t, medicines, 2)
	require.Equal(t, 30, medicines[0].Quantity)
}

func TestExtractorClient_UpstreamErrorIsWrapped(t *testing.T) {
	client := newExtractorClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	})

	_, err := client.AnalyzeInventoryDocument(context.Background(), "aGVsbG8=", "image/png")
	require.ErrorIs(t, err, service.ErrExtractionFailed)
}

func TestExtractorClient_MissingListIsAnError(t *testing.T) {
	client := newExtractorClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.AnalyzeMedicineDocument(context.Background(), "aGVsbG8=", "image/png")
	require.ErrorIs(t, err, service.ErrExtractionFailed)
}
