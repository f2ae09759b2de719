package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/internal/config"
)

func embeddingTestServer(t *testing.T, dims int) (*httptest.Server, *[]EmbeddingRequest) {
	t.Helper()
	var requests []EmbeddingRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req EmbeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		var res EmbeddingResponse
		// answer out of order to exercise index-based reassembly
		for i := len(req.Input) - 1; i >= 0; i-- {
			vec := make([]float32, dims)
			vec[0] = float32(i + 1)
			res.Data = append(res.Data, struct {
				Object    string    `json:"object"`
				Embedding []float32 `json:"embedding"`
				Index     int       `json:"index"`
			}{Object: "embedding", Embedding: vec, Index: i})
		}
		_ = json.NewEncoder(w).Encode(res)
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func embeddingTestConfig(apiBase string) *config.EmbeddingConfig {
	return &config.EmbeddingConfig{
		APIKey:     "test-key",
		APIBase:    apiBase,
		Model:      "baai/bge-m3",
		Dimensions: 4,
		ExtraBody:  `{"truncate":"NONE"}`,
		BatchSize:  2,
		Timeout:    5,
		Enabled:    true,
	}
}

func TestEmbeddingClient_Embed(t *testing.T) {
	srv, requests := embeddingTestServer(t, 4)
	c := NewEmbeddingClient(embeddingTestConfig(srv.URL))

	vec, err := c.Embed(context.Background(), "i want to")
	require.NoError(t, err)
	assert.Len(t, vec, 4)
	assert.Equal(t, float32(1), vec[0])

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, []string{"i want to"}, req.Input)
	assert.Equal(t, "baai/bge-m3", req.Model)
	assert.Equal(t, "float", req.EncodingFormat)
	assert.Equal(t, map[string]any{"truncate": "NONE"}, req.ExtraBody)
}

func TestEmbeddingClient_EmbedAllBatchesAndOrders(t *testing.T) {
	srv, requests := embeddingTestServer(t, 4)
	c := NewEmbeddingClient(embeddingTestConfig(srv.URL))

	vecs, err := c.EmbedAll(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	assert.Len(t, *requests, 2, "batch size 2 splits three texts into two requests")

	// index-ordered reassembly within each batch
	assert.Equal(t, float32(1), vecs[0][0])
	assert.Equal(t, float32(2), vecs[1][0])
	assert.Equal(t, float32(1), vecs[2][0])
}

func TestEmbeddingClient_DisabledWithoutKey(t *testing.T) {
	c := NewEmbeddingClient(&config.EmbeddingConfig{Enabled: false, BatchSize: 10, Timeout: 5})

	assert.False(t, c.IsEnabled())
	_, err := c.Embed(context.Background(), "anything")
	assert.Error(t, err)
}

func TestEmbeddingClient_APIErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	c := NewEmbeddingClient(embeddingTestConfig(srv.URL))
	_, err := c.Embed(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
