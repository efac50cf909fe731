package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmbeddingURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		expected string
	}{
		{
			name:     "full path already present",
			baseURL:  "https://api.example.com/v1/embeddings",
			expected: "https://api.example.com/v1/embeddings",
		},
		{
			name:     "ends with /v1",
			baseURL:  "https://api.example.com/v1",
			expected: "https://api.example.com/v1/embeddings",
		},
		{
			name:     "ends with /v1/",
			baseURL:  "https://api.example.com/v1/",
			expected: "https://api.example.com/v1/embeddings",
		},
		{
			name:     "bare host",
			baseURL:  "https://api.example.com",
			expected: "https://api.example.com/v1/embeddings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildEmbeddingURL(tt.baseURL))
		})
	}
}

func TestEmbedTexts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)

		resp := map[string]any{
			"data": []map[string]any{
				{"embedding": []float32{0.1, 0.2, 0.3}, "index": 0},
				{"embedding": []float32{0.4, 0.5, 0.6}, "index": 1},
			},
			"model": req.Model,
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClientWith(server.URL, "test-key", "test-model")
	vectors, err := client.EmbedTexts(context.Background(), []string{"hello", "world"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vectors[0])
	assert.Equal(t, []float32{0.4, 0.5, 0.6}, vectors[1])
}

func TestEmbedTextsEmptyInput(t *testing.T) {
	client := NewClientWith("https://api.example.com", "k", "m")
	_, err := client.EmbedTexts(context.Background(), nil)
	assert.Error(t, err)
}

func TestGetVectorDimension(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"data": []map[string]any{
				{"embedding": make([]float32, 1536), "index": 0},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClientWith(server.URL, "k", "m")
	dim, err := client.GetVectorDimension(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1536, dim)
}
