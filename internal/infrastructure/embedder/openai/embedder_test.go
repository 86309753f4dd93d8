package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
	"github.com/ersonp/onebox-embed/internal/infrastructure/config"
)

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// newServer returns an OpenAI-compatible /embeddings endpoint that records
// the last request it received.
func newServer(t *testing.T, status int, body string) (*httptest.Server, *embeddingRequest, *http.Header) {
	t.Helper()
	var got embeddingRequest
	var headers http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		headers = r.Header.Clone()
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, &got, &headers
}

const okBody = `{
  "object": "list",
  "data": [{"object": "embedding", "index": 0, "embedding": [0.0123, -0.441, 0.5]}],
  "model": "jina-embeddings-v2-base-en",
  "usage": {"prompt_tokens": 2, "total_tokens": 2}
}`

func TestNewEmbedder(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.EmbedderConfig
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			cfg: config.EmbedderConfig{
				APIKey: "test-key",
			},
			wantErr: false,
		},
		{
			name: "valid config with model and base url",
			cfg: config.EmbedderConfig{
				APIKey:  "test-key",
				Model:   "jina-embeddings-v2-base-en",
				BaseURL: "https://api.jina.ai/v1",
			},
			wantErr: false,
		},
		{
			name: "keyless local server",
			cfg: config.EmbedderConfig{
				BaseURL:       "http://localhost:11434/v1",
				AllowEmptyKey: true,
			},
			wantErr: false,
		},
		{
			name:    "missing API key",
			cfg:     config.EmbedderConfig{Provider: "jina"},
			wantErr: true,
			errMsg:  "API key is required",
		},
		{
			name: "invalid base url",
			cfg: config.EmbedderConfig{
				APIKey:  "test-key",
				BaseURL: "not a url",
			},
			wantErr: true,
			errMsg:  "invalid base URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embedder, err := NewEmbedder(tt.cfg)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.ErrorIs(t, err, entities.ErrProviderUnavailable)
				assert.Nil(t, embedder)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, embedder)
			}
		})
	}
}

func TestEmbedder_Model(t *testing.T) {
	e, err := NewEmbedder(config.EmbedderConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", e.Model())

	e, err = NewEmbedder(config.EmbedderConfig{APIKey: "k", Model: "jina-embeddings-v2-base-en"})
	require.NoError(t, err)
	assert.Equal(t, "jina-embeddings-v2-base-en", e.Model())
}

func TestEmbedder_Embed(t *testing.T) {
	srv, got, headers := newServer(t, http.StatusOK, okBody)

	e, err := NewEmbedder(config.EmbedderConfig{
		APIKey:  "secret",
		BaseURL: srv.URL,
		Model:   "jina-embeddings-v2-base-en",
	})
	require.NoError(t, err)

	vector, err := e.Embed(t.Context(), "hello world")
	require.NoError(t, err)

	assert.Equal(t, []float32{0.0123, -0.441, 0.5}, vector)
	assert.Equal(t, "jina-embeddings-v2-base-en", got.Model)
	assert.Equal(t, []string{"hello world"}, got.Input)
	assert.Equal(t, "Bearer secret", headers.Get("Authorization"))
}

func TestEmbedder_Embed_EmptyText(t *testing.T) {
	srv, got, _ := newServer(t, http.StatusOK, okBody)

	e, err := NewEmbedder(config.EmbedderConfig{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = e.Embed(t.Context(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, got.Input)
}

func TestEmbedder_Embed_NoData(t *testing.T) {
	srv, _, _ := newServer(t, http.StatusOK, `{"object":"list","data":[],"model":"m"}`)

	e, err := NewEmbedder(config.EmbedderConfig{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = e.Embed(t.Context(), "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrProviderInference)
}

func TestEmbedder_Embed_HTTPErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"message":"invalid api key","type":"invalid_request_error"}}`,
			wantErr: entities.ErrProviderUnavailable,
		},
		{
			name:    "model not found",
			status:  http.StatusNotFound,
			body:    `{"error":{"message":"model not found","type":"invalid_request_error"}}`,
			wantErr: entities.ErrProviderUnavailable,
		},
		{
			name:    "service unavailable without json",
			status:  http.StatusServiceUnavailable,
			body:    `upstream overloaded`,
			wantErr: entities.ErrProviderUnavailable,
		},
		{
			name:    "input too long",
			status:  http.StatusBadRequest,
			body:    `{"error":{"message":"input exceeds 8192 tokens","type":"invalid_request_error"}}`,
			wantErr: entities.ErrProviderInference,
		},
		{
			name:    "internal server error",
			status:  http.StatusInternalServerError,
			body:    `{"error":{"message":"CUDA out of memory","type":"server_error"}}`,
			wantErr: entities.ErrProviderInference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := newServer(t, tt.status, tt.body)

			e, err := NewEmbedder(config.EmbedderConfig{APIKey: "k", BaseURL: srv.URL})
			require.NoError(t, err)

			vector, err := e.Embed(t.Context(), "text")
			require.Error(t, err)
			assert.Nil(t, vector)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEmbedder_Embed_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	e, err := NewEmbedder(config.EmbedderConfig{APIKey: "k", BaseURL: addr})
	require.NoError(t, err)

	_, err = e.Embed(t.Context(), "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrProviderUnavailable)
}

func TestEmbedder_Embed_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	e, err := NewEmbedder(config.EmbedderConfig{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	_, err = e.Embed(t.Context(), "text")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}
