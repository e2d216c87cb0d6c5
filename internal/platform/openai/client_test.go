package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

func TestEmbedOrdersByIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		var req embeddingsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "text-embedding-3-small", req.Model)
		assert.Equal(t, []string{"sea view", " "}, req.Input)
		_, _ = w.Write([]byte(`{"data":[{"index":1,"embedding":[0.5]},{"index":0,"embedding":[1,2]}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(logger.Nop(), Config{APIKey: "sk-test", BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	out, err := c.Embed(context.Background(), []string{" sea view ", ""})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, []float32{1, 2}, out[0])
	assert.Equal(t, []float32{0.5}, out[1])
}

func TestEmbedSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := NewClient(logger.Nop(), Config{APIKey: "sk-test", BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	_, err = c.Embed(context.Background(), []string{"x"})
	require.Error(t, err)
	assert.True(t, IsHTTPStatus(err, http.StatusTooManyRequests))
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(logger.Nop(), Config{}, nil)
	require.Error(t, err)
}
