package pinecone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/platform/logger"
	"github.com/yungbote/estatehub-backend/internal/platform/vectorstore"
)

func TestVectorStoreResolvesHostAndQueries(t *testing.T) {
	dataPlane := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pc-key", r.Header.Get("Api-Key"))
		switch r.URL.Path {
		case "/vectors/upsert":
			var req upsertRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "estate:projects", req.Namespace)
			_, _ = w.Write([]byte(`{"upsertedCount":1}`))
		case "/query":
			var req queryRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, 3, req.TopK)
			assert.Equal(t, map[string]any{"$eq": "ACTIVE"}, req.Filter["status"])
			_, _ = w.Write([]byte(`{"matches":[{"id":"p1","score":0.91},{"id":"","score":0.5}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer dataPlane.Close()

	control := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/indexes/estate", r.URL.Path)
		_, _ = w.Write([]byte(`{"name":"estate","host":"` + dataPlane.URL + `","dimension":3}`))
	}))
	defer control.Close()

	store, err := NewVectorStore(context.Background(), logger.Nop(), Config{
		APIKey:    "pc-key",
		BaseURL:   control.URL,
		IndexName: "estate",
	}, nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, "projects", []vectorstore.Vector{{ID: "p1", Values: []float32{1, 0, 0}}}))

	matches, err := store.Query(ctx, "projects", []float32{1, 0, 0}, 3, map[string]string{"status": "ACTIVE"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "p1", matches[0].ID)
}

func TestVectorStoreSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	store, err := NewVectorStore(context.Background(), logger.Nop(), Config{
		APIKey:    "pc-key",
		IndexName: "estate",
		IndexHost: srv.URL,
	}, nil)
	require.NoError(t, err)

	_, err = store.Query(context.Background(), "projects", []float32{1}, 1, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "pinecone http 500"))
}
