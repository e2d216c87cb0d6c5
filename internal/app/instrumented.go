package app

import (
	"context"
	"io"
	"time"

	"github.com/yungbote/estatehub-backend/internal/observability"
	"github.com/yungbote/estatehub-backend/internal/platform/gcp"
	"github.com/yungbote/estatehub-backend/internal/platform/gmaps"
	"github.com/yungbote/estatehub-backend/internal/platform/openai"
	"github.com/yungbote/estatehub-backend/internal/platform/vectorstore"
)

type instrumentedVectorStore struct {
	provider string
	inner    vectorstore.Store
	metrics  *observability.Metrics
}

func instrumentVectorStore(provider string, inner vectorstore.Store, metrics *observability.Metrics) vectorstore.Store {
	if inner == nil {
		return nil
	}
	return &instrumentedVectorStore{provider: provider, inner: inner, metrics: metrics}
}

func (s *instrumentedVectorStore) Upsert(ctx context.Context, namespace string, vectors []vectorstore.Vector) error {
	start := time.Now()
	err := s.inner.Upsert(ctx, namespace, vectors)
	s.metrics.ObserveExternal(s.provider, "upsert", err, time.Since(start))
	return err
}

func (s *instrumentedVectorStore) Query(ctx context.Context, namespace string, q []float32, topK int, filter map[string]string) ([]vectorstore.Match, error) {
	start := time.Now()
	out, err := s.inner.Query(ctx, namespace, q, topK, filter)
	s.metrics.ObserveExternal(s.provider, "query", err, time.Since(start))
	return out, err
}

func (s *instrumentedVectorStore) Delete(ctx context.Context, namespace string, ids []string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, namespace, ids)
	s.metrics.ObserveExternal(s.provider, "delete", err, time.Since(start))
	return err
}

type instrumentedEmbedder struct {
	inner   openai.Embedder
	metrics *observability.Metrics
}

func instrumentEmbedder(inner openai.Embedder, metrics *observability.Metrics) openai.Embedder {
	if inner == nil {
		return nil
	}
	return &instrumentedEmbedder{inner: inner, metrics: metrics}
}

func (e *instrumentedEmbedder) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	start := time.Now()
	out, err := e.inner.Embed(ctx, inputs)
	e.metrics.ObserveExternal("openai", "embed", err, time.Since(start))
	return out, err
}

func (e *instrumentedEmbedder) Model() string { return e.inner.Model() }

type instrumentedObjectStore struct {
	inner   gcp.ObjectStore
	metrics *observability.Metrics
}

func instrumentObjectStore(inner gcp.ObjectStore, metrics *observability.Metrics) gcp.ObjectStore {
	if inner == nil {
		return nil
	}
	return &instrumentedObjectStore{inner: inner, metrics: metrics}
}

func (s *instrumentedObjectStore) PutObject(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	start := time.Now()
	url, err := s.inner.PutObject(ctx, key, body, contentType)
	s.metrics.ObserveExternal("gcs", "put_object", err, time.Since(start))
	return url, err
}

func (s *instrumentedObjectStore) DeleteObject(ctx context.Context, key string) error {
	start := time.Now()
	err := s.inner.DeleteObject(ctx, key)
	s.metrics.ObserveExternal("gcs", "delete_object", err, time.Since(start))
	return err
}

func (s *instrumentedObjectStore) PublicURL(key string) string { return s.inner.PublicURL(key) }

type instrumentedPlaces struct {
	inner   gmaps.Places
	metrics *observability.Metrics
}

func instrumentPlaces(inner gmaps.Places, metrics *observability.Metrics) gmaps.Places {
	if inner == nil {
		return nil
	}
	return &instrumentedPlaces{inner: inner, metrics: metrics}
}

func (p *instrumentedPlaces) NearbySearch(ctx context.Context, lat, lng float64, radius uint, placeType string) ([]gmaps.Place, error) {
	start := time.Now()
	out, err := p.inner.NearbySearch(ctx, lat, lng, radius, placeType)
	p.metrics.ObserveExternal("google_maps", "nearby_search", err, time.Since(start))
	return out, err
}
