package vectorstore

import "context"

type Vector struct {
	ID       string
	Values   []float32
	Metadata map[string]any
}

// Match is one query hit. Higher Score is more similar.
type Match struct {
	ID    string
	Score float64
}

// Store is the provider-neutral vector index used by the similarity service.
// Filter is a flat equality match on metadata keys.
type Store interface {
	Upsert(ctx context.Context, namespace string, vectors []Vector) error
	Query(ctx context.Context, namespace string, q []float32, topK int, filter map[string]string) ([]Match, error)
	Delete(ctx context.Context, namespace string, ids []string) error
}
