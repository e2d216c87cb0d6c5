package pinecone

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/estatehub-backend/internal/platform/logger"
	"github.com/yungbote/estatehub-backend/internal/platform/vectorstore"
)

type vectorStore struct {
	log      *logger.Logger
	pc       *client
	host     string
	nsPrefix string
}

// NewVectorStore resolves the index host (describe_index when PINECONE_INDEX_HOST
// is unset) and returns a store bound to it.
func NewVectorStore(ctx context.Context, log *logger.Logger, cfg Config, httpClient *http.Client) (vectorstore.Store, error) {
	pc, err := newClient(log, cfg, httpClient)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.IndexName) == "" {
		return nil, fmt.Errorf("missing PINECONE_INDEX_NAME")
	}
	host := strings.TrimSpace(cfg.IndexHost)
	if host == "" {
		desc, err := pc.describeIndex(ctx, cfg.IndexName)
		if err != nil {
			return nil, err
		}
		host = desc.Host
		log.Warn("PINECONE_INDEX_HOST not set; resolved via describe_index", "index_name", cfg.IndexName, "index_host", host)
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	nsPrefix := strings.TrimSpace(cfg.NamespacePrefix)
	if nsPrefix == "" {
		nsPrefix = "estate"
	}
	return &vectorStore{
		log:      log.With("service", "PineconeVectorStore"),
		pc:       pc,
		host:     strings.TrimRight(host, "/"),
		nsPrefix: nsPrefix,
	}, nil
}

func (s *vectorStore) Upsert(ctx context.Context, namespace string, vectors []vectorstore.Vector) error {
	if len(vectors) == 0 {
		return nil
	}
	wire := make([]wireVector, 0, len(vectors))
	for _, v := range vectors {
		if strings.TrimSpace(v.ID) == "" || len(v.Values) == 0 {
			return fmt.Errorf("pinecone upsert: vector id and values are required")
		}
		wire = append(wire, wireVector{ID: v.ID, Values: v.Values, Metadata: v.Metadata})
	}
	_, err := doJSON[upsertResponse](s.pc, ctx, http.MethodPost, s.host+"/vectors/upsert", upsertRequest{
		Namespace: s.qualifyNamespace(namespace),
		Vectors:   wire,
	})
	return err
}

func (s *vectorStore) Query(ctx context.Context, namespace string, q []float32, topK int, filter map[string]string) ([]vectorstore.Match, error) {
	if len(q) == 0 {
		return nil, fmt.Errorf("pinecone query: vector required")
	}
	if topK <= 0 {
		topK = 10
	}
	req := queryRequest{Namespace: s.qualifyNamespace(namespace), Vector: q, TopK: topK}
	if len(filter) > 0 {
		req.Filter = make(map[string]any, len(filter))
		for k, v := range filter {
			req.Filter[k] = map[string]any{"$eq": v}
		}
	}
	resp, err := doJSON[queryResponse](s.pc, ctx, http.MethodPost, s.host+"/query", req)
	if err != nil {
		return nil, err
	}
	out := make([]vectorstore.Match, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		if strings.TrimSpace(m.ID) == "" {
			continue
		}
		out = append(out, vectorstore.Match{ID: m.ID, Score: m.Score})
	}
	return out, nil
}

func (s *vectorStore) Delete(ctx context.Context, namespace string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := doJSON[struct{}](s.pc, ctx, http.MethodPost, s.host+"/vectors/delete", deleteRequest{
		Namespace: s.qualifyNamespace(namespace),
		IDs:       ids,
	})
	return err
}

func (s *vectorStore) qualifyNamespace(ns string) string {
	ns = strings.TrimSpace(ns)
	if ns == "" {
		return s.nsPrefix
	}
	return s.nsPrefix + ":" + ns
}
