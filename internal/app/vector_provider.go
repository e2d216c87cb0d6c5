package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/estatehub-backend/internal/observability"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
	"github.com/yungbote/estatehub-backend/internal/platform/openai"
	"github.com/yungbote/estatehub-backend/internal/platform/pinecone"
	"github.com/yungbote/estatehub-backend/internal/platform/qdrant"
	"github.com/yungbote/estatehub-backend/internal/platform/vectorstore"
)

type VectorProvider string

const (
	VectorProviderNone     VectorProvider = "none"
	VectorProviderQdrant   VectorProvider = "qdrant"
	VectorProviderPinecone VectorProvider = "pinecone"
)

var (
	qdrantConfigFromEnv    = qdrant.ConfigFromEnv
	newQdrantVectorStore   = qdrant.NewVectorStore
	newPineconeVectorStore = pinecone.NewVectorStore
	newEmbedder            = openai.NewClient
)

// ParseVectorProvider treats an empty value as "none".
func ParseVectorProvider(raw string) (VectorProvider, error) {
	switch p := VectorProvider(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return VectorProviderNone, nil
	case VectorProviderNone, VectorProviderQdrant, VectorProviderPinecone:
		return p, nil
	default:
		return "", fmt.Errorf("invalid VECTOR_PROVIDER=%q (allowed: none, qdrant, pinecone)", raw)
	}
}

type VectorProviderBootstrapErrorCode string

const (
	VectorProviderBootstrapErrorQdrantConfig     VectorProviderBootstrapErrorCode = "qdrant_config_invalid"
	VectorProviderBootstrapErrorConnectFailed    VectorProviderBootstrapErrorCode = "connect_failed"
	VectorProviderBootstrapErrorEmbedderRequired VectorProviderBootstrapErrorCode = "embedder_required"
)

type VectorProviderBootstrapError struct {
	Code     VectorProviderBootstrapErrorCode
	Provider VectorProvider
	Cause    error
}

func (e *VectorProviderBootstrapError) Error() string {
	if e == nil {
		return "vector provider bootstrap failed"
	}
	return fmt.Sprintf("vector provider bootstrap failed (code=%s provider=%s): %v", e.Code, e.Provider, e.Cause)
}

func (e *VectorProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// resolveSimilarityBackends returns the embedder and vector index for the
// configured provider. Provider "none" yields nil, nil, nil and similarity
// search is disabled. A configured provider without an OpenAI key is an error.
func resolveSimilarityBackends(ctx context.Context, log *logger.Logger, cfg Config, metrics *observability.Metrics, httpClient *http.Client) (openai.Embedder, vectorstore.Store, error) {
	if cfg.VectorProvider == VectorProviderNone {
		log.Info("Similarity search disabled (VECTOR_PROVIDER=none)")
		return nil, nil, nil
	}

	embedder, err := newEmbedder(log, cfg.OpenAI, httpClient)
	if err != nil {
		return nil, nil, vectorBootstrapFailed(log, cfg.VectorProvider, VectorProviderBootstrapErrorEmbedderRequired, err)
	}

	var store vectorstore.Store
	switch cfg.VectorProvider {
	case VectorProviderQdrant:
		qcfg, cfgErr := qdrantConfigFromEnv()
		if cfgErr != nil {
			return nil, nil, vectorBootstrapFailed(log, cfg.VectorProvider, VectorProviderBootstrapErrorQdrantConfig, cfgErr)
		}
		store, err = newQdrantVectorStore(ctx, log, qcfg, httpClient)
	case VectorProviderPinecone:
		store, err = newPineconeVectorStore(ctx, log, cfg.Pinecone, httpClient)
	default:
		err = fmt.Errorf("unsupported provider %q", cfg.VectorProvider)
	}
	if err != nil {
		return nil, nil, vectorBootstrapFailed(log, cfg.VectorProvider, VectorProviderBootstrapErrorConnectFailed, err)
	}

	log.Info("Vector provider ready", "provider", cfg.VectorProvider, "embed_model", embedder.Model())
	provider := string(cfg.VectorProvider)
	return instrumentEmbedder(embedder, metrics), instrumentVectorStore(provider, store, metrics), nil
}

func vectorBootstrapFailed(log *logger.Logger, provider VectorProvider, code VectorProviderBootstrapErrorCode, cause error) error {
	err := &VectorProviderBootstrapError{Code: code, Provider: provider, Cause: cause}
	log.Error("Vector provider bootstrap failed", "provider", provider, "error_code", code, "error", cause)
	return err
}

func vectorProviderBootstrapErrorCode(err error) VectorProviderBootstrapErrorCode {
	var bootstrapErr *VectorProviderBootstrapError
	if errors.As(err, &bootstrapErr) && bootstrapErr.Code != "" {
		return bootstrapErr.Code
	}
	return VectorProviderBootstrapErrorConnectFailed
}
