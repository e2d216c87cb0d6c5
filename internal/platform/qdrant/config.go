package qdrant

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/yungbote/estatehub-backend/internal/platform/envutil"
)

type Config struct {
	URL             string
	APIKey          string
	Collection      string
	NamespacePrefix string
	VectorDim       int
}

func ConfigFromEnv() (Config, error) {
	rawDim := envutil.String("QDRANT_VECTOR_DIM", "")
	dim := 0
	if rawDim != "" {
		parsed, err := strconv.Atoi(rawDim)
		if err != nil {
			return Config{}, fmt.Errorf("invalid QDRANT_VECTOR_DIM=%q; expected positive integer", rawDim)
		}
		dim = parsed
	}
	cfg := Config{
		URL:             strings.TrimRight(envutil.String("QDRANT_URL", ""), "/"),
		APIKey:          envutil.String("QDRANT_API_KEY", ""),
		Collection:      envutil.String("QDRANT_COLLECTION", "estatehub"),
		NamespacePrefix: envutil.String("QDRANT_NAMESPACE_PREFIX", "estate"),
		VectorDim:       dim,
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("QDRANT_URL is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid QDRANT_URL=%q; expected absolute URL like http://qdrant:6333", c.URL)
	}
	if strings.TrimSpace(c.Collection) == "" {
		return fmt.Errorf("QDRANT_COLLECTION is required")
	}
	if c.VectorDim <= 0 {
		return fmt.Errorf("QDRANT_VECTOR_DIM is required and must be a positive integer")
	}
	return nil
}
