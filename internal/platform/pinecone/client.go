package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/estatehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/estatehub-backend/internal/platform/envutil"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type Config struct {
	APIKey          string
	APIVersion      string
	BaseURL         string
	IndexName       string
	IndexHost       string
	NamespacePrefix string
	Timeout         time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		APIKey:          envutil.String("PINECONE_API_KEY", ""),
		APIVersion:      envutil.String("PINECONE_API_VERSION", "2025-10"),
		BaseURL:         envutil.String("PINECONE_BASE_URL", "https://api.pinecone.io"),
		IndexName:       envutil.String("PINECONE_INDEX_NAME", ""),
		IndexHost:       envutil.String("PINECONE_INDEX_HOST", ""),
		NamespacePrefix: envutil.String("PINECONE_NAMESPACE_PREFIX", "estate"),
		Timeout:         envutil.Duration("PINECONE_TIMEOUT_SECONDS", 30*time.Second),
	}
}

type client struct {
	log  *logger.Logger
	cfg  Config
	http *http.Client
}

func newClient(log *logger.Logger, cfg Config, httpClient *http.Client) (*client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing PINECONE_API_KEY")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2025-10"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.pinecone.io"
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &client{log: log.With("client", "PineconeClient"), cfg: cfg, http: httpClient}, nil
}

type indexDescription struct {
	Name      string `json:"name"`
	Host      string `json:"host"`
	Dimension int    `json:"dimension"`
	Metric    string `json:"metric"`
}

func (c *client) describeIndex(ctx context.Context, indexName string) (*indexDescription, error) {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/indexes/" + strings.TrimSpace(indexName)
	out, err := doJSON[indexDescription](c, ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("pinecone describe_index: %w", err)
	}
	if strings.TrimSpace(out.Host) == "" {
		return nil, fmt.Errorf("pinecone describe_index returned empty host")
	}
	return out, nil
}

type wireVector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type upsertRequest struct {
	Vectors   []wireVector `json:"vectors"`
	Namespace string       `json:"namespace,omitempty"`
}

type upsertResponse struct {
	UpsertedCount int64 `json:"upsertedCount"`
}

type queryRequest struct {
	Namespace       string         `json:"namespace,omitempty"`
	Vector          []float32      `json:"vector"`
	TopK            int            `json:"topK"`
	Filter          map[string]any `json:"filter,omitempty"`
	IncludeMetadata bool           `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []struct {
		ID    string  `json:"id"`
		Score float64 `json:"score"`
	} `json:"matches"`
}

type deleteRequest struct {
	IDs       []string `json:"ids"`
	Namespace string   `json:"namespace,omitempty"`
}

func doJSON[T any](c *client, ctx context.Context, method, url string, body any) (*T, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctxutil.Default(ctx), method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Api-Key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Pinecone-Api-Version", c.cfg.APIVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("pinecone http %d: %s", resp.StatusCode, string(raw))
	}
	var out T
	if len(bytes.TrimSpace(raw)) == 0 {
		return &out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("pinecone decode error: %w", err)
	}
	return &out, nil
}
