package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/estatehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
	"github.com/yungbote/estatehub-backend/internal/platform/vectorstore"
)

const (
	payloadNamespaceKey = "_eh_namespace"
	payloadVectorIDKey  = "_eh_vector_id"
	maxErrorBodyBytes   = 1024
)

var pointIDNamespace = uuid.MustParse("6a7f3c52-8d0e-4c61-9b7a-2f4e1d3c5b90")

type vectorStore struct {
	log      *logger.Logger
	cfg      Config
	nsPrefix string
	distance string
	http     *http.Client
}

type envelope struct {
	Result json.RawMessage `json:"result"`
	Status json.RawMessage `json:"status"`
}

type searchHit struct {
	ID      json.RawMessage `json:"id"`
	Score   float64         `json:"score"`
	Payload map[string]any  `json:"payload"`
}

// NewVectorStore checks readiness and the collection's vector size before
// returning.
func NewVectorStore(ctx context.Context, log *logger.Logger, cfg Config, httpClient *http.Client) (vectorstore.Store, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	s := &vectorStore{
		log:      log.With("service", "QdrantVectorStore"),
		cfg:      cfg,
		nsPrefix: strings.TrimSpace(cfg.NamespacePrefix),
		http:     httpClient,
	}
	if err := s.verifyReady(ctx); err != nil {
		return nil, err
	}
	s.log.Info("Qdrant vector store selected", "url", cfg.URL, "collection", cfg.Collection, "vector_dim", cfg.VectorDim, "distance", s.distance)
	return s, nil
}

func (s *vectorStore) Upsert(ctx context.Context, namespace string, vectors []vectorstore.Vector) error {
	const op = "upsert"
	if len(vectors) == 0 {
		return nil
	}
	ns := s.qualifyNamespace(namespace)
	points := make([]map[string]any, 0, len(vectors))
	for _, v := range vectors {
		id := strings.TrimSpace(v.ID)
		if id == "" {
			return opErr(op, OperationErrorValidation, "vector id is required", nil)
		}
		if len(v.Values) != s.cfg.VectorDim {
			return opErr(op, OperationErrorValidation, fmt.Sprintf("vector %q dimension mismatch: expected=%d got=%d", id, s.cfg.VectorDim, len(v.Values)), nil)
		}
		payload := make(map[string]any, len(v.Metadata)+2)
		for k, val := range v.Metadata {
			payload[k] = val
		}
		payload[payloadNamespaceKey] = ns
		payload[payloadVectorIDKey] = id
		points = append(points, map[string]any{
			"id":      s.pointID(ns, id),
			"vector":  v.Values,
			"payload": payload,
		})
	}
	return s.doJSON(ctx, op, http.MethodPut, s.collectionPath("/points?wait=true"), map[string]any{"points": points}, nil)
}

func (s *vectorStore) Query(ctx context.Context, namespace string, q []float32, topK int, filter map[string]string) ([]vectorstore.Match, error) {
	const op = "query"
	if len(q) != s.cfg.VectorDim {
		return nil, opErr(op, OperationErrorValidation, fmt.Sprintf("query vector dimension mismatch: expected=%d got=%d", s.cfg.VectorDim, len(q)), nil)
	}
	if topK <= 0 {
		topK = 10
	}
	ns := s.qualifyNamespace(namespace)
	must := []any{matchCondition(payloadNamespaceKey, ns)}
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		must = append(must, matchCondition(k, filter[k]))
	}

	req := map[string]any{
		"vector":       q,
		"limit":        topK,
		"with_payload": true,
		"with_vector":  false,
		"filter":       map[string]any{"must": must},
	}
	var hits []searchHit
	if err := s.doJSON(ctx, op, http.MethodPost, s.collectionPath("/points/search"), req, &hits); err != nil {
		return nil, err
	}

	out := make([]vectorstore.Match, 0, len(hits))
	for _, h := range hits {
		id, _ := h.Payload[payloadVectorIDKey].(string)
		if id = strings.TrimSpace(id); id == "" {
			continue
		}
		out = append(out, vectorstore.Match{ID: id, Score: s.normalizeScore(h.Score)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score == out[j].Score {
			return out[i].ID < out[j].ID
		}
		return out[i].Score > out[j].Score
	})
	return out, nil
}

func (s *vectorStore) Delete(ctx context.Context, namespace string, ids []string) error {
	const op = "delete"
	ns := s.qualifyNamespace(namespace)
	seen := make(map[string]struct{}, len(ids))
	points := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		pid := s.pointID(ns, id)
		if _, dup := seen[pid]; dup {
			continue
		}
		seen[pid] = struct{}{}
		points = append(points, pid)
	}
	if len(points) == 0 {
		return nil
	}
	return s.doJSON(ctx, op, http.MethodPost, s.collectionPath("/points/delete?wait=true"), map[string]any{"points": points}, nil)
}

func (s *vectorStore) verifyReady(ctx context.Context) error {
	const op = "bootstrap_verify"
	var result struct {
		Config struct {
			Params struct {
				Vectors struct {
					Size     int    `json:"size"`
					Distance string `json:"distance"`
				} `json:"vectors"`
			} `json:"params"`
		} `json:"config"`
	}
	if err := s.doJSON(ctx, op, http.MethodGet, s.collectionPath(""), nil, &result); err != nil {
		return err
	}
	if size := result.Config.Params.Vectors.Size; size != 0 && size != s.cfg.VectorDim {
		return opErr(op, OperationErrorValidation, fmt.Sprintf("collection %q vector size mismatch: expected=%d actual=%d", s.cfg.Collection, s.cfg.VectorDim, size), nil)
	}
	s.distance = strings.TrimSpace(result.Config.Params.Vectors.Distance)
	return nil
}

func (s *vectorStore) doJSON(ctx context.Context, op, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(in); err != nil {
			return opErr(op, OperationErrorEncodeFailed, "encode request failed", err)
		}
		body = &buf
	}
	req, err := http.NewRequestWithContext(ctxutil.Default(ctx), method, strings.TrimRight(s.cfg.URL, "/")+path, body)
	if err != nil {
		return opErr(op, OperationErrorTransportFailed, "build request failed", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.APIKey != "" {
		req.Header.Set("api-key", s.cfg.APIKey)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return opErr(op, OperationErrorTimeout, "request timed out", err)
		}
		return opErr(op, OperationErrorTransportFailed, "request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return opErr(op, OperationErrorDecodeFailed, "read response failed", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &OperationError{
			Code:       OperationErrorRequestFailed,
			Operation:  op,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("http status=%d body=%q", resp.StatusCode, truncate(raw)),
		}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return opErr(op, OperationErrorDecodeFailed, "decode envelope failed", err)
	}
	if msg := envelopeStatusError(env.Status); msg != "" {
		return &OperationError{Code: OperationErrorRequestFailed, Operation: op, StatusCode: resp.StatusCode, Message: msg}
	}
	if out == nil || len(env.Result) == 0 || string(env.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return opErr(op, OperationErrorDecodeFailed, "decode result failed", err)
	}
	return nil
}

func envelopeStatusError(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if strings.EqualFold(asString, "ok") {
			return ""
		}
		return fmt.Sprintf("status=%q", asString)
	}
	var asObject struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &asObject); err == nil && asObject.Error != "" {
		return asObject.Error
	}
	return "status=" + string(raw)
}

func matchCondition(key, value string) map[string]any {
	return map[string]any{"key": key, "match": map[string]any{"value": value}}
}

func truncate(raw []byte) string {
	if len(raw) <= maxErrorBodyBytes {
		return string(raw)
	}
	return string(raw[:maxErrorBodyBytes]) + "..."
}

func (s *vectorStore) qualifyNamespace(namespace string) string {
	ns := strings.TrimSpace(namespace)
	if ns == "" {
		return s.nsPrefix
	}
	return s.nsPrefix + ":" + ns
}

// pointID derives a stable UUID so re-upserting the same vector id overwrites.
func (s *vectorStore) pointID(ns, vectorID string) string {
	return uuid.NewSHA1(pointIDNamespace, []byte(ns+"|"+vectorID)).String()
}

func (s *vectorStore) collectionPath(suffix string) string {
	return "/collections/" + s.cfg.Collection + suffix
}

// normalizeScore maps distance metrics onto "higher is more similar".
func (s *vectorStore) normalizeScore(score float64) float64 {
	switch strings.ToLower(s.distance) {
	case "euclid", "manhattan":
		if score < 0 {
			score = -score
		}
		return 1.0 / (1.0 + score)
	default:
		return score
	}
}
