package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
	"github.com/yungbote/estatehub-backend/internal/platform/openai"
	"github.com/yungbote/estatehub-backend/internal/platform/vectorstore"
)

const projectsNamespace = "projects"

type SimilarMatch struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

type SimilarProject struct {
	ID           uuid.UUID       `json:"id"`
	Slug         string          `json:"slug"`
	Name         string          `json:"name"`
	PriceFrom    decimal.Decimal `json:"priceFrom"`
	CurrencyCode string          `json:"currencyCode,omitempty"`
	Score        float64         `json:"score"`
}

type VectorizeResult struct {
	ProjectID  uuid.UUID `json:"projectId"`
	Model      string    `json:"model"`
	Dimensions int       `json:"dimensions"`
}

// SimilarityService indexes projects as embeddings and answers nearest
// neighbour queries against them.
type SimilarityService interface {
	Vectorize(ctx context.Context, projectKey string) (*VectorizeResult, error)
	FindSimilar(ctx context.Context, queryText string, limit int) ([]SimilarMatch, error)
	SimilarToProject(ctx context.Context, projectKey string, limit int) ([]SimilarProject, error)
	Forget(ctx context.Context, projectIDs []uuid.UUID)
}

type similarityService struct {
	log      *logger.Logger
	repos    repos.Set
	embedder openai.Embedder
	store    vectorstore.Store
}

func NewSimilarityService(log *logger.Logger, set repos.Set, embedder openai.Embedder, store vectorstore.Store) SimilarityService {
	return &similarityService{
		log:      log.With("service", "SimilarityService"),
		repos:    set,
		embedder: embedder,
		store:    store,
	}
}

var errSimilarityDisabled = apierr.New(http.StatusServiceUnavailable, "unavailable", errors.New("similarity search is not configured"))

func (s *similarityService) enabled() bool {
	return s.embedder != nil && s.store != nil
}

func (s *similarityService) Vectorize(ctx context.Context, projectKey string) (*VectorizeResult, error) {
	if !s.enabled() {
		return nil, errSimilarityDisabled
	}
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(projectKey))
	if err != nil {
		return nil, classify(s.log, err, "project", "vectorize", projectKey)
	}
	vec, err := s.embedOne(ctx, s.projectText(ctx, p))
	if err != nil {
		s.log.Error("embedding failed", "project_id", p.ID, "error", err)
		return nil, apierr.Server()
	}
	meta := map[string]any{"slug": p.Slug, "status": string(p.Status)}
	if err := s.store.Upsert(ctx, projectsNamespace, []vectorstore.Vector{{ID: p.ID.String(), Values: vec, Metadata: meta}}); err != nil {
		s.log.Error("vector upsert failed", "project_id", p.ID, "error", err)
		return nil, apierr.Server()
	}
	return &VectorizeResult{ProjectID: p.ID, Model: s.embedder.Model(), Dimensions: len(vec)}, nil
}

func (s *similarityService) FindSimilar(ctx context.Context, queryText string, limit int) ([]SimilarMatch, error) {
	queryText = strings.TrimSpace(queryText)
	if queryText == "" {
		return nil, apierr.ValidationField("query", "is required")
	}
	if !s.enabled() {
		return nil, errSimilarityDisabled
	}
	vec, err := s.embedOne(ctx, queryText)
	if err != nil {
		s.log.Error("embedding failed", "error", err)
		return nil, apierr.Server()
	}
	matches, err := s.store.Query(ctx, projectsNamespace, vec, clampLimit(limit), nil)
	if err != nil {
		s.log.Error("vector query failed", "error", err)
		return nil, apierr.Server()
	}
	out := make([]SimilarMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, SimilarMatch{ID: m.ID, Score: m.Score})
	}
	return out, nil
}

// SimilarToProject embeds the project's own text and returns the closest other
// projects, most similar first. Ids the index knows but the database no longer
// has are dropped.
func (s *similarityService) SimilarToProject(ctx context.Context, projectKey string, limit int) ([]SimilarProject, error) {
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(projectKey))
	if err != nil {
		return nil, classify(s.log, err, "project", "similar", projectKey)
	}
	if !s.enabled() {
		return []SimilarProject{}, nil
	}
	limit = clampLimit(limit)
	vec, err := s.embedOne(ctx, s.projectText(ctx, p))
	if err != nil {
		return nil, err
	}
	matches, err := s.store.Query(ctx, projectsNamespace, vec, limit+1, nil)
	if err != nil {
		return nil, err
	}

	scores := make(map[uuid.UUID]float64, len(matches))
	ids := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		id, err := uuid.Parse(m.ID)
		if err != nil || id == p.ID {
			continue
		}
		scores[id] = m.Score
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return []SimilarProject{}, nil
	}
	rows, err := s.repos.Project.FindMany(ctx, nil, gateway.ByIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.Project, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	out := make([]SimilarProject, 0, limit)
	for _, id := range ids {
		r, ok := byID[id]
		if !ok || len(out) == limit {
			continue
		}
		out = append(out, SimilarProject{
			ID:           r.ID,
			Slug:         r.Slug,
			Name:         r.Name,
			PriceFrom:    r.PriceFrom,
			CurrencyCode: r.CurrencyCode,
			Score:        scores[id],
		})
	}
	return out, nil
}

// Forget drops deleted projects from the index. Failures are logged only.
func (s *similarityService) Forget(ctx context.Context, projectIDs []uuid.UUID) {
	if !s.enabled() || len(projectIDs) == 0 {
		return
	}
	ids := make([]string, 0, len(projectIDs))
	for _, id := range projectIDs {
		ids = append(ids, id.String())
	}
	if err := s.store.Delete(ctx, projectsNamespace, ids); err != nil {
		s.log.Warn("vector delete failed", "count", len(ids), "error", err)
	}
}

func (s *similarityService) embedOne(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 || len(vecs[0]) == 0 {
		return nil, errors.New("embedding response was empty")
	}
	return vecs[0], nil
}

func (s *similarityService) projectText(ctx context.Context, p *types.Project) string {
	parts := []string{p.Name, p.Description, p.Class, p.Type, p.BuildingStatus}
	if loc, err := s.repos.Location.Find(ctx, nil, gateway.Where("project_id", p.ID)); err == nil {
		parts = append(parts, loc.City, loc.District, loc.Country)
	}
	var b strings.Builder
	for _, part := range parts {
		if part = strings.TrimSpace(part); part == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(part)
	}
	return b.String()
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return 4
	case limit > 50:
		return 50
	default:
		return limit
	}
}
