package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/data/repos/testutil"
	"github.com/yungbote/estatehub-backend/internal/platform/vectorstore"
)

type fixedEmbedder struct {
	inputs []string
}

func (e *fixedEmbedder) Embed(_ context.Context, inputs []string) ([][]float32, error) {
	e.inputs = append(e.inputs, inputs...)
	out := make([][]float32, len(inputs))
	for i := range inputs {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

func (e *fixedEmbedder) Model() string { return "test-embed" }

type scriptedStore struct {
	upserted []vectorstore.Vector
	deleted  []string
	matches  []vectorstore.Match
	topK     int
}

func (s *scriptedStore) Upsert(_ context.Context, _ string, vectors []vectorstore.Vector) error {
	s.upserted = append(s.upserted, vectors...)
	return nil
}

func (s *scriptedStore) Query(_ context.Context, _ string, _ []float32, topK int, _ map[string]string) ([]vectorstore.Match, error) {
	s.topK = topK
	if len(s.matches) > topK {
		return s.matches[:topK], nil
	}
	return s.matches, nil
}

func (s *scriptedStore) Delete(_ context.Context, _ string, ids []string) error {
	s.deleted = append(s.deleted, ids...)
	return nil
}

func TestVectorizeIndexesProjectText(t *testing.T) {
	f := newFixture(t)
	emb, store := &fixedEmbedder{}, &scriptedStore{}
	svc := NewSimilarityService(f.log, f.repo, emb, store)
	p := testutil.SeedProject(t, f.ctx, f.db, "seaside", nil)
	testutil.SeedLocation(t, f.ctx, f.db, p.ID, "Dubai")

	res, err := svc.Vectorize(f.ctx, p.Slug)
	require.NoError(t, err)
	assert.Equal(t, "test-embed", res.Model)
	assert.Equal(t, 3, res.Dimensions)
	require.Len(t, store.upserted, 1)
	assert.Equal(t, p.ID.String(), store.upserted[0].ID)
	assert.Equal(t, "seaside", store.upserted[0].Metadata["slug"])
	require.Len(t, emb.inputs, 1)
	assert.Contains(t, emb.inputs[0], "Project seaside")
	assert.Contains(t, emb.inputs[0], "Dubai")
}

func TestSimilarToProjectSkipsSelfAndStaleIDs(t *testing.T) {
	f := newFixture(t)
	store := &scriptedStore{}
	svc := NewSimilarityService(f.log, f.repo, &fixedEmbedder{}, store)
	p := testutil.SeedProject(t, f.ctx, f.db, "origin", nil)
	near := testutil.SeedProject(t, f.ctx, f.db, "near", nil)
	far := testutil.SeedProject(t, f.ctx, f.db, "far", nil)
	store.matches = []vectorstore.Match{
		{ID: p.ID.String(), Score: 1},
		{ID: uuid.NewString(), Score: 0.95},
		{ID: near.ID.String(), Score: 0.9},
		{ID: far.ID.String(), Score: 0.4},
	}

	out, err := svc.SimilarToProject(f.ctx, p.ID.String(), 2)
	require.NoError(t, err)
	assert.Equal(t, 3, store.topK)
	require.Len(t, out, 1)
	assert.Equal(t, near.ID, out[0].ID)
	assert.Equal(t, 0.9, out[0].Score)

	_, err = svc.SimilarToProject(f.ctx, "missing", 2)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestSimilarityDisabled(t *testing.T) {
	f := newFixture(t)
	svc := NewSimilarityService(f.log, f.repo, nil, nil)
	p := testutil.SeedProject(t, f.ctx, f.db, "quiet", nil)

	_, err := svc.Vectorize(f.ctx, p.Slug)
	assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, err))

	_, err = svc.FindSimilar(f.ctx, "sea view", 5)
	assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, err))

	out, err := svc.SimilarToProject(f.ctx, p.Slug, 5)
	require.NoError(t, err)
	assert.Empty(t, out)

	svc.Forget(f.ctx, []uuid.UUID{p.ID})
}

func TestFindSimilarRequiresQuery(t *testing.T) {
	f := newFixture(t)
	store := &scriptedStore{matches: []vectorstore.Match{{ID: "a", Score: 0.5}}}
	svc := NewSimilarityService(f.log, f.repo, &fixedEmbedder{}, store)

	_, err := svc.FindSimilar(f.ctx, "  ", 5)
	assert.Contains(t, fieldsOf(t, err), "query")

	out, err := svc.FindSimilar(f.ctx, "two bedroom near the marina", 5)
	require.NoError(t, err)
	assert.Equal(t, []SimilarMatch{{ID: "a", Score: 0.5}}, out)

	svc.Forget(f.ctx, []uuid.UUID{uuid.MustParse("00000000-0000-0000-0000-000000000001")})
	assert.Equal(t, []string{"00000000-0000-0000-0000-000000000001"}, store.deleted)
}
