package services

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	"github.com/yungbote/estatehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/estatehub-backend/internal/domain"
)

type recordingSimilarity struct {
	SimilarityService
	mu        sync.Mutex
	forgotten []uuid.UUID
}

func (r *recordingSimilarity) Forget(_ context.Context, ids []uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forgotten = append(r.forgotten, ids...)
}

func TestProjectCreateWritesChildren(t *testing.T) {
	f := newFixture(t)
	svc := NewProjectService(f.db, f.log, f.repo, nil, nil)
	pool := testutil.SeedAmenity(t, f.ctx, f.db, "pool")
	testutil.SeedProject(t, f.ctx, f.db, "marina-heights", nil)

	p, err := svc.Create(f.ctx, ProjectInput{
		Name:         "Marina Heights",
		PriceFrom:    decimal.NewFromInt(300000),
		CurrencyCode: "aed",
		Location:     &LocationInput{Country: "AE", City: "Dubai"},
		Translations: []TranslationInput{{Language: "ru", Name: "Марина"}},
		AmenityIDs:   []uuid.UUID{pool.ID, pool.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "marina-heights-2", p.Slug)
	assert.Equal(t, types.ProjectStatusDraft, p.Status)
	assert.Equal(t, "AED", p.CurrencyCode)

	loc, err := f.repo.Location.Find(f.ctx, nil, gateway.Where("project_id", p.ID))
	require.NoError(t, err)
	assert.Equal(t, "Dubai", loc.City)

	amenities, err := f.repo.Amenity.ListForProject(f.ctx, nil, p.ID)
	require.NoError(t, err)
	assert.Len(t, amenities, 1)

	trs, err := f.repo.Translation.ListForOwner(f.ctx, nil, types.OwnerProject, p.ID)
	require.NoError(t, err)
	require.Len(t, trs, 1)
	assert.Equal(t, "ru", trs[0].Language)
}

func TestProjectCreateRejectsBadReferences(t *testing.T) {
	f := newFixture(t)
	svc := NewProjectService(f.db, f.log, f.repo, nil, nil)

	missing := uuid.New()
	_, err := svc.Create(f.ctx, ProjectInput{Name: "Ghost", DeveloperID: &missing})
	assert.Contains(t, fieldsOf(t, err), "developerId")

	_, err = svc.Create(f.ctx, ProjectInput{Name: "Ghost", AmenityIDs: []uuid.UUID{uuid.New()}})
	assert.Contains(t, fieldsOf(t, err), "amenityIds")

	_, err = svc.Create(f.ctx, ProjectInput{Name: "Ghost", Translations: []TranslationInput{
		{Language: "en", Name: "A"},
		{Language: "EN", Name: "B"},
	}})
	assert.Contains(t, fieldsOf(t, err), "translations[1].language")

	n, err := f.repo.Project.Count(f.ctx, nil, gateway.Filter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProjectUpdateReplacesLocation(t *testing.T) {
	f := newFixture(t)
	svc := NewProjectService(f.db, f.log, f.repo, nil, nil)
	p := testutil.SeedProject(t, f.ctx, f.db, "bay", nil)
	testutil.SeedLocation(t, f.ctx, f.db, p.ID, "Dubai")

	got, err := svc.Update(f.ctx, p.Slug, ProjectInput{Name: "Bay Square", Status: types.ProjectStatusCompleted, PriceFrom: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.Equal(t, "bay", got.Slug)
	assert.Equal(t, types.ProjectStatusCompleted, got.Status)

	exists, err := f.repo.Location.Exists(f.ctx, nil, gateway.Where("project_id", p.ID))
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.Update(f.ctx, uuid.NewString(), ProjectInput{Name: "x"})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestProjectBulkDeleteCascadesAndKeepsVersions(t *testing.T) {
	f := newFixture(t)
	sim := &recordingSimilarity{}
	svc := NewProjectService(f.db, f.log, f.repo, nil, sim)
	imports := NewImportService(f.db, f.log, f.repo)

	p := testutil.SeedProject(t, f.ctx, f.db, "doomed", nil)
	keep := testutil.SeedProject(t, f.ctx, f.db, "kept", nil)
	testutil.SeedLocation(t, f.ctx, f.db, p.ID, "Dubai")
	b := testutil.SeedBuilding(t, f.ctx, f.db, p.ID, "A")
	testutil.SeedUnit(t, f.ctx, f.db, keep.ID, "1", 1)
	res, err := imports.ImportUnits(f.ctx, ImportInput{ProjectID: p.ID, Units: []ImportUnitRow{{Number: "1", BuildingID: &b.ID}}}, nil)
	require.NoError(t, err)
	_, err = NewPurchaseConditionsService(f.db, f.log, f.repo).ReplaceAdditionalExpenses(f.ctx, p.ID.String(), AdditionalExpensesInput{
		Expenses: &[]AdditionalExpenseInput{{NameOfExpenses: "Legal", CostOfExpenses: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	n, err := svc.BulkDelete(f.ctx, []uuid.UUID{p.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	units, err := f.repo.Unit.Count(f.ctx, nil, gateway.Where("project_id", p.ID))
	require.NoError(t, err)
	assert.Zero(t, units)
	buildings, err := f.repo.Building.Count(f.ctx, nil, gateway.Where("project_id", p.ID))
	require.NoError(t, err)
	assert.Zero(t, buildings)
	pcs, err := f.repo.PurchaseConditions.Count(f.ctx, nil, gateway.Where("project_id", p.ID))
	require.NoError(t, err)
	assert.Zero(t, pcs)

	versions, err := f.repo.UnitVersion.CountForBatch(f.ctx, nil, res.Batch.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), versions)

	left, err := f.repo.Unit.Count(f.ctx, nil, gateway.Where("project_id", keep.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), left)
	assert.Equal(t, []uuid.UUID{p.ID}, sim.forgotten)
}

func TestProjectBulkDeleteNeedsIDs(t *testing.T) {
	f := newFixture(t)
	svc := NewProjectService(f.db, f.log, f.repo, nil, nil)
	_, err := svc.BulkDelete(f.ctx, nil)
	assert.Contains(t, fieldsOf(t, err), "ids")
}
