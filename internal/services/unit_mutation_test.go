package services

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	"github.com/yungbote/estatehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/estatehub-backend/internal/domain"
)

func TestUnitCreateChecksBuildingProject(t *testing.T) {
	f := newFixture(t)
	svc := NewUnitService(f.db, f.log, f.repo, nil)
	p := testutil.SeedProject(t, f.ctx, f.db, "azure", nil)
	other := testutil.SeedProject(t, f.ctx, f.db, "other", nil)
	foreign := testutil.SeedBuilding(t, f.ctx, f.db, other.ID, "B")
	own := testutil.SeedBuilding(t, f.ctx, f.db, p.ID, "A")

	_, err := svc.Create(f.ctx, UnitInput{ProjectID: p.ID, BuildingID: &foreign.ID, Number: "101"})
	assert.Contains(t, fieldsOf(t, err), "buildingId")

	u, err := svc.Create(f.ctx, UnitInput{ProjectID: p.ID, BuildingID: &own.ID, Number: " 101 ", Price: decimal.NewFromInt(99000), Bedrooms: 1})
	require.NoError(t, err)
	assert.Equal(t, "101", u.Number)
	assert.Equal(t, "azure-101", u.Slug)
	assert.Equal(t, types.UnitStatusAvailable, u.Status)
	assert.Equal(t, "USD", u.CurrencyCode)
}

func TestUnitNumberIsUniquePerProject(t *testing.T) {
	f := newFixture(t)
	svc := NewUnitService(f.db, f.log, f.repo, nil)
	p := testutil.SeedProject(t, f.ctx, f.db, "azure", nil)
	other := testutil.SeedProject(t, f.ctx, f.db, "beryl", nil)
	testutil.SeedUnit(t, f.ctx, f.db, p.ID, "101", 1)

	_, err := svc.Create(f.ctx, UnitInput{ProjectID: p.ID, Number: "101"})
	assert.Equal(t, http.StatusConflict, statusOf(t, err))

	_, err = svc.Create(f.ctx, UnitInput{ProjectID: other.ID, Number: "101"})
	require.NoError(t, err)
}

func TestUnitUpdate(t *testing.T) {
	f := newFixture(t)
	svc := NewUnitService(f.db, f.log, f.repo, nil)
	p := testutil.SeedProject(t, f.ctx, f.db, "azure", nil)
	other := testutil.SeedProject(t, f.ctx, f.db, "beryl", nil)
	u := testutil.SeedUnit(t, f.ctx, f.db, p.ID, "101", 1)

	got, err := svc.Update(f.ctx, u.Slug, UnitInput{ProjectID: p.ID, Number: "101", Status: types.UnitStatusReserved, Bedrooms: 2})
	require.NoError(t, err)
	assert.Equal(t, types.UnitStatusReserved, got.Status)
	assert.Equal(t, 2, got.Bedrooms)

	_, err = svc.Update(f.ctx, u.ID.String(), UnitInput{ProjectID: other.ID, Number: "101"})
	assert.Contains(t, fieldsOf(t, err), "projectId")

	_, err = svc.Update(f.ctx, uuid.NewString(), UnitInput{ProjectID: p.ID, Number: "1"})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestUnitBulkDeleteKeepsVersions(t *testing.T) {
	f := newFixture(t)
	svc := NewUnitService(f.db, f.log, f.repo, nil)
	imports := NewImportService(f.db, f.log, f.repo)
	p := testutil.SeedProject(t, f.ctx, f.db, "azure", nil)

	res, err := imports.ImportUnits(f.ctx, ImportInput{ProjectID: p.ID, Units: []ImportUnitRow{{Number: "1"}, {Number: "2"}}}, nil)
	require.NoError(t, err)
	units, err := f.repo.Unit.FindMany(f.ctx, nil, gateway.Where("project_id", p.ID))
	require.NoError(t, err)
	require.Len(t, units, 2)

	n, err := svc.BulkDelete(f.ctx, []uuid.UUID{units[0].ID, units[1].ID})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	versions, err := f.repo.UnitVersion.CountForBatch(f.ctx, nil, res.Batch.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), versions)
}
