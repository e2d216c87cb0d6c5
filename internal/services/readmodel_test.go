package services

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/estatehub-backend/internal/domain"
)

func TestProjectDetailWithoutLocation(t *testing.T) {
	f := newFixture(t)
	svc := NewReadModelService(f.log, f.repo, nil, "en")
	dev := testutil.SeedDeveloper(t, f.ctx, f.db, "Emaar")
	p := testutil.SeedProject(t, f.ctx, f.db, "creek-rise", &dev.ID)
	testutil.SeedUnit(t, f.ctx, f.db, p.ID, "101", 1)

	got, err := svc.ProjectDetail(f.ctx, p.Slug)
	require.NoError(t, err)
	assert.Nil(t, got.Location)
	require.NotNil(t, got.Developer)
	assert.Equal(t, "Emaar", got.Developer.Name)
	assert.Len(t, got.Units, 1)
	assert.Empty(t, got.Media)
	assert.Nil(t, got.PurchaseConditions)
	assert.Equal(t, "USD 150,000", got.FormattedPrice)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	v, present := body["location"]
	assert.True(t, present)
	assert.Nil(t, v)
	assert.Equal(t, []any{}, body["media"])
}

func TestProjectDetailUnknown(t *testing.T) {
	f := newFixture(t)
	svc := NewReadModelService(f.log, f.repo, nil, "en")

	_, err := svc.ProjectDetail(f.ctx, uuid.NewString())
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestUnitDetailByIDAndSlugMatch(t *testing.T) {
	f := newFixture(t)
	svc := NewReadModelService(f.log, f.repo, nil, "en")
	p := testutil.SeedProject(t, f.ctx, f.db, "palm-view", nil)
	testutil.SeedLocation(t, f.ctx, f.db, p.ID, "Dubai")
	u := testutil.SeedUnit(t, f.ctx, f.db, p.ID, "1204", 2)
	testutil.SeedUnit(t, f.ctx, f.db, p.ID, "1205", 2)
	testutil.SeedUnit(t, f.ctx, f.db, p.ID, "1206", 3)

	byID, err := svc.UnitDetail(f.ctx, u.ID.String())
	require.NoError(t, err)
	bySlug, err := svc.UnitDetail(f.ctx, u.Slug)
	require.NoError(t, err)

	assert.Equal(t, byID.ID, bySlug.ID)
	assert.Equal(t, byID.Number, bySlug.Number)
	assert.Equal(t, byID.Status, bySlug.Status)
	assert.True(t, byID.Price.Equal(bySlug.Price))
	assert.Equal(t, byID.FormattedPrice, bySlug.FormattedPrice)

	require.NotNil(t, byID.Project)
	assert.Equal(t, p.ID, byID.Project.ID)
	require.NotNil(t, byID.Project.Location)
	assert.Equal(t, "Dubai", byID.Project.Location.City)
	require.Len(t, byID.SimilarUnits, 1)
	assert.Equal(t, "1205", byID.SimilarUnits[0].Number)
	assert.Empty(t, byID.SimilarProjects)
}

func TestListProjectsFilters(t *testing.T) {
	f := newFixture(t)
	svc := NewReadModelService(f.log, f.repo, nil, "en")

	dubai := testutil.SeedProject(t, f.ctx, f.db, "dubai-one", nil)
	testutil.SeedLocation(t, f.ctx, f.db, dubai.ID, "Dubai")
	testutil.SeedUnit(t, f.ctx, f.db, dubai.ID, "1", 1)

	sold := testutil.SeedProject(t, f.ctx, f.db, "dubai-two", nil)
	testutil.SeedLocation(t, f.ctx, f.db, sold.ID, "Dubai")
	u := testutil.SeedUnit(t, f.ctx, f.db, sold.ID, "1", 1)
	require.NoError(t, f.db.Model(&types.Unit{}).Where("id = ?", u.ID).Update("status", types.UnitStatusSold).Error)

	abuDhabi := testutil.SeedProject(t, f.ctx, f.db, "abu-dhabi", nil)
	testutil.SeedLocation(t, f.ctx, f.db, abuDhabi.ID, "Abu Dhabi")

	page, err := svc.ListProjects(f.ctx, ProjectListQuery{City: "Dubai"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = svc.ListProjects(f.ctx, ProjectListQuery{City: "Dubai", HasAvailableUnits: true})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, dubai.ID, page.Items[0].ID)

	ceiling := decimal.NewFromInt(100000)
	page, err = svc.ListProjects(f.ctx, ProjectListQuery{PriceMax: &ceiling})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.NotNil(t, page.Items)
}

func TestListUnitsPaging(t *testing.T) {
	f := newFixture(t)
	svc := NewReadModelService(f.log, f.repo, nil, "en")
	p := testutil.SeedProject(t, f.ctx, f.db, "tower", nil)
	for _, n := range []string{"101", "102", "103"} {
		testutil.SeedUnit(t, f.ctx, f.db, p.ID, n, 2)
	}

	page, err := svc.ListUnits(f.ctx, UnitListQuery{ProjectID: &p.ID, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Limit)
}
