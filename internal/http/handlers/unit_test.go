package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/data/repos/testutil"
)

func TestGetUnknownUnitIsNotFound(t *testing.T) {
	api := newTestAPI(t)
	p := testutil.SeedProject(t, api.ctx, api.db, "tower", nil)
	testutil.SeedLocation(t, api.ctx, api.db, p.ID, "Dubai")
	testutil.SeedUnit(t, api.ctx, api.db, p.ID, "101", 2)

	for _, key := range []string{uuid.NewString(), "unit-999-missing"} {
		rec, body := api.do(t, http.MethodGet, "/api/units/"+key, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "unit not found", body["error"])
		assert.Equal(t, "not_found", body["code"])
	}
}

func TestGetUnitByIDAndSlug(t *testing.T) {
	api := newTestAPI(t)
	p := testutil.SeedProject(t, api.ctx, api.db, "tower", nil)
	u := testutil.SeedUnit(t, api.ctx, api.db, p.ID, "101", 2)

	_, byID := api.do(t, http.MethodGet, "/api/units/"+u.ID.String(), "", nil)
	_, bySlug := api.do(t, http.MethodGet, "/api/units/"+u.Slug, "", nil)
	require.NotNil(t, byID)
	for _, key := range []string{"id", "slug", "number", "price", "status", "bedrooms"} {
		assert.Equal(t, byID[key], bySlug[key], key)
	}
}

func TestUpdateUnknownUnit(t *testing.T) {
	api := newTestAPI(t)
	p := testutil.SeedProject(t, api.ctx, api.db, "tower", nil)
	admin := api.login(t, "admin@example.com", "ADMIN")
	agent := api.login(t, "agent@example.com", "AGENT")
	payload := map[string]any{"projectId": p.ID, "number": "101"}

	rec, _ := api.do(t, http.MethodPut, "/api/units/"+uuid.NewString(), admin, payload)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = api.do(t, http.MethodPut, "/api/units/"+uuid.NewString(), agent, payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
