package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/data/repos/testutil"
)

func TestReplaceAdditionalExpensesEnvelope(t *testing.T) {
	api := newTestAPI(t)
	p := testutil.SeedProject(t, api.ctx, api.db, "fees", nil)
	admin := api.login(t, "admin@example.com", "ADMIN")
	path := "/api/projects/" + p.ID.String() + "/purchase-conditions/additional-expenses"

	rec, body := api.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []any{}, body["data"])

	two := map[string]any{"expenses": []map[string]any{
		{"nameOfExpenses": "DLD fee", "costOfExpenses": 4000},
		{"nameOfExpenses": "Agency fee", "costOfExpenses": 2000},
	}}
	rec, body = api.do(t, http.MethodPost, path, admin, two)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, body["data"], 2)

	one := map[string]any{"expenses": []map[string]any{{"nameOfExpenses": "Service charge", "costOfExpenses": 1500}}}
	rec, body = api.do(t, http.MethodPost, path, admin, one)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Service charge", data[0].(map[string]any)["nameOfExpenses"])

	bad := map[string]any{"expenses": []map[string]any{{"costOfExpenses": 10}}}
	rec, body = api.do(t, http.MethodPost, path, admin, bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["fields"], "expenses[0].nameOfExpenses")

	rec, body = api.do(t, http.MethodPost, path, admin, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["fields"], "expenses")

	_, body = api.do(t, http.MethodGet, path, "", nil)
	assert.Len(t, body["data"], 1)

	rec, body = api.do(t, http.MethodPost, path, admin, map[string]any{"expenses": []any{}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []any{}, body["data"])

	rec, body = api.do(t, http.MethodGet, "/api/projects/missing/purchase-conditions/additional-expenses", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
}
