package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	"github.com/yungbote/estatehub-backend/internal/data/repos/testutil"
)

var usd = map[string]any{"code": "usd", "symbol": "$", "name": "US Dollar", "rate": 1, "isBaseCurrency": true}

func TestCreateCurrencyRequiresPermission(t *testing.T) {
	api := newTestAPI(t)
	user := api.login(t, "user@example.com", "USER")

	rec, _ := api.do(t, http.MethodPost, "/api/currencies", "", usd)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := api.do(t, http.MethodPost, "/api/currencies", user, usd)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", body["code"])

	n, err := api.repo.Currency.Count(api.ctx, nil, gateway.Filter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAdminCreatesBaseCurrency(t *testing.T) {
	api := newTestAPI(t)
	previous := testutil.SeedCurrency(t, api.ctx, api.db, "EUR", true)
	admin := api.login(t, "admin@example.com", "ADMIN")

	rec, body := api.do(t, http.MethodPost, "/api/currencies", admin, usd)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "USD", body["code"])
	assert.Equal(t, true, body["isBaseCurrency"])

	eur, err := api.repo.Currency.Find(api.ctx, nil, gateway.ByID(previous.ID))
	require.NoError(t, err)
	assert.False(t, eur.IsBaseCurrency)

	rec, body = api.do(t, http.MethodPost, "/api/currencies", admin, usd)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", body["code"])
}
