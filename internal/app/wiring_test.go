package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/testutil"
	server "github.com/yungbote/estatehub-backend/internal/http"
	"github.com/yungbote/estatehub-backend/internal/observability"
	"github.com/yungbote/estatehub-backend/internal/platform/redis"
)

func TestRouterWiring(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)
	cfg := Config{JWTSecretKey: "wiring-secret", DefaultLocale: "en", VectorProvider: VectorProviderNone}
	metrics := observability.NewMetrics()

	set := repos.NewSet(db, log)
	svc, err := wireServices(db, log, cfg, set, Clients{Sessions: redis.NewMemorySessionStore(time.Hour)})
	require.NoError(t, err)
	routerCfg, err := wireRouterConfig(db, log, cfg, metrics, set, svc)
	require.NoError(t, err)
	engine := server.NewRouter(routerCfg)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/healthcheck")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = get("/api/projects")
	assert.Equal(t, http.StatusOK, rec.Code)

	// Similarity is disabled without a vector provider.
	rec = get("/api/similar?q=sea+view")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get("/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `estatehub_api_requests_total{method="GET",route="/api/projects",status="200"} 1`)
}

func TestBootstrapAdminIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	cfg := Config{JWTSecretKey: "wiring-secret", DefaultLocale: "en"}
	set := repos.NewSet(db, log)
	svc, err := wireServices(db, log, cfg, set, Clients{Sessions: redis.NewMemorySessionStore(time.Hour)})
	require.NoError(t, err)

	ctx := t.Context()
	require.NoError(t, svc.Auth.BootstrapAdmin(ctx, "Admin@Example.com", "change-me-now"))
	require.NoError(t, svc.Auth.BootstrapAdmin(ctx, "admin@example.com", "change-me-now"))

	users, err := svc.Auth.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@example.com", users[0].Email)
}
