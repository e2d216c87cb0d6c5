package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/access"
	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/testutil"
	httpMW "github.com/yungbote/estatehub-backend/internal/http/middleware"
	"github.com/yungbote/estatehub-backend/internal/platform/redis"
	"github.com/yungbote/estatehub-backend/internal/services"
)

type testAPI struct {
	ctx    context.Context
	db     *gorm.DB
	repo   repos.Set
	engine *gin.Engine
	auth   services.AuthService
}

// newTestAPI mounts the handlers under test over an in-memory database with
// real sessions and the default permission table.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)
	set := repos.NewSet(db, log)
	table, err := access.DefaultTable()
	require.NoError(t, err)

	authSvc := services.NewAuthService(db, log, set, redis.NewMemorySessionStore(time.Hour), "handler-test-secret")
	read := services.NewReadModelService(log, set, nil, "en")
	authMW := httpMW.NewAuthMiddleware(log, authSvc)
	gateMW := httpMW.NewGateMiddleware(log, access.NewGate(log, table, set.Assignment), services.NewScopeResolver(log, set))

	projects := NewProjectHandler(read, services.NewProjectService(db, log, set, nil, nil), nil)
	units := NewUnitHandler(read, services.NewUnitService(db, log, set, nil), services.NewImportService(db, log, set), services.NewExportService(log, set, "en"))
	currencies := NewCurrencyHandler(services.NewCurrencyService(db, log, set))
	pc := NewPurchaseConditionsHandler(services.NewPurchaseConditionsService(db, log, set))
	authH := NewAuthHandler(authSvc)

	r := gin.New()
	api := r.Group("/api")
	auth := authMW.RequireAuth()
	api.POST("/auth/login", authH.Login)
	api.GET("/auth/me", auth, authH.Me)
	api.GET("/projects/:id", projects.Get)
	api.PUT("/projects/:id", auth, gateMW.Require(access.ResourceProjects, access.ActionEdit, gateMW.ProjectParam("id")), projects.Update)
	api.GET("/units/:id", units.Get)
	api.PUT("/units/:id", auth, gateMW.Require(access.ResourceUnits, access.ActionEdit, gateMW.UnitParam("id")), units.Update)
	api.GET("/currencies", currencies.List)
	api.POST("/currencies", auth, gateMW.Require(access.ResourceCurrencies, access.ActionCreate, nil), currencies.Create)
	api.GET("/projects/:id/purchase-conditions/additional-expenses", pc.AdditionalExpenses())
	api.POST("/projects/:id/purchase-conditions/additional-expenses", auth, gateMW.Require(access.ResourceProjects, access.ActionEdit, gateMW.ProjectParam("id")), pc.ReplaceAdditionalExpenses())

	return &testAPI{ctx: context.Background(), db: db, repo: set, engine: r, auth: authSvc}
}

// login seeds a user with role and returns a bearer token for it.
func (a *testAPI) login(t *testing.T, email, role string) string {
	t.Helper()
	testutil.SeedUser(t, a.ctx, a.db, email, role, "password-123")
	return a.loginExisting(t, email)
}

func (a *testAPI) loginExisting(t *testing.T, email string) string {
	t.Helper()
	res, err := a.auth.Login(a.ctx, services.LoginInput{Email: email, Password: "password-123"})
	require.NoError(t, err)
	return res.Token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

