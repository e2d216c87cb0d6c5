package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/access"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type tokenTable map[string]*access.Principal

func (t tokenTable) Authenticate(_ context.Context, token string) (*access.Principal, uuid.UUID, error) {
	p, ok := t[token]
	if !ok {
		return nil, uuid.Nil, apierr.Unauthorized()
	}
	return p, uuid.New(), nil
}

type assigned map[uuid.UUID]bool

func (a assigned) IsAssigned(_ context.Context, _ *gorm.DB, _, projectID uuid.UUID) (bool, error) {
	return a[projectID], nil
}

type stubScopes struct{ units map[uuid.UUID]uuid.UUID }

func (s stubScopes) Project(_ context.Context, key string) ([]uuid.UUID, error) {
	id, err := uuid.Parse(key)
	if err != nil {
		return nil, nil
	}
	return []uuid.UUID{id}, nil
}

func (s stubScopes) Unit(_ context.Context, _ string) ([]uuid.UUID, error) { return nil, nil }

func (s stubScopes) Units(_ context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, id := range ids {
		if p, ok := s.units[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s stubScopes) Building(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) { return nil, nil }

func TestRequireAuthAndGate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	table, err := access.DefaultTable()
	require.NoError(t, err)

	mine, theirs := uuid.New(), uuid.New()
	unitMine, unitTheirs := uuid.New(), uuid.New()
	log := logger.Nop()
	authMW := NewAuthMiddleware(log, tokenTable{
		"admin":   {UserID: uuid.New(), Role: access.RoleAdmin},
		"manager": {UserID: uuid.New(), Role: access.RoleManager},
		"user":    {UserID: uuid.New(), Role: access.RoleUser},
	})
	gateMW := NewGateMiddleware(log, access.NewGate(log, table, assigned{mine: true}), stubScopes{
		units: map[uuid.UUID]uuid.UUID{unitMine: mine, unitTheirs: theirs},
	})

	var seenBody string
	r := gin.New()
	api := r.Group("/api", authMW.RequireAuth())
	api.POST("/currencies", gateMW.Require(access.ResourceCurrencies, access.ActionCreate, nil), func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		c.String(http.StatusOK, rd.Role)
	})
	api.PUT("/projects/:id", gateMW.Require(access.ResourceProjects, access.ActionEdit, gateMW.ProjectParam("id")), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	api.POST("/units/bulk-delete", gateMW.Require(access.ResourceUnits, access.ActionDelete, gateMW.UnitIDsInBody()), func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		seenBody = string(raw)
		c.Status(http.StatusOK)
	})

	do := func(method, path, token, body string) int {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, do(http.MethodPost, "/api/currencies", "", "{}"))
	assert.Equal(t, http.StatusUnauthorized, do(http.MethodPost, "/api/currencies", "stale", "{}"))
	assert.Equal(t, http.StatusForbidden, do(http.MethodPost, "/api/currencies", "user", "{}"))
	assert.Equal(t, http.StatusOK, do(http.MethodPost, "/api/currencies", "admin", "{}"))

	assert.Equal(t, http.StatusOK, do(http.MethodPut, "/api/projects/"+mine.String(), "manager", "{}"))
	assert.Equal(t, http.StatusForbidden, do(http.MethodPut, "/api/projects/"+theirs.String(), "manager", "{}"))
	assert.Equal(t, http.StatusForbidden, do(http.MethodPut, "/api/projects/unknown-slug", "manager", "{}"))

	body := `{"ids":["` + unitMine.String() + `"]}`
	assert.Equal(t, http.StatusOK, do(http.MethodPost, "/api/units/bulk-delete", "manager", body))
	assert.Equal(t, body, seenBody)
	both := `{"ids":["` + unitMine.String() + `","` + unitTheirs.String() + `"]}`
	assert.Equal(t, http.StatusForbidden, do(http.MethodPost, "/api/units/bulk-delete", "manager", both))
}

func TestProjectInBodyHandsFullBodyToHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	table, err := access.DefaultTable()
	require.NoError(t, err)

	mine := uuid.New()
	log := logger.Nop()
	authMW := NewAuthMiddleware(log, tokenTable{
		"admin":   {UserID: uuid.New(), Role: access.RoleAdmin},
		"manager": {UserID: uuid.New(), Role: access.RoleManager},
	})
	gateMW := NewGateMiddleware(log, access.NewGate(log, table, assigned{mine: true}), stubScopes{})

	var seen int
	r := gin.New()
	r.POST("/api/units/import", authMW.RequireAuth(), gateMW.Require(access.ResourceImports, access.ActionCreate, gateMW.ProjectInBody()), func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		require.NoError(t, err)
		seen = len(raw)
		c.Status(http.StatusOK)
	})

	do := func(token, body string) int {
		seen = 0
		req := httptest.NewRequest(http.MethodPost, "/api/units/import", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	small := `{"projectId":"` + mine.String() + `","units":[]}`
	assert.Equal(t, http.StatusOK, do("manager", small))
	assert.Equal(t, len(small), seen)

	long := `{"projectId":"` + mine.String() + `","source":"` + strings.Repeat("x", maxPeekBytes) + `"}`
	assert.Equal(t, http.StatusOK, do("admin", long))
	assert.Equal(t, len(long), seen, "handler must receive the bytes past the peek window")

	// The project cannot be read from an oversized body, so scoped roles are refused.
	assert.Equal(t, http.StatusForbidden, do("manager", long))
	assert.Zero(t, seen)
}
