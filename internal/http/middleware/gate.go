package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/estatehub-backend/internal/access"
	"github.com/yungbote/estatehub-backend/internal/http/response"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
	"github.com/yungbote/estatehub-backend/internal/services"
)

// maxPeekBytes bounds how much of a request body a scope function may buffer.
// It matches the handlers' JSON body cap.
const maxPeekBytes = 8 << 20

// Scope names the projects a request touches. An empty result means the
// route targets no specific project.
type Scope func(c *gin.Context) ([]uuid.UUID, error)

type GateMiddleware struct {
	log    *logger.Logger
	gate   *access.Gate
	scopes services.ScopeResolver
}

func NewGateMiddleware(log *logger.Logger, gate *access.Gate, scopes services.ScopeResolver) *GateMiddleware {
	return &GateMiddleware{log: log.With("Middleware", "GateMiddleware"), gate: gate, scopes: scopes}
}

// Require checks the caller's capability for res/act on every project the
// scope yields. It must run after RequireAuth.
func (gm *GateMiddleware) Require(res access.Resource, act access.Action, scope Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		var projects []uuid.UUID
		if scope != nil {
			ids, err := scope(c)
			if err != nil {
				gm.log.Error("scope resolution failed", "path", c.FullPath(), "error", err)
				response.RespondError(c, err)
				return
			}
			projects = ids
		}
		p := PrincipalFrom(c)
		if len(projects) == 0 {
			projects = []uuid.UUID{uuid.Nil}
		}
		for _, projectID := range projects {
			if err := gm.gate.Authorize(c.Request.Context(), p, res, act, projectID); err != nil {
				response.RespondError(c, err)
				return
			}
		}
		c.Next()
	}
}

func (gm *GateMiddleware) ProjectParam(name string) Scope {
	return func(c *gin.Context) ([]uuid.UUID, error) {
		return gm.scopes.Project(c.Request.Context(), c.Param(name))
	}
}

func (gm *GateMiddleware) UnitParam(name string) Scope {
	return func(c *gin.Context) ([]uuid.UUID, error) {
		return gm.scopes.Unit(c.Request.Context(), c.Param(name))
	}
}

func (gm *GateMiddleware) BuildingParam(name string) Scope {
	return func(c *gin.Context) ([]uuid.UUID, error) {
		id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
		if err != nil {
			return nil, nil
		}
		return gm.scopes.Building(c.Request.Context(), id)
	}
}

// ProjectInBody reads "projectId" from a JSON body.
func (gm *GateMiddleware) ProjectInBody() Scope {
	return func(c *gin.Context) ([]uuid.UUID, error) {
		var body struct {
			ProjectID string `json:"projectId"`
		}
		if !peekJSON(c, &body) {
			return nil, nil
		}
		return gm.scopes.Project(c.Request.Context(), body.ProjectID)
	}
}

// ProjectIDsInBody reads the "ids" list of a project bulk request.
func (gm *GateMiddleware) ProjectIDsInBody() Scope {
	return func(c *gin.Context) ([]uuid.UUID, error) {
		var body struct {
			IDs []uuid.UUID `json:"ids"`
		}
		if !peekJSON(c, &body) {
			return nil, nil
		}
		return body.IDs, nil
	}
}

// UnitIDsInBody maps the "ids" list of a unit bulk request to their projects.
func (gm *GateMiddleware) UnitIDsInBody() Scope {
	return func(c *gin.Context) ([]uuid.UUID, error) {
		var body struct {
			IDs []uuid.UUID `json:"ids"`
		}
		if !peekJSON(c, &body) || len(body.IDs) == 0 {
			return nil, nil
		}
		return gm.scopes.Units(c.Request.Context(), body.IDs)
	}
}

// peekJSON decodes the body leniently and puts it back for the handler.
// Malformed bodies, and bodies longer than maxPeekBytes, report false and are
// left for the handler to reject. The handler always sees the full body.
func peekJSON(c *gin.Context, dst any) bool {
	body := c.Request.Body
	if body == nil {
		return false
	}
	raw, err := io.ReadAll(io.LimitReader(body, maxPeekBytes+1))
	c.Request.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(raw), body), body}
	if err != nil || len(raw) == 0 || len(raw) > maxPeekBytes {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
