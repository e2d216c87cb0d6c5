package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/estatehub-backend/internal/access"
	"github.com/yungbote/estatehub-backend/internal/http/response"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

const principalKey = "principal"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*access.Principal, uuid.UUID, error)
}

type AuthMiddleware struct {
	log  *logger.Logger
	auth Authenticator
}

func NewAuthMiddleware(log *logger.Logger, auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("Middleware", "AuthMiddleware"), auth: auth}
}

// RequireAuth resolves the bearer token to a live session. Missing, invalid or
// expired sessions all answer 401.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.RespondError(c, apierr.Unauthorized())
			return
		}
		p, sessionID, err := am.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			am.log.Debug("authentication rejected", "path", c.FullPath(), "error", err)
			response.RespondError(c, err)
			return
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			UserID:    p.UserID,
			SessionID: sessionID.String(),
			Role:      string(p.Role),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Set(principalKey, p)
		c.Next()
	}
}

// PrincipalFrom returns the caller stored by RequireAuth, or nil.
func PrincipalFrom(c *gin.Context) *access.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*access.Principal)
	return p
}

func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
