package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/estatehub-backend/internal/http/response"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/estatehub-backend/internal/services"
)

type AuthHandler struct {
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in services.LoginInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	res, err := h.auth.Login(c.Request.Context(), in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, apierr.Unauthorized())
		return
	}
	sessionID, err := uuid.Parse(rd.SessionID)
	if err != nil {
		response.RespondError(c, apierr.Unauthorized())
		return
	}
	if err := h.auth.Logout(detached(c), sessionID); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	id := callerID(c)
	if id == nil {
		response.RespondError(c, apierr.Unauthorized())
		return
	}
	u, err := h.auth.Me(c.Request.Context(), *id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, u)
}

// GET /api/users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	out, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/users
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var in services.UserInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	u, err := h.auth.CreateUser(detached(c), in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, u)
}
