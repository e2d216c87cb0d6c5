package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/estatehub-backend/internal/http/response"
	"github.com/yungbote/estatehub-backend/internal/services"
)

type AssignmentHandler struct {
	assignments services.AssignmentService
}

func NewAssignmentHandler(assignments services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

func (h *AssignmentHandler) List(c *gin.Context) {
	out, err := h.assignments.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

func (h *AssignmentHandler) Assign(c *gin.Context) {
	var in services.AssignmentInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.assignments.Assign(detached(c), c.Param("id"), in.UserID); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func (h *AssignmentHandler) Unassign(c *gin.Context) {
	userID, err := pathID(c, "userId", "assignment")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.assignments.Unassign(detached(c), c.Param("id"), userID); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}
