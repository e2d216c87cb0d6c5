package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/estatehub-backend/internal/http/response"
	"github.com/yungbote/estatehub-backend/internal/services"
)

type BuildingHandler struct {
	read      services.ReadModelService
	buildings services.BuildingService
}

func NewBuildingHandler(read services.ReadModelService, buildings services.BuildingService) *BuildingHandler {
	return &BuildingHandler{read: read, buildings: buildings}
}

// GET /api/projects/:id/buildings
func (h *BuildingHandler) ListForProject(c *gin.Context) {
	out, err := h.read.ListBuildings(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/buildings/:id
func (h *BuildingHandler) Get(c *gin.Context) {
	detail, err := h.read.BuildingDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

// POST /api/projects/:id/buildings
func (h *BuildingHandler) Create(c *gin.Context) {
	var in services.BuildingInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	b, err := h.buildings.Create(detached(c), c.Param("id"), in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, b)
}

// PUT /api/buildings/:id
func (h *BuildingHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id", "building")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var in services.BuildingInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	b, err := h.buildings.Update(detached(c), id, in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, b)
}

// DELETE /api/buildings/:id
func (h *BuildingHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id", "building")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.buildings.Delete(detached(c), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/buildings/:id/floor-plans
func (h *BuildingHandler) CreateFloorPlan(c *gin.Context) {
	id, err := pathID(c, "id", "building")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var in services.FloorPlanInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	fp, err := h.buildings.CreateFloorPlan(detached(c), id, in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, fp)
}

// POST /api/buildings/:id/floor-plans/:floorPlanId/areas
func (h *BuildingHandler) ReplaceAreas(c *gin.Context) {
	id, err := pathID(c, "id", "building")
	if err != nil {
		response.RespondEnvelopeError(c, err)
		return
	}
	floorPlanID, err := pathID(c, "floorPlanId", "floor plan")
	if err != nil {
		response.RespondEnvelopeError(c, err)
		return
	}
	var in services.FloorPlanAreasInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondEnvelopeError(c, err)
		return
	}
	areas, err := h.buildings.ReplaceFloorPlanAreas(detached(c), id, floorPlanID, in)
	if err != nil {
		response.RespondEnvelopeError(c, err)
		return
	}
	response.RespondEnvelope(c, areas)
}

// POST /api/projects/:id/layouts
func (h *BuildingHandler) CreateLayout(c *gin.Context) {
	var in services.LayoutInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	l, err := h.buildings.CreateLayout(detached(c), c.Param("id"), in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, l)
}
