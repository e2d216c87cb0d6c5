package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/estatehub-backend/internal/http/response"
	"github.com/yungbote/estatehub-backend/internal/services"
)

type UnitHandler struct {
	read    services.ReadModelService
	units   services.UnitService
	imports services.ImportService
	export  services.ExportService
}

func NewUnitHandler(read services.ReadModelService, units services.UnitService, imports services.ImportService, export services.ExportService) *UnitHandler {
	return &UnitHandler{read: read, units: units, imports: imports, export: export}
}

// GET /api/units
func (h *UnitHandler) List(c *gin.Context) {
	q, err := unitListQuery(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	page, err := h.read.ListUnits(c.Request.Context(), q)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /api/units/:id
func (h *UnitHandler) Get(c *gin.Context) {
	detail, err := h.read.UnitDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

// POST /api/units
func (h *UnitHandler) Create(c *gin.Context) {
	var in services.UnitInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	u, err := h.units.Create(detached(c), in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, u)
}

// PUT /api/units/:id
func (h *UnitHandler) Update(c *gin.Context) {
	var in services.UnitInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	u, err := h.units.Update(detached(c), c.Param("id"), in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, u)
}

// POST /api/units/bulk-delete
func (h *UnitHandler) BulkDelete(c *gin.Context) {
	var in idsRequest
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	n, err := h.units.BulkDelete(detached(c), in.IDs)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, deletedResponse{Deleted: n})
}

// POST /api/units/import
func (h *UnitHandler) Import(c *gin.Context) {
	var in services.ImportInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	res, err := h.imports.ImportUnits(detached(c), in, callerID(c))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/units/:id/versions
func (h *UnitHandler) Versions(c *gin.Context) {
	versions, err := h.imports.ListVersions(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, versions)
}

// GET /api/projects/:id/units/export
func (h *UnitHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	slug, err := h.export.ExportUnits(c.Request.Context(), c.Param("id"), &buf)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	name := fmt.Sprintf("%s-units-%s.csv", slug, time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func unitListQuery(c *gin.Context) (services.UnitListQuery, error) {
	q := services.UnitListQuery{Status: queryList(c, "status")}
	var err error
	if q.ProjectID, err = queryUUID(c, "projectId"); err != nil {
		return q, err
	}
	if q.BuildingID, err = queryUUID(c, "buildingId"); err != nil {
		return q, err
	}
	if q.Bedrooms, err = queryIntPtr(c, "bedrooms"); err != nil {
		return q, err
	}
	if q.PriceMin, err = queryDecimal(c, "priceMin"); err != nil {
		return q, err
	}
	if q.PriceMax, err = queryDecimal(c, "priceMax"); err != nil {
		return q, err
	}
	if q.Limit, err = queryInt(c, "limit"); err != nil {
		return q, err
	}
	if q.Offset, err = queryInt(c, "offset"); err != nil {
		return q, err
	}
	return q, nil
}
