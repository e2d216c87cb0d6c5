package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/estatehub-backend/internal/http/response"
	"github.com/yungbote/estatehub-backend/internal/services"
)

type ProjectHandler struct {
	read       services.ReadModelService
	projects   services.ProjectService
	similarity services.SimilarityService
}

func NewProjectHandler(read services.ReadModelService, projects services.ProjectService, similarity services.SimilarityService) *ProjectHandler {
	return &ProjectHandler{read: read, projects: projects, similarity: similarity}
}

// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	q, err := projectListQuery(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	page, err := h.read.ListProjects(c.Request.Context(), q)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, page)
}

// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	detail, err := h.read.ProjectDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var in services.ProjectInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	p, err := h.projects.Create(detached(c), in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, p)
}

// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var in services.ProjectInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	p, err := h.projects.Update(detached(c), c.Param("id"), in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, p)
}

// POST /api/projects/bulk-delete
func (h *ProjectHandler) BulkDelete(c *gin.Context) {
	var in idsRequest
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	n, err := h.projects.BulkDelete(detached(c), in.IDs)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, deletedResponse{Deleted: n})
}

// GET /api/projects/:id/similar?limit=
func (h *ProjectHandler) Similar(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	out, err := h.similarity.SimilarToProject(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// POST /api/projects/:id/vectorize
func (h *ProjectHandler) Vectorize(c *gin.Context) {
	res, err := h.similarity.Vectorize(detached(c), c.Param("id"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, res)
}

// GET /api/similar?q=&limit=
func (h *ProjectHandler) Search(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	out, err := h.similarity.FindSimilar(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

func projectListQuery(c *gin.Context) (services.ProjectListQuery, error) {
	q := services.ProjectListQuery{Status: queryList(c, "status"), City: c.Query("city")}
	var err error
	if q.DeveloperID, err = queryUUID(c, "developerId"); err != nil {
		return q, err
	}
	if q.PriceMin, err = queryDecimal(c, "priceMin"); err != nil {
		return q, err
	}
	if q.PriceMax, err = queryDecimal(c, "priceMax"); err != nil {
		return q, err
	}
	if q.HasAvailableUnits, err = queryBool(c, "hasAvailableUnits"); err != nil {
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
