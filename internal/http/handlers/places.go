package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/estatehub-backend/internal/http/response"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/services"
)

type PlacesHandler struct {
	places services.PlacesService
}

func NewPlacesHandler(places services.PlacesService) *PlacesHandler {
	return &PlacesHandler{places: places}
}

// GET /api/places/nearby?lat=&lng=&radius=&type=
func (h *PlacesHandler) Nearby(c *gin.Context) {
	var q services.NearbyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.RespondError(c, apierr.ValidationField("query", err.Error()))
		return
	}
	out, err := h.places.Nearby(c.Request.Context(), q)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/projects/:id/nearby?radius=&type=
func (h *PlacesHandler) NearProject(c *gin.Context) {
	radius, err := queryInt(c, "radius")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if radius < 0 {
		response.RespondError(c, apierr.ValidationField("radius", "must not be negative"))
		return
	}
	out, err := h.places.NearProject(c.Request.Context(), c.Param("id"), uint(radius), c.Query("type"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}
