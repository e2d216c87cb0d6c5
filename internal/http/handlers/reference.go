package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/estatehub-backend/internal/http/response"
	"github.com/yungbote/estatehub-backend/internal/services"
)

type DeveloperHandler struct {
	developers services.DeveloperService
}

func NewDeveloperHandler(developers services.DeveloperService) *DeveloperHandler {
	return &DeveloperHandler{developers: developers}
}

func (h *DeveloperHandler) List(c *gin.Context) {
	out, err := h.developers.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

func (h *DeveloperHandler) Create(c *gin.Context) {
	var in services.DeveloperInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	d, err := h.developers.Create(detached(c), in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, d)
}

func (h *DeveloperHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id", "developer")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var in services.DeveloperInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	d, err := h.developers.Update(detached(c), id, in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, d)
}

func (h *DeveloperHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id", "developer")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.developers.Delete(detached(c), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}

type AmenityHandler struct {
	amenities services.AmenityService
}

func NewAmenityHandler(amenities services.AmenityService) *AmenityHandler {
	return &AmenityHandler{amenities: amenities}
}

func (h *AmenityHandler) List(c *gin.Context) {
	out, err := h.amenities.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

func (h *AmenityHandler) Create(c *gin.Context) {
	var in services.AmenityInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	a, err := h.amenities.Create(detached(c), in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, a)
}
