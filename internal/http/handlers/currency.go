package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/estatehub-backend/internal/http/response"
	"github.com/yungbote/estatehub-backend/internal/services"
)

type CurrencyHandler struct {
	currencies services.CurrencyService
}

func NewCurrencyHandler(currencies services.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{currencies: currencies}
}

func (h *CurrencyHandler) List(c *gin.Context) {
	out, err := h.currencies.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, out)
}

func (h *CurrencyHandler) Create(c *gin.Context) {
	var in services.CurrencyInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	cur, err := h.currencies.Create(detached(c), in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, cur)
}

func (h *CurrencyHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id", "currency")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var in services.CurrencyInput
	if err := decodeJSON(c, &in); err != nil {
		response.RespondError(c, err)
		return
	}
	cur, err := h.currencies.Update(detached(c), id, in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, cur)
}

func (h *CurrencyHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id", "currency")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.currencies.Delete(detached(c), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}
