package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/estatehub-backend/internal/http/response"
	"github.com/yungbote/estatehub-backend/internal/services"
)

// PurchaseConditionsHandler serves the four child collections of a project's
// purchase conditions. Every response uses the success envelope.
type PurchaseConditionsHandler struct {
	svc services.PurchaseConditionsService
}

func NewPurchaseConditionsHandler(svc services.PurchaseConditionsService) *PurchaseConditionsHandler {
	return &PurchaseConditionsHandler{svc: svc}
}

func list[T any](fetch func(ctx context.Context, projectKey string) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := fetch(c.Request.Context(), c.Param("id"))
		if err != nil {
			response.RespondEnvelopeError(c, err)
			return
		}
		response.RespondEnvelope(c, out)
	}
}

func replace[In any, T any](apply func(ctx context.Context, projectKey string, in In) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in In
		if err := decodeJSON(c, &in); err != nil {
			response.RespondEnvelopeError(c, err)
			return
		}
		out, err := apply(detached(c), c.Param("id"), in)
		if err != nil {
			response.RespondEnvelopeError(c, err)
			return
		}
		response.RespondEnvelope(c, out)
	}
}

func (h *PurchaseConditionsHandler) PaymentStages() gin.HandlerFunc {
	return list(h.svc.PaymentStages)
}

func (h *PurchaseConditionsHandler) ReplacePaymentStages() gin.HandlerFunc {
	return replace(h.svc.ReplacePaymentStages)
}

func (h *PurchaseConditionsHandler) AgentCommissions() gin.HandlerFunc {
	return list(h.svc.AgentCommissions)
}

func (h *PurchaseConditionsHandler) ReplaceAgentCommissions() gin.HandlerFunc {
	return replace(h.svc.ReplaceAgentCommissions)
}

func (h *PurchaseConditionsHandler) CashbackBonuses() gin.HandlerFunc {
	return list(h.svc.CashbackBonuses)
}

func (h *PurchaseConditionsHandler) ReplaceCashbackBonuses() gin.HandlerFunc {
	return replace(h.svc.ReplaceCashbackBonuses)
}

func (h *PurchaseConditionsHandler) AdditionalExpenses() gin.HandlerFunc {
	return list(h.svc.AdditionalExpenses)
}

func (h *PurchaseConditionsHandler) ReplaceAdditionalExpenses() gin.HandlerFunc {
	return replace(h.svc.ReplaceAdditionalExpenses)
}
