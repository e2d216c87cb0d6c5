package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/estatehub-backend/internal/http/response"
	"github.com/yungbote/estatehub-backend/internal/services"
)

type MessageHandler struct {
	messages services.MessageService
}

func NewMessageHandler(messages services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// GET /api/messages/:locale
func (h *MessageHandler) Get(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=300")
	response.RespondOK(c, h.messages.Load(c.Param("locale")))
}

// GET /api/messages
func (h *MessageHandler) Locales(c *gin.Context) {
	response.RespondOK(c, gin.H{"locales": h.messages.Locales()})
}
