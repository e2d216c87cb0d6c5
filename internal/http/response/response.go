package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
)

type ErrorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Envelope wraps collection-replacement responses.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RespondError renders err as the error body. Unclassified errors become an
// opaque 500.
func RespondError(c *gin.Context, err error) {
	e := apierr.As(err)
	if e == nil {
		e = apierr.Server()
	}
	c.AbortWithStatusJSON(e.Status, ErrorBody{Error: e.Error(), Code: e.Code, Fields: e.Fields})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func RespondEnvelope(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// RespondEnvelopeError keeps the envelope shape on failure. Validation fields
// ride along so forms can highlight rows.
func RespondEnvelopeError(c *gin.Context, err error) {
	e := apierr.As(err)
	if e == nil {
		e = apierr.Server()
	}
	if len(e.Fields) > 0 {
		c.AbortWithStatusJSON(e.Status, gin.H{"success": false, "error": e.Error(), "code": e.Code, "fields": e.Fields})
		return
	}
	c.AbortWithStatusJSON(e.Status, Envelope{Success: false, Error: e.Error()})
}
