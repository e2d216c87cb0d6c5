package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
)

func render(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestRespondErrorHidesUnclassified(t *testing.T) {
	rec, body := render(t, func(c *gin.Context) { RespondError(c, errors.New("dial tcp: refused")) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", body["error"])
	assert.Equal(t, apierr.CodeServer, body["code"])
}

func TestRespondErrorFields(t *testing.T) {
	rec, body := render(t, func(c *gin.Context) { RespondError(c, apierr.ValidationField("code", "is required")) })
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, map[string]any{"code": "is required"}, body["fields"])
}

func TestEnvelope(t *testing.T) {
	rec, body := render(t, func(c *gin.Context) { RespondEnvelope(c, []int{1}) })
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []any{float64(1)}, body["data"])

	rec, body = render(t, func(c *gin.Context) { RespondEnvelopeError(c, apierr.NotFound("project")) })
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "project not found", body["error"])
	_, hasData := body["data"]
	assert.False(t, hasData)
}
