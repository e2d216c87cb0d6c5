package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/http/response"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/services"
)

// maxUploadBytes caps a single multipart upload.
const maxUploadBytes = 64 << 20

type MediaHandler struct {
	media services.MediaService
}

func NewMediaHandler(media services.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// POST /api/projects/:id/media (multipart: file, kind, sortOrder)
func (h *MediaHandler) UploadProjectMedia(c *gin.Context) {
	h.upload(c, func(in services.MediaUpload) (*types.Media, error) {
		return h.media.UploadProjectMedia(detached(c), c.Param("id"), in)
	})
}

// DELETE /api/projects/:id/media/:mediaId
func (h *MediaHandler) DeleteProjectMedia(c *gin.Context) {
	h.remove(c, func(mediaID uuid.UUID) error {
		return h.media.DeleteProjectMedia(detached(c), c.Param("id"), mediaID)
	})
}

// POST /api/units/:id/media (multipart: file, kind, sortOrder)
func (h *MediaHandler) UploadUnitMedia(c *gin.Context) {
	h.upload(c, func(in services.MediaUpload) (*types.Media, error) {
		return h.media.UploadUnitMedia(detached(c), c.Param("id"), in)
	})
}

// DELETE /api/units/:id/media/:mediaId
func (h *MediaHandler) DeleteUnitMedia(c *gin.Context) {
	h.remove(c, func(mediaID uuid.UUID) error {
		return h.media.DeleteUnitMedia(detached(c), c.Param("id"), mediaID)
	})
}

// POST /api/buildings/:id/media (multipart: file, kind, sortOrder)
func (h *MediaHandler) UploadBuildingMedia(c *gin.Context) {
	buildingID, err := pathID(c, "id", "building")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	h.upload(c, func(in services.MediaUpload) (*types.Media, error) {
		return h.media.UploadBuildingMedia(detached(c), buildingID, in)
	})
}

// DELETE /api/buildings/:id/media/:mediaId
func (h *MediaHandler) DeleteBuildingMedia(c *gin.Context) {
	buildingID, err := pathID(c, "id", "building")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	h.remove(c, func(mediaID uuid.UUID) error {
		return h.media.DeleteBuildingMedia(detached(c), buildingID, mediaID)
	})
}

func (h *MediaHandler) upload(c *gin.Context, store func(services.MediaUpload) (*types.Media, error)) {
	up, closeFn, err := formUpload(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	defer closeFn()
	sortOrder := 0
	if raw := strings.TrimSpace(c.PostForm("sortOrder")); raw != "" {
		if sortOrder, err = strconv.Atoi(raw); err != nil {
			response.RespondError(c, apierr.ValidationField("sortOrder", "must be an integer"))
			return
		}
	}
	m, err := store(services.MediaUpload{
		Upload:    up,
		Kind:      types.MediaKind(strings.ToUpper(strings.TrimSpace(c.PostForm("kind")))),
		SortOrder: sortOrder,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, m)
}

func (h *MediaHandler) remove(c *gin.Context, del func(uuid.UUID) error) {
	mediaID, err := pathID(c, "mediaId", "media")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := del(mediaID); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}

// POST /api/projects/:id/documents (multipart: file, title)
func (h *MediaHandler) UploadDocument(c *gin.Context) {
	up, closeFn, err := formUpload(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	defer closeFn()
	d, err := h.media.UploadDocument(detached(c), c.Param("id"), services.DocumentUpload{
		Upload: up,
		Title:  c.PostForm("title"),
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, d)
}

// DELETE /api/projects/:id/documents/:documentId
func (h *MediaHandler) DeleteDocument(c *gin.Context) {
	documentID, err := pathID(c, "documentId", "document")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := h.media.DeleteDocument(detached(c), c.Param("id"), documentID); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func formUpload(c *gin.Context) (services.Upload, func(), error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return services.Upload{}, nil, apierr.ValidationField("file", "exceeds the upload limit")
		}
		return services.Upload{}, nil, apierr.ValidationField("file", "is required")
	}
	f, err := fh.Open()
	if err != nil {
		return services.Upload{}, nil, apierr.ValidationField("file", "could not be read")
	}
	return services.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	}, func() { _ = f.Close() }, nil
}
