package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/estatehub-backend/internal/data/repos"
	"github.com/yungbote/estatehub-backend/internal/data/repos/gateway"
	types "github.com/yungbote/estatehub-backend/internal/domain"
	"github.com/yungbote/estatehub-backend/internal/platform/apierr"
	"github.com/yungbote/estatehub-backend/internal/platform/gcp"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

var errStorageDisabled = apierr.New(http.StatusServiceUnavailable, "unavailable", errors.New("object storage is not configured"))

var documentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"image/jpeg": true,
	"image/png":  true,
}

// Upload is one file pulled off a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type MediaUpload struct {
	Upload
	Kind      types.MediaKind
	SortOrder int
}

type DocumentUpload struct {
	Upload
	Title string
}

type MediaService interface {
	UploadProjectMedia(ctx context.Context, projectKey string, in MediaUpload) (*types.Media, error)
	DeleteProjectMedia(ctx context.Context, projectKey string, mediaID uuid.UUID) error
	UploadUnitMedia(ctx context.Context, unitKey string, in MediaUpload) (*types.Media, error)
	DeleteUnitMedia(ctx context.Context, unitKey string, mediaID uuid.UUID) error
	UploadBuildingMedia(ctx context.Context, buildingID uuid.UUID, in MediaUpload) (*types.Media, error)
	DeleteBuildingMedia(ctx context.Context, buildingID, mediaID uuid.UUID) error
	UploadDocument(ctx context.Context, projectKey string, in DocumentUpload) (*types.Document, error)
	DeleteDocument(ctx context.Context, projectKey string, documentID uuid.UUID) error
}

type mediaService struct {
	log     *logger.Logger
	repos   repos.Set
	objects gcp.ObjectStore
}

func NewMediaService(log *logger.Logger, set repos.Set, objects gcp.ObjectStore) MediaService {
	return &mediaService{log: log.With("service", "MediaService"), repos: set, objects: objects}
}

func (s *mediaService) UploadProjectMedia(ctx context.Context, projectKey string, in MediaUpload) (*types.Media, error) {
	if s.objects == nil {
		return nil, errStorageDisabled
	}
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(projectKey))
	if err != nil {
		return nil, classify(s.log, err, "project", "upload_media", projectKey)
	}
	return s.uploadMedia(ctx, types.OwnerProject, p.ID, in)
}

func (s *mediaService) DeleteProjectMedia(ctx context.Context, projectKey string, mediaID uuid.UUID) error {
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(projectKey))
	if err != nil {
		return classify(s.log, err, "project", "delete_media", projectKey)
	}
	return s.deleteMedia(ctx, types.OwnerProject, p.ID, mediaID)
}

func (s *mediaService) UploadUnitMedia(ctx context.Context, unitKey string, in MediaUpload) (*types.Media, error) {
	if s.objects == nil {
		return nil, errStorageDisabled
	}
	u, err := s.repos.Unit.GetByIDOrSlug(ctx, nil, strings.TrimSpace(unitKey))
	if err != nil {
		return nil, classify(s.log, err, "unit", "upload_media", unitKey)
	}
	return s.uploadMedia(ctx, types.OwnerUnit, u.ID, in)
}

func (s *mediaService) DeleteUnitMedia(ctx context.Context, unitKey string, mediaID uuid.UUID) error {
	u, err := s.repos.Unit.GetByIDOrSlug(ctx, nil, strings.TrimSpace(unitKey))
	if err != nil {
		return classify(s.log, err, "unit", "delete_media", unitKey)
	}
	return s.deleteMedia(ctx, types.OwnerUnit, u.ID, mediaID)
}

func (s *mediaService) UploadBuildingMedia(ctx context.Context, buildingID uuid.UUID, in MediaUpload) (*types.Media, error) {
	if s.objects == nil {
		return nil, errStorageDisabled
	}
	b, err := s.repos.Building.Find(ctx, nil, gateway.ByID(buildingID))
	if err != nil {
		return nil, classify(s.log, err, "building", "upload_media", buildingID)
	}
	return s.uploadMedia(ctx, types.OwnerBuilding, b.ID, in)
}

func (s *mediaService) DeleteBuildingMedia(ctx context.Context, buildingID, mediaID uuid.UUID) error {
	if _, err := s.repos.Building.Find(ctx, nil, gateway.ByID(buildingID)); err != nil {
		return classify(s.log, err, "building", "delete_media", buildingID)
	}
	return s.deleteMedia(ctx, types.OwnerBuilding, buildingID, mediaID)
}

// uploadMedia stores the file under the owner's prefix and records it. The
// object is removed again if the row cannot be written.
func (s *mediaService) uploadMedia(ctx context.Context, owner types.OwnerType, ownerID uuid.UUID, in MediaUpload) (*types.Media, error) {
	ct := contentTypeOf(in.Upload)
	kind, err := mediaKind(in.Kind, ct)
	if err != nil {
		return nil, err
	}
	key := objectKey(string(owner)+"s", ownerID, "media", in.Filename)
	url, err := s.objects.PutObject(ctx, key, in.Body, ct)
	if err != nil {
		s.log.Error("media upload failed", "owner_type", owner, "owner_id", ownerID, "key", key, "error", err)
		return nil, apierr.Server()
	}
	m := &types.Media{
		OwnerType:   owner,
		OwnerID:     ownerID,
		URL:         url,
		StorageKey:  key,
		ContentType: ct,
		Kind:        kind,
		SortOrder:   in.SortOrder,
	}
	if _, err := s.repos.Media.Create(ctx, nil, []*types.Media{m}); err != nil {
		s.discard(ctx, key)
		return nil, classify(s.log, err, "media", "create", ownerID)
	}
	return m, nil
}

func (s *mediaService) deleteMedia(ctx context.Context, owner types.OwnerType, ownerID, mediaID uuid.UUID) error {
	scope := gateway.Filter{Eq: map[string]any{"id": mediaID, "owner_type": owner, "owner_id": ownerID}}
	m, err := s.repos.Media.Find(ctx, nil, scope)
	if err != nil {
		return classify(s.log, err, "media", "delete", mediaID)
	}
	if _, err := s.repos.Media.DeleteMany(ctx, nil, scope); err != nil {
		return classify(s.log, err, "media", "delete", mediaID)
	}
	s.discard(ctx, m.StorageKey)
	return nil
}

func (s *mediaService) UploadDocument(ctx context.Context, projectKey string, in DocumentUpload) (*types.Document, error) {
	if s.objects == nil {
		return nil, errStorageDisabled
	}
	ct := contentTypeOf(in.Upload)
	if !documentTypes[ct] {
		return nil, apierr.ValidationField("file", fmt.Sprintf("unsupported document type %q", ct))
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = strings.TrimSuffix(path.Base(in.Filename), path.Ext(in.Filename))
	}
	if title == "" || title == "." {
		return nil, apierr.ValidationField("title", "is required")
	}
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(projectKey))
	if err != nil {
		return nil, classify(s.log, err, "project", "upload_document", projectKey)
	}

	key := objectKey("projects", p.ID, "documents", in.Filename)
	url, err := s.objects.PutObject(ctx, key, in.Body, ct)
	if err != nil {
		s.log.Error("document upload failed", "project_id", p.ID, "key", key, "error", err)
		return nil, apierr.Server()
	}
	d := &types.Document{ProjectID: p.ID, Title: title, URL: url, StorageKey: key, ContentType: ct}
	if _, err := s.repos.Document.Create(ctx, nil, []*types.Document{d}); err != nil {
		s.discard(ctx, key)
		return nil, classify(s.log, err, "document", "create", p.ID)
	}
	return d, nil
}

func (s *mediaService) DeleteDocument(ctx context.Context, projectKey string, documentID uuid.UUID) error {
	p, err := s.repos.Project.GetByIDOrSlug(ctx, nil, strings.TrimSpace(projectKey))
	if err != nil {
		return classify(s.log, err, "project", "delete_document", projectKey)
	}
	scope := gateway.Filter{Eq: map[string]any{"id": documentID, "project_id": p.ID}}
	d, err := s.repos.Document.Find(ctx, nil, scope)
	if err != nil {
		return classify(s.log, err, "document", "delete", documentID)
	}
	if _, err := s.repos.Document.DeleteMany(ctx, nil, scope); err != nil {
		return classify(s.log, err, "document", "delete", documentID)
	}
	s.discard(ctx, d.StorageKey)
	return nil
}

func (s *mediaService) discard(ctx context.Context, key string) {
	if s.objects == nil || key == "" {
		return
	}
	if err := s.objects.DeleteObject(ctx, key); err != nil {
		s.log.Warn("object cleanup failed", "key", key, "error", err)
	}
}

// objectKey namespaces by owner and gives every object a fresh name so
// re-uploads never overwrite.
func objectKey(prefix string, ownerID uuid.UUID, kind, filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	return fmt.Sprintf("%s/%s/%s/%s%s", prefix, ownerID, kind, uuid.NewString(), ext)
}

func contentTypeOf(u Upload) string {
	ct := strings.TrimSpace(u.ContentType)
	if ct == "" || ct == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(path.Ext(u.Filename))); byExt != "" {
			ct = byExt
		}
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt
	}
	return ct
}

func mediaKind(requested types.MediaKind, contentType string) (types.MediaKind, error) {
	switch requested {
	case types.MediaKindImage, types.MediaKindPlan:
		if !strings.HasPrefix(contentType, "image/") {
			return "", apierr.ValidationField("file", "must be an image")
		}
		return requested, nil
	case types.MediaKindVideo:
		if !strings.HasPrefix(contentType, "video/") {
			return "", apierr.ValidationField("file", "must be a video")
		}
		return requested, nil
	case "":
		switch {
		case strings.HasPrefix(contentType, "image/"):
			return types.MediaKindImage, nil
		case strings.HasPrefix(contentType, "video/"):
			return types.MediaKindVideo, nil
		}
		return "", apierr.ValidationField("file", fmt.Sprintf("unsupported media type %q", contentType))
	}
	return "", apierr.ValidationField("kind", "must be one of IMAGE VIDEO PLAN")
}
