package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/data/repos/testutil"
	types "github.com/yungbote/estatehub-backend/internal/domain"
)

type memoryObjects struct {
	mu      sync.Mutex
	objects map[string]string
	failPut bool
}

func newMemoryObjects() *memoryObjects { return &memoryObjects{objects: map[string]string{}} }

func (m *memoryObjects) PutObject(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	if m.failPut {
		return "", errors.New("bucket unavailable")
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = string(raw)
	return m.PublicURL(key), nil
}

func (m *memoryObjects) DeleteObject(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryObjects) PublicURL(key string) string { return "https://cdn.example.com/" + key }

func TestProjectMediaLifecycle(t *testing.T) {
	f := newFixture(t)
	objects := newMemoryObjects()
	svc := NewMediaService(f.log, f.repo, objects)
	p := testutil.SeedProject(t, f.ctx, f.db, "gallery", nil)

	m, err := svc.UploadProjectMedia(f.ctx, p.Slug, MediaUpload{Upload: Upload{
		Filename: "facade.JPG",
		Body:     strings.NewReader("jpeg-bytes"),
	}})
	require.NoError(t, err)
	assert.Equal(t, types.MediaKindImage, m.Kind)
	assert.Equal(t, "image/jpeg", m.ContentType)
	assert.True(t, strings.HasPrefix(m.StorageKey, "projects/"+p.ID.String()+"/media/"))
	assert.True(t, strings.HasSuffix(m.StorageKey, ".jpg"))
	assert.Equal(t, "https://cdn.example.com/"+m.StorageKey, m.URL)
	assert.Len(t, objects.objects, 1)

	require.NoError(t, svc.DeleteProjectMedia(f.ctx, p.ID.String(), m.ID))
	assert.Empty(t, objects.objects)

	err = svc.DeleteProjectMedia(f.ctx, p.ID.String(), m.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestMediaUploadValidation(t *testing.T) {
	f := newFixture(t)
	objects := newMemoryObjects()
	svc := NewMediaService(f.log, f.repo, objects)
	p := testutil.SeedProject(t, f.ctx, f.db, "gallery", nil)

	_, err := svc.UploadProjectMedia(f.ctx, p.Slug, MediaUpload{Kind: types.MediaKindVideo, Upload: Upload{Filename: "a.png", ContentType: "image/png", Body: strings.NewReader("x")}})
	assert.Contains(t, fieldsOf(t, err), "file")

	_, err = svc.UploadDocument(f.ctx, p.Slug, DocumentUpload{Upload: Upload{Filename: "run.exe", ContentType: "application/x-msdownload", Body: strings.NewReader("x")}})
	assert.Contains(t, fieldsOf(t, err), "file")

	objects.failPut = true
	_, err = svc.UploadDocument(f.ctx, p.Slug, DocumentUpload{Upload: Upload{Filename: "brochure.pdf", Body: strings.NewReader("%PDF")}})
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))

	_, err = NewMediaService(f.log, f.repo, nil).UploadDocument(f.ctx, p.Slug, DocumentUpload{})
	assert.Equal(t, http.StatusServiceUnavailable, statusOf(t, err))
}

func TestDocumentTitleDefaultsToFilename(t *testing.T) {
	f := newFixture(t)
	svc := NewMediaService(f.log, f.repo, newMemoryObjects())
	p := testutil.SeedProject(t, f.ctx, f.db, "docs", nil)

	d, err := svc.UploadDocument(f.ctx, p.ID.String(), DocumentUpload{Upload: Upload{Filename: "Floor Plans.pdf", Body: strings.NewReader("%PDF")}})
	require.NoError(t, err)
	assert.Equal(t, "Floor Plans", d.Title)
	assert.Equal(t, "application/pdf", d.ContentType)

	err = svc.DeleteDocument(f.ctx, p.ID.String(), uuid.New())
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	require.NoError(t, svc.DeleteDocument(f.ctx, p.ID.String(), d.ID))
}

func TestUnitAndBuildingMedia(t *testing.T) {
	f := newFixture(t)
	objects := newMemoryObjects()
	svc := NewMediaService(f.log, f.repo, objects)
	p := testutil.SeedProject(t, f.ctx, f.db, "gallery", nil)
	u := testutil.SeedUnit(t, f.ctx, f.db, p.ID, "101", 2)
	b := testutil.SeedBuilding(t, f.ctx, f.db, p.ID, "Tower A")

	um, err := svc.UploadUnitMedia(f.ctx, u.Slug, MediaUpload{Upload: Upload{Filename: "living.png", Body: strings.NewReader("png")}})
	require.NoError(t, err)
	assert.Equal(t, types.OwnerUnit, um.OwnerType)
	assert.Equal(t, u.ID, um.OwnerID)
	assert.True(t, strings.HasPrefix(um.StorageKey, "units/"+u.ID.String()+"/media/"))

	bm, err := svc.UploadBuildingMedia(f.ctx, b.ID, MediaUpload{Upload: Upload{Filename: "tour.mp4", ContentType: "video/mp4", Body: strings.NewReader("mp4")}})
	require.NoError(t, err)
	assert.Equal(t, types.OwnerBuilding, bm.OwnerType)
	assert.Equal(t, types.MediaKindVideo, bm.Kind)
	assert.True(t, strings.HasPrefix(bm.StorageKey, "buildings/"+b.ID.String()+"/media/"))
	assert.Len(t, objects.objects, 2)

	// Media is only reachable through its own owner.
	err = svc.DeleteBuildingMedia(f.ctx, b.ID, um.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	err = svc.DeleteProjectMedia(f.ctx, p.Slug, bm.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	require.NoError(t, svc.DeleteUnitMedia(f.ctx, u.ID.String(), um.ID))
	require.NoError(t, svc.DeleteBuildingMedia(f.ctx, b.ID, bm.ID))
	assert.Empty(t, objects.objects)

	_, err = svc.UploadUnitMedia(f.ctx, "no-such-unit", MediaUpload{Upload: Upload{Filename: "a.png", Body: strings.NewReader("x")}})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	_, err = svc.UploadBuildingMedia(f.ctx, uuid.New(), MediaUpload{Upload: Upload{Filename: "a.png", Body: strings.NewReader("x")}})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
