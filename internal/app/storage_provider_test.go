package app

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/yungbote/estatehub-backend/internal/platform/gcp"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

func stubStorageConstructors(t *testing.T) {
	t.Helper()
	origCfg, origStore := storageConfigFromEnv, newBucketStore
	t.Cleanup(func() {
		storageConfigFromEnv = origCfg
		newBucketStore = origStore
	})
	storageConfigFromEnv = func() (gcp.StorageConfig, error) {
		return gcp.StorageConfig{Mode: gcp.StorageModeEmulator, Bucket: "media", EmulatorHost: "http://fake-gcs:4443"}, nil
	}
}

func TestResolveObjectStoreDisabledWithoutBucket(t *testing.T) {
	t.Setenv("GCS_BUCKET_NAME", "")
	store, err := resolveObjectStore(context.Background(), logger.Nop(), nil)
	if err != nil || store != nil {
		t.Fatalf("expected disabled storage, got store=%v err=%v", store, err)
	}
}

func TestResolveObjectStoreInvalidConfig(t *testing.T) {
	t.Setenv("GCS_BUCKET_NAME", "media")
	stubStorageConstructors(t)
	storageConfigFromEnv = func() (gcp.StorageConfig, error) {
		return gcp.StorageConfig{Mode: gcp.StorageModeEmulator, Bucket: "media"}, errors.New("requires STORAGE_EMULATOR_HOST")
	}

	_, err := resolveObjectStore(context.Background(), logger.Nop(), nil)
	if code := storageProviderBootstrapErrorCode(err); code != StorageProviderBootstrapErrorInvalidConfig {
		t.Fatalf("code: want=%s got=%s", StorageProviderBootstrapErrorInvalidConfig, code)
	}
	var bootErr *StorageProviderBootstrapError
	if !errors.As(err, &bootErr) || bootErr.Mode != string(gcp.StorageModeEmulator) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResolveObjectStoreConnectFailed(t *testing.T) {
	t.Setenv("GCS_BUCKET_NAME", "media")
	stubStorageConstructors(t)
	want := errors.New("dial tcp: connection refused")
	newBucketStore = func(context.Context, *logger.Logger, gcp.StorageConfig) (gcp.ObjectStore, error) {
		return nil, want
	}

	_, err := resolveObjectStore(context.Background(), logger.Nop(), nil)
	if !errors.Is(err, want) {
		t.Fatalf("expected wrapped cause, got=%v", err)
	}
	if code := storageProviderBootstrapErrorCode(err); code != StorageProviderBootstrapErrorConnectFailed {
		t.Fatalf("code: got=%s", code)
	}
}

func TestResolveObjectStoreSelected(t *testing.T) {
	t.Setenv("GCS_BUCKET_NAME", "media")
	stubStorageConstructors(t)
	inner := &testObjectStore{}
	newBucketStore = func(_ context.Context, _ *logger.Logger, cfg gcp.StorageConfig) (gcp.ObjectStore, error) {
		if cfg.EmulatorHost != "http://fake-gcs:4443" {
			t.Fatalf("emulator host: got=%q", cfg.EmulatorHost)
		}
		return inner, nil
	}

	store, err := resolveObjectStore(context.Background(), logger.Nop(), nil)
	if err != nil {
		t.Fatalf("resolveObjectStore: %v", err)
	}
	if _, err := store.PutObject(context.Background(), "projects/p/media/a.jpg", nil, "image/jpeg"); err != nil {
		t.Fatalf("PutObject: %v", err)
	}
	if inner.puts != 1 {
		t.Fatalf("underlying store not called")
	}
}

type testObjectStore struct{ puts int }

func (s *testObjectStore) PutObject(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	s.puts++
	return s.PublicURL(key), nil
}

func (s *testObjectStore) DeleteObject(context.Context, string) error { return nil }

func (s *testObjectStore) PublicURL(key string) string { return "http://fake-gcs:4443/media/" + key }
