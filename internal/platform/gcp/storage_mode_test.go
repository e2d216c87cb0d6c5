package gcp

import "testing"

func TestStorageConfigFromEnvDefaultsToGCS(t *testing.T) {
	t.Setenv("OBJECT_STORAGE_MODE", "")
	t.Setenv("STORAGE_EMULATOR_HOST", "")
	t.Setenv("GCS_BUCKET_NAME", "estate-media")

	cfg, err := StorageConfigFromEnv()
	if err != nil {
		t.Fatalf("StorageConfigFromEnv: %v", err)
	}
	if cfg.Mode != StorageModeGCS {
		t.Fatalf("mode: want=%q got=%q", StorageModeGCS, cfg.Mode)
	}
}

func TestStorageConfigFromEnvEmulatorHostImpliesEmulator(t *testing.T) {
	t.Setenv("OBJECT_STORAGE_MODE", "")
	t.Setenv("STORAGE_EMULATOR_HOST", "http://fake-gcs:4443/")
	t.Setenv("GCS_BUCKET_NAME", "estate-media")

	cfg, err := StorageConfigFromEnv()
	if err != nil {
		t.Fatalf("StorageConfigFromEnv: %v", err)
	}
	if cfg.Mode != StorageModeEmulator || cfg.EmulatorHost != "http://fake-gcs:4443" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestStorageConfigFromEnvRejectsBadInput(t *testing.T) {
	cases := []struct {
		name, mode, host, bucket string
	}{
		{"unknown mode", "s3", "", "estate-media"},
		{"emulator without host", "gcs_emulator", "", "estate-media"},
		{"relative emulator host", "gcs_emulator", "fake-gcs:4443", "estate-media"},
		{"missing bucket", "gcs", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("OBJECT_STORAGE_MODE", tc.mode)
			t.Setenv("STORAGE_EMULATOR_HOST", tc.host)
			t.Setenv("GCS_BUCKET_NAME", tc.bucket)
			if _, err := StorageConfigFromEnv(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
