package gcp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/yungbote/estatehub-backend/internal/platform/envutil"
)

type StorageMode string

const (
	StorageModeGCS      StorageMode = "gcs"
	StorageModeEmulator StorageMode = "gcs_emulator"
)

// StorageConfig selects between real GCS and a fake-gcs-server style emulator.
type StorageConfig struct {
	Mode          StorageMode
	Bucket        string
	CDNDomain     string
	EmulatorHost  string
	PublicBaseURL string
}

func StorageConfigFromEnv() (StorageConfig, error) {
	cfg := StorageConfig{
		Bucket:        envutil.String("GCS_BUCKET_NAME", ""),
		CDNDomain:     envutil.String("MEDIA_CDN_DOMAIN", ""),
		EmulatorHost:  strings.TrimRight(envutil.String("STORAGE_EMULATOR_HOST", ""), "/"),
		PublicBaseURL: strings.TrimRight(envutil.String("OBJECT_STORAGE_PUBLIC_BASE_URL", ""), "/"),
	}
	switch raw := strings.ToLower(envutil.String("OBJECT_STORAGE_MODE", "")); StorageMode(raw) {
	case "":
		// An emulator host alone implies emulator mode.
		if cfg.EmulatorHost != "" {
			cfg.Mode = StorageModeEmulator
		} else {
			cfg.Mode = StorageModeGCS
		}
	case StorageModeGCS, StorageModeEmulator:
		cfg.Mode = StorageMode(raw)
	default:
		return cfg, fmt.Errorf("invalid OBJECT_STORAGE_MODE=%q (allowed: %q, %q)", raw, StorageModeGCS, StorageModeEmulator)
	}
	return cfg, cfg.Validate()
}

func (c StorageConfig) Validate() error {
	if c.Mode != StorageModeGCS && c.Mode != StorageModeEmulator {
		return fmt.Errorf("invalid storage mode %q", c.Mode)
	}
	if c.Bucket == "" {
		return fmt.Errorf("missing env var GCS_BUCKET_NAME")
	}
	if c.PublicBaseURL != "" && !absoluteURL(c.PublicBaseURL) {
		return fmt.Errorf("invalid OBJECT_STORAGE_PUBLIC_BASE_URL=%q; expected absolute URL like http://localhost:4443", c.PublicBaseURL)
	}
	if c.Mode == StorageModeEmulator {
		if c.EmulatorHost == "" {
			return fmt.Errorf("OBJECT_STORAGE_MODE=%q requires STORAGE_EMULATOR_HOST", StorageModeEmulator)
		}
		if !absoluteURL(c.EmulatorHost) {
			return fmt.Errorf("invalid STORAGE_EMULATOR_HOST=%q; expected absolute URL like http://fake-gcs:4443", c.EmulatorHost)
		}
	}
	return nil
}

func absoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
