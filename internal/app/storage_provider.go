package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/yungbote/estatehub-backend/internal/observability"
	"github.com/yungbote/estatehub-backend/internal/platform/envutil"
	"github.com/yungbote/estatehub-backend/internal/platform/gcp"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

var (
	storageConfigFromEnv = gcp.StorageConfigFromEnv
	newBucketStore       = gcp.NewBucketStore
)

type StorageProviderBootstrapErrorCode string

const (
	StorageProviderBootstrapErrorInvalidConfig StorageProviderBootstrapErrorCode = "invalid_config"
	StorageProviderBootstrapErrorConnectFailed StorageProviderBootstrapErrorCode = "connect_failed"
)

type StorageProviderBootstrapError struct {
	Code         StorageProviderBootstrapErrorCode
	Mode         string
	EmulatorHost string
	Cause        error
}

func (e *StorageProviderBootstrapError) Error() string {
	if e == nil {
		return "object storage bootstrap failed"
	}
	return fmt.Sprintf(
		"object storage bootstrap failed (code=%s mode=%q emulator_host=%q): %v",
		e.Code,
		e.Mode,
		e.EmulatorHost,
		e.Cause,
	)
}

func (e *StorageProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// resolveObjectStore returns nil, nil when no bucket is configured. Media
// uploads then answer 503 and everything else keeps working.
func resolveObjectStore(ctx context.Context, log *logger.Logger, metrics *observability.Metrics) (gcp.ObjectStore, error) {
	if envutil.String("GCS_BUCKET_NAME", "") == "" {
		log.Warn("Object storage disabled (GCS_BUCKET_NAME not set)")
		return nil, nil
	}
	storageCfg, err := storageConfigFromEnv()
	if err != nil {
		bootErr := &StorageProviderBootstrapError{
			Code:         StorageProviderBootstrapErrorInvalidConfig,
			Mode:         string(storageCfg.Mode),
			EmulatorHost: storageCfg.EmulatorHost,
			Cause:        err,
		}
		log.Error("Object storage provider selection failed", "mode", storageCfg.Mode, "error_code", bootErr.Code, "error", err)
		return nil, bootErr
	}

	log.Info("Selecting object storage provider", "mode", storageCfg.Mode, "bucket", storageCfg.Bucket, "emulator_host", storageCfg.EmulatorHost)
	store, err := newBucketStore(ctx, log, storageCfg)
	if err != nil {
		bootErr := &StorageProviderBootstrapError{
			Code:         StorageProviderBootstrapErrorConnectFailed,
			Mode:         string(storageCfg.Mode),
			EmulatorHost: storageCfg.EmulatorHost,
			Cause:        err,
		}
		log.Error("Object storage provider bootstrap failed", "mode", storageCfg.Mode, "error_code", bootErr.Code, "error", err)
		return nil, bootErr
	}
	return instrumentObjectStore(store, metrics), nil
}

func storageProviderBootstrapErrorCode(err error) StorageProviderBootstrapErrorCode {
	var bootstrapErr *StorageProviderBootstrapError
	if errors.As(err, &bootstrapErr) && bootstrapErr.Code != "" {
		return bootstrapErr.Code
	}
	return StorageProviderBootstrapErrorConnectFailed
}
