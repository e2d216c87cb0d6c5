package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("LOG_MODE", "")
	t.Setenv("VECTOR_PROVIDER", "")
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://admin.example.com, ,https://www.example.com ")

	cfg, err := LoadConfig(logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, devJWTSecret, cfg.JWTSecretKey)
	assert.Equal(t, VectorProviderNone, cfg.VectorProvider)
	assert.Equal(t, []string{"https://admin.example.com", "https://www.example.com"}, cfg.CORSOrigins)
}

func TestLoadConfigRejects(t *testing.T) {
	t.Setenv("LOG_MODE", "production")
	t.Setenv("JWT_SECRET_KEY", "")
	_, err := LoadConfig(logger.Nop())
	assert.ErrorContains(t, err, "JWT_SECRET_KEY")

	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("VECTOR_PROVIDER", "weaviate")
	_, err = LoadConfig(logger.Nop())
	assert.ErrorContains(t, err, "weaviate")

	t.Setenv("VECTOR_PROVIDER", "qdrant")
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "")
	_, err = LoadConfig(logger.Nop())
	assert.ErrorContains(t, err, "ADMIN_PASSWORD")
}
