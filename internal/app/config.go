package app

import (
	"fmt"
	"strings"

	"github.com/yungbote/estatehub-backend/internal/data/db"
	"github.com/yungbote/estatehub-backend/internal/observability"
	"github.com/yungbote/estatehub-backend/internal/platform/envutil"
	"github.com/yungbote/estatehub-backend/internal/platform/gmaps"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
	"github.com/yungbote/estatehub-backend/internal/platform/openai"
	"github.com/yungbote/estatehub-backend/internal/platform/pinecone"
	"github.com/yungbote/estatehub-backend/internal/platform/redis"
)

const devJWTSecret = "estatehub-dev-secret"

type Config struct {
	Port           string
	LogMode        string
	CORSOrigins    []string
	JWTSecretKey   string
	DefaultLocale  string
	AdminEmail     string
	AdminPassword  string
	VectorProvider VectorProvider
	MetricsEnabled bool

	Postgres db.PostgresConfig
	Redis    redis.Config
	OpenAI   openai.Config
	Pinecone pinecone.Config
	Maps     gmaps.Config
	Otel     observability.OtelConfig
}

// LoadConfig reads the environment once at startup. Object storage and Qdrant
// settings are read by their providers since both are optional.
func LoadConfig(log *logger.Logger) (Config, error) {
	provider, err := ParseVectorProvider(envutil.String("VECTOR_PROVIDER", ""))
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Port:           envutil.String("PORT", "8080"),
		LogMode:        envutil.String("LOG_MODE", "development"),
		CORSOrigins:    splitList(envutil.String("CORS_ALLOWED_ORIGINS", "")),
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", ""),
		DefaultLocale:  envutil.String("DEFAULT_LOCALE", "en"),
		AdminEmail:     envutil.String("ADMIN_EMAIL", ""),
		AdminPassword:  envutil.String("ADMIN_PASSWORD", ""),
		VectorProvider: provider,
		MetricsEnabled: observability.MetricsEnabled(),
		Postgres:       db.PostgresConfigFromEnv(),
		Redis:          redis.ConfigFromEnv(),
		OpenAI:         openai.ConfigFromEnv(),
		Pinecone:       pinecone.ConfigFromEnv(),
		Maps:           gmaps.ConfigFromEnv(),
		Otel:           observability.OtelConfigFromEnv(),
	}
	if cfg.JWTSecretKey == "" {
		if isProduction(cfg.LogMode) {
			return Config{}, fmt.Errorf("missing env var JWT_SECRET_KEY")
		}
		log.Warn("JWT_SECRET_KEY not set, using development secret")
		cfg.JWTSecretKey = devJWTSecret
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return Config{}, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return cfg, nil
}

func isProduction(mode string) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		return true
	}
	return false
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
