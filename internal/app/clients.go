package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/yungbote/estatehub-backend/internal/observability"
	"github.com/yungbote/estatehub-backend/internal/platform/gcp"
	"github.com/yungbote/estatehub-backend/internal/platform/gmaps"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
	"github.com/yungbote/estatehub-backend/internal/platform/openai"
	"github.com/yungbote/estatehub-backend/internal/platform/redis"
	"github.com/yungbote/estatehub-backend/internal/platform/vectorstore"
)

// Clients holds the external integrations. Any of Objects, Embedder, Vectors
// and Places may be nil, in which case the dependent feature is disabled.
type Clients struct {
	Sessions redis.SessionStore
	Objects  gcp.ObjectStore
	Embedder openai.Embedder
	Vectors  vectorstore.Store
	Places   gmaps.Places
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config, metrics *observability.Metrics) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients
	httpClient := &http.Client{Timeout: 30 * time.Second}

	if cfg.Redis.Addr == "" {
		log.Warn("REDIS_ADDR not set, sessions are kept in process memory")
		out.Sessions = redis.NewMemorySessionStore(cfg.Redis.TTL)
	} else {
		sessions, err := redis.NewSessionStore(ctx, log, cfg.Redis)
		if err != nil {
			return Clients{}, fmt.Errorf("init session store: %w", err)
		}
		out.Sessions = sessions
	}

	objects, err := resolveObjectStore(ctx, log, metrics)
	if err != nil {
		out.Close()
		return Clients{}, err
	}
	out.Objects = objects

	out.Embedder, out.Vectors, err = resolveSimilarityBackends(ctx, log, cfg, metrics, httpClient)
	if err != nil {
		out.Close()
		return Clients{}, err
	}

	if cfg.Maps.APIKey == "" {
		log.Warn("Nearby places disabled (GOOGLE_MAPS_API_KEY not set)")
	} else {
		places, err := gmaps.NewPlaces(log, cfg.Maps, httpClient)
		if err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("init places client: %w", err)
		}
		out.Places = instrumentPlaces(places, metrics)
	}
	return out, nil
}

func (c Clients) Close() {
	if c.Sessions != nil {
		_ = c.Sessions.Close()
	}
}
