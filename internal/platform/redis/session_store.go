package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/google/uuid"

	"github.com/yungbote/estatehub-backend/internal/platform/envutil"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

// ErrSessionNotFound means the session expired or was logged out.
var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type SessionStore interface {
	Create(ctx context.Context, userID uuid.UUID, role string) (*Session, error)
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	TTL() time.Duration
	Close() error
}

type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		Addr:      envutil.String("REDIS_ADDR", ""),
		Password:  envutil.String("REDIS_PASSWORD", ""),
		DB:        envutil.Int("REDIS_DB", 0),
		KeyPrefix: envutil.String("REDIS_SESSION_PREFIX", "estatehub:session:"),
		TTL:       envutil.Duration("SESSION_TTL", 24*time.Hour),
	}
}

type sessionStore struct {
	log    *logger.Logger
	rdb    goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewSessionStore(ctx context.Context, log *logger.Logger, cfg Config) (SessionStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newSessionStore(log, rdb, cfg), nil
}

func newSessionStore(log *logger.Logger, rdb goredis.UniversalClient, cfg Config) *sessionStore {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &sessionStore{
		log:    log.With("service", "RedisSessionStore"),
		rdb:    rdb,
		prefix: cfg.KeyPrefix,
		ttl:    ttl,
	}
}

func (s *sessionStore) key(id uuid.UUID) string { return s.prefix + id.String() }

func (s *sessionStore) TTL() time.Duration { return s.ttl }

func (s *sessionStore) Create(ctx context.Context, userID uuid.UUID, role string) (*Session, error) {
	sess := &Session{ID: uuid.New(), UserID: userID, Role: role, CreatedAt: time.Now().UTC()}
	raw, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	if err := s.rdb.Set(ctx, s.key(sess.ID), raw, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

func (s *sessionStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	raw, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.log.Warn("bad session payload", "session_id", id.String(), "error", err)
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *sessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.rdb.Del(ctx, s.key(id)).Err()
}

func (s *sessionStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
