package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

func TestMemorySessionStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Hour)
	userID := uuid.New()

	sess, err := store.Create(ctx, userID, "ADMIN")
	require.NoError(t, err)

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, "ADMIN", got.Role)

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStoreExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	sess, err := store.Create(ctx, uuid.New(), "USER")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestNewSessionStoreRequiresAddr(t *testing.T) {
	_, err := NewSessionStore(context.Background(), logger.Nop(), Config{})
	require.Error(t, err)
}

func TestSessionKeyUsesPrefix(t *testing.T) {
	s := newSessionStore(logger.Nop(), nil, Config{KeyPrefix: "eh:s:"})
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	assert.Equal(t, "eh:s:11111111-2222-3333-4444-555555555555", s.key(id))
	assert.Equal(t, 24*time.Hour, s.TTL())
}
