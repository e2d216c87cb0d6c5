package redis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemorySessionStore keeps sessions in process. Used by tests and by local
// runs without REDIS_ADDR.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[uuid.UUID]memoryEntry
}

type memoryEntry struct {
	sess    Session
	expires time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemorySessionStore{ttl: ttl, now: time.Now, sessions: map[uuid.UUID]memoryEntry{}}
}

func (m *MemorySessionStore) TTL() time.Duration { return m.ttl }

func (m *MemorySessionStore) Create(_ context.Context, userID uuid.UUID, role string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now().UTC()
	sess := Session{ID: uuid.New(), UserID: userID, Role: role, CreatedAt: now}
	m.sessions[sess.ID] = memoryEntry{sess: sess, expires: now.Add(m.ttl)}
	return &sess, nil
}

func (m *MemorySessionStore) Get(_ context.Context, id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok || !m.now().Before(e.expires) {
		delete(m.sessions, id)
		return nil, ErrSessionNotFound
	}
	sess := e.sess
	return &sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemorySessionStore) Close() error { return nil }
