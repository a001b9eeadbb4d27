package session

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskly-be/internal/cache"
)

// CookieName is the cookie that carries the session id to the client.
const CookieName = "session_id"

const keyPrefix = "session:"

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store tracks login sessions. Only the auth flow creates and destroys
// sessions; everything else just resolves them.
type Store interface {
	Create(ctx context.Context, userID int64) (string, error)
	Get(ctx context.Context, sessionID string) (int64, error)
	Destroy(ctx context.Context, sessionID string) error
}

type redisStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisStore creates a session store backed by the shared cache.
func NewRedisStore(c cache.Cache, ttl time.Duration) Store {
	return &redisStore{cache: c, ttl: ttl}
}

func (s *redisStore) Create(ctx context.Context, userID int64) (string, error) {
	sessionID := uuid.NewString()
	if err := s.cache.Set(ctx, keyPrefix+sessionID, strconv.FormatInt(userID, 10), s.ttl); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (int64, error) {
	val, err := s.cache.Get(ctx, keyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}
	return userID, nil
}

func (s *redisStore) Destroy(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, keyPrefix+sessionID)
}

type memoryEntry struct {
	userID    int64
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemoryStore creates an in-process session store. Used when Redis is
// not configured; sessions do not survive a restart.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (s *memoryStore) Create(_ context.Context, userID int64) (string, error) {
	sessionID := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = memoryEntry{
		userID:    userID,
		expiresAt: time.Now().Add(s.ttl),
	}
	return sessionID, nil
}

func (s *memoryStore) Get(_ context.Context, sessionID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok {
		return 0, ErrNotFound
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, sessionID)
		return 0, ErrNotFound
	}
	return e.userID, nil
}

func (s *memoryStore) Destroy(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
