package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NH-Portal/portal-service/internal/cache"
	"github.com/NH-Portal/portal-service/internal/models"
)

// ErrNoSession is returned when no live session exists for a token;
// callers treat it as an unauthenticated request.
var ErrNoSession = errors.New("no active session")

// Store persists session blobs under opaque tokens with a TTL. It is
// the server-side replacement for the per-device session blob: one
// serialized Session per token, fully replaced on write, cleared on
// logout.
type Store struct {
	cache *cache.CacheHelper
	ttl   time.Duration
}

func NewStore(helper *cache.CacheHelper, ttl time.Duration) *Store {
	return &Store{cache: helper, ttl: ttl}
}

// Save writes the session blob for the token, replacing any prior value.
func (s *Store) Save(ctx context.Context, token string, sess *models.Session) error {
	if err := s.cache.Set(ctx, token, sess, s.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load reads the session blob; ErrNoSession if absent or expired.
func (s *Store) Load(ctx context.Context, token string) (*models.Session, error) {
	var sess models.Session
	err := s.cache.Get(ctx, token, &sess)
	if err != nil {
		if errors.Is(err, cache.ErrCacheNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &sess, nil
}

// Clear invalidates the session; the identity confirmation ends with it.
func (s *Store) Clear(ctx context.Context, token string) error {
	if err := s.cache.Delete(ctx, token); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
