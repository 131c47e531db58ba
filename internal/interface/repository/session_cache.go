// internal/interface/repository/session_cache.go
package repository

import (
	gocache "github.com/patrickmn/go-cache"

	"concierge-service/internal/domain/repository"
)

// CacheSessionStore implements the SessionCache interface in memory.
// Entries never expire; a session created for an identity is reused
// until the process restarts. The cache library keeps eviction one
// config change away if session churn ever becomes a problem.
type CacheSessionStore struct {
	cache *gocache.Cache
}

// NewCacheSessionStore creates a new in-memory session store
func NewCacheSessionStore() repository.SessionCache {
	return &CacheSessionStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Lookup returns the cached session id for the identity, if any
func (s *CacheSessionStore) Lookup(userID string) (string, bool) {
	value, found := s.cache.Get(userID)
	if !found {
		return "", false
	}
	sessionID, ok := value.(string)
	return sessionID, ok
}

// Store caches the session id for the identity
func (s *CacheSessionStore) Store(userID, sessionID string) {
	s.cache.Set(userID, sessionID, gocache.NoExpiration)
}
