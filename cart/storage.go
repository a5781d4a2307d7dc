package cart

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Storage is the persistence port for cart state. The cart manager writes
// full snapshots through it and never assumes anything about the backing
// medium, so tests can substitute an in-memory fake.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string)
}

// SessionStore is a Storage backed by an in-memory TTL cache. Entries expire
// with the browsing session, mirroring session-scoped key-value storage.
type SessionStore struct {
	cache *ttlcache.Cache[string, string]
}

// NewSessionStore creates a session store whose entries live for the given
// session lifetime. The expiration goroutine runs until Stop is called.
func NewSessionStore(sessionTTL time.Duration) *SessionStore {
	cache := ttlcache.New(ttlcache.WithTTL[string, string](sessionTTL))
	go cache.Start()
	return &SessionStore{cache: cache}
}

func (s *SessionStore) Get(key string) (string, bool) {
	item := s.cache.Get(key)
	if item == nil {
		return "", false
	}
	return item.Value(), true
}

func (s *SessionStore) Set(key, value string) error {
	s.cache.Set(key, value, ttlcache.DefaultTTL)
	return nil
}

func (s *SessionStore) Delete(key string) {
	s.cache.Delete(key)
}

// Stop ends the session, stopping the expiration goroutine.
func (s *SessionStore) Stop() {
	s.cache.Stop()
}
