package session

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

const cleanupInterval = 10 * time.Minute

// Store keeps per-account session tokens between feed reconnects so the
// server recognizes the same agent instance. Tokens expire on their own.
type Store struct {
	cache      *cache.Cache
	defaultTTL time.Duration
}

func NewStore(defaultTTL time.Duration) *Store {
	return &Store{
		cache:      cache.New(defaultTTL, cleanupInterval),
		defaultTTL: defaultTTL,
	}
}

func (s *Store) Save(username, token string) {
	s.cache.Set(username, token, s.defaultTTL)
}

func (s *Store) SaveUntil(username, token string, expiresAt time.Time) {
	s.cache.Set(username, token, time.Until(expiresAt))
}

func (s *Store) Load(username string) (string, bool) {
	value, ok := s.cache.Get(username)
	if !ok {
		return "", false
	}

	token, ok := value.(string)
	return token, ok
}
