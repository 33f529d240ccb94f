package adapters

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Account is one player's persistent progression record, as returned by
// Find and updated by Persist.
type Account struct {
	ID              string
	Name            string
	Level           int
	XP              int
	Counters        map[string]int
	ConsecutiveWins int
}

// AccountStore is an LRU-cached, in-memory account lookup. Production
// deployments back Find/Persist with a real database; this is the default
// the server boots with absent one.
type AccountStore struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *Account]
}

// NewAccountStore builds a store caching up to capacity accounts.
func NewAccountStore(capacity int) *AccountStore {
	cache, err := lru.New[string, *Account](capacity)
	if err != nil {
		// Only returns an error for a non-positive size; fall back to a
		// small sane default rather than propagating a boot-time panic.
		cache, _ = lru.New[string, *Account](128)
	}
	return &AccountStore{cache: cache}
}

// Find returns the account for name, creating a fresh level-1 record on
// first sight.
func (s *AccountStore) Find(name string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if acc, ok := s.cache.Get(name); ok {
		return acc, nil
	}
	acc := &Account{ID: name, Name: name, Level: 1, Counters: make(map[string]int)}
	s.cache.Add(name, acc)
	return acc, nil
}

// Persist merges updates into the cached account.
func (s *AccountStore) Persist(name string, updates map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.cache.Get(name)
	if !ok {
		acc = &Account{ID: name, Name: name, Level: 1, Counters: make(map[string]int)}
	}
	for k, v := range updates {
		switch k {
		case "xp":
			acc.XP += v
		case "level":
			acc.Level = v
		case "consecutive_wins":
			acc.ConsecutiveWins = v
		default:
			acc.Counters[k] += v
		}
	}
	s.cache.Add(name, acc)
	return nil
}
