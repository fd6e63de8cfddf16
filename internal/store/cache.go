package store

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/VanderY/proctoring-bot/internal/domain"
	"golang.org/x/sync/singleflight"
)

// CachedStore caches loaded tests with TTL in front of another Store,
// so every answer callback does not re-read and re-parse the artifact.
type CachedStore struct {
	inner Store
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group
	rnd   *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedTest
}

type cachedTest struct {
	test      domain.TestDefinition
	expiresAt time.Time
}

func NewCachedStore(inner Store, ttl time.Duration) *CachedStore {
	return &CachedStore{
		inner: inner,
		ttl:   ttl,
		clock: time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		cache: make(map[string]cachedTest),
	}
}

// Save writes through to the inner store and drops any stale entry.
func (s *CachedStore) Save(ctx context.Context, test domain.TestDefinition) error {
	if err := s.inner.Save(ctx, test); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.cache, test.Name)
	s.mu.Unlock()
	return nil
}

func (s *CachedStore) Load(ctx context.Context, name string) (domain.TestDefinition, error) {
	now := s.clock()

	s.mu.RLock()
	if entry, ok := s.cache[name]; ok && entry.expiresAt.After(now) {
		s.mu.RUnlock()
		return entry.test, nil
	}
	s.mu.RUnlock()

	result, err, _ := s.sf.Do(name, func() (interface{}, error) {
		now := s.clock()
		s.mu.RLock()
		if entry, ok := s.cache[name]; ok && entry.expiresAt.After(now) {
			s.mu.RUnlock()
			return entry.test, nil
		}
		s.mu.RUnlock()

		test, err := s.inner.Load(ctx, name)
		if err != nil {
			return domain.TestDefinition{}, err
		}

		s.mu.Lock()
		s.cache[name] = cachedTest{test: test, expiresAt: now.Add(s.ttlWithJitter())}
		s.mu.Unlock()
		return test, nil
	})
	if err != nil {
		return domain.TestDefinition{}, err
	}
	return result.(domain.TestDefinition), nil
}

func (s *CachedStore) ttlWithJitter() time.Duration {
	if s.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(s.ttl) / 10
	return s.ttl + time.Duration(s.rnd.Int63n(jitterMax+1))
}
