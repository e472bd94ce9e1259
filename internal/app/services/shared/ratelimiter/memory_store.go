package ratelimiter

import (
	"context"
	"jazaidoc-service/internal/app/contracts"
	"jazaidoc-service/internal/app/models"
	"sync"
	"time"
)

// MemoryStore keeps counters in process memory. Instances of a horizontally
// scaled deployment do not share state; use RedisStore there.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*models.RateLimitEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*models.RateLimitEntry),
		now:     now,
	}
}

func (s *MemoryStore) CheckAndConsume(ctx context.Context, key string, maxAttempts int, window time.Duration) (*contracts.RateLimitDecision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[key]
	if !ok || now.After(entry.ResetTime) {
		entry = &models.RateLimitEntry{Count: 1, ResetTime: now.Add(window)}
		s.entries[key] = entry
		return &contracts.RateLimitDecision{Allowed: true, ResetAt: entry.ResetTime}, nil
	}

	if entry.Count >= maxAttempts {
		return &contracts.RateLimitDecision{Allowed: false, ResetAt: entry.ResetTime}, nil
	}

	entry.Count++
	return &contracts.RateLimitDecision{Allowed: true, ResetAt: entry.ResetTime}, nil
}

// Sweep evicts every entry whose window has passed and reports how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, entry := range s.entries {
		if now.After(entry.ResetTime) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartSweeper runs Sweep on every tick until the returned stop function is called.
func (s *MemoryStore) StartSweeper(interval time.Duration, onSweep func(removed int)) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-ticker.C:
				removed := s.Sweep()
				if onSweep != nil {
					onSweep(removed)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { once.Do(func() { close(done) }) }
}
