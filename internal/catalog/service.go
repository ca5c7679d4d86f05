package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"lessonbox/internal/cache"
	"lessonbox/internal/config"
)

// Fetcher retrieves the raw catalog payload from the network provider.
type Fetcher interface {
	FetchCatalog(ctx context.Context) (any, error)
}

// Service is the read-through catalog cache: memory slot, then persistent
// store, then network, with freshness gated by Policy. Network and decode
// failures propagate to the caller; store write failures are swallowed
// because the in-memory snapshot stays authoritative for the process.
type Service struct {
	store      *cache.Store
	fetcher    Fetcher
	normalizer *Normalizer
	policy     Policy
	resolver   *ModeResolver
	log        *zap.Logger

	cacheKey  string
	modeParam string

	mu     sync.Mutex
	memory *CacheEntry

	flight singleflight.Group
	now    func() time.Time
}

func NewService(store *cache.Store, fetcher Fetcher, cfg *config.Config, log *zap.Logger) *Service {
	return &Service{
		store:      store,
		fetcher:    fetcher,
		normalizer: NewNormalizer(),
		policy:     NewPolicy(cfg.Refresh, cfg.Cache.MaxAge),
		resolver:   NewModeResolver(store, log),
		log:        log,
		cacheKey:   cfg.Cache.Key,
		modeParam:  cfg.Cache.Mode,
		now:        time.Now,
	}
}

// SetNowFunc overrides the service's time source. Intended for tests.
func (s *Service) SetNowFunc(now func() time.Time) {
	s.now = now
}

// Categories returns the fixed category menu. No I/O.
func (s *Service) Categories() []StaticCategory {
	return StaticCategories()
}

// LessonsByCategory returns the lessons filed under the given category
// title. An unknown category yields an empty list, not an error.
func (s *Service) LessonsByCategory(ctx context.Context, categoryTitle string) ([]Lesson, error) {
	entry, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return entry.Lessons[categoryTitle], nil
}

// AllLessons returns every canonical copy across all categories, each still
// tagged with the category it is filed under. Categories are walked in
// sorted order so the flattening is deterministic.
func (s *Service) AllLessons(ctx context.Context) ([]Lesson, error) {
	entry, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(entry.Lessons))
	for categoryTitle := range entry.Lessons {
		titles = append(titles, categoryTitle)
	}
	sort.Strings(titles)

	var all []Lesson
	for _, categoryTitle := range titles {
		all = append(all, entry.Lessons[categoryTitle]...)
	}
	return all, nil
}

// load is the shared read-through path behind both lesson operations.
func (s *Service) load(ctx context.Context) (*CacheEntry, error) {
	now := s.now()
	mode := s.resolver.Resolve(s.modeParam)

	s.mu.Lock()
	memory := s.memory
	s.mu.Unlock()
	if s.policy.Fresh(memory, now, mode) {
		return memory, nil
	}

	if mode != ModeNetwork {
		var entry CacheEntry
		found, err := s.store.Get(s.cacheKey, &entry)
		if err != nil {
			s.log.Warn("cache read failed", zap.Error(err))
		}
		if found && s.policy.Fresh(&entry, now, mode) {
			s.mu.Lock()
			s.memory = &entry
			s.mu.Unlock()
			return &entry, nil
		}
	}

	// Concurrent callers share one network round trip.
	v, err, _ := s.flight.Do(s.cacheKey, func() (any, error) {
		return s.refresh(ctx, mode)
	})
	if err != nil {
		return nil, err
	}
	return v.(*CacheEntry), nil
}

// refresh fetches, normalizes, and stamps a new entry. In network mode the
// result stays transient: neither the memory slot nor the store is touched.
func (s *Service) refresh(ctx context.Context, mode Mode) (*CacheEntry, error) {
	raw, err := s.fetcher.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}

	snapshot := s.normalizer.Normalize(raw)
	now := s.now()
	entry := &CacheEntry{
		Lessons:   snapshot,
		CreatedAt: now,
		ExpiresAt: s.policy.Clock().Next(s.policy.RefreshHour(), 0, now),
	}

	if mode == ModeNetwork {
		return entry, nil
	}

	s.mu.Lock()
	s.memory = entry
	s.mu.Unlock()

	if err := s.store.Put(s.cacheKey, entry); err != nil {
		// The memory slot is authoritative for the rest of the process;
		// a failed persist only costs the next process a refetch.
		s.log.Warn("cache write failed", zap.Error(err))
	}

	return entry, nil
}
