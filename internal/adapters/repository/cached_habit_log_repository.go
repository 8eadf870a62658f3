package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

var _ domain.HabitLogRepository = (*CachedHabitLogRepository)(nil)

const DefaultLogCacheTTL = 60 * time.Second

// CachedHabitLogRepository memoizes per-habit log ranges. Every write through it
// drops all cached ranges of the affected habit. A read that overlaps an
// invalidation in this process is not cached.
type CachedHabitLogRepository struct {
	next  domain.HabitLogRepository
	cache domain.Cache[[]domain.HabitLog]
	ttl   time.Duration

	mu   sync.Mutex
	gens map[string]uint64
}

func NewCachedHabitLogRepository(next domain.HabitLogRepository, cache domain.Cache[[]domain.HabitLog], ttl time.Duration) *CachedHabitLogRepository {
	if ttl <= 0 {
		ttl = DefaultLogCacheTTL
	}
	return &CachedHabitLogRepository{
		next:  next,
		cache: cache,
		ttl:   ttl,
		gens:  make(map[string]uint64),
	}
}

func LogCacheKey(habitID string, from, to domain.Date) string {
	return fmt.Sprintf("%s%s:%s", LogCachePrefix(habitID), from, to)
}

func LogCachePrefix(habitID string) string {
	return fmt.Sprintf("habit_logs:%s:", habitID)
}

// Invalidate drops every cached range of a habit.
func (r *CachedHabitLogRepository) Invalidate(ctx context.Context, habitID string) {
	r.mu.Lock()
	r.gens[habitID]++
	r.mu.Unlock()

	r.cache.DeletePrefix(ctx, LogCachePrefix(habitID))
}

func (r *CachedHabitLogRepository) generation(habitID string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gens[habitID]
}

// ListByHabitID returns a copy the caller may modify.
func (r *CachedHabitLogRepository) ListByHabitID(ctx context.Context, habitID string, from, to domain.Date) ([]domain.HabitLog, error) {
	key := LogCacheKey(habitID, from, to)

	if logs, ok := r.cache.Get(ctx, key); ok {
		return slices.Clone(logs), nil
	}

	gen := r.generation(habitID)
	logs, err := r.next.ListByHabitID(ctx, habitID, from, to)
	if err != nil {
		return nil, err
	}

	if r.generation(habitID) == gen {
		r.cache.Set(ctx, key, slices.Clone(logs), r.ttl)
	}
	return logs, nil
}

func (r *CachedHabitLogRepository) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to domain.Date) ([]domain.HabitLog, error) {
	return r.next.ListByUserIDAndDateRange(ctx, userID, from, to)
}

func (r *CachedHabitLogRepository) GetByID(ctx context.Context, id string) (*domain.HabitLog, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedHabitLogRepository) GetByHabitAndDate(ctx context.Context, habitID string, date domain.Date) (*domain.HabitLog, error) {
	return r.next.GetByHabitAndDate(ctx, habitID, date)
}

func (r *CachedHabitLogRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.HabitLog, error) {
	return r.next.GetChanges(ctx, userID, since)
}

func (r *CachedHabitLogRepository) Create(ctx context.Context, l *domain.HabitLog) error {
	if err := r.next.Create(ctx, l); err != nil {
		return err
	}
	r.Invalidate(ctx, l.HabitID)
	return nil
}

func (r *CachedHabitLogRepository) Update(ctx context.Context, l *domain.HabitLog) error {
	if err := r.next.Update(ctx, l); err != nil {
		return err
	}
	r.Invalidate(ctx, l.HabitID)
	return nil
}

func (r *CachedHabitLogRepository) Delete(ctx context.Context, id string, userID string) error {
	existing, err := r.next.GetByID(ctx, id)
	if err == nil && existing != nil {
		defer r.Invalidate(ctx, existing.HabitID)
	}

	return r.next.Delete(ctx, id, userID)
}
