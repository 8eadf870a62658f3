package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-journal/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

type MockLogRepo struct {
	mock.Mock
}

func (m *MockLogRepo) Create(ctx context.Context, l *domain.HabitLog) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLogRepo) Update(ctx context.Context, l *domain.HabitLog) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLogRepo) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockLogRepo) GetByID(ctx context.Context, id string) (*domain.HabitLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HabitLog), args.Error(1)
}

func (m *MockLogRepo) GetByHabitAndDate(ctx context.Context, habitID string, date domain.Date) (*domain.HabitLog, error) {
	args := m.Called(ctx, habitID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HabitLog), args.Error(1)
}

func (m *MockLogRepo) ListByHabitID(ctx context.Context, habitID string, from, to domain.Date) ([]domain.HabitLog, error) {
	args := m.Called(ctx, habitID, from, to)
	return args.Get(0).([]domain.HabitLog), args.Error(1)
}

func (m *MockLogRepo) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to domain.Date) ([]domain.HabitLog, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Get(0).([]domain.HabitLog), args.Error(1)
}

func (m *MockLogRepo) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.HabitLog, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).([]*domain.HabitLog), args.Error(1)
}

func TestCachedHabitLogRepository(t *testing.T) {
	ctx := context.Background()
	logs := []domain.HabitLog{{HabitID: "h1", Date: "2026-10-18", Completed: true}}

	t.Run("Second read is served from cache", func(t *testing.T) {
		next := new(MockLogRepo)
		next.On("ListByHabitID", ctx, "h1", domain.Date("2026-10-01"), domain.Date("2026-10-19")).Return(logs, nil).Once()

		repo := NewCachedHabitLogRepository(next, cache.NewMemoryCache[[]domain.HabitLog](), time.Minute)

		for i := 0; i < 3; i++ {
			got, err := repo.ListByHabitID(ctx, "h1", "2026-10-01", "2026-10-19")
			require.NoError(t, err)
			assert.Equal(t, logs, got)
		}
		next.AssertExpectations(t)
	})

	t.Run("Callers get their own copy", func(t *testing.T) {
		next := new(MockLogRepo)
		fresh := []domain.HabitLog{{HabitID: "h1", Date: "2026-10-18", Completed: true}}
		next.On("ListByHabitID", ctx, "h1", domain.Date("2026-10-01"), domain.Date("2026-10-19")).Return(fresh, nil).Once()

		repo := NewCachedHabitLogRepository(next, cache.NewMemoryCache[[]domain.HabitLog](), time.Minute)

		first, err := repo.ListByHabitID(ctx, "h1", "2026-10-01", "2026-10-19")
		require.NoError(t, err)
		first[0].Completed = false

		second, err := repo.ListByHabitID(ctx, "h1", "2026-10-01", "2026-10-19")
		require.NoError(t, err)
		second[0].Date = "1999-01-01"

		third, err := repo.ListByHabitID(ctx, "h1", "2026-10-01", "2026-10-19")
		require.NoError(t, err)
		assert.True(t, third[0].Completed)
		assert.Equal(t, domain.Date("2026-10-18"), third[0].Date)
		next.AssertExpectations(t)
	})

	t.Run("Read overlapping a write is not cached", func(t *testing.T) {
		next := new(MockLogRepo)
		c := cache.NewMemoryCache[[]domain.HabitLog]()
		repo := NewCachedHabitLogRepository(next, c, time.Minute)

		next.On("ListByHabitID", ctx, "h1", domain.Date("2026-10-01"), domain.Date("2026-10-19")).
			Run(func(mock.Arguments) { repo.Invalidate(ctx, "h1") }).
			Return(logs, nil).Once()

		got, err := repo.ListByHabitID(ctx, "h1", "2026-10-01", "2026-10-19")
		require.NoError(t, err)
		assert.Equal(t, logs, got)

		_, ok := c.Get(ctx, LogCacheKey("h1", "2026-10-01", "2026-10-19"))
		assert.False(t, ok)

		next.On("ListByHabitID", ctx, "h1", domain.Date("2026-10-01"), domain.Date("2026-10-19")).Return(logs, nil).Once()
		_, err = repo.ListByHabitID(ctx, "h1", "2026-10-01", "2026-10-19")
		require.NoError(t, err)
		_, ok = c.Get(ctx, LogCacheKey("h1", "2026-10-01", "2026-10-19"))
		assert.True(t, ok)
		next.AssertExpectations(t)
	})

	t.Run("Writes invalidate every range of the habit", func(t *testing.T) {
		next := new(MockLogRepo)
		c := cache.NewMemoryCache[[]domain.HabitLog]()
		repo := NewCachedHabitLogRepository(next, c, time.Minute)

		c.Set(ctx, LogCacheKey("h1", "2026-10-01", "2026-10-19"), logs, time.Minute)
		c.Set(ctx, LogCacheKey("h1", "2026-09-01", "2026-10-19"), logs, time.Minute)
		c.Set(ctx, LogCacheKey("h2", "2026-10-01", "2026-10-19"), logs, time.Minute)

		l := &domain.HabitLog{HabitID: "h1", Date: "2026-10-19"}
		next.On("Create", ctx, l).Return(nil).Once()
		require.NoError(t, repo.Create(ctx, l))

		_, ok := c.Get(ctx, LogCacheKey("h1", "2026-10-01", "2026-10-19"))
		assert.False(t, ok)
		_, ok = c.Get(ctx, LogCacheKey("h1", "2026-09-01", "2026-10-19"))
		assert.False(t, ok)
		_, ok = c.Get(ctx, LogCacheKey("h2", "2026-10-01", "2026-10-19"))
		assert.True(t, ok)
	})

	t.Run("Failed write keeps cache", func(t *testing.T) {
		next := new(MockLogRepo)
		c := cache.NewMemoryCache[[]domain.HabitLog]()
		repo := NewCachedHabitLogRepository(next, c, time.Minute)
		c.Set(ctx, LogCacheKey("h1", "a", "b"), logs, time.Minute)

		l := &domain.HabitLog{HabitID: "h1"}
		next.On("Update", ctx, l).Return(domain.ErrLogConflict).Once()

		assert.ErrorIs(t, repo.Update(ctx, l), domain.ErrLogConflict)
		_, ok := c.Get(ctx, LogCacheKey("h1", "a", "b"))
		assert.True(t, ok)
	})

	t.Run("Delete resolves the habit before invalidating", func(t *testing.T) {
		next := new(MockLogRepo)
		c := cache.NewMemoryCache[[]domain.HabitLog]()
		repo := NewCachedHabitLogRepository(next, c, time.Minute)
		c.Set(ctx, LogCacheKey("h1", "a", "b"), logs, time.Minute)

		next.On("GetByID", ctx, "log-1").Return(&domain.HabitLog{ID: "log-1", HabitID: "h1"}, nil).Once()
		next.On("Delete", ctx, "log-1", "u1").Return(nil).Once()

		require.NoError(t, repo.Delete(ctx, "log-1", "u1"))
		_, ok := c.Get(ctx, LogCacheKey("h1", "a", "b"))
		assert.False(t, ok)
		next.AssertExpectations(t)
	})

	t.Run("Default ttl", func(t *testing.T) {
		repo := NewCachedHabitLogRepository(new(MockLogRepo), cache.NewMemoryCache[[]domain.HabitLog](), 0)
		assert.Equal(t, DefaultLogCacheTTL, repo.ttl)
	})
}

func TestLogCacheKey(t *testing.T) {
	assert.Equal(t, "habit_logs:h1:2026-10-01:2026-10-19", LogCacheKey("h1", "2026-10-01", "2026-10-19"))
	assert.Equal(t, "habit_logs:h1:", LogCachePrefix("h1"))
}
