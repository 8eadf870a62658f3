package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrHabitConflict = errors.New("habit version conflict")
)

type HabitRepository interface {
	// Create persists a new habit definition in the storage.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a live (non-deleted) habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all live habits associated with a specific user.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update modifies an existing habit, bumping its version.
	// Implementations must reject stale versions with ErrHabitConflict.
	Update(ctx context.Context, habit *Habit) error

	// Delete performs a soft delete so the removal can be synced.
	Delete(ctx context.Context, id string) error

	// GetChanges [SYNC] Returns only the deltas (changes) occurring after a specific date.
	GetChanges(ctx context.Context, userID string, since time.Time) ([]*Habit, error)
}

// HabitLogRepository is the log store feeding the analytics core.
type HabitLogRepository interface {
	Create(ctx context.Context, log *HabitLog) error

	// Update modifies an existing log with an optimistic version check.
	Update(ctx context.Context, log *HabitLog) error

	// Delete soft-deletes the log; userID must own it.
	Delete(ctx context.Context, id string, userID string) error

	GetByID(ctx context.Context, id string) (*HabitLog, error)

	// GetByHabitAndDate returns the live log for a day or ErrLogNotFound.
	GetByHabitAndDate(ctx context.Context, habitID string, date Date) (*HabitLog, error)

	// ListByHabitID returns live logs with from <= date <= to, ordered by date ascending.
	ListByHabitID(ctx context.Context, habitID string, from, to Date) ([]HabitLog, error)

	// ListByUserIDAndDateRange returns live logs for all of a user's habits.
	ListByUserIDAndDateRange(ctx context.Context, userID string, from, to Date) ([]HabitLog, error)

	// GetChanges [SYNC ENGINE] Returns creations, updates and soft-deletes after since.
	GetChanges(ctx context.Context, userID string, since time.Time) ([]*HabitLog, error)
}

type JournalRepository interface {
	Create(ctx context.Context, entry *JournalEntry) error
	Update(ctx context.Context, entry *JournalEntry) error
	Delete(ctx context.Context, id string, userID string) error
	GetByID(ctx context.Context, id string) (*JournalEntry, error)
	GetByDate(ctx context.Context, userID string, date Date) (*JournalEntry, error)
	ListByDateRange(ctx context.Context, userID string, from, to Date) ([]*JournalEntry, error)
	GetChanges(ctx context.Context, userID string, since time.Time) ([]*JournalEntry, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
