package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

type HabitService struct {
	repo domain.HabitRepository
}

func NewHabitService(repo domain.HabitRepository) *HabitService {
	return &HabitService{
		repo: repo,
	}
}

type CreateHabitInput struct {
	// ID is optional; offline clients generate their own.
	ID          string
	UserID      string
	Title       string
	Description string
	Color       string
	Icon        string
	SortOrder   int
}

// UpdateHabitInput carries a partial update: nil fields keep their value.
type UpdateHabitInput struct {
	ID          string
	UserID      string
	Title       *string
	Description *string
	Color       *string
	Icon        *string
	SortOrder   *int
	Version     int
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	if input.ID != "" {
		if err := domain.ValidateClientID("id", input.ID); err != nil {
			return nil, err
		}
		existing, err := s.repo.GetByID(ctx, input.ID)
		if err == nil {
			// Retried sync push.
			if existing.UserID != input.UserID {
				return nil, domain.ErrHabitConflict
			}
			return existing, nil
		}
		if !errors.Is(err, domain.ErrHabitNotFound) {
			return nil, err
		}
	}

	habit, err := domain.NewHabit(input.UserID, input.Title, input.Description, input.Color, input.Icon)
	if err != nil {
		return nil, err
	}
	if input.ID != "" {
		habit.ID = input.ID
	}
	habit.SortOrder = input.SortOrder

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) Get(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *HabitService) GetDelta(ctx context.Context, userID string, lastSync time.Time) ([]*domain.Habit, error) {
	return s.repo.GetChanges(ctx, userID, lastSync)
}

// Update applies a partial update. An unknown ID with a title is created,
// so a client that edited a habit offline before its first sync is not lost.
func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, input.ID)
	if errors.Is(err, domain.ErrHabitNotFound) && input.Title != nil {
		return s.Create(ctx, CreateHabitInput{
			ID:          input.ID,
			UserID:      input.UserID,
			Title:       *input.Title,
			Description: valueOr(input.Description, ""),
			Color:       valueOr(input.Color, ""),
			Icon:        valueOr(input.Icon, ""),
			SortOrder:   valueOr(input.SortOrder, 0),
		})
	}
	if err != nil {
		return nil, err
	}

	if habit.UserID != input.UserID {
		return nil, domain.ErrHabitNotFound
	}

	if input.Version > 0 && habit.Version != input.Version {
		return nil, fmt.Errorf("%w: client v%d vs server v%d", domain.ErrHabitConflict, input.Version, habit.Version)
	}

	err = habit.Update(
		valueOr(input.Title, habit.Title),
		valueOr(input.Description, habit.Description),
		valueOr(input.Color, habit.Color),
		valueOr(input.Icon, habit.Icon),
	)
	if err != nil {
		return nil, err
	}

	if input.SortOrder != nil {
		if err := habit.ChangePosition(*input.SortOrder); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// Archive hides a habit from analytics and blocks new logs. Archiving twice is a no-op.
func (s *HabitService) Archive(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if habit.IsArchived() {
		return habit, nil
	}

	habit.Archive()
	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) Restore(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !habit.IsArchived() {
		return habit, nil
	}

	habit.Restore()
	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, id string, userID string) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
