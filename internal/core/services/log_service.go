package services

import (
	"context"
	"errors"
	"time"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

// RiskQueue receives the IDs of habits whose logs changed.
type RiskQueue interface {
	Enqueue(habitID string)
}

type HabitLogService struct {
	repo      domain.HabitLogRepository
	habitRepo domain.HabitRepository
	queue     RiskQueue
	now       func() time.Time
}

func NewHabitLogService(repo domain.HabitLogRepository, habitRepo domain.HabitRepository, queue RiskQueue) *HabitLogService {
	return &HabitLogService{
		repo:      repo,
		habitRepo: habitRepo,
		queue:     queue,
		now:       time.Now,
	}
}

type RecordLogInput struct {
	HabitID   string
	UserID    string
	Date      string
	Completed bool
}

type UpdateLogInput struct {
	ID        string
	UserID    string
	Completed bool
	Version   int
}

// Record upserts the log for (habit, date). Re-recording the same state is a no-op.
func (s *HabitLogService) Record(ctx context.Context, input RecordLogInput) (*domain.HabitLog, error) {
	date, err := domain.ParseDate(input.Date)
	if err != nil {
		return nil, err
	}
	if err := s.checkNotFuture(date); err != nil {
		return nil, err
	}

	if _, err := s.writableHabit(ctx, input.HabitID, input.UserID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByHabitAndDate(ctx, input.HabitID, date)
	switch {
	case err == nil:
		if existing.Completed == input.Completed {
			return existing, nil
		}
		existing.SetCompleted(input.Completed, s.now())
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.enqueue(existing.HabitID)
		return existing, nil

	case errors.Is(err, domain.ErrLogNotFound):
		l := domain.NewHabitLog(input.HabitID, input.UserID, date, input.Completed)
		if err := l.Validate(); err != nil {
			return nil, err
		}
		if err := s.repo.Create(ctx, l); err != nil {
			return nil, err
		}
		s.enqueue(l.HabitID)
		return l, nil

	default:
		return nil, err
	}
}

func (s *HabitLogService) Update(ctx context.Context, input UpdateLogInput) (*domain.HabitLog, error) {
	existing, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && existing.Version != input.Version {
		return nil, domain.ErrLogConflict
	}

	if _, err := s.writableHabit(ctx, existing.HabitID, input.UserID); err != nil {
		return nil, err
	}

	existing.SetCompleted(input.Completed, s.now())
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.enqueue(existing.HabitID)
	return existing, nil
}

func (s *HabitLogService) GetByID(ctx context.Context, id string, userID string) (*domain.HabitLog, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return l, nil
}

func (s *HabitLogService) ListByHabitID(ctx context.Context, habitID, userID string, from, to domain.Date) ([]domain.HabitLog, error) {
	if err := domain.ValidateRange(from, to); err != nil {
		return nil, err
	}

	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	return s.repo.ListByHabitID(ctx, habitID, from, to)
}

func (s *HabitLogService) Delete(ctx context.Context, id string, userID string) error {
	l, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.enqueue(l.HabitID)
	return nil
}

func (s *HabitLogService) GetDelta(ctx context.Context, userID string, since time.Time) ([]*domain.HabitLog, error) {
	return s.repo.GetChanges(ctx, userID, since)
}

func (s *HabitLogService) writableHabit(ctx context.Context, habitID, userID string) (*domain.Habit, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	if habit.IsArchived() {
		return nil, domain.ErrHabitArchived
	}
	return habit, nil
}

// checkNotFuture allows one day of slack for clients ahead of UTC.
func (s *HabitLogService) checkNotFuture(date domain.Date) error {
	limit, err := domain.DateOf(s.now().UTC()).AddDays(1)
	if err != nil {
		return err
	}
	if date > limit {
		return &domain.ValidationError{Field: "date", Value: date.String(), Reason: "cannot log a future day"}
	}
	return nil
}

func (s *HabitLogService) enqueue(habitID string) {
	if s.queue != nil {
		s.queue.Enqueue(habitID)
	}
}
