package services

import (
	"context"
	"errors"
	"time"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

type JournalService struct {
	repo domain.JournalRepository
}

func NewJournalService(repo domain.JournalRepository) *JournalService {
	return &JournalService{repo: repo}
}

type CreateJournalInput struct {
	ID      string
	UserID  string
	Date    string
	Title   string
	Content string
	Mood    *int
}

type UpdateJournalInput struct {
	ID      string
	UserID  string
	Title   string
	Content string
	Mood    *int
	Version int
}

func (s *JournalService) Create(ctx context.Context, input CreateJournalInput) (*domain.JournalEntry, error) {
	date, err := domain.ParseDate(input.Date)
	if err != nil {
		return nil, err
	}

	if input.ID != "" {
		if err := domain.ValidateClientID("id", input.ID); err != nil {
			return nil, err
		}
		existing, err := s.repo.GetByID(ctx, input.ID)
		if err == nil {
			if existing.UserID != input.UserID {
				return nil, domain.ErrJournalConflict
			}
			return existing, nil
		}
		if !errors.Is(err, domain.ErrJournalEntryNotFound) {
			return nil, err
		}
	}

	entry, err := domain.NewJournalEntry(input.UserID, date, input.Title, input.Content, input.Mood)
	if err != nil {
		return nil, err
	}
	if input.ID != "" {
		entry.ID = input.ID
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *JournalService) Get(ctx context.Context, id, userID string) (*domain.JournalEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, domain.ErrUnauthorized
	}
	return entry, nil
}

func (s *JournalService) GetByDate(ctx context.Context, userID, date string) (*domain.JournalEntry, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByDate(ctx, userID, d)
}

func (s *JournalService) ListByDateRange(ctx context.Context, userID string, from, to domain.Date) ([]*domain.JournalEntry, error) {
	if err := domain.ValidateRange(from, to); err != nil {
		return nil, err
	}
	return s.repo.ListByDateRange(ctx, userID, from, to)
}

func (s *JournalService) Update(ctx context.Context, input UpdateJournalInput) (*domain.JournalEntry, error) {
	entry, err := s.Get(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && entry.Version != input.Version {
		return nil, domain.ErrJournalConflict
	}

	if err := entry.Edit(input.Title, input.Content, input.Mood); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *JournalService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id, userID)
}

func (s *JournalService) GetDelta(ctx context.Context, userID string, since time.Time) ([]*domain.JournalEntry, error) {
	return s.repo.GetChanges(ctx, userID, since)
}
