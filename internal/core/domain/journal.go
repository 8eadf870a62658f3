package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrJournalEntryNotFound = errors.New("journal entry not found")
	ErrJournalEntryExists   = errors.New("a journal entry already exists for this date")
	ErrJournalConflict      = errors.New("journal entry version conflict")
	ErrJournalContentEmpty  = errors.New("journal content cannot be empty")
	ErrJournalTitleTooLong  = errors.New("journal title is too long (max 200 chars)")
	ErrJournalTooLong       = errors.New("journal content is too long (max 20000 chars)")
	ErrInvalidMood          = errors.New("invalid mood (must be 1-5)")
)

const (
	MaxJournalTitleLen   = 200
	MaxJournalContentLen = 20000
)

// JournalEntry is a dated free-text entry. Content is stored as written;
// rendering is left to clients.
type JournalEntry struct {
	ID        string `json:"id" db:"id"`
	UserID    string `json:"user_id" db:"user_id"`
	EntryDate Date   `json:"entry_date" db:"entry_date"`
	Title     string `json:"title" db:"title"`
	Content   string `json:"content" db:"content"`
	Mood      *int   `json:"mood,omitempty" db:"mood"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func validateJournalFields(title, content string, mood *int) error {
	if strings.TrimSpace(content) == "" {
		return ErrJournalContentEmpty
	}
	if len(strings.TrimSpace(title)) > MaxJournalTitleLen {
		return ErrJournalTitleTooLong
	}
	if len(content) > MaxJournalContentLen {
		return ErrJournalTooLong
	}
	if mood != nil && (*mood < 1 || *mood > 5) {
		return ErrInvalidMood
	}
	return nil
}

func NewJournalEntry(userID string, date Date, title, content string, mood *int) (*JournalEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}
	if _, err := date.Time(); err != nil {
		return nil, err
	}
	if err := validateJournalFields(title, content, mood); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &JournalEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		EntryDate: date,
		Title:     strings.TrimSpace(title),
		Content:   content,
		Mood:      mood,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (e *JournalEntry) Edit(title, content string, mood *int) error {
	if err := validateJournalFields(title, content, mood); err != nil {
		return err
	}
	e.Title = strings.TrimSpace(title)
	e.Content = content
	e.Mood = mood
	e.UpdatedAt = time.Now().UTC()
	return nil
}
