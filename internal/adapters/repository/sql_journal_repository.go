package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

var _ domain.JournalRepository = (*SQLJournalRepository)(nil)

const journalColumns = `id, user_id, entry_date, title, content, mood,
	version, created_at, updated_at, deleted_at`

type SQLJournalRepository struct {
	db *sqlx.DB
}

func NewSQLJournalRepository(db *sqlx.DB) *SQLJournalRepository {
	return &SQLJournalRepository{db: db}
}

func (r *SQLJournalRepository) Create(ctx context.Context, e *domain.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (
			id, user_id, entry_date, title, content, mood,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :user_id, :entry_date, :title, :content, :mood,
			:version, :created_at, :updated_at, NULL
		)`

	if _, err := r.db.NamedExecContext(ctx, query, e); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrJournalEntryExists
		}
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}
	return nil
}

func (r *SQLJournalRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return r.getOne(ctx, `id = ?`, id)
}

func (r *SQLJournalRepository) GetByDate(ctx context.Context, userID string, date domain.Date) (*domain.JournalEntry, error) {
	return r.getOne(ctx, `user_id = ? AND entry_date = ?`, userID, date)
}

func (r *SQLJournalRepository) getOne(ctx context.Context, where string, args ...any) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	query := r.db.Rebind(`SELECT ` + journalColumns + ` FROM journal_entries WHERE ` + where + ` AND deleted_at IS NULL`)

	if err := r.db.GetContext(ctx, &e, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJournalEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *SQLJournalRepository) ListByDateRange(ctx context.Context, userID string, from, to domain.Date) ([]*domain.JournalEntry, error) {
	entries := []*domain.JournalEntry{}
	query := r.db.Rebind(`
		SELECT ` + journalColumns + ` FROM journal_entries
		WHERE user_id = ?
		  AND entry_date >= ?
		  AND entry_date <= ?
		  AND deleted_at IS NULL
		ORDER BY entry_date DESC`)

	if err := r.db.SelectContext(ctx, &entries, query, userID, from, to); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *SQLJournalRepository) Update(ctx context.Context, e *domain.JournalEntry) error {
	now := time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE journal_entries
		SET title = ?, content = ?, mood = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND user_id = ? AND version = ? AND deleted_at IS NULL`)

	res, err := r.db.ExecContext(ctx, query, e.Title, e.Content, e.Mood, now, e.ID, e.UserID, e.Version)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		if _, err := r.GetByID(ctx, e.ID); err != nil {
			return err
		}
		return domain.ErrJournalConflict
	}

	e.Version++
	e.UpdatedAt = now
	return nil
}

func (r *SQLJournalRepository) Delete(ctx context.Context, id string, userID string) error {
	now := time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE journal_entries
		SET deleted_at = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND user_id = ? AND deleted_at IS NULL`)

	res, err := r.db.ExecContext(ctx, query, now, now, id, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrJournalEntryNotFound
	}
	return nil
}

func (r *SQLJournalRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.JournalEntry, error) {
	entries := []*domain.JournalEntry{}
	query := r.db.Rebind(`
		SELECT ` + journalColumns + ` FROM journal_entries
		WHERE user_id = ? AND updated_at > ?
		ORDER BY updated_at ASC`)

	if err := r.db.SelectContext(ctx, &entries, query, userID, since.UTC()); err != nil {
		return nil, err
	}
	return entries, nil
}
