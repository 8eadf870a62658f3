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

var _ domain.HabitRepository = (*SQLHabitRepository)(nil)

const habitColumns = `id, user_id, title, description, color, icon, sort_order,
	version, created_at, updated_at, archived_at, deleted_at`

type SQLHabitRepository struct {
	db *sqlx.DB
}

func NewSQLHabitRepository(db *sqlx.DB) *SQLHabitRepository {
	return &SQLHabitRepository{db: db}
}

func (r *SQLHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	query := `
		INSERT INTO habits (
			id, user_id, title, description, color, icon, sort_order,
			version, created_at, updated_at, archived_at, deleted_at
		) VALUES (
			:id, :user_id, :title, :description, :color, :icon, :sort_order,
			1, :created_at, :updated_at, :archived_at, NULL
		)`

	if _, err := r.db.NamedExecContext(ctx, query, h); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	h.Version = 1
	return nil
}

func (r *SQLHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var h domain.Habit
	query := r.db.Rebind(`SELECT ` + habitColumns + ` FROM habits WHERE id = ? AND deleted_at IS NULL`)

	if err := r.db.GetContext(ctx, &h, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &h, nil
}

func (r *SQLHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	habits := []*domain.Habit{}
	query := r.db.Rebind(`
		SELECT ` + habitColumns + ` FROM habits
		WHERE user_id = ? AND deleted_at IS NULL
		ORDER BY sort_order ASC, created_at DESC`)

	if err := r.db.SelectContext(ctx, &habits, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return habits, nil
}

func (r *SQLHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	now := time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE habits SET
			title = ?, description = ?, color = ?, icon = ?, sort_order = ?,
			archived_at = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND version = ? AND deleted_at IS NULL`)

	res, err := r.db.ExecContext(ctx, query,
		h.Title, h.Description, h.Color, h.Icon, h.SortOrder,
		h.ArchivedAt, now,
		h.ID, h.Version,
	)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		exists, checkErr := r.exists(ctx, h.ID)
		if checkErr != nil {
			return fmt.Errorf("existence check failed: %w", checkErr)
		}
		if !exists {
			return domain.ErrHabitNotFound
		}
		return domain.ErrHabitConflict
	}

	h.Version++
	h.UpdatedAt = now
	return nil
}

// Delete soft-deletes the habit together with its logs so both show up in sync deltas.
func (r *SQLHabitRepository) Delete(ctx context.Context, id string) error {
	now := time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE habits
		SET deleted_at = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND deleted_at IS NULL`), now, now, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE habit_logs
		SET deleted_at = ?, updated_at = ?, version = version + 1
		WHERE habit_id = ? AND deleted_at IS NULL`), now, now, id); err != nil {
		return fmt.Errorf("delete habit logs failed: %w", err)
	}

	return tx.Commit()
}

func (r *SQLHabitRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.Habit, error) {
	habits := []*domain.Habit{}
	query := r.db.Rebind(`
		SELECT ` + habitColumns + ` FROM habits
		WHERE user_id = ? AND updated_at > ?
		ORDER BY updated_at ASC`)

	if err := r.db.SelectContext(ctx, &habits, query, userID, since.UTC()); err != nil {
		return nil, fmt.Errorf("sync query error: %w", err)
	}
	return habits, nil
}

func (r *SQLHabitRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, r.db.Rebind(`SELECT count(*) FROM habits WHERE id = ?`), id)
	return count > 0, err
}
