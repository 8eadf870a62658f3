package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

var _ domain.HabitLogRepository = (*SQLHabitLogRepository)(nil)

const logColumns = `id, habit_id, user_id, log_date, completed, completed_at,
	version, created_at, updated_at, deleted_at`

type SQLHabitLogRepository struct {
	db *sqlx.DB
}

func NewSQLHabitLogRepository(db *sqlx.DB) *SQLHabitLogRepository {
	return &SQLHabitLogRepository{db: db}
}

func (r *SQLHabitLogRepository) Create(ctx context.Context, l *domain.HabitLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}

	query := `
		INSERT INTO habit_logs (
			id, habit_id, user_id, log_date, completed, completed_at,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :habit_id, :user_id, :log_date, :completed, :completed_at,
			:version, :created_at, :updated_at, NULL
		)`

	if _, err := r.db.NamedExecContext(ctx, query, l); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrLogConflict
		}
		if isForeignKeyViolation(err) {
			return domain.ErrHabitNotFound
		}
		return fmt.Errorf("failed to insert habit log: %w", err)
	}
	return nil
}

func (r *SQLHabitLogRepository) GetByID(ctx context.Context, id string) (*domain.HabitLog, error) {
	var l domain.HabitLog
	query := r.db.Rebind(`SELECT ` + logColumns + ` FROM habit_logs WHERE id = ? AND deleted_at IS NULL`)

	if err := r.db.GetContext(ctx, &l, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLogNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *SQLHabitLogRepository) GetByHabitAndDate(ctx context.Context, habitID string, date domain.Date) (*domain.HabitLog, error) {
	var l domain.HabitLog
	query := r.db.Rebind(`
		SELECT ` + logColumns + ` FROM habit_logs
		WHERE habit_id = ? AND log_date = ? AND deleted_at IS NULL`)

	if err := r.db.GetContext(ctx, &l, query, habitID, date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLogNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *SQLHabitLogRepository) ListByHabitID(ctx context.Context, habitID string, from, to domain.Date) ([]domain.HabitLog, error) {
	logs := []domain.HabitLog{}
	query := r.db.Rebind(`
		SELECT ` + logColumns + ` FROM habit_logs
		WHERE habit_id = ?
		  AND log_date >= ?
		  AND log_date <= ?
		  AND deleted_at IS NULL
		ORDER BY log_date ASC`)

	if err := r.db.SelectContext(ctx, &logs, query, habitID, from, to); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *SQLHabitLogRepository) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to domain.Date) ([]domain.HabitLog, error) {
	logs := []domain.HabitLog{}
	query := r.db.Rebind(`
		SELECT ` + logColumns + ` FROM habit_logs
		WHERE user_id = ?
		  AND log_date >= ?
		  AND log_date <= ?
		  AND deleted_at IS NULL
		ORDER BY habit_id ASC, log_date ASC`)

	if err := r.db.SelectContext(ctx, &logs, query, userID, from, to); err != nil {
		return nil, err
	}
	return logs, nil
}

// Update writes completion state guarded by the caller's version.
func (r *SQLHabitLogRepository) Update(ctx context.Context, l *domain.HabitLog) error {
	now := time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE habit_logs
		SET completed = ?, completed_at = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND version = ? AND deleted_at IS NULL`)

	res, err := r.db.ExecContext(ctx, query, l.Completed, l.CompletedAt, now, l.ID, l.Version)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		exists, _ := r.exists(ctx, l.ID)
		if !exists {
			return domain.ErrLogNotFound
		}
		return domain.ErrLogConflict
	}

	l.Version++
	l.UpdatedAt = now
	return nil
}

func (r *SQLHabitLogRepository) Delete(ctx context.Context, id string, userID string) error {
	now := time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE habit_logs
		SET deleted_at = ?, updated_at = ?, version = version + 1
		WHERE id = ?
		  AND user_id = ?
		  AND deleted_at IS NULL`)

	res, err := r.db.ExecContext(ctx, query, now, now, id, userID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrLogNotFound
	}
	return nil
}

func (r *SQLHabitLogRepository) GetChanges(ctx context.Context, userID string, since time.Time) ([]*domain.HabitLog, error) {
	logs := []*domain.HabitLog{}
	query := r.db.Rebind(`
		SELECT ` + logColumns + ` FROM habit_logs
		WHERE user_id = ? AND updated_at > ?
		ORDER BY updated_at ASC`)

	if err := r.db.SelectContext(ctx, &logs, query, userID, since.UTC()); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *SQLHabitLogRepository) exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, r.db.Rebind(`SELECT count(*) FROM habit_logs WHERE id = ?`), id)
	return count > 0, err
}
