package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrLogNotFound = errors.New("habit log not found")
	ErrLogConflict = errors.New("habit log version conflict")
)

// HabitLog records whether a habit was completed on a given day.
// At most one live log exists per (HabitID, Date).
type HabitLog struct {
	ID          string     `json:"id" db:"id"`
	HabitID     string     `json:"habit_id" db:"habit_id"`
	UserID      string     `json:"user_id" db:"user_id"`
	Date        Date       `json:"date" db:"log_date"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewHabitLog(habitID, userID string, date Date, completed bool) *HabitLog {
	now := time.Now().UTC()

	l := &HabitLog{
		HabitID: habitID,
		UserID:  userID,
		Date:    date,

		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	l.SetCompleted(completed, now)
	return l
}

// SetCompleted toggles completion, stamping CompletedAt only on a transition to done.
func (l *HabitLog) SetCompleted(completed bool, at time.Time) {
	if completed && !l.Completed {
		stamp := at.UTC()
		l.CompletedAt = &stamp
	}
	if !completed {
		l.CompletedAt = nil
	}
	l.Completed = completed
}

func (l *HabitLog) Validate() error {
	if strings.TrimSpace(l.HabitID) == "" {
		return errors.New("habit_id is required")
	}
	if strings.TrimSpace(l.UserID) == "" {
		return errors.New("user_id is required")
	}
	if _, err := l.Date.Time(); err != nil {
		return err
	}
	return nil
}
