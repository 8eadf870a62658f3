package workers

import (
	"context"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-journal/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

const queueSize = 100

type HabitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
}

type LogRepository interface {
	ListByHabitID(ctx context.Context, habitID string, from, to domain.Date) ([]domain.HabitLog, error)
}

// CacheInvalidator drops cached log ranges of a habit.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, habitID string)
}

type Alert struct {
	HabitID    string                   `json:"habit_id"`
	UserID     string                   `json:"user_id"`
	HabitTitle string                   `json:"habit_title"`
	Date       domain.Date              `json:"date"`
	Risk       analytics.RiskAssessment `json:"risk"`
}

type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// LogNotifier writes alerts to the standard logger.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, a Alert) error {
	log.Printf("[ALERT] habit %q (%s) is %s: risk=%.1f misses=%d | %s",
		a.HabitTitle, a.HabitID, a.Risk.RiskLevel, a.Risk.RegressionRisk,
		a.Risk.ConsecutiveMissedDays, a.Risk.InterventionMessage)
	return nil
}

type RiskJob struct {
	HabitID string
}

// RiskWorker recomputes a habit's analytics after its logs change and raises
// an alert when the habit is at warning or critical risk.
type RiskWorker struct {
	habitRepo   HabitRepository
	logRepo     LogRepository
	invalidator CacheInvalidator
	notifier    Notifier
	jobs        chan RiskJob
	now         func() time.Time
}

func NewRiskWorker(hRepo HabitRepository, lRepo LogRepository, invalidator CacheInvalidator, notifier Notifier) *RiskWorker {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &RiskWorker{
		habitRepo:   hRepo,
		logRepo:     lRepo,
		invalidator: invalidator,
		notifier:    notifier,
		jobs:        make(chan RiskJob, queueSize),
		now:         time.Now,
	}
}

func (w *RiskWorker) Start(ctx context.Context) {
	go func() {
		log.Println("[WORKER] Risk worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("[WORKER] Risk worker shutting down...")
				return
			}
		}
	}()
}

// Enqueue never blocks; jobs are dropped when the queue is full.
func (w *RiskWorker) Enqueue(habitID string) {
	select {
	case w.jobs <- RiskJob{HabitID: habitID}:
	default:
		log.Printf("[WORKER] Risk queue full! Dropping job for habit %s", habitID)
	}
}

func (w *RiskWorker) processJob(ctx context.Context, job RiskJob) {
	if w.invalidator != nil {
		w.invalidator.Invalidate(ctx, job.HabitID)
	}

	habit, err := w.habitRepo.GetByID(ctx, job.HabitID)
	if err != nil {
		log.Printf("[WORKER] Error fetching habit %s: %v", job.HabitID, err)
		return
	}
	if habit.IsArchived() {
		return
	}

	today := domain.DateOf(w.now().UTC())

	logs, err := w.logRepo.ListByHabitID(ctx, job.HabitID, domain.MinDate, today)
	if err != nil {
		log.Printf("[WORKER] Error fetching logs for %s: %v", job.HabitID, err)
		return
	}

	start, err := analytics.ResolveStartDate(domain.DateOf(habit.CreatedAt.UTC()), logs)
	if err != nil {
		log.Printf("[WORKER] Bad log data for %s: %v", job.HabitID, err)
		return
	}

	report, err := analytics.Evaluate(logs, start, today)
	if err != nil {
		log.Printf("[WORKER] Analytics failed for %s: %v", job.HabitID, err)
		return
	}

	if !report.NeedsAttention() {
		return
	}

	alert := Alert{
		HabitID:    habit.ID,
		UserID:     habit.UserID,
		HabitTitle: habit.Title,
		Date:       today,
		Risk:       report.Risk,
	}
	if err := w.notifier.Notify(ctx, alert); err != nil {
		log.Printf("[WORKER] Failed to notify for %s: %v", job.HabitID, err)
	}
}
