package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-journal/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

type AnalyticsService struct {
	habitRepo domain.HabitRepository
	logRepo   domain.HabitLogRepository
}

func NewAnalyticsService(habitRepo domain.HabitRepository, logRepo domain.HabitLogRepository) *AnalyticsService {
	return &AnalyticsService{
		habitRepo: habitRepo,
		logRepo:   logRepo,
	}
}

type InsightsInput struct {
	UserID  string
	HabitID string
	// From and To bound the log window; empty means the whole history up to Today.
	From  domain.Date
	To    domain.Date
	Today domain.Date
}

type HabitInsights struct {
	Habit      *domain.Habit               `json:"habit"`
	StartDate  domain.Date                 `json:"start_date"`
	EndDate    domain.Date                 `json:"end_date"`
	Streak     analytics.StreakStats       `json:"streak"`
	Permanence analytics.PermanenceMetrics `json:"permanence"`
	Risk       analytics.RiskAssessment    `json:"risk"`
}

type Dashboard struct {
	Date           domain.Date                 `json:"date"`
	Habits         []HabitInsights             `json:"habits"`
	CompletedToday int                         `json:"completed_today"`
	RiskCounts     map[analytics.RiskLevel]int `json:"risk_counts"`
}

// HabitInsights evaluates one habit. Logs are fetched once and shared by
// every calculator; the window end is the reference day.
func (s *AnalyticsService) HabitInsights(ctx context.Context, input InsightsInput) (*HabitInsights, error) {
	if _, err := input.Today.Time(); err != nil {
		return nil, err
	}

	from, to := input.From, input.To
	if from == "" {
		from = domain.MinDate
	}
	if to == "" || to > input.Today {
		to = input.Today
	}
	if err := domain.ValidateRange(from, to); err != nil {
		return nil, err
	}

	habit, err := s.habitRepo.GetByID(ctx, input.HabitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != input.UserID {
		return nil, domain.ErrUnauthorized
	}

	logs, err := s.logRepo.ListByHabitID(ctx, habit.ID, from, to)
	if err != nil {
		return nil, err
	}

	return evaluate(habit, logs, to)
}

// Dashboard evaluates every active habit of a user as of today.
func (s *AnalyticsService) Dashboard(ctx context.Context, userID string, today domain.Date) (*Dashboard, error) {
	if _, err := today.Time(); err != nil {
		return nil, err
	}

	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{
		Date:       today,
		Habits:     make([]HabitInsights, 0, len(habits)),
		RiskCounts: make(map[analytics.RiskLevel]int),
	}

	for _, h := range habits {
		if h.IsArchived() {
			continue
		}

		logs, err := s.logRepo.ListByHabitID(ctx, h.ID, domain.MinDate, today)
		if err != nil {
			return nil, err
		}

		insights, err := evaluate(h, logs, today)
		if err != nil {
			return nil, err
		}

		dash.Habits = append(dash.Habits, *insights)
		dash.RiskCounts[insights.Risk.RiskLevel]++
		if insights.Streak.CompletedToday {
			dash.CompletedToday++
		}
	}

	return dash, nil
}

func evaluate(habit *domain.Habit, logs []domain.HabitLog, today domain.Date) (*HabitInsights, error) {
	start, err := analytics.ResolveStartDate(domain.DateOf(habit.CreatedAt.UTC()), logs)
	if err != nil {
		return nil, err
	}

	report, err := analytics.Evaluate(logs, start, today)
	if err != nil {
		return nil, err
	}

	return &HabitInsights{
		Habit:      habit,
		StartDate:  start,
		EndDate:    today,
		Streak:     report.Streak,
		Permanence: report.Permanence,
		Risk:       report.Risk,
	}, nil
}
