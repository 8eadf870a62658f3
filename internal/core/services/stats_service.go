package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

const maxStatsRangeDays = 92

type StatsService struct {
	habitRepo domain.HabitRepository
	logRepo   domain.HabitLogRepository
}

func NewStatsService(habitRepo domain.HabitRepository, logRepo domain.HabitLogRepository) *StatsService {
	return &StatsService{
		habitRepo: habitRepo,
		logRepo:   logRepo,
	}
}

type StatsInput struct {
	UserID    string
	StartDate domain.Date
	EndDate   domain.Date
}

type HabitStat struct {
	HabitID        string  `json:"habit_id"`
	HabitTitle     string  `json:"habit_title"`
	Color          string  `json:"color"`
	Icon           string  `json:"icon"`
	DaysCompleted  int     `json:"days_completed"`
	CompletionRate float64 `json:"completion_rate"`
	DailyProgress  []bool  `json:"daily_progress"`
}

type WeeklyStats struct {
	StartDate   domain.Date `json:"start_date"`
	EndDate     domain.Date `json:"end_date"`
	TotalHabits int         `json:"total_habits"`
	OverallRate float64     `json:"overall_rate"`
	HabitStats  []HabitStat `json:"habit_stats"`
}

// GetWeeklyStats reports per-day completion of every active habit over
// [StartDate, EndDate]. A day without a completed log counts as not done.
func (s *StatsService) GetWeeklyStats(ctx context.Context, input StatsInput) (*WeeklyStats, error) {
	if err := domain.ValidateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}
	start, _ := input.StartDate.Time()
	end, _ := input.EndDate.Time()
	if end.Sub(start) > maxStatsRangeDays*24*time.Hour {
		return nil, &domain.ValidationError{Field: "end_date", Value: input.EndDate.String(), Reason: "range is limited to 92 days"}
	}

	habits, err := s.habitRepo.ListByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	logs, err := s.logRepo.ListByUserIDAndDateRange(ctx, input.UserID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	done := make(map[string]map[domain.Date]bool)
	for _, l := range logs {
		if !l.Completed {
			continue
		}
		if _, exists := done[l.HabitID]; !exists {
			done[l.HabitID] = make(map[domain.Date]bool)
		}
		done[l.HabitID][l.Date] = true
	}

	stats := &WeeklyStats{
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		HabitStats: make([]HabitStat, 0, len(habits)),
	}

	totalDaysPossible := 0
	totalDaysCompleted := 0

	for _, h := range habits {
		if h.IsArchived() {
			continue
		}

		hStat := HabitStat{
			HabitID:       h.ID,
			HabitTitle:    h.Title,
			Color:         h.Color,
			Icon:          h.Icon,
			DailyProgress: make([]bool, 0),
		}

		daysInPeriod := 0
		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			completed := done[h.ID][domain.DateOf(day)]
			hStat.DailyProgress = append(hStat.DailyProgress, completed)
			if completed {
				hStat.DaysCompleted++
			}
			daysInPeriod++
		}

		if daysInPeriod > 0 {
			hStat.CompletionRate = float64(hStat.DaysCompleted) / float64(daysInPeriod) * 100
		}

		totalDaysPossible += daysInPeriod
		totalDaysCompleted += hStat.DaysCompleted
		stats.HabitStats = append(stats.HabitStats, hStat)
	}

	stats.TotalHabits = len(stats.HabitStats)
	if totalDaysPossible > 0 {
		stats.OverallRate = float64(totalDaysCompleted) / float64(totalDaysPossible) * 100
	}

	return stats, nil
}
