package analytics

import (
	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

type StreakStats struct {
	CurrentStreak  int     `json:"current_streak"`
	BestStreak     int     `json:"best_streak"`
	CompletionRate float64 `json:"completion_rate"`
	CompletedToday bool    `json:"completed_today"`
}

// CalculateStreakStats walks the logs newest first. Only an explicit miss
// breaks a streak; days without a log do not.
func CalculateStreakStats(logs []domain.HabitLog, today domain.Date) (StreakStats, error) {
	ref, err := today.Time()
	if err != nil {
		return StreakStats{}, err
	}

	days, err := normalize(logs)
	if err != nil {
		return StreakStats{}, err
	}

	var stats StreakStats
	if len(days) == 0 {
		return stats, nil
	}

	temp := 0
	current := true
	for i := len(days) - 1; i >= 0; i-- {
		d := days[i]
		if !d.completed {
			temp = 0
			current = false
			continue
		}

		temp++
		if temp > stats.BestStreak {
			stats.BestStreak = temp
		}
		if current {
			stats.CurrentStreak = temp
		}
		if d.day.Equal(ref) {
			stats.CompletedToday = true
		}
	}

	stats.CompletionRate = completionPercent(days)
	return stats, nil
}
