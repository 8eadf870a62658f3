package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-journal/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

func TestCalculateStreakStats(t *testing.T) {
	tests := []struct {
		name        string
		logs        []domain.HabitLog
		wantCurrent int
		wantBest    int
		wantRate    float64
		wantToday   bool
	}{
		{
			name: "Empty history",
			logs: nil,
		},
		{
			name:        "Single completion today",
			logs:        []domain.HabitLog{logAt(0, true)},
			wantCurrent: 1, wantBest: 1, wantRate: 100, wantToday: true,
		},
		{
			name:        "One miss resets current streak",
			logs:        history(0, true, true, true, false),
			wantCurrent: 0, wantBest: 3, wantRate: 75,
		},
		{
			name:        "Current run after an older break",
			logs:        history(0, true, true, false, true, true, true, true),
			wantCurrent: 4, wantBest: 4, wantRate: 6.0 / 7 * 100, wantToday: true,
		},
		{
			name:        "Best streak in the past",
			logs:        history(1, true, true, true, true, false, true),
			wantCurrent: 1, wantBest: 4, wantRate: 5.0 / 6 * 100,
		},
		{
			name:        "Gaps without logs keep the streak",
			logs:        []domain.HabitLog{logAt(5, true), logAt(3, true), logAt(1, true)},
			wantCurrent: 3, wantBest: 3, wantRate: 100,
		},
		{
			name:        "Unsorted input",
			logs:        []domain.HabitLog{logAt(0, true), logAt(2, false), logAt(1, true), logAt(3, true)},
			wantCurrent: 2, wantBest: 2, wantRate: 75, wantToday: true,
		},
		{
			name:        "Logged today but missed",
			logs:        history(0, true, false),
			wantCurrent: 0, wantBest: 1, wantRate: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := analytics.CalculateStreakStats(tt.logs, today)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCurrent, got.CurrentStreak, "Current Streak mismatch")
			assert.Equal(t, tt.wantBest, got.BestStreak, "Best Streak mismatch")
			assert.InDelta(t, tt.wantRate, got.CompletionRate, 1e-9)
			assert.Equal(t, tt.wantToday, got.CompletedToday)
		})
	}
}

func TestCalculateStreakStats_BestStreakNeverDecreases(t *testing.T) {
	logs := history(40, true, true, false, true, false)
	previous := 0

	for offset := 39; offset >= 0; offset-- {
		logs = append(logs, logAt(offset, offset%7 != 0 || offset == 0))

		stats, err := analytics.CalculateStreakStats(logs, today)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, stats.BestStreak, previous)
		previous = stats.BestStreak
	}
}

func TestCalculateStreakStats_RejectsDuplicates(t *testing.T) {
	_, err := analytics.CalculateStreakStats([]domain.HabitLog{logAt(0, true), logAt(0, true)}, today)
	assert.True(t, domain.IsValidation(err))
}
