package analytics_test

import (
	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

const today = domain.Date("2026-10-19")

func daysAgo(n int) domain.Date {
	d, err := today.AddDays(-n)
	if err != nil {
		panic(err)
	}
	return d
}

func logAt(offset int, completed bool) domain.HabitLog {
	return domain.HabitLog{HabitID: "h1", UserID: "u1", Date: daysAgo(offset), Completed: completed}
}

// history builds consecutive daily logs, oldest first, the last one dated
// endOffset days before today.
func history(endOffset int, pattern ...bool) []domain.HabitLog {
	logs := make([]domain.HabitLog, 0, len(pattern))
	for i, completed := range pattern {
		logs = append(logs, logAt(endOffset+len(pattern)-1-i, completed))
	}
	return logs
}

func repeat(v bool, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = v
	}
	return out
}
