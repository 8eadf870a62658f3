// Package analytics derives streaks, habit formation metrics and regression
// risk from a habit's daily logs. Every function is pure: callers pass the
// logs, the start day and the reference day, nothing is read from the clock
// or from storage.
package analytics

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

type dayLog struct {
	day       time.Time
	completed bool
}

// normalize parses every log date and returns a copy sorted ascending.
// Malformed or duplicate dates are rejected.
func normalize(logs []domain.HabitLog) ([]dayLog, error) {
	out := make([]dayLog, 0, len(logs))
	seen := make(map[domain.Date]struct{}, len(logs))

	for _, l := range logs {
		day, err := l.Date.Time()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[l.Date]; dup {
			return nil, &domain.ValidationError{Field: "date", Value: l.Date.String(), Reason: "more than one log for the same day"}
		}
		seen[l.Date] = struct{}{}
		out = append(out, dayLog{day: day, completed: l.Completed})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].day.Before(out[j].day)
	})
	return out, nil
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func completionPercent(logs []dayLog) float64 {
	if len(logs) == 0 {
		return 0
	}
	done := 0
	for _, l := range logs {
		if l.completed {
			done++
		}
	}
	return float64(done) / float64(len(logs)) * 100
}

// ResolveStartDate picks the day a habit actually started: the earliest
// completed log when it predates creation, otherwise the creation day.
func ResolveStartDate(created domain.Date, logs []domain.HabitLog) (domain.Date, error) {
	start, err := created.Time()
	if err != nil {
		return "", err
	}

	days, err := normalize(logs)
	if err != nil {
		return "", err
	}

	for _, l := range days {
		if !l.completed {
			continue
		}
		if l.day.Before(start) {
			return domain.DateOf(l.day), nil
		}
		break
	}
	return created, nil
}
