package analytics

import (
	"fmt"
	"math"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

type RiskLevel string

const (
	RiskSafe     RiskLevel = "safe"
	RiskCaution  RiskLevel = "caution"
	RiskWarning  RiskLevel = "warning"
	RiskCritical RiskLevel = "critical"
)

const missLookback = 14

// Earlier stages break more easily, so the same misses weigh more.
var stageRiskMultiplier = map[Stage]float64{
	StageInitiation:    2.5,
	StageDevelopment:   1.8,
	StageStabilization: 1.2,
	StageAutomatic:     0.6,
}

var levelUrgency = map[RiskLevel]float64{
	RiskCritical: 95,
	RiskWarning:  75,
	RiskCaution:  45,
	RiskSafe:     10,
}

type RiskAssessment struct {
	RiskLevel               RiskLevel `json:"risk_level"`
	ConsecutiveMissedDays   int       `json:"consecutive_missed_days"`
	DaysSinceLastCompletion int       `json:"days_since_last_completion"`
	RegressionRisk          float64   `json:"regression_risk"`
	InterventionMessage     string    `json:"intervention_message"`
	UrgencyScore            float64   `json:"urgency_score"`
}

// AssessRisk estimates how likely a habit is to lapse. Today is excluded from
// the scan since it is still in progress. Days without any log are neutral:
// only explicit misses count.
func AssessRisk(logs []domain.HabitLog, metrics PermanenceMetrics, today domain.Date) (RiskAssessment, error) {
	ref, err := today.Time()
	if err != nil {
		return RiskAssessment{}, err
	}

	days, err := normalize(logs)
	if err != nil {
		return RiskAssessment{}, err
	}
	if len(days) == 0 {
		return RiskAssessment{
			RiskLevel:           RiskSafe,
			InterventionMessage: "Start tracking this habit to see how it is settling in.",
		}, nil
	}

	byDay := make(map[domain.Date]bool, len(days))
	for _, d := range days {
		byDay[domain.DateOf(d.day)] = d.completed
	}

	misses := 0
	sinceLast := -1
	for offset := 1; offset <= missLookback; offset++ {
		completed, logged := byDay[domain.DateOf(ref.AddDate(0, 0, -offset))]
		if !logged {
			continue
		}
		if completed {
			sinceLast = offset
			break
		}
		misses++
	}

	if sinceLast < 0 {
		sinceLast = metrics.DaysSinceStart
		for i := len(days) - 1; i >= 0; i-- {
			if days[i].completed && days[i].day.Before(ref) {
				sinceLast = daysBetween(days[i].day, ref)
				break
			}
		}
	}

	risk := regressionRisk(misses, metrics.PermanenceStage, metrics.AutomaticityScore)
	level := levelFor(risk)

	return RiskAssessment{
		RiskLevel:               level,
		ConsecutiveMissedDays:   misses,
		DaysSinceLastCompletion: sinceLast,
		RegressionRisk:          risk,
		InterventionMessage:     interventionMessage(level, metrics.PermanenceStage, misses),
		UrgencyScore:            levelUrgency[level],
	}, nil
}

func regressionRisk(misses int, stage Stage, automaticity float64) float64 {
	multiplier, ok := stageRiskMultiplier[stage]
	if !ok {
		multiplier = stageRiskMultiplier[StageInitiation]
	}

	var base float64
	switch {
	case misses <= 0:
		return 0
	case misses == 1:
		base = 15 * multiplier
	case misses == 2:
		base = 35 * multiplier
	default:
		base = math.Min(20+float64(misses)*15, 85) * multiplier
	}

	damping := math.Max(0.3, 1-(automaticity/100)*0.7)
	return math.Min(base*damping, 100)
}

func levelFor(risk float64) RiskLevel {
	switch {
	case risk >= 75:
		return RiskCritical
	case risk >= 50:
		return RiskWarning
	case risk >= 25:
		return RiskCaution
	default:
		return RiskSafe
	}
}

func interventionMessage(level RiskLevel, stage Stage, misses int) string {
	switch level {
	case RiskCritical:
		if stage == StageInitiation || stage == StageDevelopment {
			return fmt.Sprintf("%d missed days in a row while the habit is still forming. Do the smallest possible version today to keep it alive.", misses)
		}
		return fmt.Sprintf("%d missed days in a row. Even established habits fade without practice, get back to it today.", misses)
	case RiskWarning:
		if stage == StageInitiation {
			return "The habit is new and slipping. Pick a fixed time today and make it easy to start."
		}
		return "Your routine is slipping. Plan exactly when you will do it today."
	case RiskCaution:
		if stage == StageAutomatic {
			return "A small slip on a solid habit. One completion puts you back on track."
		}
		return "You missed recently. Don't miss twice: complete it today."
	default:
		switch stage {
		case StageAutomatic:
			return "This habit is part of who you are. Keep it up."
		case StageStabilization:
			return "The habit is stabilizing nicely. Stay consistent."
		default:
			return "On track. Keep showing up every day."
		}
	}
}
