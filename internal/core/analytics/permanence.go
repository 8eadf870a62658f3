package analytics

import (
	"math"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

type Stage string

const (
	StageInitiation    Stage = "initiation"
	StageDevelopment   Stage = "development"
	StageStabilization Stage = "stabilization"
	StageAutomatic     Stage = "automatic"
)

type Strength string

const (
	StrengthWeak       Strength = "weak"
	StrengthDeveloping Strength = "developing"
	StrengthStrong     Strength = "strong"
	StrengthAutomatic  Strength = "automatic"
)

// Stage boundaries, in days since start (inclusive upper bounds).
const (
	InitiationDays    = 21
	DevelopmentDays   = 66
	StabilizationDays = 154
)

const (
	recentWindow        = 14
	streakSaturation    = 30
	defaultProjectedDay = 66

	streakWeight      = 40.0
	consistencyWeight = 35.0
	timeWeight        = 25.0
)

type PermanenceMetrics struct {
	AutomaticityScore          float64  `json:"automaticity_score"`
	DaysSinceStart             int      `json:"days_since_start"`
	ConsistencyScore           float64  `json:"consistency_score"`
	CurrentStreak              int      `json:"current_streak"`
	PermanenceStage            Stage    `json:"permanence_stage"`
	PermanencePercentage       float64  `json:"permanence_percentage"`
	StrengthLevel              Strength `json:"strength_level"`
	ProjectedCompletionDays    int      `json:"projected_completion_days"`
	MissedOpportunityTolerance int      `json:"missed_opportunity_tolerance"`
}

// DefaultPermanence is the result for a habit with no logs yet.
func DefaultPermanence() PermanenceMetrics {
	return PermanenceMetrics{
		PermanenceStage:         StageInitiation,
		StrengthLevel:           StrengthWeak,
		ProjectedCompletionDays: defaultProjectedDay,
	}
}

// StageFor maps days since start to a formation stage. Day 0 counts as initiation.
func StageFor(daysSinceStart int) Stage {
	switch {
	case daysSinceStart <= InitiationDays:
		return StageInitiation
	case daysSinceStart <= DevelopmentDays:
		return StageDevelopment
	case daysSinceStart <= StabilizationDays:
		return StageStabilization
	default:
		return StageAutomatic
	}
}

// CalculatePermanence computes the formation metrics of one habit as of today.
// daysSinceStart counts calendar days from startDate, never below zero.
func CalculatePermanence(logs []domain.HabitLog, startDate, today domain.Date) (PermanenceMetrics, error) {
	start, err := startDate.Time()
	if err != nil {
		return PermanenceMetrics{}, err
	}
	ref, err := today.Time()
	if err != nil {
		return PermanenceMetrics{}, err
	}

	days, err := normalize(logs)
	if err != nil {
		return PermanenceMetrics{}, err
	}
	if len(days) == 0 {
		return DefaultPermanence(), nil
	}

	daysSinceStart := max(daysBetween(start, ref), 0)

	baseConsistency := completionPercent(days)
	recent := days
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	recentConsistency := completionPercent(recent)
	consistency := recentConsistency*0.6 + baseConsistency*0.4

	streak := 0
	for i := len(days) - 1; i >= 0 && days[i].completed; i-- {
		streak++
	}

	automaticity := automaticityScore(streak, consistency, daysSinceStart)

	return PermanenceMetrics{
		AutomaticityScore:          automaticity,
		DaysSinceStart:             daysSinceStart,
		ConsistencyScore:           consistency,
		CurrentStreak:              streak,
		PermanenceStage:            StageFor(daysSinceStart),
		PermanencePercentage:       permanencePercentage(daysSinceStart, automaticity),
		StrengthLevel:              strengthFor(automaticity),
		ProjectedCompletionDays:    projectedCompletionDays(consistency),
		MissedOpportunityTolerance: min(max(int(math.Floor(automaticity/20)), 0), 5),
	}, nil
}

func automaticityScore(streak int, consistency float64, daysSinceStart int) float64 {
	streakFactor := math.Min(float64(streak)/streakSaturation, 1) * streakWeight
	consistencyFactor := consistency / 100 * consistencyWeight
	timeFactor := math.Min(float64(daysSinceStart)/StabilizationDays, 1) * timeWeight

	return math.Min(100, streakFactor+consistencyFactor+timeFactor)
}

func permanencePercentage(daysSinceStart int, automaticity float64) float64 {
	if daysSinceStart >= StabilizationDays {
		return math.Min(95+automaticity*0.05, 100)
	}
	return math.Min(float64(daysSinceStart)/StabilizationDays*70+automaticity/100*30, 95)
}

func strengthFor(automaticity float64) Strength {
	switch {
	case automaticity >= 80:
		return StrengthAutomatic
	case automaticity >= 60:
		return StrengthStrong
	case automaticity >= 35:
		return StrengthDeveloping
	default:
		return StrengthWeak
	}
}

func projectedCompletionDays(consistency float64) int {
	switch {
	case consistency >= 80:
		return 45
	case consistency >= 60:
		return 66
	case consistency >= 40:
		return 95
	default:
		return 120
	}
}
