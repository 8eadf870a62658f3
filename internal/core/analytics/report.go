package analytics

import (
	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

// Report bundles the three calculators over one log slice.
type Report struct {
	Streak     StreakStats       `json:"streak"`
	Permanence PermanenceMetrics `json:"permanence"`
	Risk       RiskAssessment    `json:"risk"`
}

// Evaluate runs streak, permanence and risk over the same logs. Risk is
// assessed against the permanence metrics computed here.
func Evaluate(logs []domain.HabitLog, startDate, today domain.Date) (Report, error) {
	streak, err := CalculateStreakStats(logs, today)
	if err != nil {
		return Report{}, err
	}

	permanence, err := CalculatePermanence(logs, startDate, today)
	if err != nil {
		return Report{}, err
	}

	risk, err := AssessRisk(logs, permanence, today)
	if err != nil {
		return Report{}, err
	}

	return Report{Streak: streak, Permanence: permanence, Risk: risk}, nil
}

// NeedsAttention reports whether the risk level warrants an alert.
func (r Report) NeedsAttention() bool {
	return r.Risk.RiskLevel == RiskWarning || r.Risk.RiskLevel == RiskCritical
}
