package mcptools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/comitanigiacomo/kanso-journal/internal/core/services"
)

// HabitInsightsTool handles the habit_insights MCP tool.
type HabitInsightsTool struct {
	analytics *services.AnalyticsService
	userID    string
	now       func() time.Time
}

func NewHabitInsightsTool(analytics *services.AnalyticsService, userID string) *HabitInsightsTool {
	return &HabitInsightsTool{analytics: analytics, userID: userID, now: time.Now}
}

func (t *HabitInsightsTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_insights",
		mcp.WithDescription(
			"Streak, habit formation stage and regression risk of one habit, "+
				"with a short suggestion on what to do next.",
		),
		mcp.WithString("habit_id",
			mcp.Required(),
			mcp.Description("Habit ID from list_habits"),
		),
		mcp.WithString("from",
			mcp.Description("First day of the window, YYYY-MM-DD (default: whole history)"),
		),
		mcp.WithString("to",
			mcp.Description("Last day of the window, YYYY-MM-DD (default and maximum: today)"),
		),
		mcp.WithString("tz",
			mcp.Description("IANA time zone used to decide what today is (default: UTC)"),
		),
	)
}

func (t *HabitInsightsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	habitID := req.GetString("habit_id", "")
	if habitID == "" {
		return mcp.NewToolResultError("'habit_id' is required"), nil
	}

	today, err := todayIn(req.GetString("tz", ""), t.now())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from, err := dateArg(req, "from", "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := dateArg(req, "to", "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	insights, err := t.analytics.HabitInsights(ctx, services.InsightsInput{
		UserID:  t.userID,
		HabitID: habitID,
		From:    from,
		To:      to,
		Today:   today,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute insights: %v", err)), nil
	}

	return mcp.NewToolResultText(renderInsights(insights)), nil
}

func renderInsights(in *services.HabitInsights) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", in.Habit.Title)
	fmt.Fprintf(&b, "Window: %s to %s\n\n", in.StartDate, in.EndDate)

	b.WriteString("### Streak\n")
	fmt.Fprintf(&b, "- Current: %d days\n", in.Streak.CurrentStreak)
	fmt.Fprintf(&b, "- Best: %d days\n", in.Streak.BestStreak)
	fmt.Fprintf(&b, "- Completion rate: %.1f%%\n", in.Streak.CompletionRate)
	fmt.Fprintf(&b, "- Done today: %t\n\n", in.Streak.CompletedToday)

	p := in.Permanence
	b.WriteString("### Formation\n")
	fmt.Fprintf(&b, "- Stage: %s (day %d)\n", p.PermanenceStage, p.DaysSinceStart)
	fmt.Fprintf(&b, "- Automaticity: %.1f, strength %s\n", p.AutomaticityScore, p.StrengthLevel)
	fmt.Fprintf(&b, "- Permanence: %.1f%%\n", p.PermanencePercentage)
	fmt.Fprintf(&b, "- Projected days to automatic: %d\n\n", p.ProjectedCompletionDays)

	r := in.Risk
	b.WriteString("### Risk\n")
	fmt.Fprintf(&b, "- Level: **%s** (regression risk %.1f)\n", r.RiskLevel, r.RegressionRisk)
	fmt.Fprintf(&b, "- Missed in a row: %d, days since last completion: %d\n", r.ConsecutiveMissedDays, r.DaysSinceLastCompletion)
	fmt.Fprintf(&b, "- %s\n", r.InterventionMessage)

	return b.String()
}
