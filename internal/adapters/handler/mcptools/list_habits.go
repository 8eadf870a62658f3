package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/comitanigiacomo/kanso-journal/internal/core/services"
)

// ListHabitsTool handles the list_habits MCP tool.
type ListHabitsTool struct {
	habits *services.HabitService
	userID string
}

func NewListHabitsTool(habits *services.HabitService, userID string) *ListHabitsTool {
	return &ListHabitsTool{habits: habits, userID: userID}
}

func (t *ListHabitsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_habits",
		mcp.WithDescription("List the user's habits with their IDs. Use the IDs with habit_insights."),
		mcp.WithBoolean("include_archived",
			mcp.Description("Also list archived habits (default: false)"),
		),
	)
}

func (t *ListHabitsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	includeArchived := boolArg(req, "include_archived", false)

	habits, err := t.habits.ListByUserID(ctx, t.userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list habits: %v", err)), nil
	}

	var b strings.Builder
	shown := 0
	for _, h := range habits {
		if h.IsArchived() && !includeArchived {
			continue
		}
		shown++
		status := ""
		if h.IsArchived() {
			status = " (archived)"
		}
		fmt.Fprintf(&b, "- **%s**%s | id: %s | since %s\n", h.Title, status, h.ID, h.CreatedAt.UTC().Format("2006-01-02"))
	}

	if shown == 0 {
		return mcp.NewToolResultText("No habits yet."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("## Habits (%d)\n\n%s", shown, b.String())), nil
}
