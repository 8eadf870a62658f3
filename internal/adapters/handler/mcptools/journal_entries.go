package mcptools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
	"github.com/comitanigiacomo/kanso-journal/internal/core/services"
)

const (
	defaultJournalDays = 7
	maxSnippetLen      = 500
)

// JournalEntriesTool handles the journal_entries MCP tool.
type JournalEntriesTool struct {
	journal *services.JournalService
	userID  string
	now     func() time.Time
}

func NewJournalEntriesTool(journal *services.JournalService, userID string) *JournalEntriesTool {
	return &JournalEntriesTool{journal: journal, userID: userID, now: time.Now}
}

func (t *JournalEntriesTool) Definition() mcp.Tool {
	return mcp.NewTool("journal_entries",
		mcp.WithDescription("Read the user's journal entries in a date window, newest first."),
		mcp.WithString("from",
			mcp.Description("First day, YYYY-MM-DD (default: 7 days before to)"),
		),
		mcp.WithString("to",
			mcp.Description("Last day, YYYY-MM-DD (default: today, UTC)"),
		),
	)
}

func (t *JournalEntriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	to, err := dateArg(req, "to", domain.DateOf(t.now().UTC()))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defaultFrom, err := to.AddDays(-defaultJournalDays)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from, err := dateArg(req, "from", defaultFrom)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entries, err := t.journal.ListByDateRange(ctx, t.userID, from, to)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read journal: %v", err)), nil
	}

	if len(entries) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No journal entries between %s and %s.", from, to)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d entries:\n\n", len(entries))
	for _, e := range entries {
		title := e.Title
		if title == "" {
			title = "(untitled)"
		}
		mood := ""
		if e.Mood != nil {
			mood = fmt.Sprintf(" | mood %d/5", *e.Mood)
		}
		fmt.Fprintf(&b, "### %s: %s%s\n%s\n\n", e.EntryDate, title, mood, truncate(e.Content, maxSnippetLen))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
