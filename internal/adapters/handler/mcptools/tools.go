// Package mcptools exposes read-only habit analytics as MCP tools.
//
// Every tool serves the single user the server was started for. Each tool
// is a struct with its services injected, a Definition returning the schema
// and a Handle processing the call.
package mcptools

import (
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
	"github.com/comitanigiacomo/kanso-journal/internal/core/services"
)

const Version = "0.1.0"

type Dependencies struct {
	UserID    string
	Habits    *services.HabitService
	Analytics *services.AnalyticsService
	Journal   *services.JournalService
}

// NewServer registers every tool on a fresh MCP server.
func NewServer(deps Dependencies) *server.MCPServer {
	s := server.NewMCPServer(
		"kanso-journal",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions("Read-only access to one user's habits, habit analytics and journal."),
	)

	listTool := NewListHabitsTool(deps.Habits, deps.UserID)
	s.AddTool(listTool.Definition(), listTool.Handle)

	insightsTool := NewHabitInsightsTool(deps.Analytics, deps.UserID)
	s.AddTool(insightsTool.Definition(), insightsTool.Handle)

	journalTool := NewJournalEntriesTool(deps.Journal, deps.UserID)
	s.AddTool(journalTool.Definition(), journalTool.Handle)

	return s
}

func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// todayIn resolves the current day in an IANA zone; empty means UTC.
func todayIn(tz string, now time.Time) (domain.Date, error) {
	loc := time.UTC
	if tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return "", &domain.ValidationError{Field: "tz", Value: tz, Reason: "unknown time zone"}
		}
		loc = l
	}
	return domain.DateOf(now.In(loc)), nil
}

// dateArg reads an optional YYYY-MM-DD argument.
func dateArg(req mcp.CallToolRequest, key string, fallback domain.Date) (domain.Date, error) {
	raw := req.GetString(key, "")
	if raw == "" {
		return fallback, nil
	}
	return domain.ParseDate(raw)
}
