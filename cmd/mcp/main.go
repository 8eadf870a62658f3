// Command mcp serves read-only habit analytics for one user over MCP stdio.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/comitanigiacomo/kanso-journal/internal/adapters/handler/mcptools"
	"github.com/comitanigiacomo/kanso-journal/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-journal/internal/config"
	"github.com/comitanigiacomo/kanso-journal/internal/core/services"
)

func main() {
	// stdout carries the protocol.
	log.SetOutput(os.Stderr)

	if err := run(); err != nil {
		log.Fatalf("Critical: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.MCPUserID == "" {
		return fmt.Errorf("MCP_USER_ID is required")
	}

	ctx := context.Background()
	db, err := repository.Open(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	habitRepo := repository.NewSQLHabitRepository(db)
	logRepo := repository.NewSQLHabitLogRepository(db)
	journalRepo := repository.NewSQLJournalRepository(db)

	if _, err := repository.NewSQLUserRepository(db).GetByID(ctx, cfg.MCPUserID); err != nil {
		return fmt.Errorf("MCP_USER_ID %q: %w", cfg.MCPUserID, err)
	}

	s := mcptools.NewServer(mcptools.Dependencies{
		UserID:    cfg.MCPUserID,
		Habits:    services.NewHabitService(habitRepo),
		Analytics: services.NewAnalyticsService(habitRepo, logRepo),
		Journal:   services.NewJournalService(journalRepo),
	})

	log.Printf("kanso-journal MCP server v%s serving user %s", mcptools.Version, cfg.MCPUserID)
	return server.ServeStdio(s)
}
