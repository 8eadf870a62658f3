// @title                       Kanso Journal API
// @version                     1.0
// @description                 Habit tracking, journaling and habit formation analytics.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-journal/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-journal/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-journal/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-journal/internal/config"
	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
	"github.com/comitanigiacomo/kanso-journal/internal/core/services"
	"github.com/comitanigiacomo/kanso-journal/internal/core/workers"
)

type app struct {
	router *gin.Engine
	db     *sqlx.DB
	redis  *redis.Client
	worker *workers.RiskWorker
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// newApp wires storage, cache, services and HTTP handlers. The risk worker
// is created but not started.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	log.Printf("Connecting to database (%s)...", cfg.DBDriver)
	db, err := repository.Open(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, err
	}
	a.db = db
	log.Println("Database connected successfully.")

	var logCache domain.Cache[[]domain.HabitLog]
	if cfg.RedisEnabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redis = rdb
		logCache = cache.NewRedisCache[[]domain.HabitLog](rdb)
		log.Println("[CACHE] Redis connected, log cache and rate limiter enabled.")
	} else {
		logCache = cache.NewMemoryCache[[]domain.HabitLog]()
		log.Println("[CACHE] REDIS_HOST not set, using in-process log cache.")
	}

	userRepo := repository.NewSQLUserRepository(db)
	habitRepo := repository.NewSQLHabitRepository(db)
	journalRepo := repository.NewSQLJournalRepository(db)
	logRepo := repository.NewCachedHabitLogRepository(repository.NewSQLHabitLogRepository(db), logCache, cfg.LogCacheTTL)

	a.worker = workers.NewRiskWorker(habitRepo, logRepo, logRepo, workers.LogNotifier{})

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL, userRepo)
	habitService := services.NewHabitService(habitRepo)
	logService := services.NewHabitLogService(logRepo, habitRepo, a.worker)
	journalService := services.NewJournalService(journalRepo)
	analyticsService := services.NewAnalyticsService(habitRepo, logRepo)
	statsService := services.NewStatsService(habitRepo, logRepo)

	a.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:    adapterHTTP.NewAuthHandler(authService, tokenService),
		HabitHandler:   adapterHTTP.NewHabitHandler(habitService, analyticsService),
		LogHandler:     adapterHTTP.NewLogHandler(logService),
		JournalHandler: adapterHTTP.NewJournalHandler(journalService),
		StatsHandler:   adapterHTTP.NewStatsHandler(statsService),
		TokenService:   tokenService,
		DB:             db,
		Redis:          a.redis,
		RateLimit:      cfg.RateLimit,
		RateWindow:     cfg.RateWindow,
		StartTime:      time.Now(),
	})

	return a, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: invalid configuration: %v", err)
	}
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Critical: startup failed: %v", err)
	}
	defer a.Close()

	a.worker.Start(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kanso Journal running on http://localhost:%s (docs at /swagger/index.html)", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown error: %v", err)
	}
	stop()

	log.Println("Server stopped gracefully.")
}
