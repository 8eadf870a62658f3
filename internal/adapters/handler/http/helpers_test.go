package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-journal/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-journal/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-journal/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-journal/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-journal/internal/config"
	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
	"github.com/comitanigiacomo/kanso-journal/internal/core/services"
)

type testEnv struct {
	router *gin.Engine
	db     *sqlx.DB
}

// newTestEnv wires the real services on a temporary SQLite database. The
// caller is taken from the X-User-ID header instead of a JWT.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.Open(context.Background(), config.DriverSQLite, filepath.Join(t.TempDir(), "http.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	habitRepo := repository.NewSQLHabitRepository(db)
	logRepo := repository.NewCachedHabitLogRepository(
		repository.NewSQLHabitLogRepository(db),
		cache.NewMemoryCache[[]domain.HabitLog](),
		time.Minute,
	)
	journalRepo := repository.NewSQLJournalRepository(db)

	habitSvc := services.NewHabitService(habitRepo)
	logSvc := services.NewHabitLogService(logRepo, habitRepo, nil)
	journalSvc := services.NewJournalService(journalRepo)
	analyticsSvc := services.NewAnalyticsService(habitRepo, logRepo)
	statsSvc := services.NewStatsService(habitRepo, logRepo)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set(middleware.ContextUserIDKey, userID)
		}
		c.Next()
	})

	api := r.Group("/api/v1")
	adapterHTTP.NewHabitHandler(habitSvc, analyticsSvc).RegisterRoutes(api)
	adapterHTTP.NewLogHandler(logSvc).RegisterRoutes(api)
	adapterHTTP.NewJournalHandler(journalSvc).RegisterRoutes(api)
	adapterHTTP.NewStatsHandler(statsSvc).RegisterRoutes(api)

	env := &testEnv{router: r, db: db}
	env.createUser(t, "user-1")
	env.createUser(t, "user-2")
	return env
}

func (e *testEnv) createUser(t *testing.T, id string) {
	t.Helper()
	now := time.Now().UTC()
	err := repository.NewSQLUserRepository(e.db).Create(context.Background(), &domain.User{
		ID:           id,
		Email:        id + "@kanso.app",
		PasswordHash: "unused",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
}

func (e *testEnv) do(method, path, userID, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// createHabit posts a habit for userID and returns it.
func (e *testEnv) createHabit(t *testing.T, userID, title string) domain.Habit {
	t.Helper()
	w := e.do(http.MethodPost, "/api/v1/habits", userID, `{"title": "`+title+`", "color": "#00FF00"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[domain.Habit](t, w)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func todayUTC() domain.Date {
	return domain.DateOf(time.Now().UTC())
}

func daysFromToday(t *testing.T, n int) domain.Date {
	t.Helper()
	d, err := todayUTC().AddDays(n)
	require.NoError(t, err)
	return d
}
