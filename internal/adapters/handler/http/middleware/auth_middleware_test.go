package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
	"github.com/comitanigiacomo/kanso-journal/internal/core/services"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserRepo) user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

const (
	testSecret = "test-secret-middleware"
	testIssuer = "test-issuer"
)

func protectedRouter(tokens *services.TokenService) *gin.Engine {
	router := gin.New()
	router.Use(AuthMiddleware(tokens))
	router.GET("/protected", func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.String(http.StatusInternalServerError, "missing user id")
			return
		}
		c.String(http.StatusOK, "Hello "+userID)
	})
	return router
}

func mustToken(t *testing.T, secret string, ttl time.Duration, userID string) string {
	t.Helper()
	token, err := services.NewTokenService(secret, testIssuer, ttl, new(MockUserRepo)).GenerateToken(userID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		header   func(t *testing.T) string
		setup    func(repo *MockUserRepo)
		wantCode int
		wantBody string
	}{
		{
			name:     "valid token",
			header:   func(t *testing.T) string { return "Bearer " + mustToken(t, testSecret, time.Hour, "user-123") },
			setup:    func(repo *MockUserRepo) { repo.On("GetByID", mock.Anything, "user-123").Return(&domain.User{ID: "user-123"}, nil) },
			wantCode: http.StatusOK,
			wantBody: "Hello user-123",
		},
		{
			name:     "scheme is case-insensitive",
			header:   func(t *testing.T) string { return "bearer " + mustToken(t, testSecret, time.Hour, "user-456") },
			setup:    func(repo *MockUserRepo) { repo.On("GetByID", mock.Anything, "user-456").Return(&domain.User{ID: "user-456"}, nil) },
			wantCode: http.StatusOK,
			wantBody: "Hello user-456",
		},
		{
			name:     "missing header",
			header:   func(t *testing.T) string { return "" },
			wantCode: http.StatusUnauthorized,
			wantBody: "authorization header required",
		},
		{
			name:     "wrong scheme",
			header:   func(t *testing.T) string { return "Token 12345" },
			wantCode: http.StatusUnauthorized,
			wantBody: "invalid authorization header format",
		},
		{
			name:     "scheme without token",
			header:   func(t *testing.T) string { return "Bearer " },
			wantCode: http.StatusUnauthorized,
			wantBody: "invalid authorization header format",
		},
		{
			name:     "too many fields",
			header:   func(t *testing.T) string { return "Bearer a b" },
			wantCode: http.StatusUnauthorized,
			wantBody: "invalid authorization header format",
		},
		{
			name:     "signed with another secret",
			header:   func(t *testing.T) string { return "Bearer " + mustToken(t, "wrong-secret", time.Hour, "attacker") },
			wantCode: http.StatusUnauthorized,
			wantBody: "invalid or expired token",
		},
		{
			name:     "expired token",
			header:   func(t *testing.T) string { return "Bearer " + mustToken(t, testSecret, -time.Second, "user-expired") },
			wantCode: http.StatusUnauthorized,
			wantBody: "invalid or expired token",
		},
		{
			name:     "user deleted after issuing",
			header:   func(t *testing.T) string { return "Bearer " + mustToken(t, testSecret, time.Hour, "ghost") },
			setup:    func(repo *MockUserRepo) { repo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound) },
			wantCode: http.StatusUnauthorized,
			wantBody: "invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepo)
			if tt.setup != nil {
				tt.setup(repo)
			}
			router := protectedRouter(services.NewTokenService(testSecret, testIssuer, time.Hour, repo))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			repo.AssertExpectations(t)
		})
	}
}

func TestGetUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetUserID(c)
	assert.False(t, ok)

	c.Set(ContextUserIDKey, "")
	_, ok = GetUserID(c)
	assert.False(t, ok)

	c.Set(ContextUserIDKey, "user-1")
	id, ok := GetUserID(c)
	assert.True(t, ok)
	assert.Equal(t, "user-1", id)
}
