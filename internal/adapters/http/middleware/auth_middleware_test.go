package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"starwash-api/internal/adapters/http/middleware"
	"starwash-api/internal/adapters/persistence/models"
	"starwash-api/internal/config"
	"starwash-api/internal/pkg/jwt"
	"starwash-api/internal/pkg/password"
)

func testConfig() *config.Config {
	cfg := &config.Config{AppMode: "dev"}
	cfg.JWT.Secret = "middleware-test-secret"
	cfg.JWT.TokenHours = 1
	return cfg
}

// fakeSessionRepo tracks issued token hashes and their revocation state
type fakeSessionRepo struct {
	sessions map[string]*models.AuthSession // token hash -> session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.AuthSession{}}
}

func (r *fakeSessionRepo) track(token string) {
	r.sessions[password.HashToken(token)] = &models.AuthSession{
		TokenHash: password.HashToken(token),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.AuthSession) error {
	r.sessions[session.TokenHash] = session
	return nil
}

func (r *fakeSessionRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.AuthSession, error) {
	s, ok := r.sessions[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *fakeSessionRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	if s, ok := r.sessions[tokenHash]; ok {
		now := time.Now()
		s.RevokedAt = &now
	}
	return nil
}

func (r *fakeSessionRepo) RevokeAllByUserID(_ context.Context, userID uint) error { return nil }
func (r *fakeSessionRepo) DeleteExpired(_ context.Context) error                  { return nil }

func newGuardedApp(cfg *config.Config, sessions *fakeSessionRepo) *fiber.App {
	app := fiber.New()
	app.Get("/staff-area", middleware.AuthMiddleware(cfg, sessions), middleware.StaffOrAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/admin-area", middleware.AuthMiddleware(cfg, sessions), middleware.AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func issueToken(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(1, "maria", role, cfg.JWT.Secret, cfg.JWT.TokenHours)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	app := newGuardedApp(cfg, newFakeSessionRepo())

	tests := []struct {
		name   string
		path   string
		header string
		cookie string
		status int
	}{
		{name: "no token", path: "/staff-area", status: http.StatusUnauthorized},
		{name: "garbage token", path: "/staff-area", header: "Bearer nope", status: http.StatusUnauthorized},
		{
			name:   "wrong secret",
			path:   "/staff-area",
			header: "Bearer " + issueWithSecret(t, "other-secret"),
			status: http.StatusUnauthorized,
		},
		{
			name:   "staff token on staff area",
			path:   "/staff-area",
			header: "Bearer " + issueToken(t, cfg, "STAFF"),
			status: http.StatusOK,
		},
		{
			name:   "staff token on admin area is forbidden, not unauthorized",
			path:   "/admin-area",
			header: "Bearer " + issueToken(t, cfg, "STAFF"),
			status: http.StatusForbidden,
		},
		{
			name:   "admin token on admin area",
			path:   "/admin-area",
			header: "Bearer " + issueToken(t, cfg, "ADMIN"),
			status: http.StatusOK,
		},
		{
			name:   "admin token on staff area",
			path:   "/staff-area",
			header: "Bearer " + issueToken(t, cfg, "ADMIN"),
			status: http.StatusOK,
		},
		{
			name:   "lowercase role claim still normalizes",
			path:   "/admin-area",
			header: "Bearer " + issueToken(t, cfg, "admin"),
			status: http.StatusOK,
		},
		{
			name:   "role outside the closed set is rejected",
			path:   "/staff-area",
			header: "Bearer " + issueToken(t, cfg, "OWNER"),
			status: http.StatusUnauthorized,
		},
		{
			name:   "cookie fallback",
			path:   "/staff-area",
			cookie: issueToken(t, cfg, "STAFF"),
			status: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}

			res, err := app.Test(req)
			require.NoError(t, err)
			defer res.Body.Close()
			assert.Equal(t, tt.status, res.StatusCode)
		})
	}
}

// A token the operator logged out of must stop working immediately, even
// though its signature and expiry are still valid.
func TestAuthMiddleware_RevokedTokenRejected(t *testing.T) {
	cfg := testConfig()
	sessions := newFakeSessionRepo()
	app := newGuardedApp(cfg, sessions)

	token := issueToken(t, cfg, "ADMIN")
	sessions.track(token)

	get := func() int {
		req := httptest.NewRequest(http.MethodGet, "/admin-area", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		res, err := app.Test(req)
		require.NoError(t, err)
		defer res.Body.Close()
		return res.StatusCode
	}

	require.Equal(t, http.StatusOK, get(), "tracked token works before logout")

	require.NoError(t, sessions.RevokeByTokenHash(context.Background(), password.HashToken(token)))
	session, err := sessions.GetByTokenHash(context.Background(), password.HashToken(token))
	require.NoError(t, err)
	require.True(t, session.IsRevoked())

	assert.Equal(t, http.StatusUnauthorized, get(), "revoked token is rejected")
}

func issueWithSecret(t *testing.T, secret string) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(1, "maria", "ADMIN", secret, 1)
	require.NoError(t, err)
	return token
}

func TestBearerToken_HeaderWinsOverCookie(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(middleware.BearerToken(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer from-header")
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "from-cookie"})

	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body := make([]byte, 64)
	n, _ := res.Body.Read(body)
	assert.Equal(t, "from-header", string(body[:n]))
}
