package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/caminhar/clinic-api/internal/domain"
	"github.com/caminhar/clinic-api/internal/repository"
	apperrors "github.com/caminhar/clinic-api/pkg/util"
)

var _ repository.UserRepository = (*mockUserRepository)(nil)

type mockUserRepository struct {
	FindByLoginFunc   func(ctx context.Context, login string) (*domain.User, error)
	ExistsByLoginFunc func(ctx context.Context, login string) (bool, error)
	CreateFunc        func(ctx context.Context, user *domain.User) error
	UpdateFunc        func(ctx context.Context, user *domain.User) error
}

func (m *mockUserRepository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	if m.FindByLoginFunc != nil {
		return m.FindByLoginFunc(ctx, login)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepository) ExistsByLogin(ctx context.Context, login string) (bool, error) {
	if m.ExistsByLoginFunc != nil {
		return m.ExistsByLoginFunc(ctx, login)
	}
	return false, nil
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func newFilterTestApp(users repository.UserRepository, tm *TokenManager) (*fiber.App, *bool) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Code)
		},
	})

	middleware := NewAuthMiddleware(tm, users, zap.NewNop())
	app.Use(middleware.Handle)

	handlerReached := false
	app.Get("/open", func(c *fiber.Ctx) error {
		handlerReached = true
		if principal, ok := PrincipalFromContext(c); ok {
			return c.JSON(fiber.Map{"login": principal.Login, "role": principal.Role})
		}
		return c.SendString("anonymous")
	})
	return app, &handlerReached
}

func TestAuthMiddleware_NoHeaderContinuesAnonymous(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	app, reached := newFilterTestApp(&mockUserRepository{}, tm)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, *reached)
}

func TestAuthMiddleware_MalformedHeaderContinuesAnonymous(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	app, reached := newFilterTestApp(&mockUserRepository{}, tm)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, *reached)
}

func TestAuthMiddleware_InvalidTokenIsHardStop(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	app, reached := newFilterTestApp(&mockUserRepository{}, tm)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, *reached, "handler must not run after a rejected token")
}

func TestAuthMiddleware_ExpiredTokenIsHardStopEvenOnOpenRoute(t *testing.T) {
	expired := NewTokenManager("test-secret", -time.Minute)
	token, _, err := expired.GenerateToken("maria", domain.RoleUser)
	assert.NoError(t, err)

	tm := NewTokenManager("test-secret", time.Hour)
	app, reached := newFilterTestApp(&mockUserRepository{}, tm)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, errTest := app.Test(req)
	assert.NoError(t, errTest)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, *reached)
}

func TestAuthMiddleware_VanishedUserIsHardStop(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	token, _, err := tm.GenerateToken("ghost", domain.RoleAdmin)
	assert.NoError(t, err)

	users := &mockUserRepository{
		FindByLoginFunc: func(ctx context.Context, login string) (*domain.User, error) {
			return nil, pgx.ErrNoRows
		},
	}
	app, reached := newFilterTestApp(users, tm)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, errTest := app.Test(req)
	assert.NoError(t, errTest)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, *reached)
}

func TestAuthMiddleware_RoleComesFromStoreNotClaim(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	// Token claims ADMIN, but the store has since demoted the account.
	token, _, err := tm.GenerateToken("maria", domain.RoleAdmin)
	assert.NoError(t, err)

	lookups := 0
	users := &mockUserRepository{
		FindByLoginFunc: func(ctx context.Context, login string) (*domain.User, error) {
			lookups++
			return &domain.User{Login: login, Role: domain.RoleUser}, nil
		},
	}
	app, _ := newFilterTestApp(users, tm)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, errTest := app.Test(req)
	assert.NoError(t, errTest)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, lookups, "exactly one store read per authenticated request")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"role":"USER"`)
}
