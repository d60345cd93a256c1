package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/caminhar/clinic-api/internal/auth"
	"github.com/caminhar/clinic-api/internal/config"
	"github.com/caminhar/clinic-api/internal/domain"
	"github.com/caminhar/clinic-api/internal/events"
	apperrors "github.com/caminhar/clinic-api/pkg/util"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            bcrypt.MinCost,
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	assert.NoError(t, err)
	return hash
}

func TestAuthService_LoginSuccess(t *testing.T) {
	users := &mockUserRepository{
		FindByLoginFunc: func(_ context.Context, login string) (*domain.User, error) {
			return &domain.User{Login: login, PasswordHash: mustHash(t, "s3cret"), Role: domain.RoleAdmin}, nil
		},
	}
	svc := NewAuthService(testAuthConfig(), users, nil)

	token, exp, err := svc.Login(context.Background(), "root", "s3cret")
	assert.NoError(t, err)
	assert.False(t, exp.IsZero())

	claims, err := svc.TokenManager().ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "root", claims.Subject)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	users := &mockUserRepository{
		FindByLoginFunc: func(_ context.Context, login string) (*domain.User, error) {
			if login == "maria" {
				return &domain.User{Login: login, PasswordHash: mustHash(t, "correct"), Role: domain.RoleUser}, nil
			}
			return nil, pgx.ErrNoRows
		},
	}
	svc := NewAuthService(testAuthConfig(), users, nil)

	_, _, wrongPassword := svc.Login(context.Background(), "maria", "wrong")
	_, _, unknownUser := svc.Login(context.Background(), "nobody", "whatever")

	assert.Error(t, wrongPassword)
	assert.Error(t, unknownUser)

	wrongDE := apperrors.ToDomainError(wrongPassword)
	unknownDE := apperrors.ToDomainError(unknownUser)
	assert.Equal(t, wrongDE.Code, unknownDE.Code)
	assert.Equal(t, wrongDE.Message, unknownDE.Message)
	assert.Equal(t, wrongDE.HTTPStatus, unknownDE.HTTPStatus)
	assert.Equal(t, 401, wrongDE.HTTPStatus)
}

func TestAuthService_RegisterSuccess(t *testing.T) {
	var stored *domain.User
	users := &mockUserRepository{
		CreateFunc: func(_ context.Context, user *domain.User) error {
			user.ID = 1
			stored = user
			return nil
		},
	}
	dispatcher := &recordingDispatcher{}
	svc := NewAuthService(testAuthConfig(), users, dispatcher)

	user, err := svc.Register(context.Background(), "maria", "s3cret", domain.RoleUser)
	assert.NoError(t, err)
	assert.Equal(t, "maria", user.Login)
	assert.Equal(t, domain.RoleUser, user.Role)

	assert.NotNil(t, stored)
	assert.NotEqual(t, "s3cret", stored.PasswordHash, "password must be stored hashed")
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "s3cret"))

	assert.Contains(t, dispatcher.Types(), events.EventUserRegistered)
}

func TestAuthService_RegisterDuplicateConflicts(t *testing.T) {
	registered := map[string]bool{}
	users := &mockUserRepository{
		ExistsByLoginFunc: func(_ context.Context, login string) (bool, error) {
			return registered[login], nil
		},
		CreateFunc: func(_ context.Context, user *domain.User) error {
			registered[user.Login] = true
			return nil
		},
	}
	svc := NewAuthService(testAuthConfig(), users, nil)

	_, err := svc.Register(context.Background(), "maria", "s3cret", domain.RoleUser)
	assert.NoError(t, err)

	_, err = svc.Register(context.Background(), "maria", "other", domain.RoleUser)
	assert.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
	assert.Equal(t, 1, users.CreateCallCount, "second registration must not touch the store")
}

func TestAuthService_RegisterRejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), &mockUserRepository{}, nil)

	_, err := svc.Register(context.Background(), "maria", "s3cret", domain.Role("SUPERUSER"))
	assert.Error(t, err)
	assert.Equal(t, 400, apperrors.ToDomainError(err).HTTPStatus)
}

// Self-assigned ADMIN registration is currently accepted; the test
// pins the behavior until a product decision changes it.
func TestAuthService_RegisterAllowsSelfAssignedAdmin(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), &mockUserRepository{}, nil)

	user, err := svc.Register(context.Background(), "root", "s3cret", domain.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}
