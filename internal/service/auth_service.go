package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/caminhar/clinic-api/internal/auth"
	"github.com/caminhar/clinic-api/internal/config"
	"github.com/caminhar/clinic-api/internal/domain"
	"github.com/caminhar/clinic-api/internal/events"
	"github.com/caminhar/clinic-api/internal/repository"
	apperrors "github.com/caminhar/clinic-api/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		dispatcher: dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// Login authenticates a user and issues a bearer token. Unknown login
// and wrong password return the same generic error so responses cannot
// be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, time.Time, error) {
	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.Login, user.Role)
	if err != nil {
		return "", time.Time{}, err
	}

	s.publish(ctx, events.EventUserLoggedIn, events.Actor{Login: user.Login, Role: user.Role}, nil)
	return token, exp, nil
}

// Register creates a new account with the requested role.
//
// The role comes straight from the request body with no gating check,
// so a caller can self-assign ADMIN. This mirrors the current product
// behavior; restricting it is pending a product decision.
func (s *AuthService) Register(ctx context.Context, login, password string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}

	exists, err := s.users.ExistsByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("login already registered", map[string]any{"login": login})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Login:        login,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, events.Actor{},
		events.UserRegisteredPayload{Login: user.Login, Role: user.Role})
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actor events.Actor, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
