package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/caminhar/clinic-api/internal/domain"
	"github.com/caminhar/clinic-api/internal/repository"
	apperrors "github.com/caminhar/clinic-api/pkg/util"
)

const principalKey = "auth_principal"

// Principal is the request-scoped security context: the authenticated
// login and its current role. It is attached once per request and never
// shared across requests.
type Principal struct {
	Login string
	Role  domain.Role
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
	logger *zap.Logger
}

// NewAuthMiddleware constructs the middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, logger: logger}
}

// Handle establishes the security context for a request.
//
// No bearer header means the request continues anonymously so that open
// routes (login, register, health) stay reachable; the access policy
// decides later whether anonymous is enough. A present-but-bad token is
// a hard stop, as is a valid token whose user has since vanished.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Next()
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		m.logger.Warn("rejected bearer token", zap.Error(err))
		return apperrors.NewTokenInvalid()
	}

	user, err := m.users.FindByLogin(c.UserContext(), claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			m.logger.Warn("token subject no longer exists", zap.String("login", claims.Subject))
			return apperrors.NewPrincipalNotFound()
		}
		return apperrors.MapError(err)
	}

	// The role comes from the store, not the token claim, so a role
	// change takes effect on the next request without reissuance. The
	// claim is kept around for audit logging only.
	c.Locals(principalKey, &Principal{Login: user.Login, Role: user.Role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated identity, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
