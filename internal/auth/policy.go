package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/caminhar/clinic-api/internal/domain"
	apperrors "github.com/caminhar/clinic-api/pkg/util"
)

// AccessRule maps an HTTP method and path pattern to the roles allowed
// through. An empty role set means the route is open to anonymous
// callers. Patterns are either exact paths or a prefix ending in "/*",
// which matches the prefix itself and every subpath.
type AccessRule struct {
	Method  string
	Pattern string
	Roles   []domain.Role
}

// AccessPolicy is an ordered rule table: first match wins, no match
// denies. Built once at startup, immutable afterwards.
type AccessPolicy struct {
	rules []AccessRule
}

// NewAccessPolicy builds a policy from an ordered rule list.
func NewAccessPolicy(rules []AccessRule) *AccessPolicy {
	return &AccessPolicy{rules: rules}
}

// DefaultRules is the route table for the clinic API. DELETE on record
// resources is restricted to ADMIN; reads and writes are open to both
// roles; only login, register and health probes allow anonymous.
func DefaultRules() []AccessRule {
	both := []domain.Role{domain.RoleUser, domain.RoleAdmin}
	adminOnly := []domain.Role{domain.RoleAdmin}

	return []AccessRule{
		{Method: fiber.MethodPost, Pattern: "/auth/login"},
		{Method: fiber.MethodPost, Pattern: "/auth/register"},
		{Method: fiber.MethodGet, Pattern: "/health/*"},

		{Method: fiber.MethodGet, Pattern: "/patients/*", Roles: both},
		{Method: fiber.MethodPost, Pattern: "/patients/*", Roles: both},
		{Method: fiber.MethodPut, Pattern: "/patients/*", Roles: both},
		{Method: fiber.MethodDelete, Pattern: "/patients/*", Roles: adminOnly},

		{Method: fiber.MethodGet, Pattern: "/consultations/*", Roles: both},
		{Method: fiber.MethodPost, Pattern: "/consultations/*", Roles: both},
		{Method: fiber.MethodPut, Pattern: "/consultations/*", Roles: both},
		{Method: fiber.MethodDelete, Pattern: "/consultations/*", Roles: adminOnly},

		{Method: fiber.MethodGet, Pattern: "/dashboard/*", Roles: both},
	}
}

// Decide evaluates the table for a request. It returns nil when access
// is granted and a forbidden error otherwise. Unmatched routes are
// denied outright.
func (p *AccessPolicy) Decide(method, path string, principal *Principal) error {
	for _, rule := range p.rules {
		if rule.Method != method || !matchPattern(rule.Pattern, path) {
			continue
		}
		if len(rule.Roles) == 0 {
			return nil
		}
		if principal == nil {
			return apperrors.NewForbidden("authentication required")
		}
		for _, role := range rule.Roles {
			if principal.Role == role {
				return nil
			}
		}
		return apperrors.NewForbidden("insufficient role")
	}
	return apperrors.NewForbidden("route not permitted")
}

// Enforce returns the Fiber middleware that applies the policy after
// the authentication filter has run.
func (p *AccessPolicy) Enforce() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		if err := p.Decide(c.Method(), c.Path(), principal); err != nil {
			return err
		}
		return c.Next()
	}
}

func matchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == pattern
}
