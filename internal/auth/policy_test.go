package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caminhar/clinic-api/internal/domain"
	apperrors "github.com/caminhar/clinic-api/pkg/util"
)

func TestAccessPolicy_DefaultRules(t *testing.T) {
	policy := NewAccessPolicy(DefaultRules())

	user := &Principal{Login: "maria", Role: domain.RoleUser}
	admin := &Principal{Login: "root", Role: domain.RoleAdmin}

	cases := []struct {
		name      string
		method    string
		path      string
		principal *Principal
		allowed   bool
	}{
		{"login is anonymous", "POST", "/auth/login", nil, true},
		{"register is anonymous", "POST", "/auth/register", nil, true},
		{"health is anonymous", "GET", "/health/live", nil, true},

		{"user reads patients", "GET", "/patients", user, true},
		{"user reads one patient", "GET", "/patients/42", user, true},
		{"user creates patient", "POST", "/patients", user, true},
		{"user updates patient", "PUT", "/patients/42", user, true},
		{"user cannot delete patient", "DELETE", "/patients/42", user, false},
		{"admin deletes patient", "DELETE", "/patients/42", admin, true},

		{"user updates consultation", "PUT", "/consultations/7", user, true},
		{"user cannot delete consultation", "DELETE", "/consultations/7", user, false},
		{"admin deletes consultation", "DELETE", "/consultations/7", admin, true},

		{"user reads dashboard", "GET", "/dashboard/stats", user, true},
		{"anonymous cannot read dashboard", "GET", "/dashboard/stats", nil, false},

		{"anonymous cannot list patients", "GET", "/patients", nil, false},
		{"wrong verb on login denied", "GET", "/auth/login", nil, false},
		{"unknown route denied for admin", "GET", "/totally/unknown", admin, false},
		{"unknown route denied anonymously", "GET", "/totally/unknown", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.Decide(tc.method, tc.path, tc.principal)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				de := apperrors.ToDomainError(err)
				assert.Equal(t, 403, de.HTTPStatus)
			}
		})
	}
}

func TestAccessPolicy_FirstMatchWins(t *testing.T) {
	policy := NewAccessPolicy([]AccessRule{
		{Method: "GET", Pattern: "/reports/public"},
		{Method: "GET", Pattern: "/reports/*", Roles: []domain.Role{domain.RoleAdmin}},
	})

	assert.NoError(t, policy.Decide("GET", "/reports/public", nil))
	assert.Error(t, policy.Decide("GET", "/reports/private", nil))
	assert.NoError(t, policy.Decide("GET", "/reports/private", &Principal{Login: "root", Role: domain.RoleAdmin}))
}

func TestAccessPolicy_PatternMatching(t *testing.T) {
	rules := []AccessRule{
		{Method: "GET", Pattern: "/patients/*", Roles: []domain.Role{domain.RoleUser}},
	}
	policy := NewAccessPolicy(rules)
	user := &Principal{Login: "maria", Role: domain.RoleUser}

	assert.NoError(t, policy.Decide("GET", "/patients", user), "wildcard matches the bare prefix")
	assert.NoError(t, policy.Decide("GET", "/patients/1", user))
	assert.NoError(t, policy.Decide("GET", "/patients/1/extra", user))
	assert.Error(t, policy.Decide("GET", "/patientsextra", user), "prefix must break on a path segment")
}
