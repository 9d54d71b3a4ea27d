package identity_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	identity "github.com/vistoria/go-identity"
)

func claimsFor(id uuid.UUID) identity.SessionClaims {
	return &identity.JWTSessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: id.String(),
		},
	}
}

func TestPolicyCanAccess(t *testing.T) {
	policy := identity.Policy{}

	self := uuid.New()
	other := uuid.New()

	tests := []struct {
		name        string
		actor       identity.SessionClaims
		role        identity.Role
		target      uuid.UUID
		op          identity.Operation
		patchFields []string
		allowed     bool
		wantErr     error
	}{
		{
			name:    "list is open",
			actor:   nil,
			role:    identity.RoleStandard,
			op:      identity.OpListClients,
			allowed: true,
		},
		{
			name:    "change password needs no token",
			actor:   nil,
			role:    identity.RoleStandard,
			target:  self,
			op:      identity.OpChangeOwnPassword,
			allowed: true,
		},
		{
			name:    "read profile requires a token",
			actor:   nil,
			role:    identity.RoleStandard,
			target:  other,
			op:      identity.OpReadProfileByID,
			wantErr: identity.ErrUnauthorized,
		},
		{
			name:    "read profile requires privilege",
			actor:   claimsFor(self),
			role:    identity.RoleStandard,
			target:  other,
			op:      identity.OpReadProfileByID,
			wantErr: identity.ErrForbidden,
		},
		{
			name:    "privileged reads any profile",
			actor:   claimsFor(self),
			role:    identity.RolePrivileged,
			target:  other,
			op:      identity.OpReadProfileByID,
			allowed: true,
		},
		{
			name:        "patch own profile with allowed fields",
			actor:       claimsFor(self),
			role:        identity.RoleStandard,
			target:      self,
			op:          identity.OpPatchOwnProfile,
			patchFields: []string{"first_name", "address_city"},
			allowed:     true,
		},
		{
			name:        "patch someone else's profile",
			actor:       claimsFor(self),
			role:        identity.RoleStandard,
			target:      other,
			op:          identity.OpPatchOwnProfile,
			patchFields: []string{"first_name"},
			wantErr:     identity.ErrForbidden,
		},
		{
			name:        "patch own profile with restricted field",
			actor:       claimsFor(self),
			role:        identity.RoleStandard,
			target:      self,
			op:          identity.OpPatchOwnProfile,
			patchFields: []string{"surveyor"},
			wantErr:     identity.ErrFieldNotPermitted,
		},
		{
			name:        "patch own profile with unknown field",
			actor:       claimsFor(self),
			role:        identity.RoleStandard,
			target:      self,
			op:          identity.OpPatchOwnProfile,
			patchFields: []string{"email"},
			wantErr:     identity.ErrFieldNotPermitted,
		},
		{
			name:    "status patch requires privilege",
			actor:   claimsFor(self),
			role:    identity.RoleStandard,
			target:  self,
			op:      identity.OpPatchStatusOrPrivilege,
			wantErr: identity.ErrForbidden,
		},
		{
			name:    "privileged status patch",
			actor:   claimsFor(self),
			role:    identity.RolePrivileged,
			target:  other,
			op:      identity.OpPatchStatusOrPrivilege,
			allowed: true,
		},
		{
			name:    "delete requires privilege",
			actor:   claimsFor(self),
			role:    identity.RoleStandard,
			target:  other,
			op:      identity.OpDeleteClient,
			wantErr: identity.ErrForbidden,
		},
		{
			name:    "unknown operation is denied",
			actor:   claimsFor(self),
			role:    identity.RolePrivileged,
			target:  self,
			op:      identity.Operation("clients.unknown"),
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := policy.CanAccess(tt.actor, tt.role, tt.target, tt.op, tt.patchFields)
			assert.Equal(t, tt.allowed, decision.Allowed)

			if tt.allowed {
				assert.NoError(t, decision.Err())
				return
			}

			assert.Error(t, decision.Err())
			if tt.wantErr != nil {
				assert.ErrorIs(t, decision.Err(), tt.wantErr)
			}
		})
	}
}

func TestDecisionErr(t *testing.T) {
	assert.NoError(t, identity.Allow.Err())
	assert.ErrorIs(t, identity.Deny(identity.DenyUnauthenticated).Err(), identity.ErrUnauthorized)
	assert.ErrorIs(t, identity.Deny(identity.DenyForbidden).Err(), identity.ErrForbidden)
	assert.ErrorIs(t, identity.Deny(identity.DenyFieldNotPermitted).Err(), identity.ErrFieldNotPermitted)
	assert.Error(t, identity.Deny("anything else").Err())
}
