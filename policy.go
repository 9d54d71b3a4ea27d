package identity

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Operation names a guarded orchestrator operation
type Operation string

const (
	OpListClients            Operation = "clients.list"
	OpReadProfileByID        Operation = "clients.read"
	OpPatchOwnProfile        Operation = "clients.patch_profile"
	OpPatchStatusOrPrivilege Operation = "clients.patch_status"
	OpChangeOwnPassword      Operation = "clients.change_password"
	OpDeleteClient           Operation = "clients.delete"
)

// Deny reasons; the transport maps them to status codes via Decision.Err.
const (
	DenyUnauthenticated   = "unauthenticated"
	DenyForbidden         = "forbidden"
	DenyFieldNotPermitted = "field not permitted"
	DenyUnknownOperation  = "operation not permitted"
)

// restrictedPatchFields may never travel through the own-profile patch;
// they have dedicated, privileged or credential-proved operations.
var restrictedPatchFields = map[string]struct{}{
	"password": {},
	"status":   {},
	"surveyor": {},
}

// profilePatchAllowed is the explicit whitelist a client may change on its
// own record. Kept as a set so the policy stays auditable instead of a pile
// of per-field conditionals.
var profilePatchAllowed = map[string]struct{}{
	"first_name":    {},
	"phone_number":  {},
	"address_city":  {},
	"address_state": {},
}

// Decision is the outcome of a policy check
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow is the positive decision
var Allow = Decision{Allowed: true}

// Deny builds a negative decision with a reason
func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Err maps a negative decision to its rich error; nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case DenyUnauthenticated:
		return ErrUnauthorized
	case DenyFieldNotPermitted:
		return ErrFieldNotPermitted
	case DenyForbidden:
		return ErrForbidden
	default:
		return goerrors.New(d.Reason, goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden)
	}
}

// Policy decides whether an actor may perform an operation on a target
// record. Rules are evaluated in order and unknown operations are denied.
type Policy struct{}

// CanAccess applies the authorization rules. actor is nil when no valid
// token accompanied the request; actorRole is the privilege level looked up
// for the actor's subject; patchFields is the key set of a patch payload.
func (Policy) CanAccess(actor SessionClaims, actorRole Role, target uuid.UUID, op Operation, patchFields []string) Decision {
	switch op {
	case OpListClients:
		// open endpoint; callers only ever see the reduced projection
		return Allow
	case OpChangeOwnPassword:
		// Credential or recovery code proof happens at the orchestrator;
		// no token is required so the recovery path works logged out.
		return Allow
	}

	if !HasClientID(actor) {
		return Deny(DenyUnauthenticated)
	}

	switch op {
	case OpReadProfileByID, OpPatchStatusOrPrivilege, OpDeleteClient:
		if !IsPrivileged(actorRole) {
			return Deny(DenyForbidden)
		}
		return Allow

	case OpPatchOwnProfile:
		if actor.Subject() != target.String() {
			return Deny(DenyForbidden)
		}
		for _, field := range patchFields {
			if _, restricted := restrictedPatchFields[field]; restricted {
				return Deny(DenyFieldNotPermitted)
			}
			if _, ok := profilePatchAllowed[field]; !ok {
				return Deny(DenyFieldNotPermitted)
			}
		}
		return Allow
	}

	return Deny(DenyUnknownOperation)
}
