package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// RecoveryTicket is what RequestRecovery hands back to the caller. The
// hashed code is a bearer credential: it is never persisted server-side and
// must be round-tripped on confirmation over a channel at least as trusted
// as the token channel.
type RecoveryTicket struct {
	ClientID   uuid.UUID `json:"client_id"`
	Email      string    `json:"email"`
	HashedCode string    `json:"hashed_code"`
}

// Accounts composes the hasher, token service, policy, and recovery code
// service with the storage and mail collaborators into the credential
// lifecycle operations. It keeps no per-request state; every method is a
// single request/response unit.
type Accounts struct {
	store  ClientStore
	tokens TokenService
	mailer Mailer
	policy Policy
	logger Logger
}

// NewAccounts returns a new Accounts orchestrator
func NewAccounts(store ClientStore, tokens TokenService, mailer Mailer) *Accounts {
	return &Accounts{
		store:  store,
		tokens: tokens,
		mailer: mailer,
		logger: defLogger{},
	}
}

func (a *Accounts) WithLogger(logger Logger) *Accounts {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// Register creates a new client. A taken email fails with ErrDuplicateEmail;
// the store's uniqueness key is the real guard against the lookup/create race.
func (a *Accounts) Register(ctx context.Context, req RegisterClientRequest) (*Client, error) {
	if err := req.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload")
	}

	if _, err := a.store.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, ErrClientNotFound) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email availability")
	}

	hash, err := HashSecret(req.Password)
	if err != nil {
		var richErr *goerrors.Error
		if errors.As(err, &richErr) {
			return nil, goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	client := &Client{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		Phone:        NormalizePhone(req.Phone),
		AddressCity:  req.AddressCity,
		AddressState: req.AddressState,
		Status:       StatusActive,
	}
	if req.UseHashid {
		if id, err := hashid.NewUUID(req.Email); err == nil {
			client.ID = id
		}
	}

	created, err := a.store.CreateClient(ctx, client)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryConflict, "could not create client")
	}

	return created, nil
}

// Login verifies the password and issues a session token
func (a *Accounts) Login(ctx context.Context, req LoginRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload")
	}

	client, err := a.store.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			// equalize response time for unknown emails
			_ = CompareSecretAndHash(req.Password, RandomSecretHash())
			return "", ErrUnknownEmail
		}
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve client during login")
	}

	if err := CompareSecretAndHash(req.Password, client.PasswordHash); err != nil {
		a.logger.Error("Login credential mismatch", "client_id", client.ID.String())
		return "", err
	}

	return a.tokens.Issue(client.ID)
}

// ConfirmLogin verifies a session token and returns the subject's profile.
// Expired tokens keep their sentinel so clients can tell a stale session from
// a rejected one; every other token failure surfaces as unauthorized.
func (a *Accounts) ConfirmLogin(ctx context.Context, req ConfirmLoginRequest) (*Client, error) {
	claims, err := a.tokens.Validate(req.Token)
	if err != nil {
		if IsTokenExpiredError(err) {
			return nil, ErrTokenExpired
		}
		a.logger.Error("ConfirmLogin token validation failed", "error", err)
		return nil, ErrUnauthorized
	}

	id, err := claims.ClientID()
	if err != nil {
		return nil, ErrUnauthorized
	}

	client, err := a.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			// valid token whose subject no longer exists
			return nil, ErrUnauthorized
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load client for session")
	}

	return client, nil
}

// ListClients returns the reduced projection of every client. The endpoint
// is open; the projection keeps emails and phones out of it.
func (a *Accounts) ListClients(ctx context.Context) ([]PublicProfile, error) {
	clients, err := a.store.All(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list clients")
	}

	profiles := make([]PublicProfile, 0, len(clients))
	for _, c := range clients {
		profiles = append(profiles, c.Public())
	}
	return profiles, nil
}

// GetClientByID returns the full projection of a client; privileged only
func (a *Accounts) GetClientByID(ctx context.Context, actor SessionClaims, id uuid.UUID) (*FullProfile, error) {
	role, err := a.actorRole(ctx, actor)
	if err != nil {
		return nil, err
	}
	if d := a.policy.CanAccess(actor, role, id, OpReadProfileByID, nil); !d.Allowed {
		return nil, d.Err()
	}

	client, err := a.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	full := client.Full()
	return &full, nil
}

// PatchProfile applies whitelisted profile fields to the actor's own record
func (a *Accounts) PatchProfile(ctx context.Context, actor SessionClaims, target uuid.UUID, fields map[string]any) (*Client, error) {
	role, err := a.actorRole(ctx, actor)
	if err != nil {
		return nil, err
	}
	if d := a.policy.CanAccess(actor, role, target, OpPatchOwnProfile, fieldKeys(fields)); !d.Allowed {
		return nil, d.Err()
	}

	merge := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		if k == "phone_number" {
			if phone, ok := v.(string); ok {
				v = NormalizePhone(phone)
			}
		}
		merge[k] = v
	}
	merge["updated_at"] = time.Now()

	return a.store.PatchByID(ctx, target, merge)
}

// PatchStatusOrPrivilege applies an unrestricted merge, status and surveyor
// included. Privileged actors only; a supplied password is hashed before it
// is stored, everything else passes through as given.
func (a *Accounts) PatchStatusOrPrivilege(ctx context.Context, actor SessionClaims, target uuid.UUID, fields map[string]any) (*Client, error) {
	role, err := a.actorRole(ctx, actor)
	if err != nil {
		return nil, err
	}
	if d := a.policy.CanAccess(actor, role, target, OpPatchStatusOrPrivilege, fieldKeys(fields)); !d.Allowed {
		return nil, d.Err()
	}

	merge := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		if k == "password" {
			password, ok := v.(string)
			if !ok {
				return nil, goerrors.New("password must be a string", goerrors.CategoryBadInput)
			}
			hash, err := HashSecret(password)
			if err != nil {
				return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid password provided")
			}
			merge["password_hash"] = hash
			continue
		}
		merge[k] = v
	}
	merge["updated_at"] = time.Now()

	return a.store.PatchByID(ctx, target, merge)
}

// DeleteClient removes a client record; privileged only
func (a *Accounts) DeleteClient(ctx context.Context, actor SessionClaims, target uuid.UUID) error {
	role, err := a.actorRole(ctx, actor)
	if err != nil {
		return err
	}
	if d := a.policy.CanAccess(actor, role, target, OpDeleteClient, nil); !d.Allowed {
		return d.Err()
	}

	return a.store.RemoveByID(ctx, target)
}

// ChangePassword replaces the stored credential after proving control of the
// account, either with the current password or with a recovery code plus the
// hash handed out by RequestRecovery. No token is required so the recovery
// path works without a session.
func (a *Accounts) ChangePassword(ctx context.Context, req ChangePasswordRequest) (*Client, error) {
	if err := req.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid change password payload")
	}

	client, err := a.store.FindByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	if req.CodeMode() {
		if err := VerifyRecoveryCode(req.Code, req.HashedCode); err != nil {
			a.logger.Error("ChangePassword recovery code rejected", "client_id", client.ID.String())
			return nil, ErrBadRecoveryCode
		}
	} else {
		if err := CompareSecretAndHash(req.Password, client.PasswordHash); err != nil {
			a.logger.Error("ChangePassword credential mismatch", "client_id", client.ID.String())
			return nil, err
		}
	}

	hash, err := HashSecret(req.NewPassword)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid new password provided")
	}

	return a.store.PatchByID(ctx, client.ID, map[string]any{
		"password_hash": hash,
		"updated_at":    time.Now(),
	})
}

// RequestRecovery generates a recovery code, emails it to the client, and
// returns the code's hash for the caller to round-trip on confirmation. The
// plaintext code is dropped as soon as delivery is handed off.
func (a *Accounts) RequestRecovery(ctx context.Context, req RequestRecoveryRequest) (*RecoveryTicket, error) {
	if err := req.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid recovery payload")
	}

	client, err := a.store.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve client for recovery")
	}

	code, err := GenerateRecoveryCode()
	if err != nil {
		return nil, err
	}

	hashed, err := HashRecoveryCode(code)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash recovery code")
	}

	if err := a.mailer.Send(ctx, recoveryMessage(client.Email, code)); err != nil {
		a.logger.Error("RequestRecovery delivery failed", "client_id", client.ID.String(), "error", err)
		return nil, goerrors.Wrap(err, ErrDeliveryFailed.Category, ErrDeliveryFailed.Message).WithTextCode(ErrDeliveryFailed.TextCode)
	}

	return &RecoveryTicket{
		ClientID:   client.ID,
		Email:      client.Email,
		HashedCode: hashed,
	}, nil
}

// ConfirmRecovery verifies a recovery code against the round-tripped hash.
// It is a pre-check: the password only changes through ChangePassword.
func (a *Accounts) ConfirmRecovery(ctx context.Context, req ConfirmRecoveryRequest) error {
	if err := req.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid recovery confirmation payload")
	}

	if err := VerifyRecoveryCode(req.Code, req.HashedCode); err != nil {
		return ErrBadRecoveryCode
	}

	return nil
}

// actorRole resolves the privilege level for the actor's subject. A missing
// or unresolvable actor yields RoleStandard and lets the policy issue the
// unauthenticated denial.
func (a *Accounts) actorRole(ctx context.Context, actor SessionClaims) (Role, error) {
	if !HasClientID(actor) {
		return RoleStandard, nil
	}

	id, _ := actor.ClientID()
	client, err := a.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return RoleStandard, nil
		}
		return RoleStandard, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to resolve actor role")
	}

	return client.Role(), nil
}

func fieldKeys(fields map[string]any) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	return keys
}

func recoveryMessage(email, code string) MailMessage {
	return MailMessage{
		To:      email,
		Subject: "Password recovery",
		HTML: fmt.Sprintf(
			"<p>You requested a password reset. Use the following code to choose a new password:</p><p><strong>%s</strong></p>",
			code,
		),
		Text: fmt.Sprintf("You requested a password reset. Your recovery code is: %s", code),
	}
}
