package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/uptrace/bun"
)

// Role is the actor's authorization level, a tagged variant rather than a
// raw boolean so future levels do not ripple through policy call sites.
// Storage and the wire keep the historical `surveyor` boolean.
type Role = string

const (
	// RoleStandard is a regular client (owns its profile, nothing else)
	RoleStandard Role = "standard"
	// RolePrivileged marks surveyors: privileged reads and status changes
	RolePrivileged Role = "privileged"
)

// RoleFromSurveyor maps the stored privilege flag to a Role
func RoleFromSurveyor(surveyor bool) Role {
	if surveyor {
		return RolePrivileged
	}
	return RoleStandard
}

// IsPrivileged reports whether the role may perform administrative operations
func IsPrivileged(r Role) bool {
	return r == RolePrivileged
}

// ClientStatus is the lifecycle state of a client account
type ClientStatus = string

const (
	// StatusPending is a freshly registered, not yet vetted account
	StatusPending ClientStatus = "pending"
	// StatusActive is the normal state
	StatusActive ClientStatus = "active"
	// StatusInactive is an account switched off by a surveyor
	StatusInactive ClientStatus = "inactive"
)

// Client is the persistent identity record
type Client struct {
	bun.BaseModel `bun:"table:clients,alias:cli"`
	ID            uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string       `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string       `bun:"password_hash,notnull" json:"-"`
	FirstName     string       `bun:"first_name" json:"first_name,omitempty"`
	AddressCity   string       `bun:"address_city" json:"address_city,omitempty"`
	AddressState  string       `bun:"address_state" json:"address_state,omitempty"`
	Phone         string       `bun:"phone_number" json:"phone_number,omitempty"`
	Status        ClientStatus `bun:"status,notnull" json:"status,omitempty"`
	Surveyor      bool         `bun:"surveyor" json:"surveyor"`
	CreatedAt     *time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time   `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Role derives the authorization level from the privilege flag
func (c *Client) Role() Role {
	return RoleFromSurveyor(c.Surveyor)
}

// EnsureStatus backfills the default status on records created before the
// column existed
func (c *Client) EnsureStatus() {
	if c.Status == "" {
		c.Status = StatusActive
	}
}

// PublicProfile is the reduced projection returned by the open list
// endpoint: no email, no phone, no timestamps.
type PublicProfile struct {
	ID           uuid.UUID    `json:"id"`
	FirstName    string       `json:"first_name,omitempty"`
	AddressCity  string       `json:"address_city,omitempty"`
	AddressState string       `json:"address_state,omitempty"`
	Status       ClientStatus `json:"status,omitempty"`
	Surveyor     bool         `json:"surveyor"`
}

// FullProfile is the projection for privileged reads and owner reads.
// The password hash is never part of any projection.
type FullProfile struct {
	PublicProfile
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone_number,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Public returns the reduced projection
func (c *Client) Public() PublicProfile {
	return PublicProfile{
		ID:           c.ID,
		FirstName:    c.FirstName,
		AddressCity:  c.AddressCity,
		AddressState: c.AddressState,
		Status:       c.Status,
		Surveyor:     c.Surveyor,
	}
}

// Full returns the full projection
func (c *Client) Full() FullProfile {
	return FullProfile{
		PublicProfile: c.Public(),
		Email:         c.Email,
		Phone:         c.Phone,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// DefaultPhoneRegion is the region used to parse national-format numbers
var DefaultPhoneRegion = "BR"

// NormalizePhone formats a phone number as E.164 when it parses; anything
// unparseable is stored as given, trimmed.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(phone, DefaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return phone
	}

	return phonenumbers.Format(parsed, phonenumbers.E164)
}
