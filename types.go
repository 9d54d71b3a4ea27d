package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// ClientStore is the narrow storage contract the orchestrator consumes.
// Email uniqueness is the store's constraint; the orchestrator only performs
// the initial lookup, so concurrent registrations with the same email race
// unless the backing store enforces the unique key.
type ClientStore interface {
	FindByEmail(ctx context.Context, email string) (*Client, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	CreateClient(ctx context.Context, record *Client) (*Client, error)
	// PatchByID merges the given column values into the record and returns
	// the updated row.
	PatchByID(ctx context.Context, id uuid.UUID, fields map[string]any) (*Client, error)
	RemoveByID(ctx context.Context, id uuid.UUID) error
	All(ctx context.Context) ([]*Client, error)
}

// MailMessage is the payload handed to the delivery collaborator
type MailMessage struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers recovery notifications. Used only by RequestRecovery.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
	GetHashCost() int
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] IDENTITY "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] IDENTITY "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] IDENTITY "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
