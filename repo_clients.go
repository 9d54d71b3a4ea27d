package identity

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Clients is the bun-backed persistence surface for client records. The
// generic repository covers the CRUD surface; the narrow methods below are
// what the orchestrator actually consumes.
type Clients interface {
	repository.Repository[*Client]
	FindByEmail(ctx context.Context, email string) (*Client, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	CreateClient(ctx context.Context, client *Client) (*Client, error)
	PatchByID(ctx context.Context, id uuid.UUID, fields map[string]any) (*Client, error)
	RemoveByID(ctx context.Context, id uuid.UUID) error
	All(ctx context.Context) ([]*Client, error)
}

type clients struct {
	db *bun.DB
	repository.Repository[*Client]
}

var (
	_ Clients     = (*clients)(nil)
	_ ClientStore = (*clients)(nil)
)

// NewClientsRepository returns a Clients backed by the given bun handle
func NewClientsRepository(db *bun.DB) Clients {
	handlers := repository.ModelHandlers[*Client]{
		NewRecord: func() *Client {
			return &Client{}
		},
		GetID: func(record *Client) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *Client, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "email"
		},
	}

	return &clients{
		db:         db,
		Repository: repository.NewRepository[*Client](db, handlers),
	}
}

func (c *clients) FindByEmail(ctx context.Context, email string) (*Client, error) {
	record := new(Client)
	err := c.db.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, mapNotFound(err, "email", email)
	}
	return record, nil
}

func (c *clients) FindByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	record, err := c.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapNotFound(err, "id", id.String())
	}
	return record, nil
}

func (c *clients) CreateClient(ctx context.Context, client *Client) (*Client, error) {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	client.EnsureStatus()

	now := time.Now()
	if client.CreatedAt == nil {
		client.CreatedAt = &now
	}
	if client.UpdatedAt == nil {
		client.UpdatedAt = &now
	}

	return c.Create(ctx, client)
}

// PatchByID applies a partial column merge and reloads the record. A zero
// rows-affected result means the record is gone or soft deleted.
func (c *clients) PatchByID(ctx context.Context, id uuid.UUID, fields map[string]any) (*Client, error) {
	if len(fields) == 0 {
		return c.FindByID(ctx, id)
	}

	values := make(map[string]any, len(fields))
	for k, v := range fields {
		values[k] = v
	}

	res, err := c.db.NewUpdate().
		Model(&values).
		TableExpr(`"clients" AS "cli"`).
		Where(`"cli"."id" = ?`, id).
		Where(`"cli"."deleted_at" IS NULL`).
		Exec(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update client")
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, notFoundFor("id", id.String())
	}

	return c.FindByID(ctx, id)
}

func (c *clients) RemoveByID(ctx context.Context, id uuid.UUID) error {
	_, err := c.db.NewDelete().
		Model((*Client)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete client")
	}
	return nil
}

func (c *clients) All(ctx context.Context) ([]*Client, error) {
	var records []*Client
	err := c.db.NewSelect().
		Model(&records).
		Order("cli.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list clients")
	}
	return records, nil
}

func mapNotFound(err error, key, value string) error {
	if repository.IsRecordNotFound(err) {
		return notFoundFor(key, value)
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "client lookup failed")
}

// notFoundFor wraps ErrClientNotFound so callers can still match the sentinel
// with errors.Is while the wrapper carries the lookup key.
func notFoundFor(key, value string) error {
	return goerrors.Wrap(ErrClientNotFound, ErrClientNotFound.Category, ErrClientNotFound.Message).
		WithTextCode(ErrClientNotFound.TextCode).
		WithMetadata(map[string]any{key: value})
}
