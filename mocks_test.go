package identity_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	identity "github.com/vistoria/go-identity"
)

// MockClientStore implements identity.ClientStore for testing
type MockClientStore struct {
	mock.Mock
}

func (m *MockClientStore) FindByEmail(ctx context.Context, email string) (*identity.Client, error) {
	args := m.Called(ctx, email)
	if client, ok := args.Get(0).(*identity.Client); ok {
		return client, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClientStore) FindByID(ctx context.Context, id uuid.UUID) (*identity.Client, error) {
	args := m.Called(ctx, id)
	if client, ok := args.Get(0).(*identity.Client); ok {
		return client, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClientStore) CreateClient(ctx context.Context, record *identity.Client) (*identity.Client, error) {
	args := m.Called(ctx, record)
	if client, ok := args.Get(0).(*identity.Client); ok {
		return client, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClientStore) PatchByID(ctx context.Context, id uuid.UUID, fields map[string]any) (*identity.Client, error) {
	args := m.Called(ctx, id, fields)
	if client, ok := args.Get(0).(*identity.Client); ok {
		return client, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClientStore) RemoveByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientStore) All(ctx context.Context) ([]*identity.Client, error) {
	args := m.Called(ctx)
	if clients, ok := args.Get(0).([]*identity.Client); ok {
		return clients, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockMailer implements identity.Mailer for testing
type MockMailer struct {
	mock.Mock
	Sent []identity.MailMessage
}

func (m *MockMailer) Send(ctx context.Context, msg identity.MailMessage) error {
	m.Sent = append(m.Sent, msg)
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockLogger implements identity.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}
