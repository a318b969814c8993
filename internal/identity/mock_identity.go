package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/NH-Portal/portal-service/internal/models"
)

// MockClient is an in-memory identity client for tests.
type MockClient struct {
	mu         sync.Mutex
	registered map[string]string // account ID -> secret
	FailAll    bool
}

func NewMockClient() *MockClient {
	return &MockClient{registered: make(map[string]string)}
}

func (m *MockClient) Register(ctx context.Context, account *models.Account, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailAll {
		return fmt.Errorf("identity service unavailable")
	}
	if _, exists := m.registered[account.ID]; exists {
		return fmt.Errorf("identity %s already registered", account.ID)
	}

	m.registered[account.ID] = secret
	return nil
}

func (m *MockClient) Update(ctx context.Context, account *models.Account, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailAll {
		return fmt.Errorf("identity service unavailable")
	}
	if secret != "" {
		m.registered[account.ID] = secret
	}
	return nil
}

func (m *MockClient) Remove(ctx context.Context, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailAll {
		return fmt.Errorf("identity service unavailable")
	}
	delete(m.registered, accountID)
	return nil
}

func (m *MockClient) VerifyToken(token string) (string, error) {
	if m.FailAll {
		return "", fmt.Errorf("identity service unavailable")
	}
	return token, nil
}

// Registered reports whether an identity exists for the account ID.
func (m *MockClient) Registered(accountID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.registered[accountID]
	return ok
}
