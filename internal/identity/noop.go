package identity

import (
	"context"
	"errors"

	"github.com/NH-Portal/portal-service/internal/models"
)

// NoopClient is used when no identity service is configured. Mirroring
// silently succeeds; token verification always fails so callers fall
// back to local sessions.
type NoopClient struct{}

func NewNoopClient() *NoopClient { return &NoopClient{} }

func (NoopClient) Register(ctx context.Context, account *models.Account, secret string) error {
	return nil
}

func (NoopClient) Update(ctx context.Context, account *models.Account, secret string) error {
	return nil
}

func (NoopClient) Remove(ctx context.Context, accountID string) error { return nil }

func (NoopClient) VerifyToken(token string) (string, error) {
	return "", errors.New("identity service not configured")
}
