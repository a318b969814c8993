package identity

import (
	"context"
	"fmt"

	"github.com/NH-Portal/portal-service/internal/models"
)

// Client mirrors account lifecycle changes to the external identity
// service and validates its bearer tokens. Credential verification for
// portal logins is local (bcrypt against the account record); the
// identity service is the directory of confirmed identities.
type Client interface {
	// Register creates the identity for a new account.
	Register(ctx context.Context, account *models.Account, secret string) error

	// Update propagates profile changes; secret may be empty (unchanged).
	Update(ctx context.Context, account *models.Account, secret string) error

	// Remove deletes the identity. Callers treat failures as best-effort
	// since the account record is the source of truth.
	Remove(ctx context.Context, accountID string) error

	// VerifyToken parses a bearer token and returns the account ID it
	// was issued for.
	VerifyToken(token string) (string, error)
}

// Handle maps an account identifier to its synthetic email-like handle.
// No real mailbox exists behind it.
func Handle(accountID, domain string) string {
	return fmt.Sprintf("%s@%s", accountID, domain)
}
