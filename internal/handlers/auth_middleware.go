package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NH-Portal/portal-service/internal/identity"
	"github.com/NH-Portal/portal-service/internal/models"
	"github.com/NH-Portal/portal-service/internal/repositories"
	"github.com/NH-Portal/portal-service/internal/session"
)

// SessionAuthMiddleware authenticates requests against the session
// store. The usual bearer token is the opaque token issued at login;
// tokens issued by the external identity service are accepted as a
// fallback and resolved against the account store.
type SessionAuthMiddleware struct {
	sessions *session.Store
	identity identity.Client
	accounts repositories.AccountRepository
}

func NewSessionAuthMiddleware(
	sessions *session.Store,
	identityClient identity.Client,
	accounts repositories.AccountRepository,
) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		sessions: sessions,
		identity: identityClient,
		accounts: accounts,
	}
}

// AuthMiddleware rejects requests without a live session or a valid
// identity-issued token.
func (sam *SessionAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error()})
			c.Abort()
			return
		}

		sess, err := sam.sessions.Load(c.Request.Context(), token)
		if errors.Is(err, session.ErrNoSession) {
			sess, err = sam.identitySession(c.Request.Context(), token)
		}
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "session expired or invalid"})
			} else {
				c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "session lookup failed"})
			}
			c.Abort()
			return
		}

		c.Set("session_token", token)
		c.Set("session", sess)
		c.Set("account_id", sess.AccountID)
		c.Set("account_role", sess.Role)

		c.Next()
	}
}

// RequireRoleMiddleware allows only the named roles through. Admins pass
// every role gate.
func (sam *SessionAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.AccountRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("account_role")
		if !exists {
			c.JSON(http.StatusForbidden, ErrorResponse{Message: "account role not found in context"})
			c.Abort()
			return
		}

		role, ok := value.(models.AccountRole)
		if !ok {
			c.JSON(http.StatusForbidden, ErrorResponse{Message: "invalid account role format"})
			c.Abort()
			return
		}

		allowed := role == models.RoleAdmin
		for _, required := range requiredRoles {
			if role == required {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: fmt.Sprintf("insufficient permissions, required role: %v", requiredRoles),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// identitySession resolves an identity-issued bearer token to a fresh
// session built from the account record. Verification failures and
// unknown accounts read as an absent session, never a server error.
func (sam *SessionAuthMiddleware) identitySession(ctx context.Context, token string) (*models.Session, error) {
	accountID, err := sam.identity.VerifyToken(token)
	if err != nil {
		return nil, session.ErrNoSession
	}

	account, err := sam.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, session.ErrNoSession
	}

	return models.NewSession(account), nil
}

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}

// SessionFromContext returns the session attached by AuthMiddleware.
func SessionFromContext(c *gin.Context) (*models.Session, error) {
	value, exists := c.Get("session")
	if !exists {
		return nil, errors.New("session not found in context")
	}

	sess, ok := value.(*models.Session)
	if !ok {
		return nil, errors.New("invalid session type in context")
	}

	return sess, nil
}

// AccountIDFromContext returns the authenticated account ID.
func AccountIDFromContext(c *gin.Context) (string, error) {
	value, exists := c.Get("account_id")
	if !exists {
		return "", errors.New("account ID not found in context")
	}

	id, ok := value.(string)
	if !ok {
		return "", errors.New("invalid account ID type in context")
	}

	return id, nil
}
