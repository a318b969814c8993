package casdoor

import (
	"context"
	"fmt"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/NH-Portal/portal-service/internal/config"
	"github.com/NH-Portal/portal-service/internal/identity"
	"github.com/NH-Portal/portal-service/internal/models"
)

// Client mirrors portal accounts into a Casdoor organization.
type Client struct {
	client *casdoorsdk.Client
	config config.CasdoorConfig
	domain string
}

func NewClient(cfg config.CasdoorConfig, accountDomain string) identity.Client {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)

	return &Client{
		client: client,
		config: cfg,
		domain: accountDomain,
	}
}

func (c *Client) Register(ctx context.Context, account *models.Account, secret string) error {
	user := c.buildUser(account, secret)

	ok, err := c.client.AddUser(user)
	if err != nil {
		return fmt.Errorf("casdoor add user: %w", err)
	}
	if !ok {
		return fmt.Errorf("casdoor rejected user %s", account.ID)
	}

	return nil
}

func (c *Client) Update(ctx context.Context, account *models.Account, secret string) error {
	user := c.buildUser(account, secret)

	ok, err := c.client.UpdateUser(user)
	if err != nil {
		return fmt.Errorf("casdoor update user: %w", err)
	}
	if !ok {
		return fmt.Errorf("casdoor rejected update for user %s", account.ID)
	}

	return nil
}

func (c *Client) Remove(ctx context.Context, accountID string) error {
	user := &casdoorsdk.User{
		Owner: c.config.Organization,
		Name:  accountID,
	}

	ok, err := c.client.DeleteUser(user)
	if err != nil {
		return fmt.Errorf("casdoor delete user: %w", err)
	}
	if !ok {
		return fmt.Errorf("casdoor rejected delete for user %s", accountID)
	}

	return nil
}

func (c *Client) VerifyToken(token string) (string, error) {
	claims, err := c.client.ParseJwtToken(token)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	if claims.User.Name == "" {
		return "", fmt.Errorf("token carries no user name")
	}

	return claims.User.Name, nil
}

func (c *Client) buildUser(account *models.Account, secret string) *casdoorsdk.User {
	return &casdoorsdk.User{
		Owner:       c.config.Organization,
		Name:        account.ID,
		DisplayName: account.Name,
		Email:       identity.Handle(account.ID, c.domain),
		Password:    secret,
		Type:        string(account.Role),
	}
}
