package apiclient

import (
	"context"
	"net/http"

	"erp-console/internal/models"
)

type userEnvelope struct {
	User models.User `json:"user"`
}

// Login exchanges credentials for a token and the signed-in user.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.AuthResult, error) {
	var out models.AuthResult
	err := c.WithToken("").do(ctx, http.MethodPost, "/auth/login", nil, creds, &out)
	return out, err
}

// Me fetches the identity behind token.
func (c *Client) Me(ctx context.Context, token string) (models.User, error) {
	var out userEnvelope
	err := c.WithToken(token).do(ctx, http.MethodGet, "/auth/me", nil, nil, &out)
	return out.User, err
}

// Logout asks the server to invalidate token.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.WithToken(token).do(ctx, http.MethodGet, "/auth/logout", nil, nil, nil)
}
