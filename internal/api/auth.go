package api

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges admin credentials for a bearer token and stores it.
// The token is opaque to the client; validity is decided by the server.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out loginResponse
	err := c.doUnauthenticated(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return err
	}
	if out.Token == "" {
		return errors.New("login response carried no token")
	}
	return c.session.SetToken(out.Token)
}

// LoginWithGoogle exchanges an OAuth access token for a bearer token.
func (c *Client) LoginWithGoogle(ctx context.Context, accessToken string) error {
	var out loginResponse
	err := c.doUnauthenticated(ctx, http.MethodPost, "/auth/google", map[string]string{
		"token": accessToken,
	}, &out)
	if err != nil {
		return err
	}
	if out.Token == "" {
		return errors.New("login response carried no token")
	}
	return c.session.SetToken(out.Token)
}

// Logout clears the stored session.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// HasSession reports whether a token is stored locally. It says nothing
// about whether the server still accepts it.
func (c *Client) HasSession() (string, bool, error) {
	return c.session.Token()
}
