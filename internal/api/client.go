// Package api is the typed client for the FydBlock platform REST API.
//
// Every request goes through the same authenticated path: read the bearer
// token from the session store, attach it, and interpret 401 as a terminal
// session failure. Callers never retry; every failure is surfaced and the
// user re-initiates the action.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/fydblock/fydadmin/internal/domain"
	"github.com/fydblock/fydadmin/internal/session"
	"github.com/fydblock/fydadmin/pkg/cache"
	"github.com/fydblock/fydadmin/pkg/logger"
)

var (
	// ErrNoSession is returned before any network call when no token is
	// stored. The console translates it into the login screen.
	ErrNoSession = errors.New("not logged in")

	// ErrSessionExpired is returned on HTTP 401 after the stored token has
	// been cleared. No reconciliation happens after it.
	ErrSessionExpired = errors.New("session expired")
)

// APIError is a non-401 non-2xx response surfaced to the user as-is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: %s (status %d)", e.Message, e.Status)
}

// Client talks to the platform API on behalf of the logged-in admin.
type Client struct {
	http     *resty.Client
	session  *session.Store
	overview *cache.InMemoryCache[string, domain.Overview]

	overviewTTL time.Duration
}

// NewClient builds a client against the given API root. The session store
// is the single source of the bearer token.
func NewClient(baseURL string, sess *session.Store) *Client {
	baseURL = strings.TrimRight(baseURL, "/")

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "fydadmin")

	return &Client{
		http:        httpClient,
		session:     sess,
		overview:    cache.NewInMemoryCache[string, domain.Overview](15 * time.Second),
		overviewTTL: 15 * time.Second,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.http.BaseURL }

// do issues an authenticated request. out, when non-nil, receives the
// decoded 2xx body.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	token, ok, err := c.session.Token()
	if err != nil {
		return errors.Wrap(err, "read session")
	}
	if !ok {
		return ErrNoSession
	}

	reqID := uuid.NewString()
	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("X-Request-ID", reqID)
	if body != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(body)
	}

	logger.WithField("request_id", reqID).Debugf("%s %s", method, endpoint)

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, endpoint)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		// Token expired or revoked. Clear it so every screen sees the
		// logged-out state; do not touch any other local state.
		if cerr := c.session.Clear(); cerr != nil {
			logger.Warnf("clear session after 401: %v", cerr)
		}
		return ErrSessionExpired
	}

	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Message: errorMessage(resp.Body())}
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return errors.Wrapf(err, "decode %s %s", method, endpoint)
		}
	}
	return nil
}

// doUnauthenticated issues a request without a bearer token. Only the login
// endpoints use it.
func (c *Client) doUnauthenticated(ctx context.Context, method, endpoint string, body any, out any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(body)
	}

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, endpoint)
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Message: errorMessage(resp.Body())}
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return errors.Wrapf(err, "decode %s %s", method, endpoint)
		}
	}
	return nil
}

func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}
