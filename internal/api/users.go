package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fydblock/fydadmin/internal/domain"
)

// ListUsers fetches the user collection in server order.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser submits a user edit draft. Callers reconcile by merge-patching
// the item in place; the server response does not echo the full record.
func (c *Client) UpdateUser(ctx context.Context, id string, draft domain.UserDraft) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/users/%s", id), draft.Payload(), nil)
}

// DeleteUser removes a user. Callers reconcile by removing the identity key
// from the local collection.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/users/%s", id), nil, nil)
}
