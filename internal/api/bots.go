package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fydblock/fydadmin/internal/domain"
)

// ListBots fetches the bot collection in server order.
func (c *Client) ListBots(ctx context.Context) ([]domain.Bot, error) {
	var bots []domain.Bot
	if err := c.do(ctx, http.MethodGet, "/admin/bots", nil, &bots); err != nil {
		return nil, err
	}
	return bots, nil
}

// CreateBot submits a create draft. Callers reconcile by refetching the
// whole collection rather than guessing at server-filled fields.
func (c *Client) CreateBot(ctx context.Context, draft domain.BotDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/admin/bots", draft.Payload(), nil)
}

// UpdateBot submits an edit draft against the item endpoint. The legacy
// /user/bot path is what the platform exposes for item-scoped bot writes.
func (c *Client) UpdateBot(ctx context.Context, id string, draft domain.BotDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/user/bot/%s", id), draft.Payload(), nil)
}

// DeleteBot removes a bot.
func (c *Client) DeleteBot(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/user/bot/%s", id), nil, nil)
}
