package api

import (
	"context"
	"net/http"

	"github.com/fydblock/fydadmin/internal/domain"
)

// ListLogs fetches the system log collection, newest first as the server
// orders it.
func (c *Client) ListLogs(ctx context.Context) ([]domain.LogEntry, error) {
	var logs []domain.LogEntry
	if err := c.do(ctx, http.MethodGet, "/admin/logs", nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
