package api

import (
	"context"
	"net/http"

	"github.com/fydblock/fydadmin/internal/domain"
)

const overviewCacheKey = "overview"

// Overview fetches the dashboard snapshot. Snapshots are cached briefly so
// switching screens does not hammer the endpoint.
func (c *Client) Overview(ctx context.Context) (domain.Overview, error) {
	if cached, ok := c.overview.Get(overviewCacheKey); ok {
		return cached, nil
	}
	var out domain.Overview
	if err := c.do(ctx, http.MethodGet, "/admin/overview", nil, &out); err != nil {
		return domain.Overview{}, err
	}
	c.overview.Set(overviewCacheKey, out, c.overviewTTL)
	return out, nil
}

// InvalidateOverview drops the cached snapshot, forcing the next call to
// hit the server.
func (c *Client) InvalidateOverview() {
	c.overview.Delete(overviewCacheKey)
}
