package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/fydblock/fydadmin/pkg/logger"
)

// LogLine is one line of a bot's live log feed.
type LogLine struct {
	BotID string `json:"bot_id"`
	Line  string `json:"line"`
}

// StreamBotLogs follows a bot's live log feed over websocket. Lines arrive
// on the returned channel until the context is canceled or the connection
// drops; the channel is closed either way. Like every other call, a missing
// token short-circuits and a 401 handshake clears the session.
func (c *Client) StreamBotLogs(ctx context.Context, botID string) (<-chan LogLine, error) {
	token, ok, err := c.session.Token()
	if err != nil {
		return nil, errors.Wrap(err, "read session")
	}
	if !ok {
		return nil, ErrNoSession
	}

	wsURL, err := websocketURL(c.http.BaseURL, "/admin/bots/"+botID+"/logs/ws")
	if err != nil {
		return nil, err
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			if cerr := c.session.Clear(); cerr != nil {
				logger.Warnf("clear session after 401: %v", cerr)
			}
			return nil, ErrSessionExpired
		}
		return nil, errors.Wrap(err, "dial log stream")
	}

	lines := make(chan LogLine, 64)
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	go func() {
		defer close(lines)
		defer close(done)
		defer conn.Close()

		for {
			var line LogLine
			if err := conn.ReadJSON(&line); err != nil {
				if ctx.Err() == nil {
					logger.Debugf("log stream closed: %v", err)
				}
				return
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines, nil
}

func websocketURL(base, path string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrap(err, "parse base url")
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + path
	return u.String(), nil
}
