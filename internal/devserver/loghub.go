package devserver

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// logHub fans new system log rows out to websocket subscribers, each
// filtered to one bot's feed.
type logHub struct {
	mu   sync.Mutex
	subs map[chan logRow]string // channel -> service filter
}

func newLogHub() *logHub {
	return &logHub{subs: map[chan logRow]string{}}
}

func (h *logHub) subscribe(service string) chan logRow {
	ch := make(chan logRow, 32)
	h.mu.Lock()
	h.subs[ch] = service
	h.mu.Unlock()
	return ch
}

func (h *logHub) unsubscribe(ch chan logRow) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

// closeAll disconnects every subscriber. Called once, on shutdown.
func (h *logHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
}

func (h *logHub) publish(row logRow) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch, service := range h.subs {
		if service != "" && row.Service != service {
			continue
		}
		select {
		case ch <- row:
		default:
			// Slow subscriber: drop rather than block mutations.
		}
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dev server: the SPA runs on another origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleBotLogsWS(c *gin.Context) {
	botID := c.Param("botID")

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ch := s.hub.subscribe("bot:" + botID)
	defer s.hub.unsubscribe(ch)

	keepAlive := time.NewTicker(15 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-keepAlive.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case row, ok := <-ch:
			if !ok {
				return
			}
			line := strings.Join([]string{row.TS, row.Level, row.Message}, " ")
			if err := conn.WriteJSON(gin.H{"bot_id": botID, "line": line}); err != nil {
				return
			}
		}
	}
}
