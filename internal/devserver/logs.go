package devserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fydblock/fydadmin/pkg/logger"
)

type logRow struct {
	ID      string `json:"id"`
	TS      string `json:"timestamp"`
	Service string `json:"service"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// appendLog records an audit line and feeds any live log subscribers.
// Failures are logged and swallowed; auditing never fails a mutation.
func (s *Server) appendLog(ctx context.Context, service, level, message string) {
	row := logRow{
		ID:      uuid.NewString(),
		TS:      time.Now().UTC().Format(time.RFC3339),
		Service: service,
		Level:   level,
		Message: message,
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO system_logs (id,ts,service,level,message) VALUES (?,?,?,?,?)
`, row.ID, row.TS, row.Service, row.Level, row.Message)
	if err != nil {
		logger.Warnf("append system log: %v", err)
	}
	s.hub.publish(row)
}

func (s *Server) listLogs(ctx context.Context, limit int) ([]logRow, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id,ts,service,level,message FROM system_logs ORDER BY ts DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []logRow
	for rows.Next() {
		var r logRow
		if err := rows.Scan(&r.ID, &r.TS, &r.Service, &r.Level, &r.Message); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Server) handleLogsList(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	logs, err := s.listLogs(ctx, 500)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "db list")
		return
	}
	out := make([]gin.H, 0, len(logs))
	for _, l := range logs {
		out = append(out, gin.H{
			"id":        l.ID,
			"timestamp": l.TS,
			"service":   l.Service,
			"level":     l.Level,
			"message":   l.Message,
		})
	}
	c.JSON(http.StatusOK, out)
}
