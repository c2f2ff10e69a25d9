package devserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Monthly plan prices used for the revenue counter.
var planPrices = map[string]decimal.Decimal{
	"Basic": decimal.New(999, -2),  // 9.99
	"Pro":   decimal.New(4999, -2), // 49.99
}

func (s *Server) handleOverview(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	users, err := s.listUsers(ctx)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "db list users")
		return
	}

	revenue := decimal.Zero
	for _, u := range users {
		if price, ok := planPrices[u.Plan]; ok && u.Status == "Active" {
			revenue = revenue.Add(price)
		}
	}

	logs, err := s.listLogs(ctx, 200)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "db list logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":     len(users),
		"revenue":        revenue,
		"activeSessions": s.activeSessionCount(),
		"systemActivity": activityBuckets(logs, time.Now().UTC()),
		"recentLogs":     recentActions(logs, 4),
	})
}

// activityBuckets aggregates the last six hours of log traffic into the
// login/api bars the overview chart renders.
func activityBuckets(logs []logRow, now time.Time) []gin.H {
	type bucket struct{ login, api int }
	buckets := make([]bucket, 6)

	for _, l := range logs {
		ts, err := time.Parse(time.RFC3339, l.TS)
		if err != nil {
			continue
		}
		age := now.Sub(ts)
		if age < 0 || age >= 6*time.Hour {
			continue
		}
		idx := 5 - int(age/time.Hour)
		if l.Service == "auth" {
			buckets[idx].login++
		} else {
			buckets[idx].api++
		}
	}

	out := make([]gin.H, 0, len(buckets))
	for i, b := range buckets {
		label := now.Add(time.Duration(i-5) * time.Hour).Format("3pm")
		out = append(out, gin.H{"time": label, "login": b.login, "api": b.api})
	}
	return out
}

func recentActions(logs []logRow, n int) []gin.H {
	out := make([]gin.H, 0, n)
	for _, l := range logs {
		if len(out) == n {
			break
		}
		status := "Success"
		if l.Level == "ERROR" {
			status = "Failed"
		}
		tsDisplay := l.TS
		if ts, err := time.Parse(time.RFC3339, l.TS); err == nil {
			tsDisplay = ts.Format("3:04:05 PM")
		}
		out = append(out, gin.H{
			"id":     l.ID,
			"time":   tsDisplay,
			"action": l.Message,
			"user":   strings.TrimPrefix(l.Service, "bot:"),
			"status": status,
		})
	}
	return out
}
