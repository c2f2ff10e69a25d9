package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fydblock/fydadmin/internal/domain"
)

// botJSON serializes a bot row with the legacy field names the dashboard
// consumes (`bot_id`, `bot_name`, ...).
func botJSON(b botRow) gin.H {
	return gin.H{
		"bot_id":      b.ID,
		"bot_name":    b.Name,
		"bot_type":    b.Type,
		"status":      b.Status,
		"run_status":  b.RunStatus,
		"parameters":  b.Parameters,
		"profit":      b.Profit,
		"icon":        b.Icon,
		"owner_email": b.OwnerEmail,
		"created_at":  b.CreatedAt,
		"updated_at":  b.UpdatedAt,
	}
}

func (s *Server) handleBotsList(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	bots, err := s.listBots(ctx)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "db list")
		return
	}
	out := make([]gin.H, 0, len(bots))
	for _, b := range bots {
		out = append(out, botJSON(b))
	}
	c.JSON(http.StatusOK, out)
}

// decodeBotPayload accepts the dashboard's bot payload in any of its
// observed shapes and returns sanitized fields.
func decodeBotPayload(c *gin.Context) (name, botType string, status domain.BotStatus, paramsJSON, icon string, ok bool) {
	var raw map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&raw); err != nil {
		abortError(c, http.StatusBadRequest, "invalid json body")
		return "", "", "", "", "", false
	}
	b := domain.BotFromRaw(raw)
	if strings.TrimSpace(b.Name) == "" {
		abortError(c, http.StatusBadRequest, "bot_name is required")
		return "", "", "", "", "", false
	}
	if strings.TrimSpace(b.Type) == "" {
		abortError(c, http.StatusBadRequest, "bot_type is required")
		return "", "", "", "", "", false
	}
	return b.Name, b.Type, b.Status, domain.EncodeParams(b.Params), b.Icon, true
}

func runStatusFor(status domain.BotStatus) string {
	if status == domain.BotStatusActive {
		return "Running"
	}
	return "Stopped"
}

func (s *Server) handleBotCreate(c *gin.Context) {
	name, botType, status, paramsJSON, icon, ok := decodeBotPayload(c)
	if !ok {
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	b := botRow{
		ID:         uuid.NewString(),
		Name:       name,
		Type:       botType,
		Status:     string(status),
		RunStatus:  runStatusFor(status),
		Parameters: paramsJSON,
		Profit:     "0",
		Icon:       icon,
		OwnerEmail: c.GetString("admin_email"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := s.insertBot(ctx, b); err != nil {
		abortError(c, http.StatusInternalServerError, "db insert")
		return
	}
	s.appendLog(ctx, "bot:"+b.ID, "INFO", "bot created: "+b.Name)
	c.JSON(http.StatusCreated, botJSON(b))
}

func (s *Server) handleBotUpdate(c *gin.Context) {
	id := c.Param("botID")

	name, botType, status, paramsJSON, icon, ok := decodeBotPayload(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	existing, err := s.getBot(ctx, id)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "db get")
		return
	}
	if existing == nil {
		abortError(c, http.StatusNotFound, "bot not found")
		return
	}

	b := *existing
	b.Name = name
	b.Type = botType
	b.Status = string(status)
	b.RunStatus = runStatusFor(status)
	b.Parameters = paramsJSON
	if icon != "" {
		b.Icon = icon
	}
	b.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if _, err := s.updateBot(ctx, b); err != nil {
		abortError(c, http.StatusInternalServerError, "db update")
		return
	}
	s.appendLog(ctx, "bot:"+id, "INFO", "bot updated: "+b.Name)
	c.JSON(http.StatusOK, botJSON(b))
}

func (s *Server) handleBotDelete(c *gin.Context) {
	id := c.Param("botID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	ok, err := s.deleteBot(ctx, id)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "db delete")
		return
	}
	if !ok {
		abortError(c, http.StatusNotFound, "bot not found")
		return
	}
	s.appendLog(ctx, "bot:"+id, "WARNING", "bot deleted")
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
