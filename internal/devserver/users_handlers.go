package devserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

func userJSON(u userRow) gin.H {
	return gin.H{
		"id":              u.ID,
		"user_id_display": u.DisplayID,
		"email":           u.Email,
		"full_name":       u.FullName,
		"role":            u.Role,
		"status":          u.Status,
		"plan":            u.Plan,
		"plan_expiry":     u.PlanExpiry,
		"registered":      u.Registered,
		"last_login":      u.LastLogin,
	}
}

func (s *Server) handleUsersList(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	users, err := s.listUsers(ctx)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "db list")
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, userJSON(u))
	}
	c.JSON(http.StatusOK, out)
}

type userUpdateRequest struct {
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	Plan       string `json:"plan"`
	PlanExpiry string `json:"plan_expiry"`
}

func (s *Server) handleUserUpdate(c *gin.Context) {
	id := c.Param("userID")

	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "invalid json body")
		return
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = "user"
	}
	if role != "user" && role != "editor" && role != "admin" {
		abortError(c, http.StatusBadRequest, "invalid role")
		return
	}
	if req.Plan == "Free" {
		req.PlanExpiry = ""
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	ok, err := s.updateUser(ctx, id, req.FullName, role, req.Status, req.Plan, req.PlanExpiry)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "db update")
		return
	}
	if !ok {
		abortError(c, http.StatusNotFound, "user not found")
		return
	}
	s.appendLog(ctx, "admin", "INFO", "user updated: "+id)
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (s *Server) handleUserDelete(c *gin.Context) {
	id := c.Param("userID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	ok, err := s.deleteUser(ctx, id)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "db delete")
		return
	}
	if !ok {
		abortError(c, http.StatusNotFound, "user not found")
		return
	}
	s.appendLog(ctx, "admin", "WARNING", "user deleted: "+id)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
