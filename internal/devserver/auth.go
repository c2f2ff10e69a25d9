package devserver

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/fydblock/fydadmin/pkg/logger"
)

const tokenTTL = 24 * time.Hour

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "invalid json body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	u, err := s.getUserByEmail(ctx, req.Email)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "db get")
		return
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		abortError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if !strings.EqualFold(u.Role, "admin") {
		abortError(c, http.StatusForbidden, "admin access required")
		return
	}

	token, err := s.issueToken(u.ID, u.Email, u.Role)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "issue token")
		return
	}

	_ = s.touchLastLogin(ctx, u.ID)
	s.appendLog(ctx, "auth", "INFO", "admin login: "+u.Email)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

type googleLoginRequest struct {
	Token string `json:"token"`
}

func (s *Server) handleGoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "invalid json body")
		return
	}
	if s.cfg.GoogleDevToken == "" || req.Token != s.cfg.GoogleDevToken {
		abortError(c, http.StatusUnauthorized, "google auth failed")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	u, err := s.getUserByEmail(ctx, strings.ToLower(s.cfg.SeedAdminEmail))
	if err != nil || u == nil {
		abortError(c, http.StatusInternalServerError, "seed admin missing")
		return
	}

	token, err := s.issueToken(u.ID, u.Email, u.Role)
	if err != nil {
		abortError(c, http.StatusInternalServerError, "issue token")
		return
	}
	_ = s.touchLastLogin(ctx, u.ID)
	s.appendLog(ctx, "auth", "INFO", "google admin login: "+u.Email)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) issueToken(userID, email, role string) (string, error) {
	jti := uuid.NewString()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"jti":   jti,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}

	s.sessionsMu.Lock()
	s.sessions[jti] = now.Add(tokenTTL)
	s.sessionsMu.Unlock()
	return signed, nil
}

// requireAuth validates the bearer token on every admin route. Missing or
// invalid tokens get 401 with a JSON body, which is exactly what the
// console's 401 path expects.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			abortError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			return
		}
		raw := strings.TrimSpace(header[7:])

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			abortError(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortError(c, http.StatusUnauthorized, "invalid token claims")
			return
		}
		if role, _ := claims["role"].(string); !strings.EqualFold(role, "admin") {
			abortError(c, http.StatusUnauthorized, "admin access required")
			return
		}
		if email, _ := claims["email"].(string); email != "" {
			c.Set("admin_email", email)
		}
		c.Next()
	}
}

// activeSessionCount counts unexpired issued tokens.
func (s *Server) activeSessionCount() int {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	now := time.Now()
	n := 0
	for jti, exp := range s.sessions {
		if now.After(exp) {
			delete(s.sessions, jti)
			continue
		}
		n++
	}
	return n
}

// loginRateLimit applies a per-client token bucket to the auth endpoints,
// the one place brute force matters even in development.
func (s *Server) loginRateLimit() gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = map[string]*rate.Limiter{}
	)
	return func(c *gin.Context) {
		host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
		if err != nil {
			host = c.Request.RemoteAddr
		}

		mu.Lock()
		lim, ok := limiters[host]
		if !ok {
			// 10 attempts per minute with a small burst.
			lim = rate.NewLimiter(rate.Every(6*time.Second), 5)
			limiters[host] = lim
		}
		mu.Unlock()

		if !lim.Allow() {
			logger.Warnf("rate limited auth attempt from %s", host)
			abortError(c, http.StatusTooManyRequests, "too many attempts, slow down")
			return
		}
		c.Next()
	}
}
