// Package devserver is a self-contained control plane implementing the
// platform REST contract the admin console consumes, so the console can be
// developed and tested without the production backend.
package devserver

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "modernc.org/sqlite"

	"github.com/fydblock/fydadmin/pkg/logger"
	"github.com/fydblock/fydadmin/pkg/shutdown"
)

type Config struct {
	Addr              string
	DBPath            string
	JWTSecret         string
	SeedAdminEmail    string
	SeedAdminPassword string
	// GoogleDevToken, when set, is the OAuth access token /auth/google
	// accepts in development. Empty disables the endpoint.
	GoogleDevToken string
}

type Server struct {
	cfg Config
	db  *sql.DB

	jwtSecret []byte

	// Active bearer sessions (jti -> expiry), feeds the overview counter.
	sessionsMu sync.Mutex
	sessions   map[string]time.Time

	hub *logHub
}

func New(cfg Config) (*Server, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("db path is required")
	}
	if cfg.SeedAdminEmail == "" {
		return nil, errors.New("seed admin email is required")
	}

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		// Ephemeral secret: fine for a dev server, tokens die with the
		// process.
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		secret = []byte(hex.EncodeToString(buf))
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite: a single connection is the stable configuration.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Server{
		cfg:       cfg,
		db:        db,
		jwtSecret: secret,
		sessions:  map[string]time.Time{},
		hub:       newLogHub(),
	}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.seed(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Server) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Router builds the gin handler tree.
func (s *Server) Router() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.Use(s.loginRateLimit())
	auth.POST("/login", s.handleLogin)
	auth.POST("/google", s.handleGoogleLogin)

	admin := api.Group("/admin")
	admin.Use(s.requireAuth())
	admin.GET("/users", s.handleUsersList)
	admin.PUT("/users/:userID", s.handleUserUpdate)
	admin.DELETE("/users/:userID", s.handleUserDelete)
	admin.GET("/bots", s.handleBotsList)
	admin.POST("/bots", s.handleBotCreate)
	admin.GET("/bots/:botID/logs/ws", s.handleBotLogsWS)
	admin.GET("/logs", s.handleLogsList)
	admin.GET("/overview", s.handleOverview)

	// Legacy item-scoped bot paths, kept because the dashboard consumes
	// them as-is.
	user := api.Group("/user")
	user.Use(s.requireAuth())
	user.PUT("/bot/:botID", s.handleBotUpdate)
	user.DELETE("/bot/:botID", s.handleBotDelete)

	return r
}

// Run serves until the listener fails or ctx is canceled. Cancellation
// drains in-flight requests and live log streams under one deadline.
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{Addr: s.cfg.Addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	logger.Infof("control-plane dev server listening on %s", s.cfg.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	mgr := shutdown.NewManager()
	mgr.OnShutdown(func(ctx context.Context) {
		if err := httpSrv.Shutdown(ctx); err != nil {
			logger.Warnf("http shutdown: %v", err)
		}
	})
	mgr.OnShutdown(func(context.Context) { s.hub.closeAll() })

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mgr.Shutdown(stopCtx)
	return nil
}

func abortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
