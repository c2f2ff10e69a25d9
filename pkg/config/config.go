package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/fydblock/fydadmin/pkg/logger"
)

// Config is the application configuration for the admin console and the
// bundled control-plane dev server.
type Config struct {
	// APIBaseURL is the platform REST API root, e.g. https://api.fydblock.com/api.
	APIBaseURL string `yaml:"api_base_url"`

	// SessionPath is the directory holding the badger session store.
	SessionPath string `yaml:"session_path"`
	// SessionKey optionally encrypts the session store at rest
	// (base64 or hex, 32 bytes).
	SessionKey string `yaml:"session_key"`

	Log logger.Config `yaml:"log"`

	Server ServerConfig `yaml:"server"`
}

// ServerConfig configures the control-plane dev server (`fydadmin serve`).
type ServerConfig struct {
	Addr              string `yaml:"addr"`
	DBPath            string `yaml:"db_path"`
	JWTSecret         string `yaml:"jwt_secret"`
	SeedAdminEmail    string `yaml:"seed_admin_email"`
	SeedAdminPassword string `yaml:"seed_admin_password"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		APIBaseURL:  "http://127.0.0.1:8787/api",
		SessionPath: filepath.Join(home, ".fydadmin", "session"),
		Log: logger.Config{
			Level:      "info",
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     7,
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8787",
			DBPath:         filepath.Join(home, ".fydadmin", "devserver.db"),
			SeedAdminEmail: "admin@fydblock.com",
		},
	}
}

// Load reads the YAML config at path (optional) and applies environment
// overrides. A .env file next to the working directory is honored first,
// matching how the bot binaries are configured.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()

	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return nil, fmt.Errorf("api_base_url is required")
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FYDADMIN_API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("FYDADMIN_SESSION_PATH"); v != "" {
		c.SessionPath = v
	}
	if v := os.Getenv("FYDADMIN_SESSION_KEY"); v != "" {
		c.SessionKey = v
	}
	if v := os.Getenv("FYDADMIN_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("FYDADMIN_LOG_FILE"); v != "" {
		c.Log.OutputFile = v
	}
	if v := os.Getenv("FYDADMIN_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("FYDADMIN_SERVER_DB"); v != "" {
		c.Server.DBPath = v
	}
	if v := os.Getenv("FYDADMIN_JWT_SECRET"); v != "" {
		c.Server.JWTSecret = v
	}
	if v := os.Getenv("FYDADMIN_SEED_ADMIN_EMAIL"); v != "" {
		c.Server.SeedAdminEmail = v
	}
	if v := os.Getenv("FYDADMIN_SEED_ADMIN_PASSWORD"); v != "" {
		c.Server.SeedAdminPassword = v
	}
}
