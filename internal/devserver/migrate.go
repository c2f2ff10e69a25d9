package devserver

import (
	"context"
	"fmt"
	"time"
)

func (s *Server) migrate() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA foreign_keys=ON;`,
		`
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  user_id_display TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  full_name TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user',
  status TEXT NOT NULL DEFAULT 'Active',
  plan TEXT NOT NULL DEFAULT 'Free',
  plan_expiry TEXT NOT NULL DEFAULT '',
  registered TEXT NOT NULL,
  last_login TEXT NOT NULL DEFAULT ''
);`,
		`
CREATE TABLE IF NOT EXISTS bots (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'paused',
  run_status TEXT NOT NULL DEFAULT 'Stopped',
  parameters TEXT NOT NULL DEFAULT '[]',
  profit TEXT NOT NULL DEFAULT '0',
  icon TEXT NOT NULL DEFAULT '',
  owner_email TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`,
		`
CREATE TABLE IF NOT EXISTS system_logs (
  id TEXT PRIMARY KEY,
  ts TEXT NOT NULL,
  service TEXT NOT NULL,
  level TEXT NOT NULL,
  message TEXT NOT NULL
);`,
		`CREATE INDEX IF NOT EXISTS idx_system_logs_ts ON system_logs(ts DESC);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
