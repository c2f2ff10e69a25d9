// Package domain holds the canonical admin records and the normalization
// layer that maps the platform API's field-name variants onto them, so the
// console never branches on raw payload shapes.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserStatus values as the platform reports them.
const (
	UserStatusActive    = "Active"
	UserStatusSuspended = "Suspended"
)

// BotStatus is the bot lifecycle state.
type BotStatus string

const (
	BotStatusActive  BotStatus = "active"
	BotStatusPaused  BotStatus = "paused"
	BotStatusCrashed BotStatus = "crashed"
)

// Log levels as emitted by the platform services.
const (
	LogLevelInfo    = "INFO"
	LogLevelWarning = "WARNING"
	LogLevelError   = "ERROR"
)

// User is a platform account as seen by the admin screens.
type User struct {
	ID         string `json:"id"`
	DisplayID  string `json:"user_id_display,omitempty"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	Plan       string `json:"plan"`
	PlanExpiry string `json:"plan_expiry,omitempty"`
	Registered string `json:"registered,omitempty"`
	LastLogin  string `json:"last_login,omitempty"`
}

// Key returns the stable identity used for reconciliation.
func (u User) Key() string { return u.ID }

// SearchText lists the fields matched by the free-text filter.
func (u User) SearchText() []string { return []string{u.Email, u.FullName, u.DisplayID} }

// StatusValue feeds the exact-equality status filter.
func (u User) StatusValue() string { return u.Status }

// Bot is a configured trading bot.
type Bot struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Status     BotStatus       `json:"status"`
	RunStatus  string          `json:"run_status,omitempty"`
	Params     []Param         `json:"parameters,omitempty"`
	Profit     decimal.Decimal `json:"profit"`
	Icon       string          `json:"icon,omitempty"` // base64 image payload
	OwnerEmail string          `json:"owner_email,omitempty"`
	CreatedAt  time.Time       `json:"created_at,omitempty"`
	UpdatedAt  time.Time       `json:"updated_at,omitempty"`
}

func (b Bot) Key() string           { return b.ID }
func (b Bot) SearchText() []string  { return []string{b.Name, b.ID} }
func (b Bot) StatusValue() string   { return string(b.Status) }

// LogEntry is one system log line.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

func (l LogEntry) Key() string          { return l.ID }
func (l LogEntry) SearchText() []string { return []string{l.Message, l.Service, l.ID} }
func (l LogEntry) StatusValue() string  { return l.Level }

// Overview is the dashboard snapshot returned by /admin/overview.
type Overview struct {
	TotalUsers     int             `json:"totalUsers"`
	Revenue        decimal.Decimal `json:"revenue"`
	ActiveSessions int             `json:"activeSessions"`
	SystemActivity []ActivityPoint `json:"systemActivity,omitempty"`
	RecentLogs     []RecentLog     `json:"recentLogs,omitempty"`
}

// ActivityPoint is one bar of the system-activity chart.
type ActivityPoint struct {
	Time  string `json:"time"`
	Login int    `json:"login"`
	API   int    `json:"api"`
}

// RecentLog is one row of the overview's recent-actions table.
type RecentLog struct {
	ID     string `json:"id"`
	Time   string `json:"time"`
	Action string `json:"action"`
	User   string `json:"user"`
	Status string `json:"status"`
}

// LogStats are the aggregate counters shown above the logs table.
type LogStats struct {
	Total    int
	Errors   int
	Warnings int
}

// StatsFor recomputes log counters from the current collection.
func StatsFor(logs []LogEntry) LogStats {
	st := LogStats{Total: len(logs)}
	for _, l := range logs {
		switch l.Level {
		case LogLevelError:
			st.Errors++
		case LogLevelWarning:
			st.Warnings++
		}
	}
	return st
}
