package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The platform API grew organically and the same entity arrives with
// different field names depending on the endpoint (`id` vs `bot_id`,
// `name` vs `bot_name`, boolean vs enum status). Everything is funneled
// through these normalizers at the service boundary.

// UnmarshalJSON normalizes user payload variants onto the canonical record.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = UserFromRaw(raw)
	return nil
}

// UserFromRaw builds a canonical User from a decoded payload.
func UserFromRaw(raw map[string]any) User {
	u := User{
		ID:         pickString(raw, "id", "user_id"),
		DisplayID:  pickString(raw, "user_id_display", "display_id"),
		Email:      pickString(raw, "email"),
		FullName:   pickString(raw, "full_name", "name"),
		Role:       pickString(raw, "role"),
		Status:     normalizeUserStatus(raw["status"]),
		Plan:       pickString(raw, "plan"),
		PlanExpiry: pickString(raw, "plan_expiry"),
		Registered: pickString(raw, "registered", "created_at"),
		LastLogin:  pickString(raw, "last_login"),
	}
	if u.ID == "" {
		u.ID = u.DisplayID
	}
	if u.Role == "" {
		u.Role = "user"
	}
	if u.Plan == "" {
		u.Plan = "Free"
	}
	return u
}

// UnmarshalJSON normalizes bot payload variants onto the canonical record.
func (b *Bot) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = BotFromRaw(raw)
	return nil
}

// BotFromRaw builds a canonical Bot from a decoded payload.
func BotFromRaw(raw map[string]any) Bot {
	b := Bot{
		ID:         pickString(raw, "id", "bot_id"),
		Name:       pickString(raw, "name", "bot_name"),
		Type:       pickString(raw, "type", "bot_type", "category"),
		Status:     NormalizeBotStatus(raw["status"]),
		RunStatus:  pickString(raw, "run_status", "runStatus"),
		Params:     DecodeParams(firstPresent(raw, "parameters", "config", "bot_config")),
		Profit:     pickDecimal(raw, "profit", "total_profit"),
		Icon:       pickString(raw, "icon", "icon_base64"),
		OwnerEmail: pickString(raw, "owner_email", "user_email"),
		CreatedAt:  pickTime(raw, "created_at"),
		UpdatedAt:  pickTime(raw, "updated_at"),
	}
	if b.RunStatus == "" {
		if b.Status == BotStatusActive {
			b.RunStatus = "Running"
		} else {
			b.RunStatus = "Stopped"
		}
	}
	return b
}

// UnmarshalJSON normalizes log payload variants onto the canonical record.
func (l *LogEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = LogEntryFromRaw(raw)
	return nil
}

// LogEntryFromRaw builds a canonical LogEntry from a decoded payload.
func LogEntryFromRaw(raw map[string]any) LogEntry {
	return LogEntry{
		ID:        pickString(raw, "id", "request_id"),
		Timestamp: pickTime(raw, "timestamp", "ts", "time"),
		Service:   pickString(raw, "service", "source"),
		Level:     strings.ToUpper(pickString(raw, "level", "severity")),
		Message:   pickString(raw, "message", "payload"),
	}
}

// NormalizeBotStatus maps the observed status encodings (boolean from the
// create form, capitalized or lowercase enum from the API) onto the enum.
func NormalizeBotStatus(v any) BotStatus {
	switch s := v.(type) {
	case bool:
		if s {
			return BotStatusActive
		}
		return BotStatusPaused
	case string:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "active", "running", "true":
			return BotStatusActive
		case "crashed", "error":
			return BotStatusCrashed
		default:
			return BotStatusPaused
		}
	default:
		return BotStatusPaused
	}
}

func normalizeUserStatus(v any) string {
	switch s := v.(type) {
	case bool:
		if s {
			return UserStatusActive
		}
		return UserStatusSuspended
	case string:
		if strings.EqualFold(strings.TrimSpace(s), "suspended") {
			return UserStatusSuspended
		}
		if strings.TrimSpace(s) == "" {
			return UserStatusActive
		}
		if strings.EqualFold(strings.TrimSpace(s), "active") {
			return UserStatusActive
		}
		return strings.TrimSpace(s)
	default:
		return UserStatusActive
	}
}

func firstPresent(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func pickString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if s != "" {
				return s
			}
		case float64:
			// JSON numbers decode as float64; IDs are kept as strings.
			if s == float64(int64(s)) {
				return fmt.Sprintf("%d", int64(s))
			}
			return fmt.Sprintf("%v", s)
		case json.Number:
			return s.String()
		}
	}
	return ""
}

func pickDecimal(raw map[string]any, keys ...string) decimal.Decimal {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return decimal.NewFromFloat(n)
		case string:
			if d, err := decimal.NewFromString(n); err == nil {
				return d
			}
		case json.Number:
			if d, err := decimal.NewFromString(n.String()); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}

func pickTime(raw map[string]any, keys ...string) time.Time {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
				if parsed, err := time.Parse(layout, t); err == nil {
					return parsed
				}
			}
		case float64:
			// Unix seconds or milliseconds.
			if t > 1e12 {
				return time.UnixMilli(int64(t)).UTC()
			}
			return time.Unix(int64(t), 0).UTC()
		}
	}
	return time.Time{}
}
