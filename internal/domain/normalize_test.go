package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBotUnmarshalLegacyFieldNames(t *testing.T) {
	payload := `{
		"bot_id": "b-42",
		"bot_name": "Steady DCA",
		"bot_type": "DCA",
		"status": "Active",
		"parameters": "[{\"name\":\"Base Order Size\",\"type\":\"number\"}]",
		"profit": "12.50",
		"owner_email": "alice@fydblock.com",
		"created_at": "2026-08-30T10:00:00Z"
	}`

	var b Bot
	if err := json.Unmarshal([]byte(payload), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.ID != "b-42" || b.Name != "Steady DCA" || b.Type != "DCA" {
		t.Errorf("legacy names not mapped: %+v", b)
	}
	if b.Status != BotStatusActive {
		t.Errorf("status: got %q", b.Status)
	}
	if b.RunStatus != "Running" {
		t.Errorf("run status should derive from status, got %q", b.RunStatus)
	}
	if len(b.Params) != 1 || b.Params[0].Name != "Base Order Size" {
		t.Errorf("parameters JSON string not decoded: %v", b.Params)
	}
	if !b.Profit.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("profit: got %s", b.Profit)
	}
	if b.CreatedAt.IsZero() {
		t.Error("created_at not parsed")
	}
}

func TestBotUnmarshalCanonicalFieldNames(t *testing.T) {
	payload := `{"id":"b-1","name":"Grid One","type":"Grid","status":"paused","profit":3.25,
		"parameters":[{"name":"Lower Price","type":"number"}]}`

	var b Bot
	if err := json.Unmarshal([]byte(payload), &b); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if b.ID != "b-1" || b.Status != BotStatusPaused || b.RunStatus != "Stopped" {
		t.Errorf("canonical names: %+v", b)
	}
	if len(b.Params) != 1 {
		t.Errorf("structured parameters: %v", b.Params)
	}
}

func TestBotUnmarshalMalformedParameters(t *testing.T) {
	var b Bot
	err := json.Unmarshal([]byte(`{"id":"b-2","name":"x","type":"DCA","status":true,"parameters":"{broken"}`), &b)
	if err != nil {
		t.Fatalf("malformed parameters must not fail the record: %v", err)
	}
	if len(b.Params) != 0 {
		t.Errorf("malformed parameters should decode empty, got %v", b.Params)
	}
	if b.Status != BotStatusActive {
		t.Errorf("boolean status true: got %q", b.Status)
	}
}

func TestNormalizeBotStatus(t *testing.T) {
	tests := []struct {
		in   any
		want BotStatus
	}{
		{true, BotStatusActive},
		{false, BotStatusPaused},
		{"active", BotStatusActive},
		{"Active", BotStatusActive},
		{"running", BotStatusActive},
		{"crashed", BotStatusCrashed},
		{"ERROR", BotStatusCrashed},
		{"paused", BotStatusPaused},
		{"whatever", BotStatusPaused},
		{nil, BotStatusPaused},
		{12.5, BotStatusPaused},
	}
	for _, tt := range tests {
		if got := NormalizeBotStatus(tt.in); got != tt.want {
			t.Errorf("NormalizeBotStatus(%v): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUserUnmarshalDefaults(t *testing.T) {
	var u User
	if err := json.Unmarshal([]byte(`{"user_id_display":"USR-7","email":"x@y.z","full_name":"X"}`), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.ID != "USR-7" {
		t.Errorf("missing id should fall back to display id, got %q", u.ID)
	}
	if u.Role != "user" || u.Plan != "Free" || u.Status != UserStatusActive {
		t.Errorf("defaults: %+v", u)
	}
}

func TestUserUnmarshalNumericID(t *testing.T) {
	var u User
	if err := json.Unmarshal([]byte(`{"id":1024,"email":"n@m.o"}`), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u.ID != "1024" {
		t.Errorf("numeric id: got %q", u.ID)
	}
}

func TestLogEntryUnmarshalVariants(t *testing.T) {
	var l LogEntry
	payload := `{"id":"l-1","ts":"2026-08-30T09:15:00Z","source":"auth","severity":"warning","message":"slow login"}`
	if err := json.Unmarshal([]byte(payload), &l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if l.Service != "auth" {
		t.Errorf("source alias: got %q", l.Service)
	}
	if l.Level != LogLevelWarning {
		t.Errorf("severity should be upcased, got %q", l.Level)
	}
	if l.Timestamp.IsZero() {
		t.Error("ts alias not parsed")
	}
}

func TestStatsFor(t *testing.T) {
	logs := []LogEntry{
		{Level: LogLevelError}, {Level: LogLevelError},
		{Level: LogLevelWarning},
		{Level: LogLevelInfo},
	}
	st := StatsFor(logs)
	if st.Total != 4 || st.Errors != 2 || st.Warnings != 1 {
		t.Errorf("stats: %+v", st)
	}
}
