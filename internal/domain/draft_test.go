package domain

import "testing"

func TestNewBotDraftSeedsDCATemplate(t *testing.T) {
	d := NewBotDraft()
	if d.Type != BotTypeDCA {
		t.Fatalf("default type: got %q", d.Type)
	}
	if !d.Active {
		t.Fatal("new drafts should start active")
	}
	if len(d.Params) != 4 || d.Params[0].Name != "Base Order Size" {
		t.Fatalf("DCA template not applied: %v", d.Params)
	}
}

func TestBotDraftSetType(t *testing.T) {
	d := NewBotDraft()
	d.Params[0].Name = "Tweaked"
	d.SetType(BotTypeGrid)
	if d.Params[0].Name != "Lower Price" {
		t.Errorf("new draft should re-apply template, got %v", d.Params)
	}

	// Editing an existing bot keeps its stored parameters.
	edit := DraftFromBot(Bot{ID: "b1", Name: "x", Type: BotTypeDCA, Params: []Param{{Name: "Custom", Type: ParamText}}})
	edit.SetType(BotTypeGrid)
	if len(edit.Params) != 1 || edit.Params[0].Name != "Custom" {
		t.Errorf("edit draft lost stored params: %v", edit.Params)
	}
}

func TestBotDraftValidate(t *testing.T) {
	d := NewBotDraft()
	d.Name = "   "
	if err := d.Validate(); err == nil {
		t.Error("blank name should fail validation")
	}
	d.Name = "My Bot"
	d.Type = ""
	if err := d.Validate(); err == nil {
		t.Error("blank type should fail validation")
	}
	d.Type = BotTypeDCA
	if err := d.Validate(); err != nil {
		t.Errorf("valid draft rejected: %v", err)
	}
}

func TestBotDraftPayload(t *testing.T) {
	d := NewBotDraft()
	d.Name = "  Accumulator  "

	p := d.Payload()
	if p["bot_name"] != "Accumulator" {
		t.Errorf("bot_name: got %v", p["bot_name"])
	}
	if p["status"] != "active" {
		t.Errorf("active draft should map to status active, got %v", p["status"])
	}
	if _, ok := p["icon"]; ok {
		t.Error("empty icon should be omitted")
	}
	params, ok := p["parameters"].(string)
	if !ok {
		t.Fatalf("parameters should be a JSON string, got %T", p["parameters"])
	}
	if decoded := DecodeParams(params); len(decoded) != 4 {
		t.Errorf("payload parameters round trip: got %d", len(decoded))
	}

	d.Active = false
	if got := d.Payload()["status"]; got != "paused" {
		t.Errorf("paused draft: got %v", got)
	}
}

func TestBotDraftApply(t *testing.T) {
	bot := Bot{ID: "b1", Name: "Old", Type: BotTypeDCA, Status: BotStatusPaused, RunStatus: "Stopped", Icon: "orig"}
	d := DraftFromBot(bot)
	d.Name = "New Name"
	d.Active = true

	got := d.Apply(bot)
	if got.ID != "b1" {
		t.Error("apply must not change identity")
	}
	if got.Name != "New Name" || got.Status != BotStatusActive || got.RunStatus != "Running" {
		t.Errorf("apply: got %+v", got)
	}
	if got.Icon != "orig" {
		t.Error("empty draft icon should keep the stored one")
	}
}

func TestUserDraftPayloadDropsExpiryOnFree(t *testing.T) {
	d := UserDraft{FullName: "Alice", Role: "admin", Status: UserStatusActive, Plan: "Free", PlanExpiry: "2026-12-01"}
	if _, ok := d.Payload()["plan_expiry"]; ok {
		t.Error("Free plan should not send plan_expiry")
	}

	d.Plan = "Pro"
	if got := d.Payload()["plan_expiry"]; got != "2026-12-01" {
		t.Errorf("paid plan should send expiry, got %v", got)
	}
}

func TestUserDraftApply(t *testing.T) {
	u := User{ID: "1", Email: "a@b.c", FullName: "Old", Plan: "Pro", PlanExpiry: "2026-12-01"}
	d := DraftFromUser(u)
	d.FullName = "New"
	d.Plan = "Free"

	got := d.Apply(u)
	if got.FullName != "New" {
		t.Errorf("full name not applied: %+v", got)
	}
	if got.PlanExpiry != "" {
		t.Error("downgrade to Free should clear expiry")
	}
	if got.Email != "a@b.c" || got.ID != "1" {
		t.Error("apply must not touch identity fields")
	}
}
