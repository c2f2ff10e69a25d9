package domain

import "strings"

// BotDraft is the staging record behind the bot create/edit form. It is
// discarded on submit or cancel and never partially persisted.
type BotDraft struct {
	ID     string // empty for create
	Name   string
	Type   string
	Active bool
	Params []Param
	Icon   string // base64 image payload, optional
}

// NewBotDraft seeds a create draft with the category's parameter template.
func NewBotDraft() BotDraft {
	return BotDraft{
		Type:   BotTypeDCA,
		Active: true,
		Params: TemplateFor(BotTypeDCA),
	}
}

// DraftFromBot pre-fills an edit draft from an existing bot. The template is
// deliberately not applied: stored parameters win on edit.
func DraftFromBot(b Bot) BotDraft {
	params := make([]Param, len(b.Params))
	copy(params, b.Params)
	return BotDraft{
		ID:     b.ID,
		Name:   b.Name,
		Type:   b.Type,
		Active: b.Status == BotStatusActive,
		Params: params,
		Icon:   b.Icon,
	}
}

// SetType changes the draft's category. For a NEW draft this re-applies the
// category template; edits keep whatever parameters the user has.
func (d *BotDraft) SetType(botType string) {
	d.Type = botType
	if d.ID == "" {
		d.Params = TemplateFor(botType)
	}
}

// Validate reports the first problem preventing submission.
func (d BotDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errEmptyBotName
	}
	if strings.TrimSpace(d.Type) == "" {
		return errEmptyBotType
	}
	return nil
}

// Payload builds the JSON body the platform expects: the boolean toggle maps
// to the status enum and the parameter list is serialized to a JSON string.
func (d BotDraft) Payload() map[string]any {
	status := BotStatusPaused
	if d.Active {
		status = BotStatusActive
	}
	payload := map[string]any{
		"bot_name":   strings.TrimSpace(d.Name),
		"bot_type":   d.Type,
		"status":     string(status),
		"parameters": EncodeParams(d.Params),
	}
	if d.Icon != "" {
		payload["icon"] = d.Icon
	}
	return payload
}

// UserDraft is the staging record behind the user edit form.
type UserDraft struct {
	FullName   string
	Role       string
	Status     string
	Plan       string
	PlanExpiry string
}

// DraftFromUser pre-fills an edit draft from an existing user.
func DraftFromUser(u User) UserDraft {
	return UserDraft{
		FullName:   u.FullName,
		Role:       u.Role,
		Status:     u.Status,
		Plan:       u.Plan,
		PlanExpiry: u.PlanExpiry,
	}
}

// Payload builds the PUT body for /admin/users/{id}.
func (d UserDraft) Payload() map[string]any {
	payload := map[string]any{
		"full_name": strings.TrimSpace(d.FullName),
		"role":      d.Role,
		"status":    d.Status,
		"plan":      d.Plan,
	}
	if d.Plan != "Free" {
		payload["plan_expiry"] = d.PlanExpiry
	}
	return payload
}

// Apply merges the draft fields into an existing record, mirroring the
// merge-patch reconciliation the screens perform after a successful update.
func (d UserDraft) Apply(u User) User {
	u.FullName = d.FullName
	u.Role = d.Role
	u.Status = d.Status
	u.Plan = d.Plan
	if d.Plan != "Free" {
		u.PlanExpiry = d.PlanExpiry
	} else {
		u.PlanExpiry = ""
	}
	return u
}

// Apply merges the draft fields into an existing bot record.
func (d BotDraft) Apply(b Bot) Bot {
	b.Name = strings.TrimSpace(d.Name)
	b.Type = d.Type
	if d.Active {
		b.Status = BotStatusActive
		b.RunStatus = "Running"
	} else {
		b.Status = BotStatusPaused
		b.RunStatus = "Stopped"
	}
	params := make([]Param, len(d.Params))
	copy(params, d.Params)
	b.Params = params
	if d.Icon != "" {
		b.Icon = d.Icon
	}
	return b
}
