package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fydblock/fydadmin/internal/domain"
)

var (
	userRoles    = []string{"user", "editor", "admin"}
	userStatuses = []string{domain.UserStatusActive, domain.UserStatusSuspended}
	userPlans    = []string{"Free", "Basic", "Pro"}
)

// userForm edits the mutable user fields. Role, status and plan cycle
// through fixed sets; everything else is free text.
type userForm struct {
	userID  string
	email   string
	draft   domain.UserDraft
	name    textField
	expiry  textField
	focus   int
	busy    bool
	errText string
}

const (
	userRowName = iota
	userRowRole
	userRowStatus
	userRowPlan
	userRowExpiry
	userRowSave
	userRowCancel
	userRowCount
)

func newUserForm(u domain.User) *userForm {
	f := &userForm{userID: u.ID, email: u.Email, draft: domain.DraftFromUser(u)}
	f.name.value = f.draft.FullName
	f.expiry.value = f.draft.PlanExpiry
	return f
}

func (f *userForm) handleKey(msg tea.KeyMsg) (done, submit bool) {
	if f.busy {
		return false, false
	}
	switch msg.String() {
	case "esc":
		return true, false
	case "up", "shift+tab":
		f.focus = (f.focus + userRowCount - 1) % userRowCount
		return false, false
	case "down", "tab":
		f.focus = (f.focus + 1) % userRowCount
		return false, false
	}

	switch f.focus {
	case userRowName:
		if msg.String() == "enter" {
			f.focus++
		} else {
			f.name.handleKey(msg)
			f.draft.FullName = f.name.value
		}
	case userRowRole:
		f.draft.Role = cycleChoice(userRoles, f.draft.Role, msg)
	case userRowStatus:
		f.draft.Status = cycleChoice(userStatuses, f.draft.Status, msg)
	case userRowPlan:
		f.draft.Plan = cycleChoice(userPlans, f.draft.Plan, msg)
	case userRowExpiry:
		if msg.String() == "enter" {
			f.focus++
		} else {
			f.expiry.handleKey(msg)
			f.draft.PlanExpiry = f.expiry.value
		}
	case userRowSave:
		if msg.String() == "enter" {
			if strings.TrimSpace(f.draft.FullName) == "" {
				f.errText = "full name is required"
				return false, false
			}
			f.busy = true
			f.errText = ""
			return true, true
		}
	case userRowCancel:
		if msg.String() == "enter" {
			return true, false
		}
	}
	return false, false
}

func cycleChoice(choices []string, current string, msg tea.KeyMsg) string {
	dir := 0
	switch msg.String() {
	case "left":
		dir = -1
	case "right", "enter", " ":
		dir = 1
	}
	if dir == 0 {
		return current
	}
	idx := 0
	for i, c := range choices {
		if c == current {
			idx = i
			break
		}
	}
	return choices[(idx+dir+len(choices))%len(choices)]
}

func (f *userForm) view(width, height int) string {
	lines := []string{
		titleStyle.Render("Edit User"),
		dimStyle.Render(f.email),
		"",
		renderField("Full name", f.name.display(), f.focus == userRowName),
		renderField("Role", f.draft.Role, f.focus == userRowRole),
		renderField("Status", f.draft.Status, f.focus == userRowStatus),
		renderField("Plan", f.draft.Plan, f.focus == userRowPlan),
		renderField("Plan expiry", f.expiry.display(), f.focus == userRowExpiry),
		"",
		renderAction("[ save ]", f.focus == userRowSave) + "  " + renderAction("[ cancel ]", f.focus == userRowCancel),
	}
	if f.busy {
		lines = append(lines, "", dimStyle.Render("saving..."))
	} else if f.errText != "" {
		lines = append(lines, "", errorStyle.Render(f.errText))
	}
	return centerDialog(dialogStyle.Render(strings.Join(lines, "\n")), width, height)
}
