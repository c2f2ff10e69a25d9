package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fydblock/fydadmin/internal/domain"
)

// botForm edits a bot draft in a modal. Fixed rows come first, then one
// row per parameter, then the add/save/cancel actions.
type botForm struct {
	draft   domain.BotDraft
	name    textField
	params  []textField
	focus   int
	busy    bool
	errText string
}

const (
	botRowName = iota
	botRowType
	botRowActive
	botRowFirstParam
)

func newBotForm(draft domain.BotDraft) *botForm {
	f := &botForm{draft: draft}
	f.name.value = draft.Name
	for _, p := range draft.Params {
		f.params = append(f.params, textField{value: p.Name})
	}
	return f
}

func (f *botForm) rowCount() int {
	// add-param, save, cancel trail the parameter rows
	return botRowFirstParam + len(f.params) + 3
}

func (f *botForm) rowAddParam() int { return botRowFirstParam + len(f.params) }
func (f *botForm) rowSave() int     { return f.rowAddParam() + 1 }
func (f *botForm) rowCancel() int   { return f.rowAddParam() + 2 }

// handleKey mutates the form and reports whether it is done. When done
// with submit=true the returned draft is ready for the API.
func (f *botForm) handleKey(msg tea.KeyMsg) (done, submit bool) {
	if f.busy {
		return false, false
	}
	switch msg.String() {
	case "esc":
		return true, false
	case "up", "shift+tab":
		f.focus = (f.focus + f.rowCount() - 1) % f.rowCount()
		return false, false
	case "down", "tab":
		f.focus = (f.focus + 1) % f.rowCount()
		return false, false
	}

	switch {
	case f.focus == botRowName:
		if msg.String() == "enter" {
			f.focus++
		} else {
			f.name.handleKey(msg)
		}
	case f.focus == botRowType:
		switch msg.String() {
		case "left":
			f.cycleType(-1)
		case "right", "enter", " ":
			f.cycleType(1)
		}
	case f.focus == botRowActive:
		switch msg.String() {
		case "enter", " ", "left", "right":
			f.draft.Active = !f.draft.Active
		}
	case f.focus < f.rowAddParam():
		idx := f.focus - botRowFirstParam
		switch msg.String() {
		case "ctrl+t":
			f.draft.Params[idx].Type = nextParamType(f.draft.Params[idx].Type)
		case "ctrl+d":
			f.removeParam(idx)
		case "enter":
			f.focus++
		default:
			f.params[idx].handleKey(msg)
			f.draft.Params[idx].Name = f.params[idx].value
		}
	case f.focus == f.rowAddParam():
		if msg.String() == "enter" || msg.String() == " " {
			f.draft.Params = append(f.draft.Params, domain.Param{Type: domain.ParamNumber})
			f.params = append(f.params, textField{})
			f.focus = botRowFirstParam + len(f.params) - 1
		}
	case f.focus == f.rowSave():
		if msg.String() == "enter" {
			f.draft.Name = strings.TrimSpace(f.name.value)
			if err := f.draft.Validate(); err != nil {
				f.errText = err.Error()
				return false, false
			}
			f.busy = true
			f.errText = ""
			return true, true
		}
	case f.focus == f.rowCancel():
		if msg.String() == "enter" {
			return true, false
		}
	}
	return false, false
}

// cycleType walks the bot categories. A fresh draft gets the category's
// parameter template; editing an existing bot keeps its parameters.
func (f *botForm) cycleType(dir int) {
	idx := 0
	for i, t := range domain.BotTypes {
		if t == f.draft.Type {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(domain.BotTypes)) % len(domain.BotTypes)
	f.draft.SetType(domain.BotTypes[idx])
	if f.draft.ID == "" {
		f.params = f.params[:0]
		for _, p := range f.draft.Params {
			f.params = append(f.params, textField{value: p.Name})
		}
	}
}

func (f *botForm) removeParam(idx int) {
	f.draft.Params = append(f.draft.Params[:idx], f.draft.Params[idx+1:]...)
	f.params = append(f.params[:idx], f.params[idx+1:]...)
	if f.focus >= f.rowAddParam() && f.focus > botRowFirstParam {
		f.focus--
	}
}

func nextParamType(t domain.ParamType) domain.ParamType {
	for i, pt := range domain.ParamTypes {
		if pt == t {
			return domain.ParamTypes[(i+1)%len(domain.ParamTypes)]
		}
	}
	return domain.ParamTypes[0]
}

func (f *botForm) view(width, height int) string {
	title := "New Bot"
	if f.draft.ID != "" {
		title = "Edit Bot"
	}
	active := "paused"
	if f.draft.Active {
		active = "active"
	}

	lines := []string{
		titleStyle.Render(title),
		"",
		renderField("Name", f.name.display(), f.focus == botRowName),
		renderField("Category", f.draft.Type, f.focus == botRowType),
		renderField("Status", active, f.focus == botRowActive),
		"",
		headerRowStyle.Render("Parameters") + dimStyle.Render("  (ctrl+t type, ctrl+d remove)"),
	}
	for i, p := range f.draft.Params {
		row := fmt.Sprintf("%-28s %s", f.params[i].display(), dimStyle.Render(string(p.Type)))
		if f.focus == botRowFirstParam+i {
			row = focusedFieldStyle.Render(fmt.Sprintf("%-28s %s", f.params[i].display()+"_", p.Type))
		}
		lines = append(lines, "  "+row)
	}
	lines = append(lines,
		"",
		renderAction("[ add parameter ]", f.focus == f.rowAddParam()),
		renderAction("[ save ]", f.focus == f.rowSave())+"  "+renderAction("[ cancel ]", f.focus == f.rowCancel()),
	)
	if f.busy {
		lines = append(lines, "", dimStyle.Render("saving..."))
	} else if f.errText != "" {
		lines = append(lines, "", errorStyle.Render(f.errText))
	}
	return centerDialog(dialogStyle.Render(strings.Join(lines, "\n")), width, height)
}

func renderAction(label string, focused bool) string {
	if focused {
		return focusedFieldStyle.Render(label)
	}
	return dimStyle.Render(label)
}

func centerDialog(box string, width, height int) string {
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
