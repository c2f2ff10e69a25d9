package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fydblock/fydadmin/internal/domain"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyNamed(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBotFormTypeCycleReappliesTemplateOnCreate(t *testing.T) {
	f := newBotForm(domain.NewBotDraft())
	f.focus = botRowType

	f.handleKey(keyNamed("right")) // DCA -> Grid
	if f.draft.Type != domain.BotTypeGrid {
		t.Fatalf("type after cycle: %q", f.draft.Type)
	}
	if len(f.draft.Params) == 0 || f.draft.Params[0].Name != "Lower Price" {
		t.Errorf("grid template not applied: %v", f.draft.Params)
	}
}

func TestBotFormTypeCycleKeepsParamsOnEdit(t *testing.T) {
	bot := domain.Bot{ID: "b1", Name: "Existing", Type: domain.BotTypeDCA,
		Params: []domain.Param{{Name: "Hand Tuned", Type: domain.ParamNumber}}}
	f := newBotForm(domain.DraftFromBot(bot))
	f.focus = botRowType

	f.handleKey(keyNamed("right"))
	if len(f.draft.Params) != 1 || f.draft.Params[0].Name != "Hand Tuned" {
		t.Errorf("edit form lost stored params: %v", f.draft.Params)
	}
}

func TestBotFormSaveValidates(t *testing.T) {
	f := newBotForm(domain.NewBotDraft())
	f.focus = f.rowSave()

	done, submit := f.handleKey(keyNamed("enter"))
	if done || submit {
		t.Fatal("nameless draft must not submit")
	}
	if f.errText == "" {
		t.Error("validation error should be shown")
	}

	f.focus = botRowName
	f.handleKey(keyRunes("My Bot"))
	f.focus = f.rowSave()
	done, submit = f.handleKey(keyNamed("enter"))
	if !done || !submit {
		t.Fatalf("valid draft should submit: done=%v submit=%v", done, submit)
	}
	if f.draft.Name != "My Bot" {
		t.Errorf("draft name: %q", f.draft.Name)
	}
}

func TestBotFormEscCancels(t *testing.T) {
	f := newBotForm(domain.NewBotDraft())
	done, submit := f.handleKey(keyNamed("esc"))
	if !done || submit {
		t.Fatalf("esc: done=%v submit=%v", done, submit)
	}
}

func TestBotFormAddParameter(t *testing.T) {
	f := newBotForm(domain.NewBotDraft())
	before := len(f.draft.Params)
	f.focus = f.rowAddParam()
	f.handleKey(keyNamed("enter"))
	if len(f.draft.Params) != before+1 {
		t.Fatalf("add param: %d -> %d", before, len(f.draft.Params))
	}
	// Focus moves onto the new row for immediate naming.
	f.handleKey(keyRunes("Cooldown"))
	if f.draft.Params[before].Name != "Cooldown" {
		t.Errorf("new param name: %q", f.draft.Params[before].Name)
	}
}
