package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type confirmKind int

const (
	confirmDeleteBot confirmKind = iota
	confirmDeleteUser
)

// confirmDialog gates destructive actions behind an explicit yes.
type confirmDialog struct {
	kind  confirmKind
	id    string
	label string
	busy  bool
}

func (d *confirmDialog) handleKey(msg tea.KeyMsg) (confirmed, dismissed bool) {
	if d.busy {
		return false, false
	}
	switch msg.String() {
	case "y", "Y", "enter":
		d.busy = true
		return true, false
	case "n", "N", "esc":
		return false, true
	}
	return false, false
}

func (d *confirmDialog) view(width, height int) string {
	noun := "bot"
	if d.kind == confirmDeleteUser {
		noun = "user"
	}
	lines := []string{
		warnStyle.Render(fmt.Sprintf("Delete %s %q?", noun, d.label)),
		"",
	}
	if d.busy {
		lines = append(lines, dimStyle.Render("deleting..."))
	} else {
		lines = append(lines, dimStyle.Render("y to confirm, n to cancel"))
	}
	return centerDialog(dialogStyle.Render(strings.Join(lines, "\n")), width, height)
}
