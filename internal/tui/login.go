package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loginForm struct {
	email    textField
	password textField
	focus    int
	busy     bool
	errText  string
}

func newLoginForm() loginForm {
	return loginForm{password: textField{masked: true}}
}

func (f *loginForm) handleKey(msg tea.KeyMsg) (submit bool) {
	if f.busy {
		return false
	}
	switch msg.String() {
	case "tab", "down":
		f.focus = (f.focus + 1) % 2
	case "shift+tab", "up":
		f.focus = (f.focus + 1) % 2
	case "enter":
		if f.focus == 0 {
			f.focus = 1
			return false
		}
		if strings.TrimSpace(f.email.value) == "" || f.password.value == "" {
			f.errText = "email and password are required"
			return false
		}
		f.busy = true
		f.errText = ""
		return true
	default:
		if f.focus == 0 {
			f.email.handleKey(msg)
		} else {
			f.password.handleKey(msg)
		}
	}
	return false
}

func (f *loginForm) view(width int) string {
	lines := []string{
		titleStyle.Render("FydBlock Admin"),
		"",
		renderField("Email", f.email.display(), f.focus == 0),
		renderField("Password", f.password.display(), f.focus == 1),
		"",
	}
	if f.busy {
		lines = append(lines, dimStyle.Render("signing in..."))
	} else if f.errText != "" {
		lines = append(lines, errorStyle.Render(f.errText))
	} else {
		lines = append(lines, dimStyle.Render("enter to sign in, ctrl+c to quit"))
	}
	box := borderStyle.Render(strings.Join(lines, "\n"))
	if width <= 0 {
		return box
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}
