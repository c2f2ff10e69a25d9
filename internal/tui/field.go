package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// textField is a minimal single-line input. Screens render it themselves
// so they can style focus however the layout needs.
type textField struct {
	value  string
	masked bool
}

func (f *textField) handleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace:
		if f.value != "" {
			runes := []rune(f.value)
			f.value = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		f.value += " "
	case tea.KeyRunes:
		f.value += string(msg.Runes)
	}
}

func (f *textField) display() string {
	if f.masked {
		return strings.Repeat("*", len([]rune(f.value)))
	}
	return f.value
}

func renderField(label, value string, focused bool) string {
	body := value
	if focused {
		body = focusedFieldStyle.Render(value + "_")
	}
	return labelStyle.Render(label) + body
}
