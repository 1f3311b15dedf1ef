package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Keyboard Handlers
//
// Keys go to the focused picker first while one of its dropdowns is open,
// so typing into a filter never triggers a global shortcut.

// handleKeyPress is the main keyboard input dispatcher
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.Focused()

	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if b == nil || m.terminalTooSmall {
		if msg.String() == "q" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if b.Picker.Engine().AnyOpen() {
		return m.forwardKey(b, msg)
	}

	switch msg.String() {
	case "q", "ctrl+s":
		return m, m.save()

	case "ctrl+r":
		// Owner-side reset: the bound value changes under the picker
		b.Value = b.Initial
		b.Picker.Reset(b.Value)
		m.statusBar.SetMessage(b.Name + " reset")
		return m, nil

	case "ctrl+n":
		b.Value = nil
		b.Picker.Reset(nil)
		m.statusBar.SetMessage(b.Name + " cleared")
		return m, nil
	}

	return m.forwardKey(b, msg)
}

func (m *Model) forwardKey(b *Binding, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	b.Picker, cmd = b.Picker.Update(msg)
	return m, cmd
}

// save leaves the focused picker so a buffered value is committed, then
// quits once that commit has been applied
func (m *Model) save() tea.Cmd {
	var blur tea.Cmd
	if b := m.Focused(); b != nil {
		blur = b.Picker.Blur()
	}
	return tea.Sequence(blur, func() tea.Msg {
		return saveMsg{}
	})
}
