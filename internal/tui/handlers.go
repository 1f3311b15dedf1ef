package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeBiancalana/datepick/internal/tui/components"
)

// Message Handlers
//
// These methods handle specific message types, keeping the main Update()
// function clean and focused. Each handler follows the pattern:
//
//   func (m *Model) handle<MessageType>(msg <MessageType>) (tea.Model, tea.Cmd)
//
// This makes handlers testable in isolation and easy to understand.

// handleWindowSize handles terminal resize events
func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Check if terminal meets minimum dimensions
	m.terminalTooSmall = msg.Width < MinTerminalWidth || msg.Height < MinTerminalHeight

	if m.statusBar != nil {
		m.statusBar.SetWidth(msg.Width)
	}

	return m, nil
}

// handleChange applies a commit to the bound value and echoes it back
func (m *Model) handleChange(msg components.ChangeMsg) (tea.Model, tea.Cmd) {
	b := m.binding(msg.PickerID)
	if b == nil {
		m.logger.Warn("change from unknown picker", "picker_id", msg.PickerID)
		return m, nil
	}

	b.Value = msg.Value
	b.Commits++
	b.Picker.SetValue(b.Value)

	m.logger.Debug("value changed", "binding", b.Name, "value", formatValue(b.Value))
	m.statusBar.SetMessage(fmt.Sprintf("%s = %s", b.Name, formatValue(b.Value)))
	return m, nil
}

// handleLeave moves focus to the next picker, wrapping around
func (m *Model) handleLeave(msg components.LeaveMsg) (tea.Model, tea.Cmd) {
	if len(m.bindings) == 0 {
		return m, nil
	}

	idx := m.focused
	if b := m.binding(msg.PickerID); b != nil {
		for i, other := range m.bindings {
			if other == b {
				idx = i
			}
		}
	}

	step := 1
	if msg.Reverse {
		step = -1
	}
	m.focused = (idx + step + len(m.bindings)) % len(m.bindings)
	return m, m.bindings[m.focused].Picker.Focus(msg.Reverse)
}

// handleConfigReloaded pushes reloaded bounds into unpinned pickers
func (m *Model) handleConfigReloaded(msg configReloadedMsg) (tea.Model, tea.Cmd) {
	ev := msg.event
	if ev.Err != nil {
		m.lastError = ev.Err
		m.statusBar.SetMessage("config reload failed: " + ev.Err.Error())
		return m, m.waitForConfigReload()
	}

	now := m.now()
	applied := 0
	for _, b := range m.bindings {
		if b.pinned {
			continue
		}
		p, err := ev.File.Profile(b.Name)
		if err != nil {
			m.logger.Warn("profile missing after reload", "binding", b.Name, "error", err)
			continue
		}
		opts, err := p.PickerOptions(ev.File, now)
		if err != nil {
			m.logger.Warn("profile invalid after reload", "binding", b.Name, "error", err)
			continue
		}

		b.Picker.SetBounds(opts.Min, opts.Max)
		b.Picker.SetMinuteStep(opts.MinuteStep)
		b.Picker.SetError(opts.Error)
		applied++
	}

	m.lastError = nil
	m.logger.Info("config reloaded", "path", ev.Path, "applied", applied)
	m.statusBar.SetMessage(fmt.Sprintf("config reloaded (%d updated)", applied))
	return m, m.waitForConfigReload()
}
