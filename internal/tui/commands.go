package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MikeBiancalana/datepick/internal/config"
)

// configReloadedMsg carries a config file reload
type configReloadedMsg struct {
	event config.ReloadEvent
}

// saveMsg quits after pending commits have been delivered
type saveMsg struct{}

// waitForConfigReload waits for the next reload from the watcher.
// This is a non-blocking async command - it returns immediately and the
// closure waits for the watcher channel to signal changes.
func (m *Model) waitForConfigReload() tea.Cmd {
	if m.watcher == nil {
		return nil
	}

	capturedWatcher := m.watcher
	return func() tea.Msg {
		select {
		case event := <-capturedWatcher.Changes():
			return configReloadedMsg{event: event}
		case <-capturedWatcher.Done():
			return nil
		}
	}
}
