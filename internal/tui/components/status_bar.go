package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	statusBarMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("40"))
)

// DefaultHints are the host-level key hints
const DefaultHints = "tab:next picker  ctrl+r:reset  ctrl+n:null  ctrl+s:save  q:quit"

// StatusBar represents the status bar component
type StatusBar struct {
	width   int
	hints   string
	message string
}

// NewStatusBar creates a new status bar
func NewStatusBar() *StatusBar {
	return &StatusBar{hints: DefaultHints}
}

// SetWidth sets the width of the status bar
func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// SetHints replaces the key hints
func (sb *StatusBar) SetHints(hints string) {
	sb.hints = hints
}

// SetMessage shows a transient message before the hints
func (sb *StatusBar) SetMessage(msg string) {
	sb.message = msg
}

// Message returns the transient message
func (sb *StatusBar) Message() string {
	return sb.message
}

// View renders the status bar
func (sb *StatusBar) View() string {
	text := sb.hints
	if sb.message != "" {
		text = statusBarMessageStyle.Render(sb.message) + "  " + sb.hints
	}

	// Truncate if too long; padding takes two cells
	if sb.width > 0 {
		text = ansi.Truncate(text, max(sb.width-2, 0), "…")
	}

	return statusBarStyle.Width(sb.width).Render(text)
}
