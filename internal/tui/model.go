package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MikeBiancalana/datepick/internal/config"
	"github.com/MikeBiancalana/datepick/internal/logger"
	"github.com/MikeBiancalana/datepick/internal/picker"
	"github.com/MikeBiancalana/datepick/internal/tui/components"
)

// Minimum terminal dimensions
const (
	MinTerminalWidth  = MinPickerWidth
	MinTerminalHeight = 12
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// Entry describes one picker the model hosts
type Entry struct {
	Name    string
	Title   string
	Options picker.Options
	// Pinned entries keep their bounds when the config file is reloaded,
	// because they were overridden on the command line.
	Pinned bool
}

// Binding is a bound value owned by the model together with its picker
type Binding struct {
	Name    string
	Picker  *components.DateTimePicker
	Value   *time.Time
	Initial *time.Time
	Commits int
	pinned  bool
}

// Result is the final value of one binding
type Result struct {
	Name    string     `json:"name"`
	Value   *time.Time `json:"value"`
	Commits int        `json:"commits"`
}

// Model owns the bound values and hands keyboard focus to one picker at a
// time. Every ChangeMsg updates the bound value, which is then sent back to
// the picker the way a controlling parent re-renders a controlled input.
type Model struct {
	bindings  []*Binding
	focused   int
	width     int
	height    int
	statusBar *components.StatusBar
	watcher   *config.Watcher
	now       func() time.Time
	logger    *slog.Logger

	saved            bool
	quitting         bool
	lastError        error
	terminalTooSmall bool
}

// NewModel creates the TUI model. Watcher may be nil.
func NewModel(entries []Entry, watcher *config.Watcher, log *slog.Logger) *Model {
	log = logger.OrDefault(log).With("component", "tui")

	m := &Model{
		statusBar: components.NewStatusBar(),
		watcher:   watcher,
		now:       time.Now,
		logger:    log,
	}

	for _, e := range entries {
		opts := e.Options
		if opts.Logger == nil {
			opts.Logger = log
		}
		title := e.Title
		if title == "" {
			title = e.Name
		}
		m.bindings = append(m.bindings, &Binding{
			Name:    e.Name,
			Picker:  components.NewDateTimePicker(title, opts),
			Value:   opts.Value,
			Initial: opts.Value,
			pinned:  e.Pinned,
		})
	}
	return m
}

// Init focuses the first picker and starts listening for config reloads
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if len(m.bindings) > 0 {
		cmds = append(cmds, m.bindings[0].Picker.Focus(false))
	}
	cmds = append(cmds, m.waitForConfigReload())
	return tea.Batch(cmds...)
}

// Bindings returns the hosted bindings in display order
func (m *Model) Bindings() []*Binding {
	return m.bindings
}

// Focused returns the binding holding keyboard focus, or nil
func (m *Model) Focused() *Binding {
	if m.focused < 0 || m.focused >= len(m.bindings) {
		return nil
	}
	return m.bindings[m.focused]
}

// Saved reports whether the user quit with save rather than cancel
func (m *Model) Saved() bool {
	return m.saved
}

// Err returns the last error shown in the status bar
func (m *Model) Err() error {
	return m.lastError
}

// Results returns the final bound values
func (m *Model) Results() []Result {
	results := make([]Result, 0, len(m.bindings))
	for _, b := range m.bindings {
		results = append(results, Result{Name: b.Name, Value: b.Value, Commits: b.Commits})
	}
	return results
}

// LogStats writes per-picker rebuild timing to the debug log
func (m *Model) LogStats() {
	for _, b := range m.bindings {
		b.Picker.LogStats()
	}
}

func (m *Model) binding(pickerID string) *Binding {
	for _, b := range m.bindings {
		if b.Picker.ID() == pickerID {
			return b
		}
	}
	return nil
}

// Update handles Bubble Tea messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case components.ChangeMsg:
		return m.handleChange(msg)

	case components.LeaveMsg:
		return m.handleLeave(msg)

	case components.FieldOpenMsg:
		return m.routeToPicker(msg.PickerID, msg)

	case components.FieldChangeMsg:
		return m.routeToPicker(msg.PickerID, msg)

	case configReloadedMsg:
		return m.handleConfigReloaded(msg)

	case saveMsg:
		m.saved = true
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	default:
		return m, nil
	}
}

func (m *Model) routeToPicker(pickerID string, msg tea.Msg) (tea.Model, tea.Cmd) {
	b := m.binding(pickerID)
	if b == nil {
		return m, nil
	}
	var cmd tea.Cmd
	b.Picker, cmd = b.Picker.Update(msg)
	return m, cmd
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Handle terminal too small case
	if m.terminalTooSmall {
		return m.terminalTooSmallView()
	}

	layout := CalculateLayout(m.width, m.height, len(m.bindings))
	if m.width == 0 {
		layout = CalculateLayout(MaxPickerWidth, MinTerminalHeight, len(m.bindings))
	}

	var rows []string
	for i := 0; i < len(m.bindings); i += layout.Columns {
		var cells []string
		for j := i; j < i+layout.Columns && j < len(m.bindings); j++ {
			cells = append(cells, m.bindingView(m.bindings[j], layout.PickerWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("datepick"))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())
	return b.String()
}

func (m *Model) bindingView(b *Binding, width int) string {
	b.Picker.SetWidth(width)
	value := "value: " + formatValue(b.Value)
	return b.Picker.View() + "\n" + valueStyle.Render(" "+value)
}

// terminalTooSmallView renders the message when terminal is too small
func (m *Model) terminalTooSmallView() string {
	title := "Terminal Too Small"
	currentSize := fmt.Sprintf("Current: %dx%d", m.width, m.height)
	requiredSize := fmt.Sprintf("Required: %dx%d or larger", MinTerminalWidth, MinTerminalHeight)

	style := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Align(lipgloss.Center, lipgloss.Center)

	content := fmt.Sprintf(
		"%s\n\n%s\n%s\n\nResize your terminal to continue.",
		title,
		currentSize,
		requiredSize,
	)

	return style.Render(content)
}

func formatValue(v *time.Time) string {
	if v == nil {
		return "null"
	}
	return v.Format(time.RFC3339)
}
