package components

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/xid"

	"github.com/MikeBiancalana/datepick/internal/logger"
	"github.com/MikeBiancalana/datepick/internal/perf"
	"github.com/MikeBiancalana/datepick/internal/picker"
)

var (
	datePickerBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)

	datePickerFocusedBoxStyle = datePickerBoxStyle.
					BorderForeground(lipgloss.Color("39"))

	datePickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	datePickerFieldStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252")).
				Padding(0, 1)

	datePickerActiveFieldStyle = datePickerFieldStyle.
					Foreground(lipgloss.Color("16")).
					Background(lipgloss.Color("39")).
					Bold(true)

	datePickerPlaceholderStyle = datePickerFieldStyle.
					Foreground(lipgloss.Color("240")).
					Italic(true)

	datePickerDisabledStyle = datePickerFieldStyle.
				Foreground(lipgloss.Color("238"))

	datePickerPreviewStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("40")).
				Italic(true)

	datePickerPendingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")).
				Italic(true)

	datePickerErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Italic(true)

	datePickerHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

// rebuildThreshold marks an option rebuild as slow in the debug log
const rebuildThreshold = 5 * time.Millisecond

// ChangeMsg carries one commit from a picker to the owner of its value. A
// nil Value clears the bound value.
type ChangeMsg struct {
	PickerID string
	Value    *time.Time
}

// LeaveMsg is sent when keyboard focus leaves a picker
type LeaveMsg struct {
	PickerID string
	Reverse  bool
}

// DateTimePicker is a row of selectable fields driving a picker.Engine
type DateTimePicker struct {
	id       string
	title    string
	engine   *picker.Engine
	fields   []picker.Field
	selects  map[picker.Field]*FieldSelect
	cursor   int
	focused  bool
	width    int
	logger   *slog.Logger
	rebuilds *perf.Recorder
	commits  *perf.Counter
}

// NewDateTimePicker creates an unfocused picker configured by opts
func NewDateTimePicker(title string, opts picker.Options) *DateTimePicker {
	id := xid.New().String()
	log := logger.OrDefault(opts.Logger).With("picker_id", id)
	opts.Logger = log

	engine := picker.New(opts)
	dp := &DateTimePicker{
		id:       id,
		title:    title,
		engine:   engine,
		fields:   engine.Fields(),
		selects:  make(map[picker.Field]*FieldSelect),
		width:    60,
		logger:   log,
		rebuilds: perf.NewRecorder("picker.rebuild", rebuildThreshold),
		commits:  perf.NewCounter("picker.commits"),
	}
	for _, f := range dp.fields {
		dp.selects[f] = NewFieldSelect(id, f, engine.Placeholder(f))
	}
	dp.rebuild()
	return dp
}

// ID returns the instance id used to route messages
func (dp *DateTimePicker) ID() string {
	return dp.id
}

// Title returns the picker title
func (dp *DateTimePicker) Title() string {
	return dp.title
}

// Engine exposes the underlying state machine
func (dp *DateTimePicker) Engine() *picker.Engine {
	return dp.engine
}

// RebuildStats returns timing for option rebuilds
func (dp *DateTimePicker) RebuildStats() perf.Stats {
	return dp.rebuilds.Stats()
}

// Commits returns how many ChangeMsgs the picker has emitted
func (dp *DateTimePicker) Commits() int64 {
	return dp.commits.Value()
}

// LogStats writes rebuild timing and the commit count to the picker's logger
func (dp *DateTimePicker) LogStats() {
	dp.rebuilds.LogStats(dp.logger, slog.LevelDebug)
	dp.logger.Debug(dp.commits.Name(), "count", dp.commits.Value())
}

// FocusedField returns the field under the cursor
func (dp *DateTimePicker) FocusedField() picker.Field {
	return dp.fields[dp.cursor]
}

// Select returns the field select for f, or nil when f is not shown
func (dp *DateTimePicker) Select(f picker.Field) *FieldSelect {
	return dp.selects[f]
}

// IsFocused returns whether the picker holds keyboard focus
func (dp *DateTimePicker) IsFocused() bool {
	return dp.focused
}

// SetWidth sets the width of the picker
func (dp *DateTimePicker) SetWidth(width int) {
	dp.width = width
}

// Focus gives the picker keyboard focus. Reverse puts the cursor on the last
// field, as when arriving with shift+tab.
func (dp *DateTimePicker) Focus(reverse bool) tea.Cmd {
	dp.focused = true
	dp.cursor = 0
	if reverse {
		dp.cursor = len(dp.fields) - 1
	}
	dp.engine.Focus()
	return nil
}

// Blur takes focus away from the picker. Open dropdowns are closed; in blur
// commit mode the buffered value is delivered once the last one has closed.
func (dp *DateTimePicker) Blur() tea.Cmd {
	if !dp.focused {
		return nil
	}
	dp.focused = false

	cmds := []tea.Cmd{dp.commitCmd(dp.engine.Blur())}
	for _, f := range dp.fields {
		cmds = append(cmds, dp.selects[f].Close())
	}
	return tea.Batch(cmds...)
}

// SetValue passes the owner's bound value to the engine
func (dp *DateTimePicker) SetValue(v *time.Time) {
	dp.engine.SetValue(v)
	dp.rebuild()
}

// Reset forces the draft to v
func (dp *DateTimePicker) Reset(v *time.Time) {
	dp.engine.Reset(v)
	dp.rebuild()
}

// SetBounds replaces min and max
func (dp *DateTimePicker) SetBounds(min, max *time.Time) {
	dp.engine.SetBounds(min, max)
	dp.rebuild()
}

// SetMinuteStep changes the minute granularity
func (dp *DateTimePicker) SetMinuteStep(step int) {
	dp.engine.SetMinuteStep(step)
	dp.rebuild()
}

// SetError sets the validation message shown under the fields
func (dp *DateTimePicker) SetError(msg string) {
	dp.engine.SetError(msg)
}

// Update handles Bubble Tea messages
func (dp *DateTimePicker) Update(msg tea.Msg) (*DateTimePicker, tea.Cmd) {
	switch msg := msg.(type) {
	case FieldOpenMsg:
		if msg.PickerID != dp.id {
			return dp, nil
		}
		return dp, dp.commitCmd(dp.engine.SetOpen(msg.Field, msg.Open))

	case FieldChangeMsg:
		if msg.PickerID != dp.id {
			return dp, nil
		}
		commit := dp.engine.Select(msg.Field, msg.Value)
		closed := dp.engine.SetOpen(msg.Field, false)
		dp.rebuild()
		return dp, tea.Batch(dp.commitCmd(commit), dp.commitCmd(closed))

	case tea.KeyMsg:
		if !dp.focused {
			return dp, nil
		}
		if fs := dp.openSelect(); fs != nil {
			var cmd tea.Cmd
			_, cmd = fs.Update(msg)
			return dp, cmd
		}
		return dp, dp.handleKey(msg)
	}

	return dp, nil
}

func (dp *DateTimePicker) handleKey(msg tea.KeyMsg) tea.Cmd {
	rtl := dp.engine.Locale().RTL

	switch msg.String() {
	case "left", "h":
		if rtl {
			dp.move(1)
		} else {
			dp.move(-1)
		}
	case "right", "l":
		if rtl {
			dp.move(-1)
		} else {
			dp.move(1)
		}
	case "tab":
		if dp.cursor == len(dp.fields)-1 {
			return dp.leave(false)
		}
		dp.move(1)
	case "shift+tab":
		if dp.cursor == 0 {
			return dp.leave(true)
		}
		dp.move(-1)
	case "esc":
		return dp.leave(false)
	case "up", "k":
		return dp.bump(-1)
	case "down", "j":
		return dp.bump(1)
	case "enter", " ":
		if dp.engine.Disabled() {
			return nil
		}
		return dp.selects[dp.FocusedField()].Open()
	case "backspace", "delete":
		commit := dp.engine.Select(dp.FocusedField(), "")
		dp.rebuild()
		return dp.commitCmd(commit)
	case "ctrl+x":
		commit := dp.engine.Clear()
		dp.rebuild()
		return dp.commitCmd(commit)
	}
	return nil
}

func (dp *DateTimePicker) move(delta int) {
	dp.cursor = max(0, min(len(dp.fields)-1, dp.cursor+delta))
}

func (dp *DateTimePicker) leave(reverse bool) tea.Cmd {
	id := dp.id
	blur := dp.Blur()
	return tea.Batch(blur, func() tea.Msg {
		return LeaveMsg{PickerID: id, Reverse: reverse}
	})
}

// bump moves the focused field to the next enabled option in list order
func (dp *DateTimePicker) bump(delta int) tea.Cmd {
	if dp.engine.Disabled() {
		return nil
	}

	fs := dp.selects[dp.FocusedField()]
	options := fs.Options()
	if len(options) == 0 {
		return nil
	}

	start := -1
	for i, opt := range options {
		if opt.Value == fs.Current() {
			start = i
			break
		}
	}
	if start == -1 && delta < 0 {
		start = len(options)
	}

	for i := start + delta; i >= 0 && i < len(options); i += delta {
		if options[i].Disabled {
			continue
		}
		commit := dp.engine.Select(fs.Field(), options[i].Value)
		dp.rebuild()
		return dp.commitCmd(commit)
	}
	return nil
}

func (dp *DateTimePicker) openSelect() *FieldSelect {
	for _, f := range dp.fields {
		if fs := dp.selects[f]; fs.IsOpen() {
			return fs
		}
	}
	return nil
}

// rebuild refreshes every field's option list from the engine
func (dp *DateTimePicker) rebuild() {
	dp.rebuilds.Time(func() {
		parts := dp.engine.Parts()
		for _, f := range dp.fields {
			current := ""
			if v, ok := parts.Get(f); ok {
				current = strconv.Itoa(v)
			}
			dp.selects[f].SetOptions(dp.engine.Options(f), current)
		}
	})
}

func (dp *DateTimePicker) commitCmd(c *picker.Commit) tea.Cmd {
	if c == nil {
		return nil
	}
	dp.commits.Inc()
	msg := ChangeMsg{PickerID: dp.id, Value: c.Value}
	return func() tea.Msg {
		return msg
	}
}

// View renders the picker
func (dp *DateTimePicker) View() string {
	var content strings.Builder

	content.WriteString(datePickerTitleStyle.Render(dp.title))
	content.WriteString("\n")
	content.WriteString(dp.fieldRow())
	content.WriteString("\n")

	if fs := dp.openSelect(); fs != nil {
		content.WriteString(fs.View())
		content.WriteString("\n")
	}

	switch {
	case dp.engine.Error() != "":
		content.WriteString(datePickerErrorStyle.Render("✗ " + dp.engine.Error()))
	case dp.engine.Preview() != nil:
		content.WriteString(datePickerPreviewStyle.Render("→ " + dp.formatPreview(*dp.engine.Preview())))
	default:
		content.WriteString(" ")
	}
	if _, ok := dp.engine.Pending(); ok {
		content.WriteString(" " + datePickerPendingStyle.Render("(not saved until you leave)"))
	}

	if dp.focused {
		content.WriteString("\n")
		content.WriteString(datePickerHelpStyle.Render(dp.helpText()))
	}

	box := datePickerBoxStyle
	if dp.focused {
		box = datePickerFocusedBoxStyle
	}
	return box.Width(max(dp.width-2, 20)).Render(content.String())
}

func (dp *DateTimePicker) fieldRow() string {
	cells := make([]string, 0, len(dp.fields)+1)
	for i, f := range dp.fields {
		if f == picker.FieldHour && i > 0 {
			cells = append(cells, " ")
		}
		cells = append(cells, dp.fieldCell(i, f))
	}

	if dp.engine.Locale().RTL {
		for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
			cells[i], cells[j] = cells[j], cells[i]
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (dp *DateTimePicker) fieldCell(i int, f picker.Field) string {
	fs := dp.selects[f]
	text := fs.Label()
	style := datePickerFieldStyle
	if text == "" {
		text = fs.Placeholder()
		style = datePickerPlaceholderStyle
	}

	switch {
	case dp.engine.Disabled():
		style = datePickerDisabledStyle
	case dp.focused && i == dp.cursor:
		style = datePickerActiveFieldStyle
	}
	return style.Render(text)
}

func (dp *DateTimePicker) formatPreview(t time.Time) string {
	if dp.engine.WithTime() {
		return t.Format("Mon 2006-01-02 15:04")
	}
	return t.Format("Mon 2006-01-02")
}

func (dp *DateTimePicker) helpText() string {
	if dp.openSelect() != nil {
		return "enter pick  esc close  / filter"
	}
	return "←/→ field  ↑/↓ change  enter list  ⌫ clear  tab next"
}
