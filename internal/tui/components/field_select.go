package components

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/MikeBiancalana/datepick/internal/picker"
)

var (
	fieldSelectBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")).
				Padding(0, 1)

	fieldSelectTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	fieldSelectItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	fieldSelectSelectedItemStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("39")).
					Bold(true)

	fieldSelectDisabledStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("240")).
					Strikethrough(true)

	fieldSelectDescStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))
)

const (
	fieldSelectWidth  = 24
	fieldSelectHeight = 10
)

// FieldOpenMsg reports a field dropdown opening or closing without a pick
type FieldOpenMsg struct {
	PickerID string
	Field    picker.Field
	Open     bool
}

// FieldChangeMsg is sent when an enabled option is picked. The dropdown is
// closed by the time it is delivered.
type FieldChangeMsg struct {
	PickerID string
	Field    picker.Field
	Value    string
}

// fieldOptionItem implements list.Item for a field option
type fieldOptionItem struct {
	opt picker.Option
}

func (i fieldOptionItem) FilterValue() string {
	// Filter by label and numeric value so "mar" and "3" both match March
	return i.opt.Label + " " + i.opt.Value
}

// fieldOptionDelegate renders one option per line
type fieldOptionDelegate struct{}

func (d fieldOptionDelegate) Height() int  { return 1 }
func (d fieldOptionDelegate) Spacing() int { return 0 }
func (d fieldOptionDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d fieldOptionDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(fieldOptionItem)
	if !ok {
		return
	}

	label := item.opt.Label
	isSelected := index == m.Index()

	style := fieldSelectItemStyle
	switch {
	case item.opt.Disabled:
		style = fieldSelectDisabledStyle
	case isSelected:
		style = fieldSelectSelectedItemStyle
	}

	prefix := "  "
	if isSelected {
		prefix = "> "
	}

	fmt.Fprint(w, prefix+style.Render(label))
	if item.opt.Description != "" {
		fmt.Fprint(w, " "+fieldSelectDescStyle.Render(item.opt.Description))
	}
}

// fieldSelectFuzzyFilter implements fuzzy matching for option items
func fieldSelectFuzzyFilter(term string, targets []string) []list.Rank {
	if term == "" {
		return nil
	}

	matches := fuzzy.Find(term, targets)
	ranks := make([]list.Rank, len(matches))

	for i, match := range matches {
		ranks[i] = list.Rank{
			Index:          match.Index,
			MatchedIndexes: match.MatchedIndexes,
		}
	}

	return ranks
}

// FieldSelect is a single selectable field with a filterable dropdown
type FieldSelect struct {
	list        list.Model
	pickerID    string
	field       picker.Field
	placeholder string
	options     []picker.Option
	current     string
	open        bool
}

// NewFieldSelect creates a closed field select for one field of a picker
func NewFieldSelect(pickerID string, field picker.Field, placeholder string) *FieldSelect {
	l := list.New([]list.Item{}, fieldOptionDelegate{}, fieldSelectWidth, fieldSelectHeight)
	l.Title = placeholder
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.FilterInput.Prompt = "Filter: "
	l.Styles.Title = fieldSelectTitleStyle
	l.SetShowHelp(false)
	// Esc and q belong to the picker, not to the program
	l.KeyMap.Quit.SetEnabled(false)

	l.Filter = fieldSelectFuzzyFilter

	return &FieldSelect{
		list:        l,
		pickerID:    pickerID,
		field:       field,
		placeholder: placeholder,
	}
}

// Field returns the field this select edits
func (fs *FieldSelect) Field() picker.Field {
	return fs.field
}

// SetOptions replaces the option list and the current value
func (fs *FieldSelect) SetOptions(options []picker.Option, current string) {
	fs.options = options
	fs.current = current

	items := make([]list.Item, len(options))
	for i, opt := range options {
		items[i] = fieldOptionItem{opt: opt}
	}
	fs.list.SetItems(items)
	fs.list.Select(fs.currentIndex())
}

// Options returns the option list last set
func (fs *FieldSelect) Options() []picker.Option {
	return fs.options
}

// Current returns the current value, empty when the field is unset
func (fs *FieldSelect) Current() string {
	return fs.current
}

// Label returns the display label of the current value, or "" when unset
func (fs *FieldSelect) Label() string {
	if fs.current == "" {
		return ""
	}
	for _, opt := range fs.options {
		if opt.Value == fs.current {
			return opt.Label
		}
	}
	return fs.current
}

// Placeholder returns the text shown while the field is unset
func (fs *FieldSelect) Placeholder() string {
	return fs.placeholder
}

func (fs *FieldSelect) currentIndex() int {
	for i, opt := range fs.options {
		if opt.Value == fs.current {
			return i
		}
	}
	return 0
}

// IsOpen returns whether the dropdown is open
func (fs *FieldSelect) IsOpen() bool {
	return fs.open
}

// Open shows the dropdown with the cursor on the current value
func (fs *FieldSelect) Open() tea.Cmd {
	if fs.open {
		return nil
	}
	fs.open = true
	fs.list.ResetFilter()
	fs.list.Select(fs.currentIndex())
	return fs.openCmd(true)
}

// Close hides the dropdown without picking
func (fs *FieldSelect) Close() tea.Cmd {
	if !fs.open {
		return nil
	}
	fs.open = false
	fs.list.ResetFilter()
	return fs.openCmd(false)
}

func (fs *FieldSelect) openCmd(open bool) tea.Cmd {
	msg := FieldOpenMsg{PickerID: fs.pickerID, Field: fs.field, Open: open}
	return func() tea.Msg {
		return msg
	}
}

// Update handles Bubble Tea messages while the dropdown is open
func (fs *FieldSelect) Update(msg tea.Msg) (*FieldSelect, tea.Cmd) {
	if !fs.open {
		return fs, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok && fs.list.FilterState() != list.Filtering {
		switch msg.Type {
		case tea.KeyEsc:
			return fs, fs.Close()

		case tea.KeyEnter:
			item, ok := fs.list.SelectedItem().(fieldOptionItem)
			if !ok || item.opt.Disabled {
				return fs, nil
			}

			fs.open = false
			fs.current = item.opt.Value
			fs.list.ResetFilter()

			change := FieldChangeMsg{PickerID: fs.pickerID, Field: fs.field, Value: item.opt.Value}
			return fs, func() tea.Msg {
				return change
			}
		}
	}

	var cmd tea.Cmd
	fs.list, cmd = fs.list.Update(msg)
	return fs, cmd
}

// View renders the dropdown, or nothing while it is closed
func (fs *FieldSelect) View() string {
	if !fs.open {
		return ""
	}

	var content strings.Builder
	content.WriteString(fs.list.View())
	return fieldSelectBoxStyle.Render(content.String())
}
