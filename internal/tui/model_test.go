package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeBiancalana/datepick/internal/config"
	"github.com/MikeBiancalana/datepick/internal/picker"
	"github.com/MikeBiancalana/datepick/internal/tui/components"
)

var fixedNow = time.Date(2025, 1, 12, 10, 30, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

func testEntry(name string, mutate func(*picker.Options)) Entry {
	opts := picker.DefaultOptions()
	opts.Locale = "en-GB"
	opts.Location = time.UTC
	opts.Now = func() time.Time { return fixedNow }
	if mutate != nil {
		mutate(&opts)
	}
	return Entry{Name: name, Options: opts}
}

func newTestModel(t *testing.T, entries ...Entry) *Model {
	t.Helper()
	m := NewModel(entries, nil, nil)
	m.now = func() time.Time { return fixedNow }
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

// deliver runs cmd, feeding every message it produces back into the model
func deliver(m *Model, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func key(m *Model, k tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(k)
	return cmd
}

func TestMinimumTerminalSizeConstants(t *testing.T) {
	if MinTerminalWidth != MinPickerWidth {
		t.Errorf("Expected MinTerminalWidth to be %d, got %d", MinPickerWidth, MinTerminalWidth)
	}

	if MinTerminalHeight != 12 {
		t.Errorf("Expected MinTerminalHeight to be 12, got %d", MinTerminalHeight)
	}
}

func TestTerminalTooSmallValidation(t *testing.T) {
	testCases := []struct {
		width    int
		height   int
		expected bool
		name     string
	}{
		{30, 25, true, "Width too small"},
		{80, 10, true, "Height too small"},
		{30, 10, true, "Both dimensions too small"},
		{MinTerminalWidth, MinTerminalHeight, false, "Exactly minimum dimensions"},
		{120, 40, false, "Larger than minimum"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewModel(nil, nil, nil)
			m.Update(tea.WindowSizeMsg{Width: tc.width, Height: tc.height})
			if m.terminalTooSmall != tc.expected {
				t.Errorf("Expected terminalTooSmall=%v for dimensions %dx%d, got %v",
					tc.expected, tc.width, tc.height, m.terminalTooSmall)
			}
		})
	}
}

func TestTerminalTooSmallViewContent(t *testing.T) {
	model := &Model{
		terminalTooSmall: true,
		width:            30,
		height:           8,
	}

	view := model.View()
	for _, want := range []string{"Terminal Too Small", "Current: 30x8", "Required: 44x12"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestNewModelFocusesFirstPicker(t *testing.T) {
	m := newTestModel(t, testEntry("start", nil), testEntry("end", nil))

	require.Len(t, m.Bindings(), 2)
	assert.True(t, m.Bindings()[0].Picker.IsFocused())
	assert.False(t, m.Bindings()[1].Picker.IsFocused())
	assert.Equal(t, "start", m.Focused().Name)
	assert.Equal(t, "start", m.Bindings()[0].Picker.Title(), "title defaults to the name")
}

func TestModelAppliesAndEchoesChanges(t *testing.T) {
	initial := time.Date(2025, 1, 10, 10, 5, 0, 0, time.UTC)
	m := newTestModel(t, testEntry("meeting", func(o *picker.Options) { o.Value = ptr(initial) }))

	deliver(m, key(m, tea.KeyMsg{Type: tea.KeyDown}))

	b := m.Focused()
	require.NotNil(t, b.Value)
	assert.True(t, b.Value.Equal(time.Date(2025, 1, 11, 10, 5, 0, 0, time.UTC)))
	assert.Equal(t, 1, b.Commits)
	assert.True(t, b.Picker.Engine().Value().Equal(*b.Value), "bound value echoed to the picker")
	assert.False(t, b.Picker.Engine().Dirty())
	assert.Contains(t, m.View(), "meeting = 2025-01-11T10:05:00Z")
}

func TestModelIgnoresUnknownPicker(t *testing.T) {
	m := newTestModel(t, testEntry("meeting", nil))

	_, cmd := m.Update(components.ChangeMsg{PickerID: "nope", Value: ptr(fixedNow)})
	assert.Nil(t, cmd)
	assert.Nil(t, m.Focused().Value)
	assert.Zero(t, m.Focused().Commits)
}

func TestModelLeaveMovesFocus(t *testing.T) {
	m := newTestModel(t, testEntry("a", nil), testEntry("b", nil), testEntry("c", nil))
	first := m.Bindings()[0].Picker

	// esc leaves the picker forward
	deliver(m, key(m, tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, "b", m.Focused().Name)
	assert.False(t, first.IsFocused())
	assert.True(t, m.Focused().Picker.IsFocused())

	// shift+tab on the first field goes back, landing on the last field
	deliver(m, key(m, tea.KeyMsg{Type: tea.KeyShiftTab}))
	assert.Equal(t, "a", m.Focused().Name)
	assert.Equal(t, picker.FieldMinute, m.Focused().Picker.FocusedField())

	// and wraps around
	deliver(m, key(m, tea.KeyMsg{Type: tea.KeyShiftTab}))
	deliver(m, key(m, tea.KeyMsg{Type: tea.KeyShiftTab}))
	deliver(m, key(m, tea.KeyMsg{Type: tea.KeyShiftTab}))
	deliver(m, key(m, tea.KeyMsg{Type: tea.KeyShiftTab}))
	deliver(m, key(m, tea.KeyMsg{Type: tea.KeyShiftTab}))
	assert.Equal(t, "c", m.Focused().Name)
}

func TestModelBlurModeCommitsWhenFocusLeaves(t *testing.T) {
	initial := time.Date(2025, 1, 10, 10, 5, 0, 0, time.UTC)
	m := newTestModel(t,
		testEntry("dob", func(o *picker.Options) {
			o.CommitMode = picker.CommitBlur
			o.Value = ptr(initial)
		}),
		testEntry("other", nil),
	)

	deliver(m, key(m, tea.KeyMsg{Type: tea.KeyDown}))
	b := m.Bindings()[0]
	assert.True(t, b.Value.Equal(initial), "blur mode buffers the edit")
	assert.Zero(t, b.Commits)

	deliver(m, key(m, tea.KeyMsg{Type: tea.KeyEsc}))
	require.NotNil(t, b.Value)
	assert.True(t, b.Value.Equal(time.Date(2025, 1, 11, 10, 5, 0, 0, time.UTC)))
	assert.Equal(t, 1, b.Commits)
	assert.Equal(t, "other", m.Focused().Name)
}

func TestModelResetKeys(t *testing.T) {
	initial := time.Date(2025, 1, 10, 10, 5, 0, 0, time.UTC)
	m := newTestModel(t, testEntry("meeting", func(o *picker.Options) { o.Value = ptr(initial) }))
	b := m.Focused()

	deliver(m, key(m, tea.KeyMsg{Type: tea.KeyDown}))
	require.False(t, b.Value.Equal(initial))

	deliver(m, key(m, tea.KeyMsg{Type: tea.KeyCtrlR}))
	assert.True(t, b.Value.Equal(initial))
	assert.Equal(t, "10", b.Picker.Select(picker.FieldDay).Label(), "reset re-hydrates the draft")

	deliver(m, key(m, tea.KeyMsg{Type: tea.KeyCtrlN}))
	assert.Nil(t, b.Value)
	assert.Empty(t, b.Picker.Select(picker.FieldDay).Label())
	assert.Contains(t, m.View(), "value: null")
}

func TestModelResetWhileEditing(t *testing.T) {
	initial := time.Date(2025, 1, 10, 10, 5, 0, 0, time.UTC)
	m := newTestModel(t, testEntry("meeting", func(o *picker.Options) {
		o.CommitMode = picker.CommitBlur
		o.Value = ptr(initial)
	}))
	b := m.Focused()

	deliver(m, key(m, tea.KeyMsg{Type: tea.KeyDown}))
	require.True(t, b.Picker.Engine().Dirty())

	// ctrl+n changes the bound value, so the in-progress draft is replaced
	deliver(m, key(m, tea.KeyMsg{Type: tea.KeyCtrlN}))
	assert.False(t, b.Picker.Engine().Dirty())
	_, pending := b.Picker.Engine().Pending()
	assert.False(t, pending)
	assert.True(t, b.Picker.Engine().Parts().IsEmpty())
}

func TestModelResetKeysDiscardDraftWhenValueUnchanged(t *testing.T) {
	t.Run("ctrl+n with a null value", func(t *testing.T) {
		m := newTestModel(t, testEntry("meeting", nil))
		b := m.Focused()
		require.Nil(t, b.Value)

		deliver(m, key(m, tea.KeyMsg{Type: tea.KeyDown}))
		require.True(t, b.Picker.Engine().Dirty())
		require.False(t, b.Picker.Engine().Parts().IsEmpty())

		deliver(m, key(m, tea.KeyMsg{Type: tea.KeyCtrlN}))
		assert.False(t, b.Picker.Engine().Dirty())
		assert.True(t, b.Picker.Engine().Parts().IsEmpty())
		assert.Empty(t, b.Picker.Select(picker.FieldDay).Current())
		assert.Nil(t, b.Value)
	})

	t.Run("ctrl+r with the initial value still bound", func(t *testing.T) {
		initial := time.Date(2025, 1, 10, 10, 5, 0, 0, time.UTC)
		m := newTestModel(t, testEntry("meeting", func(o *picker.Options) {
			o.CommitMode = picker.CommitBlur
			o.Value = ptr(initial)
		}))
		b := m.Focused()

		deliver(m, key(m, tea.KeyMsg{Type: tea.KeyDown}))
		require.True(t, b.Picker.Engine().Dirty())
		require.NotNil(t, b.Value)
		require.True(t, b.Value.Equal(initial))

		deliver(m, key(m, tea.KeyMsg{Type: tea.KeyCtrlR}))
		assert.False(t, b.Picker.Engine().Dirty())
		_, pending := b.Picker.Engine().Pending()
		assert.False(t, pending)
		assert.True(t, b.Picker.Engine().Parts().Equal(picker.PartsOf(initial, true, time.UTC)))
	})
}

func TestModelSaveAndCancel(t *testing.T) {
	m := newTestModel(t, testEntry("meeting", nil))

	cmd := key(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.False(t, m.Focused().Picker.IsFocused(), "save blurs the focused picker")

	_, cmd = m.Update(saveMsg{})
	require.NotNil(t, cmd)
	assert.True(t, m.Saved())
	assert.Empty(t, m.View())

	m = newTestModel(t, testEntry("meeting", nil))
	cmd = key(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.False(t, m.Saved())
}

func TestModelRoutesKeysToOpenDropdown(t *testing.T) {
	m := newTestModel(t, testEntry("meeting", nil))

	deliver(m, key(m, tea.KeyMsg{Type: tea.KeyEnter}))
	require.True(t, m.Focused().Picker.Engine().AnyOpen())

	// q goes to the dropdown, not to save
	key(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.False(t, m.Saved())
	assert.True(t, m.Focused().Picker.IsFocused())
}

func TestModelResults(t *testing.T) {
	v := time.Date(2025, 1, 10, 10, 5, 0, 0, time.UTC)
	m := newTestModel(t, testEntry("a", func(o *picker.Options) { o.Value = ptr(v) }), testEntry("b", nil))

	results := m.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Name)
	assert.True(t, results[0].Value.Equal(v))
	assert.Nil(t, results[1].Value)
}

func TestModelConfigReload(t *testing.T) {
	m := newTestModel(t,
		testEntry("release", nil),
		Entry{Name: "pinned", Options: testEntry("", nil).Options, Pinned: true},
	)

	f, err := config.Parse([]byte(`
timezone: UTC
profiles:
  release:
    min: 2025-01-10T10:07
    minute_step: 15
    error: closed on Sundays
  pinned:
    min: 2030-01-01
`))
	require.NoError(t, err)

	m.Update(configReloadedMsg{event: config.ReloadEvent{Path: "config.yaml", File: f}})

	release := m.Bindings()[0].Picker.Engine()
	require.NotNil(t, release.Range().Min)
	assert.True(t, release.Range().Min.Equal(time.Date(2025, 1, 10, 10, 7, 0, 0, time.UTC)))
	assert.Equal(t, "closed on Sundays", release.Error())
	assert.Len(t, release.Options(picker.FieldMinute), 4)

	pinned := m.Bindings()[1].Picker.Engine()
	assert.Nil(t, pinned.Range().Min, "pinned bindings keep their bounds")
	assert.Contains(t, m.View(), "config reloaded (1 updated)")
}

func TestModelConfigReloadError(t *testing.T) {
	m := newTestModel(t, testEntry("release", nil))

	m.Update(configReloadedMsg{event: config.ReloadEvent{Err: errors.New("bad yaml")}})
	assert.EqualError(t, m.Err(), "bad yaml")
	assert.Contains(t, m.View(), "config reload failed")
}
