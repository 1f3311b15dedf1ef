package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestStatusBarView(t *testing.T) {
	sb := NewStatusBar()
	sb.SetWidth(120)

	view := sb.View()
	assert.Contains(t, view, "ctrl+r:reset")
	assert.Equal(t, 120, ansi.StringWidth(view))
}

func TestStatusBarTruncates(t *testing.T) {
	sb := NewStatusBar()
	sb.SetWidth(20)

	view := sb.View()
	assert.Contains(t, view, "…")
	assert.LessOrEqual(t, ansi.StringWidth(view), 20)
	assert.False(t, strings.Contains(view, "q:quit"))
}

func TestStatusBarMessage(t *testing.T) {
	sb := NewStatusBar()
	sb.SetWidth(120)
	sb.SetMessage("saved")
	sb.SetHints("q:quit")

	assert.Equal(t, "saved", sb.Message())
	view := sb.View()
	assert.Contains(t, view, "saved")
	assert.Contains(t, view, "q:quit")
}
