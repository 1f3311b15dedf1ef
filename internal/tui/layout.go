package tui

// Layout holds calculated dimensions for the picker grid
type Layout struct {
	Columns      int
	PickerWidth  int
	HeaderHeight int // Fixed: 2 lines
	StatusHeight int // Fixed: 1 line
}

// Picker width bounds
const (
	MinPickerWidth = 44
	MaxPickerWidth = 72
)

// CalculateLayout computes the picker grid for the terminal size. Pickers
// are laid out two per row when the terminal is wide enough for both.
func CalculateLayout(termWidth, termHeight, pickers int) Layout {
	l := Layout{
		Columns:      1,
		HeaderHeight: 2,
		StatusHeight: 1,
	}

	if pickers > 1 && termWidth >= 2*MinPickerWidth {
		l.Columns = 2
	}

	l.PickerWidth = termWidth / l.Columns
	if l.PickerWidth > MaxPickerWidth {
		l.PickerWidth = MaxPickerWidth
	}
	if l.PickerWidth < 0 {
		l.PickerWidth = 0
	}

	return l
}

// Rows returns how many picker rows the layout needs
func (l Layout) Rows(pickers int) int {
	if l.Columns <= 0 {
		return pickers
	}
	return (pickers + l.Columns - 1) / l.Columns
}
