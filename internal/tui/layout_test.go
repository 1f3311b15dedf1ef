package tui

import "testing"

func TestCalculateLayout(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		pickers     int
		wantColumns int
		wantWidth   int
	}{
		{"single picker wide terminal", 200, 1, 1, MaxPickerWidth},
		{"single picker minimum", MinPickerWidth, 1, 1, MinPickerWidth},
		{"two pickers fit side by side", 100, 2, 2, 50},
		{"two pickers too narrow", 87, 2, 1, MaxPickerWidth},
		{"two pickers exactly wide enough", 88, 2, 2, 44},
		{"zero width", 0, 2, 1, 0},
		{"negative width", -10, 1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := CalculateLayout(tt.width, 30, tt.pickers)
			if l.Columns != tt.wantColumns {
				t.Errorf("Columns = %d, want %d", l.Columns, tt.wantColumns)
			}
			if l.PickerWidth != tt.wantWidth {
				t.Errorf("PickerWidth = %d, want %d", l.PickerWidth, tt.wantWidth)
			}
			if l.HeaderHeight != 2 || l.StatusHeight != 1 {
				t.Errorf("fixed heights = %d/%d, want 2/1", l.HeaderHeight, l.StatusHeight)
			}
		})
	}
}

func TestLayoutRows(t *testing.T) {
	if got := (Layout{Columns: 2}).Rows(3); got != 2 {
		t.Errorf("Rows(3) with 2 columns = %d, want 2", got)
	}
	if got := (Layout{Columns: 1}).Rows(3); got != 3 {
		t.Errorf("Rows(3) with 1 column = %d, want 3", got)
	}
	if got := (Layout{}).Rows(4); got != 4 {
		t.Errorf("Rows(4) with no columns = %d, want 4", got)
	}
}
