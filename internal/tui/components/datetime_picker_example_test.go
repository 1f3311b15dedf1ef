package components_test

import (
	"fmt"
	"time"

	"github.com/MikeBiancalana/datepick/internal/picker"
	"github.com/MikeBiancalana/datepick/internal/tui/components"
)

// ExampleDateTimePicker demonstrates creating a picker bound to a value
func ExampleDateTimePicker() {
	opts := picker.DefaultOptions()
	opts.Locale = "en-US"
	opts.Location = time.UTC
	value := time.Date(2025, 1, 10, 10, 5, 0, 0, time.UTC)
	opts.Value = &value

	dp := components.NewDateTimePicker("Meeting", opts)
	dp.Focus(false)

	fmt.Println("Focused field:", dp.FocusedField())
	fmt.Println("Month label:", dp.Select(picker.FieldMonth).Label())
	fmt.Println("Dirty:", dp.Engine().Dirty())

	// Output:
	// Focused field: month
	// Month label: Jan
	// Dirty: false
}

// ExampleDateTimePicker_bounds demonstrates the boundary minute showing up
// once the draft reaches the bound's hour
func ExampleDateTimePicker_bounds() {
	opts := picker.DefaultOptions()
	opts.Location = time.UTC
	opts.MinuteStep = 15
	min := time.Date(2025, 1, 10, 10, 7, 0, 0, time.UTC)
	opts.Min = &min
	value := time.Date(2025, 1, 10, 10, 15, 0, 0, time.UTC)
	opts.Value = &value

	dp := components.NewDateTimePicker("Release", opts)

	for _, opt := range dp.Select(picker.FieldMinute).Options() {
		fmt.Println(opt.Label, opt.Disabled)
	}

	// Output:
	// 00 true
	// 07 false
	// 15 false
	// 30 false
	// 45 false
}
