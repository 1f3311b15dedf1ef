package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/datepick/internal/config"
	"github.com/MikeBiancalana/datepick/internal/picker"
)

// profileFlags override fields of a single profile
type profileFlags struct {
	title       string
	value       string
	min         string
	max         string
	dateOnly    bool
	withTime    bool
	step        int
	partialTime bool
	commit      string
	yearOrder   string
}

var overrideFlagNames = []string{
	"title", "value", "min", "max", "date-only", "with-time", "step", "partial-time", "commit", "year-order",
}

func (pf *profileFlags) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&pf.title, "title", "", "Picker title")
	flags.StringVar(&pf.value, "value", "", "Initial value (YYYY-MM-DD[THH:MM], now, +3d, ...)")
	flags.StringVar(&pf.min, "min", "", "Earliest selectable instant")
	flags.StringVar(&pf.max, "max", "", "Latest selectable instant")
	flags.BoolVar(&pf.dateOnly, "date-only", false, "Pick a date without time")
	flags.BoolVar(&pf.withTime, "with-time", false, "Pick date and time")
	flags.IntVar(&pf.step, "step", 0, "Minute step (1-60)")
	flags.BoolVar(&pf.partialTime, "partial-time", false, "Allow committing a date before hour and minute are picked")
	flags.StringVar(&pf.commit, "commit", "", "When to commit: auto or blur")
	flags.StringVar(&pf.yearOrder, "year-order", "", "Year list order: asc or desc")
	cmd.MarkFlagsMutuallyExclusive("date-only", "with-time")
}

// any reports whether an override flag was set on the command line
func (pf *profileFlags) any(cmd *cobra.Command) bool {
	for _, name := range overrideFlagNames {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// apply writes the flags that were set into p and reports whether anything
// was overridden
func (pf *profileFlags) apply(cmd *cobra.Command, p *config.Profile) (bool, error) {
	flags := cmd.Flags()

	if flags.Changed("step") && (pf.step < 1 || pf.step > 60) {
		return false, fmt.Errorf("--step %d out of range 1..60", pf.step)
	}
	if flags.Changed("commit") {
		if _, err := picker.ParseCommitMode(pf.commit); err != nil {
			return false, err
		}
	}
	if flags.Changed("year-order") {
		if _, err := picker.ParseYearOrder(pf.yearOrder); err != nil {
			return false, err
		}
	}

	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("title", func() { p.Title = pf.title })
	set("value", func() { p.Value = pf.value })
	set("min", func() { p.Min = pf.min })
	set("max", func() { p.Max = pf.max })
	set("date-only", func() { p.DateOnly = pf.dateOnly })
	set("with-time", func() { p.DateOnly = !pf.withTime })
	set("step", func() { p.MinuteStep = pf.step })
	set("partial-time", func() { p.AllowPartialTime = pf.partialTime })
	set("commit", func() { p.Commit = pf.commit })
	set("year-order", func() { p.YearOrder = pf.yearOrder })

	return pf.any(cmd), nil
}

// partFlags select a draft for the options and resolve commands
type partFlags struct {
	year, month, day, hour, minute int
}

func (pf *partFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVar(&pf.year, "year", 0, "Drafted year")
	flags.IntVar(&pf.month, "month", 0, "Drafted month (1-12)")
	flags.IntVar(&pf.day, "day", 0, "Drafted day of month")
	flags.IntVar(&pf.hour, "hour", 0, "Drafted hour (0-23)")
	flags.IntVar(&pf.minute, "minute", 0, "Drafted minute (0-59)")
}

// parts returns the draft; flags that were not given stay unset
func (pf *partFlags) parts(cmd *cobra.Command) picker.Parts {
	flags := cmd.Flags()
	p := picker.Parts{}
	for _, part := range []struct {
		name  string
		field picker.Field
		value int
	}{
		{"year", picker.FieldYear, pf.year},
		{"month", picker.FieldMonth, pf.month},
		{"day", picker.FieldDay, pf.day},
		{"hour", picker.FieldHour, pf.hour},
		{"minute", picker.FieldMinute, pf.minute},
	} {
		if flags.Changed(part.name) {
			p = p.With(part.field, part.value)
		}
	}
	return p
}
