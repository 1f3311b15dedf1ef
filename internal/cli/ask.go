package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/datepick/internal/config"
	"github.com/MikeBiancalana/datepick/internal/picker"
	"github.com/MikeBiancalana/datepick/internal/tui"
)

// selectFunc asks the user to pick one of the enabled options for a field.
// current is the drafted value, or "" when the field is unset.
type selectFunc func(title string, f picker.Field, options []picker.Option, current string) (string, error)

func newAskCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [profile]",
		Short: "Pick a value with one prompt per field",
		Long: `Walk through the picker fields one prompt at a time.

Options are rebuilt after every answer, so only values that can still lead to
an instant inside the profile's bounds are offered.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := config.DefaultProfile
			if len(args) == 1 {
				name = args[0]
			}

			f, _, err := opts.loadConfig()
			if err != nil {
				return err
			}
			entry, err := opts.entry(cmd, f, name)
			if err != nil {
				return err
			}

			value, err := askValue(picker.New(entry.Options), entry.Title, huhSelect)
			if err != nil {
				return err
			}
			return printResults(cmd.OutOrStdout(), []tui.Result{{Name: name, Value: value}}, opts.jsonOut)
		},
	}
}

// askValue drives the engine through one prompt per field in locale order.
// Each prompt counts as an open dropdown so blur-mode commits wait for it.
func askValue(e *picker.Engine, title string, ask selectFunc) (*time.Time, error) {
	e.Focus()

	var last *picker.Commit
	record := func(c *picker.Commit) {
		if c != nil {
			last = c
		}
	}

	for _, f := range e.Fields() {
		options := enabledOptions(e.Options(f))
		if len(options) == 0 {
			return nil, fmt.Errorf("no selectable %s within the allowed range", f)
		}

		current := ""
		if v, ok := e.Parts().Get(f); ok {
			current = strconv.Itoa(v)
		}

		record(e.SetOpen(f, true))
		choice, err := ask(title, f, options, current)
		if err != nil {
			return nil, fmt.Errorf("prompt cancelled: %w", err)
		}
		record(e.Select(f, choice))
		record(e.SetOpen(f, false))
	}
	record(e.Blur())

	if last == nil {
		// Nothing new was committed; the bound value stands
		return e.Value(), nil
	}
	return last.Value, nil
}

func enabledOptions(options []picker.Option) []picker.Option {
	enabled := make([]picker.Option, 0, len(options))
	for _, opt := range options {
		if !opt.Disabled {
			enabled = append(enabled, opt)
		}
	}
	return enabled
}

// huhSelect prompts with a huh select field
func huhSelect(title string, f picker.Field, options []picker.Option, current string) (string, error) {
	choices := make([]huh.Option[string], 0, len(options))
	for _, opt := range options {
		label := opt.Label
		if opt.Description != "" {
			label += "  " + opt.Description
		}
		choices = append(choices, huh.NewOption(label, opt.Value))
	}

	value := current
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("%s: %s", title, f)).
				Options(choices...).
				Value(&value),
		),
	)

	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}
