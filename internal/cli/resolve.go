package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/datepick/internal/picker"
)

// resolution is the JSON shape of the resolve command
type resolution struct {
	Draft   picker.Parts `json:"draft"`
	Parts   picker.Parts `json:"parts"`
	Value   *time.Time   `json:"value"`
	Clamped bool         `json:"clamped"`
}

func newResolveCmd(opts *rootOptions) *cobra.Command {
	var (
		profile string
		parts   partFlags
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Turn a draft into the instant it would commit",
		Long: `Run date synthesis on the draft given by --year, --month, --day, --hour and
--minute: the day is clamped to the month, the result is validated and then
clamped into the profile's bounds. Prints null when the draft is incomplete.`,
		Example: `  datepick resolve --year 2023 --month 2 --day 31 --date-only
  datepick resolve --year 2025 --month 1 --day 10 --hour 9 --minute 0 --min 2025-01-10T10:07`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := opts.loadConfig()
			if err != nil {
				return err
			}
			entry, err := opts.entry(cmd, f, profile)
			if err != nil {
				return err
			}

			po := entry.Options
			loc := po.Location
			if loc == nil {
				loc = time.Local
			}
			draft := parts.parts(cmd)
			res := picker.Synthesize(draft, picker.SynthesisConfig{
				WithTime:         po.WithTime,
				AllowPartialTime: po.AllowPartialTime,
				Range:            picker.NormalizeRange(po.Min, po.Max, po.WithTime, loc),
				Location:         loc,
			})

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return writeJSON(out, resolution{Draft: draft, Parts: res.Parts, Value: res.Date, Clamped: res.Clamped})
			}

			line := formatInstant(res.Date)
			if res.Clamped {
				line += fmt.Sprintf(" (clamped from %s)", draft)
			}
			fmt.Fprintln(out, line)
			return nil
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "Profile to read bounds from (default \"default\")")
	parts.register(cmd)
	return cmd
}
