package cli

import (
	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/datepick/internal/picker"
)

func newOptionsCmd(opts *rootOptions) *cobra.Command {
	var (
		profile string
		parts   partFlags
	)

	cmd := &cobra.Command{
		Use:   "options <field>",
		Short: "List the options a field offers for a draft",
		Long: `List the options of one field (day, month, year, hour or minute) for the
draft given by --year, --month, --day and --hour. Out-of-range options are
listed as disabled rather than left out.`,
		Example: `  datepick options minute --year 2025 --month 1 --day 10 --hour 10 --min 2025-01-10T10:07
  datepick options day --profile birthdate --year 2009 --month 2 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := picker.ParseField(args[0])
			if err != nil {
				return err
			}

			f, _, err := opts.loadConfig()
			if err != nil {
				return err
			}
			entry, err := opts.entry(cmd, f, profile)
			if err != nil {
				return err
			}

			options := picker.OptionsFor(field, parts.parts(cmd), entry.Options)
			return printOptions(cmd.OutOrStdout(), options, opts.jsonOut)
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "Profile to read bounds from (default \"default\")")
	parts.register(cmd)
	return cmd
}
