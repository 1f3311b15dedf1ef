package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/datepick/internal/config"
)

// profileSummary is the listing shape of a profile
type profileSummary struct {
	Name   string `json:"name"`
	Title  string `json:"title,omitempty"`
	Mode   string `json:"mode"`
	Commit string `json:"commit"`
	Min    string `json:"min,omitempty"`
	Max    string `json:"max,omitempty"`
	Step   int    `json:"minute_step,omitempty"`
}

func summarize(name string, p *config.Profile) profileSummary {
	mode := "datetime"
	if p.DateOnly {
		mode = "date"
	}
	commit := p.Commit
	if commit == "" {
		commit = "auto"
	}
	return profileSummary{
		Name:   name,
		Title:  p.Title,
		Mode:   mode,
		Commit: commit,
		Min:    p.Min,
		Max:    p.Max,
		Step:   p.MinuteStep,
	}
}

func newProfilesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List picker profiles from the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := opts.loadConfig()
			if err != nil {
				return err
			}

			summaries := make([]profileSummary, 0, len(f.Profiles))
			for _, name := range f.Names() {
				summaries = append(summaries, summarize(name, f.Profiles[name]))
			}

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return writeJSON(out, summaries)
			}

			tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "NAME\tMODE\tCOMMIT\tMIN\tMAX\tTITLE")
			for _, s := range summaries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", s.Name, s.Mode, s.Commit, dash(s.Min), dash(s.Max), dash(s.Title))
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(newProfilesInitCmd(opts))
	return cmd
}

func newProfilesInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in profiles to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.resolveConfigPath()
			if err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check config: %w", err)
			}

			data, err := config.Defaults().Marshal()
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
