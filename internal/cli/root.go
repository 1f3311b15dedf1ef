package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/datepick/internal/config"
	"github.com/MikeBiancalana/datepick/internal/logger"
	"github.com/MikeBiancalana/datepick/internal/perf"
	"github.com/MikeBiancalana/datepick/internal/tui"
)

// Sessions longer than this are logged at warn level
const sessionLogThreshold = 10 * time.Minute

// ErrCancelled is returned when the user quits the picker without saving
var ErrCancelled = errors.New("cancelled")

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	configPath string
	locale     string
	jsonOut    bool
	overrides  profileFlags
	now        func() time.Time
}

// NewRootCommand builds the datepick command tree
func NewRootCommand() *cobra.Command {
	return newRootCommand(&rootOptions{now: time.Now})
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datepick [profile...]",
		Short: "datepick - terminal date and time picker",
		Long: `Pick dates and times from constrained dropdown fields.

Each profile in the config file describes one picker: its bounds, whether it
tracks time, the minute step and when edits are committed. With no profile the
"default" profile is used. Flags override the profile when exactly one is given.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: launch TUI
			return runPicker(cmd, opts, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (default ~/.datepick/config.yaml)")
	pf.StringVar(&opts.locale, "locale", "", "Locale for field order and month names (default from LANG)")
	pf.BoolVar(&opts.jsonOut, "json", false, "Output as JSON")
	opts.overrides.register(cmd)

	cmd.AddCommand(newAskCmd(opts))
	cmd.AddCommand(newOptionsCmd(opts))
	cmd.AddCommand(newResolveCmd(opts))
	cmd.AddCommand(newProfilesCmd(opts))

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

func (o *rootOptions) resolveConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	path, err := config.ConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to locate config: %w", err)
	}
	return path, nil
}

// loadConfig reads the config file, falling back to built-in profiles
func (o *rootOptions) loadConfig() (*config.File, string, error) {
	path, err := o.resolveConfigPath()
	if err != nil {
		return nil, "", err
	}
	f, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return f, path, nil
}

// entry resolves a profile plus command-line overrides into a TUI entry
func (o *rootOptions) entry(cmd *cobra.Command, f *config.File, name string) (tui.Entry, error) {
	if name == "" {
		name = config.DefaultProfile
	}
	p, err := f.Profile(name)
	if err != nil {
		return tui.Entry{}, err
	}

	profile := *p
	pinned, err := o.overrides.apply(cmd, &profile)
	if err != nil {
		return tui.Entry{}, err
	}

	po, err := profile.PickerOptions(f, o.now())
	if err != nil {
		return tui.Entry{}, fmt.Errorf("profile %s: %w", name, err)
	}
	if o.locale != "" {
		po.Locale = o.locale
	}
	po.Logger = logger.GetLogger()

	title := profile.Title
	if title == "" {
		title = name
	}
	return tui.Entry{Name: name, Title: title, Options: po, Pinned: pinned}, nil
}

func runPicker(cmd *cobra.Command, opts *rootOptions, names []string) error {
	if len(names) == 0 {
		names = []string{config.DefaultProfile}
	}
	if len(names) > 1 && opts.overrides.any(cmd) {
		return fmt.Errorf("picker flags can only override a single profile, got %d", len(names))
	}

	f, path, err := opts.loadConfig()
	if err != nil {
		return err
	}

	// The alternate screen owns stderr while the picker runs
	logCfg := logger.ConfigFromEnv()
	logCfg.TUIMode = true
	if err := logger.InitializeWithConfig(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer logger.Close()

	entries := make([]tui.Entry, 0, len(names))
	for _, name := range names {
		e, err := opts.entry(cmd, f, name)
		if err != nil {
			return err
		}
		entries = append(entries, e)
	}

	watcher := startWatcher(path)
	if watcher != nil {
		defer watcher.Stop()
	}

	model := tui.NewModel(entries, watcher, logger.GetLogger())
	p := tea.NewProgram(model, tea.WithAltScreen())
	timer := perf.StartTimer("picker.session", logger.GetLogger(), sessionLogThreshold)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}
	timer.Stop()
	model.LogStats()

	if !model.Saved() {
		return ErrCancelled
	}
	return printResults(cmd.OutOrStdout(), model.Results(), opts.jsonOut)
}

// startWatcher watches the config file for edits. Failures only disable
// live reload.
func startWatcher(path string) *config.Watcher {
	w, err := config.NewWatcher(path, logger.GetLogger())
	if err != nil {
		logger.Warn("config watcher unavailable", "error", err)
		return nil
	}
	if err := w.Start(); err != nil {
		logger.Warn("config watcher unavailable", "path", path, "error", err)
		w.Stop()
		return nil
	}
	return w
}
