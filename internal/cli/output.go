package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/MikeBiancalana/datepick/internal/picker"
	"github.com/MikeBiancalana/datepick/internal/tui"
)

func writeJSON(w io.Writer, v any) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func formatInstant(v *time.Time) string {
	if v == nil {
		return "null"
	}
	return v.Format(time.RFC3339)
}

// printResults writes the final bound values. A single result is printed
// bare so the output can be captured by a shell script.
func printResults(w io.Writer, results []tui.Result, asJSON bool) error {
	if asJSON {
		return writeJSON(w, results)
	}

	if len(results) == 1 {
		fmt.Fprintln(w, formatInstant(results[0].Value))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\n", r.Name, formatInstant(r.Value))
	}
	return tw.Flush()
}

func printOptions(w io.Writer, options []picker.Option, asJSON bool) error {
	if asJSON {
		if options == nil {
			options = []picker.Option{}
		}
		return writeJSON(w, options)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "VALUE\tLABEL\tSTATE\tNOTE")
	for _, opt := range options {
		state := "enabled"
		if opt.Disabled {
			state = "disabled"
		}
		note := opt.Description
		if note == "" {
			note = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", opt.Value, opt.Label, state, note)
	}
	return tw.Flush()
}
