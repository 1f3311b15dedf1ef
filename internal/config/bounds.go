package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidBound is returned for bound expressions that cannot be parsed
var ErrInvalidBound = errors.New("invalid bound")

var absoluteLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseBound parses a min/max expression relative to now.
// Supports:
// - "now", "t" or "today" - now
// - "tm" or "tomorrow" - 24 hours from now
// - "+3d", "-2w", "+6m", "-16y" - offsets in days, weeks, months or years
// - "YYYY-MM-DD", "YYYY-MM-DDTHH:MM[:SS]", "YYYY-MM-DD HH:MM[:SS]" - absolute, in now's location
func ParseBound(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))

	if input == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrInvalidBound)
	}

	switch input {
	case "now", "t", "today":
		return now, nil
	case "tm", "tomorrow":
		return now.AddDate(0, 0, 1), nil
	}

	if input[0] == '+' || input[0] == '-' {
		return parseOffset(input, now)
	}

	return parseAbsolute(input, now.Location())
}

func parseOffset(input string, now time.Time) (time.Time, error) {
	if len(input) < 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBound, input)
	}

	unit := input[len(input)-1]
	n, err := strconv.Atoi(input[1 : len(input)-1])
	if err != nil || n < 0 {
		return time.Time{}, fmt.Errorf("%w: invalid offset %q", ErrInvalidBound, input)
	}
	if input[0] == '-' {
		n = -n
	}

	switch unit {
	case 'd':
		return now.AddDate(0, 0, n), nil
	case 'w':
		return now.AddDate(0, 0, n*7), nil
	case 'm':
		return now.AddDate(0, n, 0), nil
	case 'y':
		return now.AddDate(n, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown unit %q in %q", ErrInvalidBound, unit, input)
}

func parseAbsolute(input string, loc *time.Location) (time.Time, error) {
	for _, layout := range absoluteLayouts {
		if len(input) != len(layout) {
			continue
		}
		parsed, err := time.ParseInLocation(strings.Replace(layout, "T", "t", 1), input, loc)
		if err != nil {
			continue
		}

		// Verify the date components match to catch invalid dates that normalize
		// (e.g., 2025-02-30 would normalize to 2025-03-02)
		y, m, d := parseDatePrefix(input)
		if parsed.Year() != y || int(parsed.Month()) != m || parsed.Day() != d {
			return time.Time{}, fmt.Errorf("%w: %s (normalized to %s)", ErrInvalidBound, input, parsed.Format("2006-01-02"))
		}
		return parsed, nil
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized format %q", ErrInvalidBound, input)
}

func parseDatePrefix(input string) (y, m, d int) {
	y, _ = strconv.Atoi(input[0:4])
	m, _ = strconv.Atoi(input[5:7])
	d, _ = strconv.Atoi(input[8:10])
	return y, m, d
}
