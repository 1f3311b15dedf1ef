package picker

import (
	"sort"
	"time"
)

// Default year span when a bound is missing, relative to the current year
const (
	yearsBack    = 100
	yearsForward = 10
)

// leapYear is used to size the day list when the year is not picked yet
const leapYear = 2000

// DayOptions lists 1..daysInMonth for the picked year and month. Without a
// month every day up to 31 is offered; with a month but no year the leap-year
// count is used so Feb 29 stays reachable.
func DayOptions(p Parts, r Range, loc *time.Location) []Option {
	loc = orLocal(loc)
	y, hasYear := p.Get(FieldYear)
	m, hasMonth := p.Get(FieldMonth)

	count := 31
	switch {
	case hasMonth && hasYear:
		count = daysInMonth(y, time.Month(m))
	case hasMonth:
		count = daysInMonth(leapYear, time.Month(m))
	}

	opts := make([]Option, 0, count)
	for d := 1; d <= count; d++ {
		opt := Option{Value: itoa(d), Label: pad2(d)}
		if hasYear && hasMonth {
			start := time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
			opt.Disabled = r.excludes(start, start.AddDate(0, 0, 1))
			opt.Description = start.Weekday().String()[:3]
		}
		opts = append(opts, opt)
	}
	return opts
}

// MonthOptions lists the twelve months with locale labels
func MonthOptions(p Parts, r Range, l Locale, loc *time.Location) []Option {
	loc = orLocal(loc)
	y, hasYear := p.Get(FieldYear)

	opts := make([]Option, 0, 12)
	for m := time.January; m <= time.December; m++ {
		opt := Option{Value: itoa(int(m)), Label: l.MonthLabel(m)}
		if hasYear {
			start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
			opt.Disabled = r.excludes(start, start.AddDate(0, 1, 0))
		}
		opts = append(opts, opt)
	}
	return opts
}

// YearOptions lists every year from the range's first to its last year.
// Missing bounds default to a window around now. The list widens to include
// the externally bound value and the drafted year even when they are out of
// range, so the current selection is always displayable.
func YearOptions(p Parts, r Range, current *time.Time, order YearOrder, now time.Time, loc *time.Location) []Option {
	loc = orLocal(loc)
	lo, hi := yearSpan(r, now.In(loc).Year())
	if current != nil {
		cy := current.In(loc).Year()
		lo, hi = min(lo, cy), max(hi, cy)
	}
	if y, ok := p.Get(FieldYear); ok {
		lo, hi = min(lo, y), max(hi, y)
	}

	opts := make([]Option, 0, hi-lo+1)
	for y := lo; y <= hi; y++ {
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		opts = append(opts, Option{
			Value:    itoa(y),
			Label:    itoa(y),
			Disabled: r.excludes(start, start.AddDate(1, 0, 0)),
		})
	}

	if order == YearsDescending {
		for i, j := 0, len(opts)-1; i < j; i, j = i+1, j-1 {
			opts[i], opts[j] = opts[j], opts[i]
		}
	}
	return opts
}

func yearSpan(r Range, nowYear int) (lo, hi int) {
	lo, hi = nowYear-yearsBack, nowYear+yearsForward
	if r.Min != nil {
		lo = r.Min.Year()
		if r.Max == nil {
			hi = max(hi, lo)
		}
	}
	if r.Max != nil {
		hi = r.Max.Year()
		if r.Min == nil {
			lo = min(lo, hi)
		}
	}
	return lo, hi
}

// HourOptions lists 0..23. Hours are only disabled once the date is known.
func HourOptions(p Parts, r Range, loc *time.Location) []Option {
	loc = orLocal(loc)
	opts := make([]Option, 0, 24)
	for h := 0; h < 24; h++ {
		opt := Option{Value: itoa(h), Label: pad2(h)}
		if p.HasDate() {
			start := time.Date(*p.Year, time.Month(*p.Month), *p.Day, h, 0, 0, 0, loc)
			end := time.Date(*p.Year, time.Month(*p.Month), *p.Day, h+1, 0, 0, 0, loc)
			opt.Disabled = r.excludes(start, end)
		}
		opts = append(opts, opt)
	}
	return opts
}

// MinuteOptions lists the multiples of step. The exact minute of a range
// bound is added when the draft sits in that bound's hour, so boundary
// instants stay selectable even when they are off-step. The drafted minute is
// added too so a hydrated off-step value stays visible.
func MinuteOptions(p Parts, r Range, step int, loc *time.Location) []Option {
	loc = orLocal(loc)
	if step <= 0 {
		step = DefaultMinuteStep
	}

	set := make(map[int]bool)
	for m := 0; m < 60; m += step {
		set[m] = true
	}

	h, hasHour := p.Get(FieldHour)
	if p.HasDate() && hasHour {
		for _, bound := range []*time.Time{r.Min, r.Max} {
			if bound != nil && sameHour(*bound, *p.Year, *p.Month, *p.Day, h) {
				set[bound.Minute()] = true
			}
		}
	}
	if m, ok := p.Get(FieldMinute); ok && m >= 0 && m < 60 {
		set[m] = true
	}

	minutes := make([]int, 0, len(set))
	for m := range set {
		minutes = append(minutes, m)
	}
	sort.Ints(minutes)

	opts := make([]Option, 0, len(minutes))
	for _, m := range minutes {
		opt := Option{Value: itoa(m), Label: pad2(m)}
		if p.HasDate() && hasHour {
			start := time.Date(*p.Year, time.Month(*p.Month), *p.Day, h, m, 0, 0, loc)
			opt.Disabled = r.excludes(start, start.Add(time.Minute))
		}
		opts = append(opts, opt)
	}
	return opts
}

func sameHour(t time.Time, y, m, d, h int) bool {
	return t.Year() == y && int(t.Month()) == m && t.Day() == d && t.Hour() == h
}

// OptionsFor builds the option list for f outside of an Engine, from a draft
// and the same options an Engine would be configured with
func OptionsFor(f Field, p Parts, opts Options) []Option {
	opts = opts.withDefaults()
	rng := NormalizeRange(opts.Min, opts.Max, opts.WithTime, opts.Location)
	return buildOptions(f, p, rng, ResolveLocale(opts.Locale), opts.Value, opts)
}

func buildOptions(f Field, p Parts, r Range, l Locale, current *time.Time, opts Options) []Option {
	loc := opts.Location
	switch f {
	case FieldDay:
		return DayOptions(p, r, loc)
	case FieldMonth:
		return MonthOptions(p, r, l, loc)
	case FieldYear:
		return YearOptions(p, r, current, opts.YearOrder, opts.Now(), loc)
	case FieldHour:
		if !opts.WithTime {
			return nil
		}
		return HourOptions(p, r, loc)
	case FieldMinute:
		if !opts.WithTime {
			return nil
		}
		return MinuteOptions(p, r, opts.MinuteStep, loc)
	}
	return nil
}

// orLocal treats a nil location as time.Local
func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
