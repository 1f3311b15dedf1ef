package picker

import "time"

// SynthesisConfig carries the settings Synthesize needs from the picker
type SynthesisConfig struct {
	WithTime         bool
	AllowPartialTime bool
	Range            Range
	Location         *time.Location
}

// Synthesis is the outcome of turning a draft into an instant. Parts is the
// draft to show; it differs from the input when a correction was written back.
// Date is nil while the draft is incomplete or invalid.
type Synthesis struct {
	Parts   Parts
	Date    *time.Time
	Clamped bool
}

// Synthesize builds a calendar-safe instant from the draft.
//
// A day past the end of the month is clamped to the last day instead of rolling
// into the next month. Without time, a complete date resolves at 00:00. With
// time, a missing hour or minute yields no instant unless partial time is
// allowed, in which case they default to 0. The candidate must read back the
// same fields it was built from, which rejects DST gaps. Finally the instant is
// clamped into the range and the clamped fields are written back.
func Synthesize(p Parts, cfg SynthesisConfig) Synthesis {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	if !cfg.WithTime {
		p.Hour, p.Minute = nil, nil
	}

	if !p.HasDate() {
		return Synthesis{Parts: p}
	}

	y, m, d := *p.Year, *p.Month, *p.Day
	if m < 1 || m > 12 {
		return Synthesis{Parts: p}
	}
	if dim := daysInMonth(y, time.Month(m)); d > dim {
		d = dim
		p = p.With(FieldDay, d)
	} else if d < 1 {
		d = 1
		p = p.With(FieldDay, d)
	}

	h, mi := 0, 0
	if cfg.WithTime {
		hv, hasHour := p.Get(FieldHour)
		mv, hasMinute := p.Get(FieldMinute)
		if !hasHour || !hasMinute {
			if !cfg.AllowPartialTime {
				return Synthesis{Parts: p}
			}
			if !hasHour {
				p = p.With(FieldHour, 0)
			}
			if !hasMinute {
				p = p.With(FieldMinute, 0)
			}
		}
		h, mi = hv, mv
	}

	candidate := time.Date(y, time.Month(m), d, h, mi, 0, 0, loc)
	if !cfg.WithTime {
		// Midnight may fall in a DST gap; the first instant of the day stands in for it.
		if !readsBackDate(candidate, y, m, d) {
			return Synthesis{Parts: p}
		}
	} else if !readsBack(candidate, y, m, d, h, mi) {
		return Synthesis{Parts: p}
	}

	clamped, changed := cfg.Range.Clamp(candidate)
	if !changed {
		return Synthesis{Parts: p, Date: &candidate}
	}

	if !cfg.WithTime {
		// Max is the end of its day; commit the start of that day instead.
		clamped = startOfDay(clamped.In(loc))
	}
	return Synthesis{
		Parts:   PartsOf(clamped, cfg.WithTime, loc),
		Date:    &clamped,
		Clamped: true,
	}
}

func readsBack(t time.Time, y, m, d, h, mi int) bool {
	return readsBackDate(t, y, m, d) && t.Hour() == h && t.Minute() == mi
}

func readsBackDate(t time.Time, y, m, d int) bool {
	return t.Year() == y && int(t.Month()) == m && t.Day() == d
}
