package picker

import "time"

// Range is the effective window a committed instant must fall into.
// A nil bound is open. Min <= Max whenever both are set.
type Range struct {
	Min *time.Time
	Max *time.Time
}

// NormalizeRange rounds the caller's bounds to the picker's granularity and
// puts them in order.
//
// With time, min is rounded up to the next whole minute and max is truncated
// to its minute, so a bound with seconds never produces an instant no minute
// option can reach. Without time, min widens to the start of its day and max
// to the last nanosecond of its day. An inverted pair is swapped.
func NormalizeRange(min, max *time.Time, withTime bool, loc *time.Location) Range {
	if loc == nil {
		loc = time.Local
	}

	var r Range
	if min != nil {
		t := roundMin(min.In(loc), withTime)
		r.Min = &t
	}
	if max != nil {
		t := roundMax(max.In(loc), withTime)
		r.Max = &t
	}

	if r.Min != nil && r.Max != nil && r.Min.After(*r.Max) {
		r.Min, r.Max = r.Max, r.Min
	}
	return r
}

func roundMin(t time.Time, withTime bool) time.Time {
	if !withTime {
		return startOfDay(t)
	}
	floor := minuteFloor(t)
	if floor.Equal(t) {
		return floor
	}
	return floor.Add(time.Minute)
}

func roundMax(t time.Time, withTime bool) time.Time {
	if !withTime {
		return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return minuteFloor(t)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func minuteFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

// Contains reports whether t lies inside the range
func (r Range) Contains(t time.Time) bool {
	if r.Min != nil && t.Before(*r.Min) {
		return false
	}
	if r.Max != nil && t.After(*r.Max) {
		return false
	}
	return true
}

// Clamp moves t into the range and reports whether it changed
func (r Range) Clamp(t time.Time) (time.Time, bool) {
	if r.Min != nil && t.Before(*r.Min) {
		return *r.Min, true
	}
	if r.Max != nil && t.After(*r.Max) {
		return *r.Max, true
	}
	return t, false
}

// excludes reports whether the bucket [start, end) lies wholly outside the
// range. Any overlap keeps the bucket selectable.
func (r Range) excludes(start, end time.Time) bool {
	if r.Min != nil && !end.After(*r.Min) {
		return true
	}
	if r.Max != nil && start.After(*r.Max) {
		return true
	}
	return false
}

func daysInMonth(y int, m time.Month) int {
	// Day 0 of next month is last day of this month.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
