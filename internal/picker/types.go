// Package picker implements the constraint-and-commit engine behind the
// date/time picker: locale-aware field ordering, range normalization, per-field
// option lists, date synthesis with clamping, and the draft/commit state machine.
//
// The package has no UI dependencies. Widgets drive an Engine through Select,
// SetOpen, Focus and Blur, and forward every returned Commit to whoever owns
// the bound value.
package picker

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Field identifies one of the five selectable parts of an instant
type Field int

const (
	FieldDay Field = iota
	FieldMonth
	FieldYear
	FieldHour
	FieldMinute
	FieldCount // Keep this last to get the count
)

// String returns the lowercase field name
func (f Field) String() string {
	switch f {
	case FieldDay:
		return "day"
	case FieldMonth:
		return "month"
	case FieldYear:
		return "year"
	case FieldHour:
		return "hour"
	case FieldMinute:
		return "minute"
	default:
		return "unknown"
	}
}

// IsTime reports whether the field only exists when the picker tracks time
func (f Field) IsTime() bool {
	return f == FieldHour || f == FieldMinute
}

// ParseField parses a field name such as "day" or "minute"
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "d":
		return FieldDay, nil
	case "month", "mon", "m":
		return FieldMonth, nil
	case "year", "y":
		return FieldYear, nil
	case "hour", "h":
		return FieldHour, nil
	case "minute", "min":
		return FieldMinute, nil
	}
	return FieldCount, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// CommitMode decides when a valid draft is handed to the value owner
type CommitMode string

const (
	// CommitAuto emits on every edit that produces a complete instant
	CommitAuto CommitMode = "auto"
	// CommitBlur buffers the result and emits once focus leaves the picker
	CommitBlur CommitMode = "blur"
)

// ParseCommitMode accepts "auto" or "blur"; empty means auto
func ParseCommitMode(s string) (CommitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return CommitAuto, nil
	case "blur":
		return CommitBlur, nil
	}
	return "", fmt.Errorf("invalid commit mode %q (expected auto or blur)", s)
}

// YearOrder controls the direction of the year option list
type YearOrder string

const (
	YearsAscending  YearOrder = "asc"
	YearsDescending YearOrder = "desc"
)

// ParseYearOrder accepts "asc" or "desc"; empty means ascending
func ParseYearOrder(s string) (YearOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return YearsAscending, nil
	case "desc":
		return YearsDescending, nil
	}
	return "", fmt.Errorf("invalid year order %q (expected asc or desc)", s)
}

// Parts is the in-progress selection. A nil field has not been picked yet.
// Month is 1-based. Hour and Minute stay nil when the picker has no time.
type Parts struct {
	Day    *int `json:"day,omitempty"`
	Month  *int `json:"month,omitempty"`
	Year   *int `json:"year,omitempty"`
	Hour   *int `json:"hour,omitempty"`
	Minute *int `json:"minute,omitempty"`
}

// Get returns the value of a field and whether it is set
func (p Parts) Get(f Field) (int, bool) {
	ptr := p.ptr(f)
	if ptr == nil {
		return 0, false
	}
	return *ptr, true
}

// With returns a copy of p with the field set to v
func (p Parts) With(f Field, v int) Parts {
	return p.set(f, &v)
}

// Without returns a copy of p with the field cleared
func (p Parts) Without(f Field) Parts {
	return p.set(f, nil)
}

// HasDate reports whether year, month and day are all set
func (p Parts) HasDate() bool {
	return p.Year != nil && p.Month != nil && p.Day != nil
}

// IsEmpty reports whether no field is set
func (p Parts) IsEmpty() bool {
	return p.Day == nil && p.Month == nil && p.Year == nil && p.Hour == nil && p.Minute == nil
}

// Equal compares field values, not pointers
func (p Parts) Equal(o Parts) bool {
	for f := FieldDay; f < FieldCount; f++ {
		a, aok := p.Get(f)
		b, bok := o.Get(f)
		if aok != bok || a != b {
			return false
		}
	}
	return true
}

// String renders the draft as YYYY-MM-DD HH:MM with "_" for unset fields
func (p Parts) String() string {
	format := func(f Field, width int) string {
		v, ok := p.Get(f)
		if !ok {
			return strings.Repeat("_", width)
		}
		return fmt.Sprintf("%0*d", width, v)
	}
	return format(FieldYear, 4) + "-" + format(FieldMonth, 2) + "-" + format(FieldDay, 2) +
		" " + format(FieldHour, 2) + ":" + format(FieldMinute, 2)
}

func (p Parts) ptr(f Field) *int {
	switch f {
	case FieldDay:
		return p.Day
	case FieldMonth:
		return p.Month
	case FieldYear:
		return p.Year
	case FieldHour:
		return p.Hour
	case FieldMinute:
		return p.Minute
	}
	return nil
}

func (p Parts) set(f Field, v *int) Parts {
	switch f {
	case FieldDay:
		p.Day = v
	case FieldMonth:
		p.Month = v
	case FieldYear:
		p.Year = v
	case FieldHour:
		p.Hour = v
	case FieldMinute:
		p.Minute = v
	}
	return p
}

// PartsOf splits an instant into draft parts in loc. Time fields are only
// filled when withTime is set.
func PartsOf(t time.Time, withTime bool, loc *time.Location) Parts {
	t = t.In(loc)
	y, m, d := t.Date()
	p := Parts{}.With(FieldYear, y).With(FieldMonth, int(m)).With(FieldDay, d)
	if withTime {
		p = p.With(FieldHour, t.Hour()).With(FieldMinute, t.Minute())
	}
	return p
}

// Option is one selectable entry in a field list. Options are never removed
// for being out of range; they are marked Disabled instead.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Disabled    bool   `json:"disabled"`
	Description string `json:"description,omitempty"`
}

// Commit is a single call to the value owner's onChange. A nil Value clears
// the bound value.
type Commit struct {
	Value *time.Time
}

// Options configures an Engine. Use DefaultOptions for the documented defaults;
// the zero value tracks dates only.
type Options struct {
	Value            *time.Time
	Min              *time.Time
	Max              *time.Time
	WithTime         bool
	MinuteStep       int
	AllowPartialTime bool
	CommitMode       CommitMode
	YearOrder        YearOrder
	Disabled         bool
	Error            string
	Locale           string
	Placeholders     map[Field]string
	Location         *time.Location
	Now              func() time.Time
	Logger           *slog.Logger
}

// DefaultMinuteStep is used when Options.MinuteStep is not positive
const DefaultMinuteStep = 5

// DefaultOptions returns options with time tracking, a five minute step and
// auto commit
func DefaultOptions() Options {
	return Options{
		WithTime:   true,
		MinuteStep: DefaultMinuteStep,
		CommitMode: CommitAuto,
		YearOrder:  YearsAscending,
	}
}

func (o Options) withDefaults() Options {
	if o.MinuteStep <= 0 {
		o.MinuteStep = DefaultMinuteStep
	}
	if o.MinuteStep > 60 {
		o.MinuteStep = 60
	}
	if o.CommitMode == "" {
		o.CommitMode = CommitAuto
	}
	if o.YearOrder == "" {
		o.YearOrder = YearsAscending
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func pad2(n int) string {
	return fmt.Sprintf("%02d", n)
}

// sameInstant treats two nil instants as equal
func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func formatInstant(t *time.Time) string {
	if t == nil {
		return "null"
	}
	return t.Format("2006-01-02T15:04")
}
