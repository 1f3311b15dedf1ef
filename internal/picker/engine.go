package picker

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// pendingCommit is the buffered result in blur mode. set=false means nothing
// is buffered; a set entry with a nil value buffers a clear.
type pendingCommit struct {
	set   bool
	value *time.Time
}

// Engine is the draft/commit state machine for one picker.
//
// It is Clean while the draft mirrors the bound value and Dirty while the user
// has edits that have not been committed. Engine is not safe for concurrent
// use; it belongs to the UI loop that owns it.
type Engine struct {
	opts   Options
	locale Locale
	rng    Range
	logger *slog.Logger

	draft         Parts
	value         *time.Time
	dirty         bool
	lastEmitted   *time.Time
	lastCommitted *time.Time
	pending       pendingCommit

	focused bool
	open    map[Field]bool
}

// New creates an engine hydrated from opts.Value
func New(opts Options) *Engine {
	opts = opts.withDefaults()
	e := &Engine{
		opts:   opts,
		locale: ResolveLocale(opts.Locale),
		logger: opts.Logger.With("component", "picker"),
		open:   make(map[Field]bool),
	}
	e.rng = NormalizeRange(opts.Min, opts.Max, opts.WithTime, opts.Location)
	e.hydrate(opts.Value)
	return e
}

// Select applies a field edit coming from a selectable field. An empty value
// clears the field. Values that are not offered, or are offered disabled, are
// ignored because the field never emits them.
func (e *Engine) Select(f Field, value string) *Commit {
	if e.opts.Disabled {
		return nil
	}
	if f.IsTime() && !e.opts.WithTime {
		e.logger.Debug("time field ignored in date-only picker", "field", f)
		return nil
	}

	value = strings.TrimSpace(value)
	next := e.draft.Without(f)
	if value != "" {
		if !e.selectable(f, value) {
			e.logger.Debug("rejected selection", "field", f, "value", value)
			return nil
		}
		n, _ := strconv.Atoi(value)
		next = e.draft.With(f, n)
	}

	return e.edit(next)
}

// Clear drops the whole draft and commits a null value
func (e *Engine) Clear() *Commit {
	if e.opts.Disabled {
		return nil
	}
	e.draft = Parts{}
	e.dirty = true
	return e.settle(nil)
}

func (e *Engine) edit(next Parts) *Commit {
	e.dirty = true
	res := e.synthesize(next)
	e.draft = res.Parts
	if res.Clamped {
		e.logger.Debug("clamped draft into range", "draft", e.draft.String())
	}

	if res.Date == nil && e.opts.CommitMode == CommitAuto {
		// Incomplete or invalid: keep the draft and wait for more input.
		return nil
	}
	return e.settle(res.Date)
}

// settle commits now in auto mode or buffers in blur mode
func (e *Engine) settle(v *time.Time) *Commit {
	if e.opts.CommitMode == CommitBlur {
		e.pending = pendingCommit{set: true, value: v}
		e.logger.Debug("buffered commit", "value", formatInstant(v))
		return nil
	}

	if v != nil && sameInstant(v, e.lastCommitted) {
		e.dirty = false
		return nil
	}
	return e.emit(v)
}

func (e *Engine) emit(v *time.Time) *Commit {
	e.lastEmitted = v
	if v != nil {
		e.lastCommitted = v
		e.dirty = false
	}
	e.logger.Debug("commit", "value", formatInstant(v), "mode", e.opts.CommitMode)
	return &Commit{Value: v}
}

// SetValue receives the bound value from its owner. Re-sending the value the
// engine already knows is a stale echo and never touches an in-progress draft.
// A changed value re-hydrates the draft, whether it echoes the last commit or
// is a programmatic reset from the owner.
func (e *Engine) SetValue(v *time.Time) {
	if sameInstant(v, e.value) {
		if !e.dirty {
			e.hydrate(v)
		}
		return
	}

	if e.dirty && !sameInstant(v, e.lastEmitted) {
		e.logger.Debug("external reset while editing", "value", formatInstant(v), "draft", e.draft.String())
	}
	e.hydrate(v)
}

// Reset forces the draft to v and drops any buffered commit
func (e *Engine) Reset(v *time.Time) {
	e.hydrate(v)
}

func (e *Engine) hydrate(v *time.Time) {
	e.value = v
	e.dirty = false
	e.pending = pendingCommit{}
	e.lastCommitted = v
	if v == nil {
		e.draft = Parts{}
		return
	}
	e.draft = PartsOf(*v, e.opts.WithTime, e.opts.Location)
}

// Focus marks the picker as holding focus
func (e *Engine) Focus() {
	e.focused = true
}

// Blur marks focus as having left the whole picker. In blur mode the
// buffered value is flushed unless a field still reports itself open, in
// which case the flush waits for that field to close.
func (e *Engine) Blur() *Commit {
	e.focused = false
	return e.flush()
}

// SetOpen records a field's dropdown state. Closing the last open field
// after focus has already left the picker completes a deferred flush.
func (e *Engine) SetOpen(f Field, open bool) *Commit {
	if open {
		e.open[f] = true
		return nil
	}
	delete(e.open, f)
	if e.focused {
		return nil
	}
	return e.flush()
}

// AnyOpen reports whether any field dropdown is open
func (e *Engine) AnyOpen() bool {
	return len(e.open) > 0
}

func (e *Engine) flush() *Commit {
	if e.opts.CommitMode != CommitBlur || !e.pending.set {
		return nil
	}
	if e.AnyOpen() {
		e.logger.Debug("flush deferred, field open")
		return nil
	}
	v := e.pending.value
	e.pending = pendingCommit{}
	return e.emit(v)
}

// SetBounds replaces the caller's min and max. The draft is left alone; the
// new range applies from the next edit on.
func (e *Engine) SetBounds(min, max *time.Time) {
	e.opts.Min, e.opts.Max = min, max
	e.rng = NormalizeRange(min, max, e.opts.WithTime, e.opts.Location)
}

// SetMinuteStep changes the minute granularity
func (e *Engine) SetMinuteStep(step int) {
	e.opts.MinuteStep = step
	e.opts = e.opts.withDefaults()
}

// SetDisabled turns user edits off or on
func (e *Engine) SetDisabled(disabled bool) {
	e.opts.Disabled = disabled
}

// SetError sets the externally computed validation message
func (e *Engine) SetError(msg string) {
	e.opts.Error = msg
}

// Options returns the current option list for a field
func (e *Engine) Options(f Field) []Option {
	return buildOptions(f, e.draft, e.rng, e.locale, e.value, e.opts)
}

func (e *Engine) selectable(f Field, value string) bool {
	for _, opt := range e.Options(f) {
		if opt.Value == value {
			return !opt.Disabled
		}
	}
	return false
}

func (e *Engine) synthesize(p Parts) Synthesis {
	return Synthesize(p, SynthesisConfig{
		WithTime:         e.opts.WithTime,
		AllowPartialTime: e.opts.AllowPartialTime,
		Range:            e.rng,
		Location:         e.opts.Location,
	})
}

// Preview is the instant the current draft would commit, if any
func (e *Engine) Preview() *time.Time {
	return e.synthesize(e.draft).Date
}

// Parts returns the current draft
func (e *Engine) Parts() Parts { return e.draft }

// Fields returns the visible fields in locale order
func (e *Engine) Fields() []Field { return e.locale.Fields(e.opts.WithTime) }

// Locale returns the resolved locale
func (e *Engine) Locale() Locale { return e.locale }

// Range returns the effective range
func (e *Engine) Range() Range { return e.rng }

// Dirty reports whether the draft holds uncommitted edits
func (e *Engine) Dirty() bool { return e.dirty }

// Pending returns the buffered blur-mode value and whether one is buffered
func (e *Engine) Pending() (*time.Time, bool) { return e.pending.value, e.pending.set }

// LastEmitted returns the value of the most recent commit
func (e *Engine) LastEmitted() *time.Time { return e.lastEmitted }

// LastCommitted returns the last value known to be bound
func (e *Engine) LastCommitted() *time.Time { return e.lastCommitted }

// Value returns the bound value as last received from the owner
func (e *Engine) Value() *time.Time { return e.value }

// WithTime reports whether hour and minute are tracked
func (e *Engine) WithTime() bool { return e.opts.WithTime }

// CommitMode returns the configured commit strategy
func (e *Engine) CommitMode() CommitMode { return e.opts.CommitMode }

// Disabled reports whether edits are turned off
func (e *Engine) Disabled() bool { return e.opts.Disabled }

// Error returns the externally supplied validation message
func (e *Engine) Error() string { return e.opts.Error }

// Placeholder returns the configured placeholder for a field, or its name
func (e *Engine) Placeholder(f Field) string {
	if p, ok := e.opts.Placeholders[f]; ok && p != "" {
		return p
	}
	return f.String()
}
