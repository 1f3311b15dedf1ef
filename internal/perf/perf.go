// Package perf records how long picker work takes so slow option rebuilds
// show up in the debug log.
package perf

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const unsetMin = 1<<63 - 1

// Timer measures a single operation
type Timer struct {
	name      string
	logger    *slog.Logger
	start     time.Time
	threshold time.Duration
}

// StartTimer starts timing name. A nil logger makes Stop silent.
func StartTimer(name string, logger *slog.Logger, threshold time.Duration) *Timer {
	return &Timer{
		name:      name,
		logger:    logger,
		start:     time.Now(),
		threshold: threshold,
	}
}

// Stop logs the elapsed time and returns it
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if t.logger != nil {
		t.logger.Debug(t.name, "duration_us", elapsed.Microseconds())
		if elapsed > t.threshold {
			t.logger.Warn(t.name+"_slow", "duration_us", elapsed.Microseconds(), "threshold_us", t.threshold.Microseconds())
		}
	}
	return elapsed
}

// Counter is a named atomic counter
type Counter struct {
	name  string
	value int64
}

func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

func (c *Counter) Name() string { return c.name }

func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

func (c *Counter) Value() int64 {
	return atomic.LoadInt64(&c.value)
}

func (c *Counter) Reset() {
	atomic.StoreInt64(&c.value, 0)
}

// Stats is a snapshot of a Recorder
type Stats struct {
	Name          string
	Count         int64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	SlowOps       int64
}

// AvgDuration is the mean duration, zero when nothing was recorded
func (s Stats) AvgDuration() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Count)
}

// Recorder aggregates durations of a repeated operation. Safe for
// concurrent use.
type Recorder struct {
	name      string
	threshold time.Duration
	count     int64
	totalDur  int64
	minDur    int64
	maxDur    int64
	slowOps   int64
}

func NewRecorder(name string, threshold time.Duration) *Recorder {
	return &Recorder{
		name:      name,
		threshold: threshold,
		minDur:    unsetMin,
	}
}

// Time runs fn and records how long it took
func (r *Recorder) Time(fn func()) {
	start := time.Now()
	fn()
	r.Record(time.Since(start))
}

func (r *Recorder) Record(elapsed time.Duration) {
	ns := elapsed.Nanoseconds()
	atomic.AddInt64(&r.count, 1)
	atomic.AddInt64(&r.totalDur, ns)

	for {
		cur := atomic.LoadInt64(&r.minDur)
		if ns >= cur {
			break
		}
		if atomic.CompareAndSwapInt64(&r.minDur, cur, ns) {
			break
		}
	}

	for {
		cur := atomic.LoadInt64(&r.maxDur)
		if ns <= cur {
			break
		}
		if atomic.CompareAndSwapInt64(&r.maxDur, cur, ns) {
			break
		}
	}

	if elapsed >= r.threshold {
		atomic.AddInt64(&r.slowOps, 1)
	}
}

func (r *Recorder) Stats() Stats {
	minDur := atomic.LoadInt64(&r.minDur)
	if minDur == unsetMin {
		minDur = 0
	}

	return Stats{
		Name:          r.name,
		Count:         atomic.LoadInt64(&r.count),
		TotalDuration: time.Duration(atomic.LoadInt64(&r.totalDur)),
		MinDuration:   time.Duration(minDur),
		MaxDuration:   time.Duration(atomic.LoadInt64(&r.maxDur)),
		SlowOps:       atomic.LoadInt64(&r.slowOps),
	}
}

// LogStats writes the aggregate at level. Nothing is logged before the
// first Record.
func (r *Recorder) LogStats(logger *slog.Logger, level slog.Level) {
	if logger == nil {
		return
	}
	stats := r.Stats()
	if stats.Count == 0 {
		return
	}
	logger.Log(context.Background(), level, r.name+"_stats",
		"count", stats.Count,
		"avg_us", stats.AvgDuration().Microseconds(),
		"min_us", stats.MinDuration.Microseconds(),
		"max_us", stats.MaxDuration.Microseconds(),
		"slow_ops", stats.SlowOps,
	)
}
