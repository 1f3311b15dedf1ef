package perf

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecorderStats(t *testing.T) {
	r := NewRecorder("options", 10*time.Millisecond)

	assert.Equal(t, Stats{Name: "options"}, r.Stats())

	r.Record(2 * time.Millisecond)
	r.Record(20 * time.Millisecond)
	r.Record(8 * time.Millisecond)

	stats := r.Stats()
	assert.Equal(t, int64(3), stats.Count)
	assert.Equal(t, 2*time.Millisecond, stats.MinDuration)
	assert.Equal(t, 20*time.Millisecond, stats.MaxDuration)
	assert.Equal(t, 30*time.Millisecond, stats.TotalDuration)
	assert.Equal(t, 10*time.Millisecond, stats.AvgDuration())
	assert.Equal(t, int64(1), stats.SlowOps)
}

func TestRecorderConcurrent(t *testing.T) {
	r := NewRecorder("options", time.Hour)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			r.Record(time.Duration(n) * time.Microsecond)
		}(i)
	}
	wg.Wait()

	stats := r.Stats()
	assert.Equal(t, int64(50), stats.Count)
	assert.Equal(t, time.Microsecond, stats.MinDuration)
	assert.Equal(t, 50*time.Microsecond, stats.MaxDuration)
	assert.Zero(t, stats.SlowOps)
}

func TestRecorderTime(t *testing.T) {
	r := NewRecorder("rebuild", time.Hour)
	called := false
	r.Time(func() { called = true })

	assert.True(t, called)
	assert.Equal(t, int64(1), r.Stats().Count)
}

func TestRecorderLogStats(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := NewRecorder("rebuild", time.Hour)
	r.LogStats(logger, slog.LevelInfo)
	assert.Empty(t, buf.String(), "no stats before first record")

	r.Record(time.Millisecond)
	r.LogStats(logger, slog.LevelInfo)
	assert.Contains(t, buf.String(), "rebuild_stats")
	assert.Contains(t, buf.String(), "count=1")

	r.LogStats(nil, slog.LevelInfo)
}

func TestTimerStop(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	elapsed := StartTimer("select", logger, -1).Stop()
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))
	out := buf.String()
	assert.Contains(t, out, "msg=select ")
	assert.True(t, strings.Contains(out, "select_slow"), "negative threshold always warns")

	assert.GreaterOrEqual(t, StartTimer("quiet", nil, 0).Stop(), time.Duration(0))
}

func TestCounter(t *testing.T) {
	c := NewCounter("commits")
	c.Inc()
	c.Inc()
	assert.Equal(t, "commits", c.Name())
	assert.Equal(t, int64(2), c.Value())

	c.Reset()
	assert.Zero(t, c.Value())
}
