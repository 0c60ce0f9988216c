package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoakTickLimit(t *testing.T) {
	opts := soakOptions{Seed: 3, Hold: holdSweep, Ticks: 3000}

	first := soak(context.Background(), opts, zerolog.Nop())
	assert.Equal(t, uint64(3000), first.TotalTicks)
	assert.Len(t, first.TickTime.Samples, 3000)
	assert.Equal(t, uint64(first.Score), first.Collected)
	assert.Equal(t, first.Spawned, first.Collected+uint64(first.LiveCoins))
	assert.Equal(t, 45+first.LiveCoins, first.Entities)
	assert.Len(t, first.Systems, 6)
	assert.LessOrEqual(t, first.TickTime.Min, first.TickTime.Avg)
	assert.LessOrEqual(t, first.TickTime.Avg, first.TickTime.Max)

	again := soak(context.Background(), opts, zerolog.Nop())
	assert.Equal(t, first.Score, again.Score, "same seed, same run")
	assert.Equal(t, first.Spawned, again.Spawned)
}

func TestSoakStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	report := soak(ctx, soakOptions{Seed: 1, Hold: holdNone}, zerolog.Nop())
	assert.Greater(t, report.TotalTicks, uint64(0))
	assert.Positive(t, report.TotalTime)
}

func TestSoakMaxCoins(t *testing.T) {
	report := soak(context.Background(), soakOptions{Seed: 5, Hold: holdLeft, MaxCoins: 3, Ticks: 5000}, zerolog.Nop())
	assert.LessOrEqual(t, report.LiveCoins, 3)
	assert.LessOrEqual(t, report.PeakCoins, 3)
	assert.Greater(t, report.Skipped, uint64(0))
}

func TestSoakOptionsValidate(t *testing.T) {
	assert.NoError(t, soakOptions{Hold: holdRight}.validate())
	assert.ErrorContains(t, soakOptions{Hold: "up"}.validate(), "unknown hold pattern")
	assert.ErrorContains(t, soakOptions{Hold: holdNone, MaxCoins: -2}.validate(), "must not be negative")
}

func TestReportGenerate(t *testing.T) {
	report := soak(context.Background(), soakOptions{Seed: 2, Hold: holdNone, Ticks: 120}, zerolog.Nop())
	report.Duration = time.Second
	report.GCPauseMetrics = true

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "# cityrun Soak Report")
	assert.Contains(t, out, "- **Max Coins:** unbounded")
	assert.Contains(t, out, "- **Ticks:** 120 in")
	assert.Contains(t, out, "| CoinSystem | 120 |")
	assert.Contains(t, out, "## GC Pause Durations")
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3, 1, 2}}
	s.Finalize()
	assert.Equal(t, time.Duration(1), s.Min)
	assert.Equal(t, time.Duration(3), s.Max)
	assert.Equal(t, time.Duration(2), s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}
