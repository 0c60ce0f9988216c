package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/plus3/cityrun/internal/runner"
	"github.com/rs/zerolog"
)

const (
	holdNone  = "none"
	holdLeft  = "left"
	holdRight = "right"
	holdSweep = "sweep"

	// ticks per direction change in sweep mode; long enough to cross the lane
	sweepPeriod = 90
	statsEvery  = 60 * 60
)

type soakOptions struct {
	Seed     uint64
	MaxCoins int
	Hold     string
	Ticks    uint64
}

func (o soakOptions) validate() error {
	switch o.Hold {
	case holdNone, holdLeft, holdRight, holdSweep:
	default:
		return fmt.Errorf("unknown hold pattern %q", o.Hold)
	}
	if o.MaxCoins < 0 {
		return fmt.Errorf("max-coins %d must not be negative", o.MaxCoins)
	}
	return nil
}

// soak ticks a fresh session until ctx is done or the tick limit is reached,
// driving the keys according to the hold pattern.
func soak(ctx context.Context, opts soakOptions, log zerolog.Logger) *Report {
	session := runner.NewSession(runner.Options{
		Seed:     opts.Seed,
		MaxCoins: opts.MaxCoins,
		Logger:   &log,
	})

	report := &Report{
		Seed:     opts.Seed,
		MaxCoins: opts.MaxCoins,
		Hold:     opts.Hold,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	switch opts.Hold {
	case holdLeft:
		session.Press(runner.KeyLeft)
	case holdRight:
		session.Press(runner.KeyRight)
	}

	start := time.Now()
Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}
		if opts.Ticks > 0 && report.TotalTicks >= opts.Ticks {
			break Loop
		}

		if opts.Hold == holdSweep && report.TotalTicks%sweepPeriod == 0 {
			sweep(session, report.TotalTicks/sweepPeriod)
		}

		tickStart := time.Now()
		session.Tick()
		report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
		report.TotalTicks++

		if report.TotalTicks%statsEvery == 0 {
			session.LogStats()
		}
	}
	report.TotalTime = time.Since(start)
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.collect(session)
	return report
}

func sweep(session *runner.Session, leg uint64) {
	if leg%2 == 0 {
		session.Release(runner.KeyRight)
		session.Press(runner.KeyLeft)
		return
	}
	session.Release(runner.KeyLeft)
	session.Press(runner.KeyRight)
}
