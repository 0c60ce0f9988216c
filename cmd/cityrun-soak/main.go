package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/plus3/cityrun/internal/logging"
	"github.com/rs/zerolog"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "How long to run the simulation.")
	ticks := flag.Uint64("ticks", 0, "Stop after this many ticks. Zero runs for the whole duration.")
	seed := flag.Uint64("seed", 1, "Random seed.")
	maxCoins := flag.Int("max-coins", 0, "Cap on live coins. Zero keeps the list unbounded.")
	hold := flag.String("hold", holdNone, "Input pattern: none, left, right or sweep.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Include GC pause totals in the report.")
	verbose := flag.Bool("v", false, "Log at debug level.")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := logging.New(os.Stderr, level)

	opts := soakOptions{
		Seed:     *seed,
		MaxCoins: *maxCoins,
		Hold:     *hold,
		Ticks:    *ticks,
	}
	if err := opts.validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	log.Info().Dur("duration", *duration).Uint64("seed", *seed).Str("hold", *hold).Msg("soak started")
	report := soak(ctx, opts, log)
	report.Duration = *duration
	report.GCPauseMetrics = *gcPauseMetrics
	log.Info().Uint64("ticks", report.TotalTicks).Int("score", report.Score).Msg("soak finished")

	fmt.Println("\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("write report")
	}
}
