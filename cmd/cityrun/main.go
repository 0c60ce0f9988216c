package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/cityrun/ecs"
	"github.com/plus3/cityrun/internal/config"
	"github.com/plus3/cityrun/internal/debugui"
	"github.com/plus3/cityrun/internal/logging"
	"github.com/plus3/cityrun/internal/render"
	"github.com/plus3/cityrun/internal/runner"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	debug := flag.Bool("debug", false, "Show the ImGui debug overlay.")
	seed := flag.Uint64("seed", 0, "Random seed. Zero picks one from the clock.")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log := logging.New(os.Stderr, zerolog.InfoLevel)
		log.Fatal().Err(err).Msg("cityrun failed")
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Debug = *debug
		case "seed":
			cfg.Seed = *seed
		}
	})
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	level, err := cfg.Level()
	if err != nil {
		log := logging.New(os.Stderr, zerolog.InfoLevel)
		log.Fatal().Err(err).Msg("cityrun failed")
	}
	log := logging.New(os.Stderr, level)
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("cityrun failed")
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func run(cfg config.Config, log zerolog.Logger) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	tps := ebiten.SyncWithFPS
	if !cfg.SyncWithDisplay() {
		tps = cfg.TicksPerSecond
	}
	ebiten.SetTPS(tps)

	session := runner.NewSession(runner.Options{
		Seed:     cfg.Seed,
		MaxCoins: cfg.MaxCoins,
		Logger:   &log,
	})
	game := &Game{
		session:  session,
		renderer: render.New(session.Storage()),
		log:      log,
	}

	if cfg.Debug {
		debugui.Install(session, debugui.NewBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height))
		game.overlay = ecs.NewSingleton[debugui.Backend](session.Storage())
		game.capture = ecs.NewSingleton[debugui.ImguiInputState](session.Storage())
	}

	log.Info().
		Uint64("seed", cfg.Seed).
		Bool("debug", cfg.Debug).
		Int("max_coins", cfg.MaxCoins).
		Bool("sync_with_display", cfg.SyncWithDisplay()).
		Msg("starting")

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run game: %w", err)
	}

	session.LogStats()
	return nil
}
