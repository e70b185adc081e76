package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amalg/go-tetris/internal/config"
	"github.com/amalg/go-tetris/internal/game"
	"github.com/amalg/go-tetris/internal/metrics"
	"github.com/amalg/go-tetris/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default: $TETRIS_CONFIG)")
	speed := flag.Int("speed", 0, "Ticks between automatic drops (overrides config)")
	tickRate := flag.Int("tick-rate", 0, "Ticks per second (overrides config)")
	seed := flag.Uint64("seed", 0, "Random seed for piece selection (0: from clock)")
	logFile := flag.String("log", "", "Log file path (default: discard logs)")
	metricsAddr := flag.String("metrics-addr", "", "Serve prometheus metrics on this address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *speed > 0 {
		cfg.Game.GameSpeed = *speed
	}
	if *tickRate > 0 {
		cfg.Game.TickRate = *tickRate
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}

	// Redirect log output before anything logs: stderr output corrupts
	// Bubbletea's terminal rendering.
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	engine, err := game.NewEngine(cfg.Game, ui.DefaultPalette(), rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create game: %v\n", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector()
	engine.SetObserver(collector)

	loop := game.NewLoop(engine)
	loop.OnTick(func(ui.Snapshot) { collector.Frame() })
	model := ui.NewModel(loop)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Metrics.Addr != "" {
		go func() {
			if err := collector.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.Printf("[METRICS] %v", err)
			}
		}()
	}

	log.Printf("[GAME] session %s: %dx%d board, speed %d, %d ticks/s",
		loop.ID(), cfg.Game.Width, cfg.Game.Height, cfg.Game.GameSpeed, cfg.Game.TickRate)
	go loop.Run(ctx)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		cancel()
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
