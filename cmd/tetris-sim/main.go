package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/go-tetris/internal/config"
	"github.com/amalg/go-tetris/internal/game"
	"github.com/amalg/go-tetris/internal/metrics"
	"github.com/amalg/go-tetris/internal/ui"
)

// commands is the pool of random inputs fed to the loop.
var commands = []game.Action{
	game.Move(game.AxisX, -1),
	game.Move(game.AxisX, 1),
	game.Move(game.AxisY, -1),
	game.Rotate(game.Clockwise),
	game.Rotate(game.AntiClockwise),
}

func main() {
	configPath := flag.String("config", "", "YAML config file (default: $TETRIS_CONFIG)")
	frames := flag.Int("frames", 20000, "Number of frames to simulate")
	seed := flag.Uint64("seed", 1, "Random seed for pieces and inputs")
	inputRate := flag.Float64("input-rate", 0.2, "Probability of a random command per frame")
	showMetrics := flag.Bool("metrics", false, "Print prometheus counters after the run")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	engine, err := game.NewEngine(cfg.Game, ui.DefaultPalette(), rand.New(rand.NewPCG(*seed, *seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create game: %v\n", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector()
	engine.SetObserver(collector)

	loop := game.NewLoop(engine)
	loop.OnTick(func(ui.Snapshot) { collector.Frame() })

	inputs := rand.New(rand.NewPCG(*seed+1, *seed))
	log.Printf("[SIM] session %s: %d frames, seed %d", loop.ID(), *frames, *seed)

	toppedOut := -1
	for i := 0; i < *frames; i++ {
		if inputs.Float64() < *inputRate {
			loop.Enqueue(commands[inputs.IntN(len(commands))])
		}
		loop.Step()

		if overlaps(loop.Snapshot()) {
			toppedOut = i
			log.Printf("[SIM] spawn overlapped settled blocks at frame %d", i)
			break
		}
	}

	state := loop.Snapshot()
	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, ui.RenderBoard(&state), "  ", ui.RenderHUD(&state)))
	if toppedOut >= 0 {
		fmt.Printf("Topped out after %d frames.\n", toppedOut+1)
	}

	if *showMetrics {
		if err := collector.WriteText(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write metrics: %v\n", err)
			os.Exit(1)
		}
	}
}

// overlaps reports whether the active piece sits on settled blocks, which
// only happens when a piece spawns into a full stack.
func overlaps(s ui.Snapshot) bool {
	for _, pos := range s.Piece.BlockPositions() {
		x, y := pos.Cell()
		if s.Board.Occupied(x, y) {
			return true
		}
	}
	return false
}
