package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sheikhrachel/go-gol-sparse/engine"
	"github.com/sheikhrachel/go-gol-sparse/model"
	"github.com/sheikhrachel/go-gol-sparse/patterns"
	"github.com/sheikhrachel/go-gol-sparse/store"
	"github.com/sheikhrachel/go-gol-sparse/utils"
)

// loadPatterns returns the builtin patterns plus the configured library
func loadPatterns(config utils.Config) (patterns.Registry, error) {
	reg := patterns.Builtins()
	if config.PatternFile != "" {
		if err := reg.LoadLibrary(config.PatternFile); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// simulationOptions maps the config onto engine options. alloc may be shared
// between simulations.
func simulationOptions(config utils.Config, log *zap.Logger, alloc store.Allocator[model.Cell]) []engine.Option {
	return []engine.Option{
		engine.WithChunkSize(config.ChunkSize),
		engine.WithAllocator(alloc),
		engine.WithLogger(log),
		engine.WithReleaseCandidateChunks(config.ReleaseCandidateChunks),
		engine.WithStopOnStagnation(config.StopOnStagnation),
	}
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, reg patterns.Registry, log *zap.Logger) (
	*engine.Simulation,
	*model.TerminalRenderer,
	*utils.Stats,
	error,
) {
	seed, err := reg.Seed(config.Pattern, model.Position{X: config.AnchorX, Y: config.AnchorY})
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "[initializeGame] failed to seed")
	}

	pool := store.NewChunkPool[model.Cell](config.MaxChunks)
	sim, err := engine.NewSimulation(seed, simulationOptions(config, log, pool)...)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "[initializeGame] failed to start simulation")
	}

	renderer := model.NewTerminalRenderer(viewport(config))
	stats := utils.NewStats()
	stats.Update(0, sim.Population(), 0, 0, 0)

	return sim, renderer, stats, nil
}

func viewport(config utils.Config) model.Viewport {
	return model.Viewport{Width: config.Width, Height: config.Height}
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, sim *engine.Simulation) {
	fmt.Printf("Pattern: %s at (%d,%d) | Chunk size: %d | Output: %s\n",
		config.Pattern, config.AnchorX, config.AnchorY, config.ChunkSize, config.Output)
	fmt.Printf("Viewport: %dx%d | Initial living cells: %d\n",
		config.Width, config.Height, sim.Population())
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
	if config.Output == utils.OutputTerminal {
		time.Sleep(2 * time.Second)
	}
}

// gameStatus describes the simulation in a word
func gameStatus(sim *engine.Simulation) string {
	switch {
	case sim.Population() == 0:
		return "Extinct"
	case sim.Stagnant():
		return fmt.Sprintf("Stagnant (%d)", sim.Round())
	default:
		return "Active"
	}
}

// renderFrame presents the current round through the configured output
func renderFrame(config utils.Config, renderer *model.TerminalRenderer, sim *engine.Simulation, stats *utils.Stats) error {
	switch config.Output {
	case utils.OutputTerminal:
		renderer.Clear()
		fmt.Println(stats.Status(gameStatus(sim)))
		fmt.Println(stats.Performance())
		fmt.Println()
		renderer.Display(sim.Snapshot().Cells)
	case utils.OutputPBM:
		snap := sim.Snapshot()
		if _, err := model.ExportPBM(config.PBMDir, snap.Round, renderer.View, snap.Cells); err != nil {
			return errors.Wrapf(err, "[renderFrame] round %d", snap.Round)
		}
	}
	return nil
}

// checkStopConditions determines if the game should end
func checkStopConditions(sim *engine.Simulation, config utils.Config) (bool, string) {
	if sim.Population() == 0 {
		return true, "extinction"
	}
	if config.StopOnStagnation && sim.Stagnant() {
		return true, "stagnation detected"
	}
	if config.MaxGenerations > 0 && sim.Round() >= config.MaxGenerations {
		return true, fmt.Sprintf("reached maximum generations limit (%d)", config.MaxGenerations)
	}
	return false, ""
}

// displayFinalStats prints the run summary
func displayFinalStats(stats *utils.Stats) {
	fmt.Println(stats.Status("Final"))
	fmt.Println(stats.Performance())
}

// runBatchMode plays every configured batch entry headless and prints the
// outcome of each
func runBatchMode(ctx context.Context, config utils.Config, reg patterns.Registry, log *zap.Logger) error {
	maxSteps := config.MaxGenerations
	if maxSteps <= 0 {
		maxSteps = math.MaxInt
	}

	jobs := make([]engine.BatchJob, 0, len(config.Batch))
	for _, entry := range config.Batch {
		seed, err := reg.Seed(entry.Pattern, model.Position{X: entry.AnchorX, Y: entry.AnchorY})
		if err != nil {
			return errors.Wrapf(err, "[runBatchMode] entry %s", entry.Name)
		}
		jobs = append(jobs, engine.BatchJob{Name: entry.Name, Seed: seed, MaxSteps: maxSteps})
	}

	pool := store.NewChunkPool[model.Cell](config.MaxChunks)
	log.Info("starting batch", zap.Int("jobs", len(jobs)), zap.Int("workers", config.BatchWorkers))

	start := time.Now()
	results, err := engine.RunBatch(ctx, jobs, config.BatchWorkers, simulationOptions(config, log, pool)...)
	if errors.Is(err, context.Canceled) {
		fmt.Println("\n🛑 Batch interrupted")
		return nil
	}
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	for _, res := range results {
		p.Printf("%-16s rounds: %6d | living: %8d | stagnant: %v\n",
			res.Name, res.Rounds, len(res.Final.Cells), res.Stagnant)
	}
	p.Printf("Batch of %d finished in %.2fs\n", len(results), time.Since(start).Seconds())
	return nil
}
