package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sheikhrachel/go-gol-sparse/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %+v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration - fallback to defaults if file doesn't exist
	path := utils.ConfigPath()
	config, err := utils.LoadConfig(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		fmt.Printf("Using default configuration (%s not found)\n", path)
		config = utils.DefaultConfig()
	}

	log, err := utils.NewLogger(config.Logging)
	if err != nil {
		return errors.Wrap(err, "[run] failed to init logger")
	}
	defer log.Sync()

	reg, err := loadPatterns(config)
	if err != nil {
		return err
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(config.Batch) > 0 {
		return runBatchMode(ctx, config, reg, log)
	}

	sim, renderer, stats, err := initializeGame(config, reg, log)
	if err != nil {
		return err
	}
	defer sim.Close()
	displayGameInfo(config, sim)

	if err := renderFrame(config, renderer, sim, stats); err != nil {
		return err
	}

	// Main game loop
	for {
		select {
		case <-ctx.Done():
			fmt.Println("\n🛑 Shutting down gracefully...")
			displayFinalStats(stats)
			return nil
		default:
			// Continue with game loop
		}

		frameStart := time.Now()
		sum, err := sim.Step()
		if err != nil {
			return err
		}
		stats.Update(sim.Round(), sim.Population(), sum.Born, sum.Died, time.Since(frameStart))
		if len(sum.Duplicates) > 0 {
			log.Warn("round reported duplicate positions",
				zap.Int("round", sim.Round()),
				zap.Int("duplicates", len(sum.Duplicates)),
			)
		}

		if err := renderFrame(config, renderer, sim, stats); err != nil {
			return err
		}

		if done, reason := checkStopConditions(sim, config); done {
			fmt.Printf("\n🏁 Stopped after %d generations: %s\n", sim.Round(), reason)
			displayFinalStats(stats)
			return nil
		}

		if wait := config.FrameRate - time.Since(frameStart); wait > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(wait):
			}
		}
	}
}
