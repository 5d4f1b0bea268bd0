package engine

import (
	"context"
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol-sparse/model"
)

// BatchJob is one independent simulation in a batch
type BatchJob struct {
	Name     string
	Seed     []model.Position
	MaxSteps int
}

// BatchResult is the final state of a batch job
type BatchResult struct {
	Name     string
	Rounds   int
	Final    Snapshot
	Stagnant bool
}

// RunBatch plays every job in its own goroutine, at most workers at a time
// (unlimited when workers <= 0). Each simulation is single threaded and owns
// its stores; jobs only share the options, so a shared allocator must be safe
// for concurrent use. The first failing job cancels the rest.
func RunBatch(ctx context.Context, jobs []BatchJob, workers int, opts ...Option) ([]BatchResult, error) {
	base := buildOptions(opts)

	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}

	results := make([]BatchResult, len(jobs))
	for i, job := range jobs {
		i, job := i, job
		eg.Go(func() error {
			jobOpts := append(slices.Clone(opts), WithLogger(base.log.With(zap.String("job", job.Name))))
			sim, err := NewSimulation(job.Seed, jobOpts...)
			if err != nil {
				return errors.Wrapf(err, "[RunBatch] failed to start job %s", job.Name)
			}
			defer sim.Close()

			if err := sim.run(ctx, job.MaxSteps, nil); err != nil {
				return errors.Wrapf(err, "[RunBatch] job %s failed", job.Name)
			}

			results[i] = BatchResult{
				Name:     job.Name,
				Rounds:   sim.Round(),
				Final:    sim.Snapshot(),
				Stagnant: sim.Stagnant(),
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
