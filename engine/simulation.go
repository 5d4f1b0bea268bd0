package engine

import (
	"cmp"
	"context"
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sheikhrachel/go-gol-sparse/model"
	"github.com/sheikhrachel/go-gol-sparse/store"
)

// Snapshot is the living population after a round
type Snapshot struct {
	Round int
	Cells []model.Position
}

type options struct {
	chunkSize         int
	allocator         store.Allocator[model.Cell]
	log               *zap.Logger
	releaseCandidates bool
	stopOnStagnation  bool
	observer          func(Snapshot, RoundSummary)
}

// Option configures a Simulation
type Option func(*options)

// WithChunkSize sets the chunk size of both stores
func WithChunkSize(n int) Option {
	return func(o *options) { o.chunkSize = n }
}

// WithAllocator sets the allocator backing both stores
func WithAllocator(a store.Allocator[model.Cell]) Option {
	return func(o *options) { o.allocator = a }
}

// WithLogger sets the logger used for anomalies and round tracing
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithReleaseCandidateChunks frees candidate chunks at the end of every round
// instead of keeping them for the next one
func WithReleaseCandidateChunks(release bool) Option {
	return func(o *options) { o.releaseCandidates = release }
}

// WithStopOnStagnation ends Run once the population repeats within a few rounds
func WithStopOnStagnation(stop bool) Option {
	return func(o *options) { o.stopOnStagnation = stop }
}

// WithObserver registers a callback invoked after every round
func WithObserver(fn func(Snapshot, RoundSummary)) Option {
	return func(o *options) { o.observer = fn }
}

func buildOptions(opts []Option) options {
	o := options{
		chunkSize: store.DefaultChunkSize,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Simulation owns the living and candidate stores of one game
type Simulation struct {
	alive      *CellStore
	candidates *CellStore
	driver     *Driver
	history    History
	round      int
	stagnant   bool
	last       Snapshot
	opts       options
}

// NewSimulation seeds a simulation with living cells at the given positions
func NewSimulation(seed []model.Position, opts ...Option) (*Simulation, error) {
	o := buildOptions(opts)

	alive, err := NewCellStore(o.chunkSize, o.allocator)
	if err != nil {
		return nil, errors.Wrap(err, "[NewSimulation] failed to create alive store")
	}
	candidates, err := NewCellStore(o.chunkSize, o.allocator)
	if err != nil {
		alive.Destroy()
		return nil, errors.Wrap(err, "[NewSimulation] failed to create candidate store")
	}

	s := &Simulation{
		alive:      alive,
		candidates: candidates,
		driver:     NewDriver(alive, candidates, o.log),
		opts:       o,
	}
	s.driver.releaseCandidates = o.releaseCandidates

	for _, p := range seed {
		if err := alive.Add(model.NewCell(p)); err != nil {
			s.Close()
			return nil, errors.Wrapf(err, "[NewSimulation] failed to seed cell at %s", p)
		}
	}
	s.history.Record(s.positions())
	return s, nil
}

// Round returns the number of completed rounds
func (s *Simulation) Round() int {
	return s.round
}

// Population returns the number of living cells
func (s *Simulation) Population() int {
	return s.alive.Len()
}

// Phase returns the driver's current phase
func (s *Simulation) Phase() Phase {
	return s.driver.Phase()
}

// Stagnant reports whether the last round repeated a recent population
func (s *Simulation) Stagnant() bool {
	return s.stagnant
}

// Alive exposes the living cell store
func (s *Simulation) Alive() *CellStore {
	return s.alive
}

// Step runs a single round
func (s *Simulation) Step() (RoundSummary, error) {
	sum, err := s.driver.Round()
	if err != nil {
		return sum, errors.Wrapf(err, "[Step] round %d", s.round+1)
	}
	s.round++

	snap := s.Snapshot()
	s.last = snap
	s.stagnant = s.history.Record(snap.Cells)

	s.opts.log.Debug("round complete",
		zap.Int("round", s.round),
		zap.Int("population", len(snap.Cells)),
		zap.Int("survivors", sum.Survivors),
		zap.Int("born", sum.Born),
		zap.Int("died", sum.Died),
		zap.Int("candidates", sum.Candidates),
	)
	if s.opts.observer != nil {
		s.opts.observer(snap, sum)
	}
	return sum, nil
}

// Snapshot returns the current living positions, sorted by row then column
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{Round: s.round, Cells: s.positions()}
}

func (s *Simulation) positions() []model.Position {
	cells := make([]model.Position, 0, s.alive.Len())
	s.alive.Iter().ForEach(func(c *model.Cell) {
		cells = append(cells, c.Pos())
	})
	slices.SortFunc(cells, func(a, b model.Position) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return cells
}

// Run steps until the population dies out, maxSteps rounds have run, or
// the pattern stagnates when that stop is enabled. It returns one snapshot
// per round.
func (s *Simulation) Run(maxSteps int) ([]Snapshot, error) {
	var snaps []Snapshot
	err := s.run(context.Background(), maxSteps, func(snap Snapshot) {
		snaps = append(snaps, snap)
	})
	return snaps, err
}

func (s *Simulation) run(ctx context.Context, maxSteps int, keep func(Snapshot)) error {
	for s.alive.Len() > 0 && s.round < maxSteps {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "[run] stopped at round %d", s.round)
		}
		if _, err := s.Step(); err != nil {
			return err
		}
		if keep != nil {
			keep(s.last)
		}
		if s.opts.stopOnStagnation && s.stagnant {
			s.opts.log.Info("population stagnated", zap.Int("round", s.round))
			break
		}
	}
	return nil
}

// Close releases the chunk memory of both stores
func (s *Simulation) Close() {
	s.alive.Destroy()
	s.candidates.Destroy()
}

// RunSimulation plays a seed for at most maxSteps rounds and returns the
// population after each one. All store memory is released before returning,
// including when a round fails.
func RunSimulation(seed []model.Position, maxSteps int, opts ...Option) ([]Snapshot, error) {
	sim, err := NewSimulation(seed, opts...)
	if err != nil {
		return nil, err
	}
	defer sim.Close()

	snaps, err := sim.Run(maxSteps)
	if err != nil {
		return snaps, errors.Wrap(err, "[RunSimulation] simulation aborted")
	}
	return snaps, nil
}
