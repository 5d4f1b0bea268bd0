// Package engine runs the sparse Game of Life. Living cells are compared
// pairwise to find neighbours, and dead cells next to them are tracked as
// candidates for the current round only.
package engine

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sheikhrachel/go-gol-sparse/model"
	"github.com/sheikhrachel/go-gol-sparse/store"
)

// CellStore holds living or candidate cells
type CellStore = store.Store[model.Cell]

// NewCellStore creates a cell store with the given chunk size
func NewCellStore(chunkSize int, alloc store.Allocator[model.Cell]) (*CellStore, error) {
	return store.New[model.Cell](chunkSize, store.WithAllocator[model.Cell](alloc))
}

// DuplicatePosition reports two records found on the same coordinate during a
// scan. Nothing is merged or removed; the round carries on.
type DuplicatePosition struct {
	Pos model.Position
	// WithCandidate is set when the second record was a candidate
	WithCandidate bool
}

func (d DuplicatePosition) Error() string {
	if d.WithCandidate {
		return fmt.Sprintf("living cell and candidate share position %s", d.Pos)
	}
	return fmt.Sprintf("two living cells share position %s", d.Pos)
}

// discover accumulates neighbour masks for one round and fills candidates
// with every dead cell adjacent to a living one.
func discover(alive, candidates *CellStore, log *zap.Logger) ([]DuplicatePosition, error) {
	var dups []DuplicatePosition

	outer := alive.Iter()
	for c := outer.Next(); c != nil; c = outer.Next() {
		// bits set by cells earlier in the scan are already on c
		running := c.Mask

		rest := outer.Clone()
		for other := rest.Next(); other != nil; other = rest.Next() {
			switch rel, d := model.Classify(c, other); rel {
			case model.SamePosition:
				dups = append(dups, reportDuplicate(log, c, false))
			case model.Adjacent:
				c.Mask = c.Mask.With(d)
				other.Mask = other.Mask.With(d.Reverse())
				running = running.With(d)
			}
		}

		cands := candidates.Iter()
		for cand := cands.Next(); cand != nil; cand = cands.Next() {
			switch rel, d := model.Classify(c, cand); rel {
			case model.SamePosition:
				dups = append(dups, reportDuplicate(log, c, true))
			case model.Adjacent:
				cand.Mask = cand.Mask.With(d.Reverse())
				running = running.With(d)
			}
		}

		if err := spawnCandidates(candidates, c, running); err != nil {
			return dups, err
		}
	}
	return dups, nil
}

// spawnCandidates adds a candidate on every side of c that has neither a
// living cell nor a candidate yet. Each candidate starts with the one
// direction it was discovered from.
func spawnCandidates(candidates *CellStore, c *model.Cell, seen model.Mask) error {
	for _, d := range model.Directions {
		if seen.Has(d) {
			continue
		}
		back := d.Reverse()
		p := c.Pos().Step(back)
		if err := candidates.Add(model.Cell{X: p.X, Y: p.Y, Mask: model.Mask(back)}); err != nil {
			return errors.Wrapf(err, "[spawnCandidates] failed to add candidate at %s", p)
		}
	}
	return nil
}

func reportDuplicate(log *zap.Logger, c *model.Cell, withCandidate bool) DuplicatePosition {
	dup := DuplicatePosition{Pos: c.Pos(), WithCandidate: withCandidate}
	log.Warn("duplicate cell position",
		zap.Int("x", c.X),
		zap.Int("y", c.Y),
		zap.Bool("candidate", withCandidate),
	)
	return dup
}
