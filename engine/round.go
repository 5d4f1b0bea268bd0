package engine

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sheikhrachel/go-gol-sparse/rules"
)

// Phase is the state of the round driver
type Phase uint8

const (
	Scanning Phase = iota
	ResolvingAlive
	ResolvingCandidates
	Resetting
	Terminal
)

func (p Phase) String() string {
	switch p {
	case Scanning:
		return "scanning"
	case ResolvingAlive:
		return "resolving-alive"
	case ResolvingCandidates:
		return "resolving-candidates"
	case Resetting:
		return "reset"
	case Terminal:
		return "terminal"
	}
	return "unknown"
}

// RoundSummary counts what happened in one round
type RoundSummary struct {
	Survivors  int
	Born       int
	Died       int
	Candidates int
	Duplicates []DuplicatePosition
}

// Driver moves a pair of stores through the phases of a round
type Driver struct {
	alive      *CellStore
	candidates *CellStore
	phase      Phase
	log        *zap.Logger

	// release candidate chunks at reset instead of keeping them for reuse
	releaseCandidates bool
}

// NewDriver returns a driver over the given stores
func NewDriver(alive, candidates *CellStore, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{
		alive:      alive,
		candidates: candidates,
		log:        log,
	}
}

// Phase returns the phase the driver is in
func (d *Driver) Phase() Phase {
	return d.phase
}

// RunRound advances the stores by one generation
func RunRound(alive, candidates *CellStore) (RoundSummary, error) {
	return NewDriver(alive, candidates, nil).Round()
}

// Round runs one full generation. An empty population moves the driver to
// Terminal without doing anything.
func (d *Driver) Round() (RoundSummary, error) {
	var sum RoundSummary
	if d.alive.Len() == 0 {
		d.phase = Terminal
		return sum, nil
	}

	d.phase = Scanning
	dups, err := discover(d.alive, d.candidates, d.log)
	sum.Duplicates = dups
	sum.Candidates = d.candidates.Len()
	if err != nil {
		d.phase = Terminal
		return sum, errors.Wrap(err, "[Round] neighbour scan failed")
	}

	d.phase = ResolvingAlive
	if err := d.resolveAlive(&sum); err != nil {
		d.phase = Terminal
		return sum, err
	}

	d.phase = ResolvingCandidates
	if err := d.resolveCandidates(&sum); err != nil {
		d.phase = Terminal
		return sum, err
	}

	d.phase = Resetting
	d.candidates.Reset()
	if d.releaseCandidates {
		d.candidates.Compact()
	}

	if d.alive.Len() == 0 {
		d.phase = Terminal
	} else {
		d.phase = Scanning
	}
	return sum, nil
}

func (d *Driver) resolveAlive(sum *RoundSummary) error {
	it := d.alive.Iter()
	c := it.Next()
	for c != nil {
		if rules.Survives(c.Mask.Count()) {
			c.Mask = 0
			sum.Survivors++
			c = it.Next()
			continue
		}

		if err := d.alive.Remove(it.Index() - 1); err != nil {
			return errors.Wrapf(err, "[resolveAlive] failed to remove cell at %s", c.Pos())
		}
		sum.Died++
		// the tail element now sits in the slot just vacated
		c = it.Previous()
	}
	return nil
}

func (d *Driver) resolveCandidates(sum *RoundSummary) error {
	it := d.candidates.Iter()
	for c := it.Next(); c != nil; c = it.Next() {
		if !rules.Born(c.Mask.Count()) {
			continue
		}
		born := *c
		born.Mask = 0
		if err := d.alive.Add(born); err != nil {
			return errors.Wrapf(err, "[resolveCandidates] failed to add cell at %s", born.Pos())
		}
		sum.Born++
	}
	return nil
}
