package engine

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/sheikhrachel/go-gol-sparse/model"
)

const (
	historySize = 5
	// a repeat within this many rounds counts as stagnation
	stagnationPeriod = 3
)

// History keeps fingerprints of recent populations for cycle detection
type History struct {
	hashes []string
}

// Fingerprint returns a BLAKE2b hash of a set of positions. The positions
// must already be sorted so equal sets hash equally.
func Fingerprint(cells []model.Position) string {
	h, _ := blake2b.New256(nil)
	var buf [16]byte
	for _, p := range cells {
		binary.LittleEndian.PutUint64(buf[:8], uint64(p.X))
		binary.LittleEndian.PutUint64(buf[8:], uint64(p.Y))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Record adds a population to the history and reports whether it repeats
// one of the last few, i.e. the pattern is a still life or a short oscillator
func (h *History) Record(cells []model.Position) bool {
	current := Fingerprint(cells)

	stagnant := false
	for i := len(h.hashes) - 1; i >= 0 && i >= len(h.hashes)-stagnationPeriod; i-- {
		if h.hashes[i] == current {
			stagnant = true
			break
		}
	}

	h.hashes = append(h.hashes, current)
	// Keep only the last states to detect cycles
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
	return stagnant
}

// Len returns the number of fingerprints kept
func (h *History) Len() int {
	return len(h.hashes)
}
