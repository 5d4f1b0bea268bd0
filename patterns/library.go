package patterns

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/go-gol-sparse/model"
)

// Library is the on-disk form of a set of patterns:
//
//	patterns:
//	  - name: lwss
//	    rows: [".O..O", "O....", "O...O", "OOOO."]
//	  - name: diagonal
//	    cells: [[0, 0], [1, 1]]
type Library struct {
	Patterns []PatternSpec `yaml:"patterns"`
}

// PatternSpec describes one pattern by cell offsets, rows, or both
type PatternSpec struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Cells       [][2]int `yaml:"cells"`
	Rows        []string `yaml:"rows"`
}

// Offsets returns the pattern's cells relative to its anchor
func (p PatternSpec) Offsets() ([]model.Position, error) {
	offsets := make([]model.Position, 0, len(p.Cells))
	for _, c := range p.Cells {
		offsets = append(offsets, model.Position{X: c[0], Y: c[1]})
	}
	fromRows, err := ParseRows(p.Rows)
	if err != nil {
		return nil, errors.Wrapf(err, "[Offsets] pattern %q", p.Name)
	}
	offsets = append(offsets, fromRows...)
	if len(offsets) == 0 {
		return nil, errors.Errorf("[Offsets] pattern %q has no cells", p.Name)
	}
	return offsets, nil
}

// ParseLibrary decodes a YAML pattern library into r. Entries override
// patterns with the same name.
func (r Registry) ParseLibrary(data []byte) error {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return errors.Wrap(err, "[ParseLibrary] failed to unmarshal library")
	}

	for _, spec := range lib.Patterns {
		name := strings.ToLower(strings.TrimSpace(spec.Name))
		if name == "" {
			return errors.New("[ParseLibrary] pattern without a name")
		}
		offsets, err := spec.Offsets()
		if err != nil {
			return errors.Wrap(err, "[ParseLibrary]")
		}
		r[name] = FromOffsets(offsets)
	}
	return nil
}

// LoadLibrary reads a YAML pattern library file into r
func (r Registry) LoadLibrary(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "[LoadLibrary] failed to read file: %+v", filename)
	}
	if err := r.ParseLibrary(data); err != nil {
		return errors.Wrapf(err, "[LoadLibrary] file: %+v", filename)
	}
	return nil
}
