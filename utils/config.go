package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ConfigEnv names the environment variable that overrides the config path
const ConfigEnv = "GOL_CONFIG"

const defaultConfigPath = "config.json"

// Output modes
const (
	OutputTerminal = "terminal"
	OutputPBM      = "pbm"
	OutputNone     = "none"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the game
type Config struct {
	Width                  int           `json:"width" toml:"width"`
	Height                 int           `json:"height" toml:"height"`
	FrameRate              time.Duration `json:"frame_rate" toml:"frame_rate"`
	MaxGenerations         int           `json:"max_generations" toml:"max_generations"`
	ChunkSize              int           `json:"chunk_size" toml:"chunk_size"`
	MaxChunks              int           `json:"max_chunks" toml:"max_chunks"`
	Pattern                string        `json:"pattern" toml:"pattern"`
	AnchorX                int           `json:"anchor_x" toml:"anchor_x"`
	AnchorY                int           `json:"anchor_y" toml:"anchor_y"`
	PatternFile            string        `json:"pattern_file" toml:"pattern_file"`
	Output                 string        `json:"output" toml:"output"`
	PBMDir                 string        `json:"pbm_dir" toml:"pbm_dir"`
	StopOnStagnation       bool          `json:"stop_on_stagnation" toml:"stop_on_stagnation"`
	ReleaseCandidateChunks bool          `json:"release_candidate_chunks" toml:"release_candidate_chunks"`
	Batch                  []BatchEntry  `json:"batch" toml:"batch"`
	BatchWorkers           int           `json:"batch_workers" toml:"batch_workers"`
	Logging                LoggingConfig `json:"logging" toml:"logging"`
}

// BatchEntry is one headless simulation in batch mode
type BatchEntry struct {
	Name    string `json:"name" toml:"name"`
	Pattern string `json:"pattern" toml:"pattern"`
	AnchorX int    `json:"anchor_x" toml:"anchor_x"`
	AnchorY int    `json:"anchor_y" toml:"anchor_y"`
}

// LoggingConfig selects the zap level and encoder
type LoggingConfig struct {
	Level  string `json:"level" toml:"level"`
	Format string `json:"format" toml:"format"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:            60,
		Height:           30,
		FrameRate:        150 * time.Millisecond,
		MaxGenerations:   1000,
		ChunkSize:        4096,
		Pattern:          "gosper-gun",
		AnchorX:          2,
		AnchorY:          2,
		Output:           OutputTerminal,
		PBMDir:           "frames",
		StopOnStagnation: true,
		BatchWorkers:     4,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ConfigPath returns the config file to load, honouring GOL_CONFIG
func ConfigPath() string {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p
	}
	return defaultConfigPath
}

// LoadConfig loads configuration from a JSON or TOML file. Fields missing
// from the file keep their defaults.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		err = toml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] file: %+v", filename)
	}
	return config, nil
}

// Validate rejects values the simulation cannot run with
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "viewport %dx%d", c.Width, c.Height)
	case c.ChunkSize < 2:
		return errors.Wrapf(ErrInvalidConfig, "chunk_size %d is below 2", c.ChunkSize)
	case c.MaxChunks < 0:
		return errors.Wrapf(ErrInvalidConfig, "max_chunks %d is negative", c.MaxChunks)
	case c.FrameRate < 0:
		return errors.Wrapf(ErrInvalidConfig, "frame_rate %s is negative", c.FrameRate)
	}
	switch c.Output {
	case OutputTerminal, OutputPBM, OutputNone:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown output %q", c.Output)
	}
	return nil
}
