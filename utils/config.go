package utils

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is the cause of every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for a simulation run
type Config struct {
	InputPath         string        `json:"input_path"`
	OutputPath        string        `json:"output_path"`
	Delay             time.Duration `json:"delay"`
	MaxGenerations    int           `json:"max_generations"`
	Clear             bool          `json:"clear"`
	Quiet             bool          `json:"quiet"`
	AliveSymbol       string        `json:"alive_symbol"`
	DeadSymbol        string        `json:"dead_symbol"`
	Threshold         int           `json:"threshold"`
	UseParallel       bool          `json:"use_parallel"`
	Workers           int           `json:"workers"`
	UseSleepWake      bool          `json:"use_sleep_wake"`
	UseMemoryPool     bool          `json:"use_memory_pool"`
	StopOnOscillation bool          `json:"stop_on_oscillation"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Delay:          750 * time.Millisecond,
		MaxGenerations: 2000,
		AliveSymbol:    "O",
		DeadSymbol:     " ",
		Threshold:      50,
		UseMemoryPool:  true,
	}
}

// LoadConfig loads configuration from JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Bind attaches the configuration to the provided FlagSet, current values become the flag defaults
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.InputPath, "i", c.InputPath, "path to an image file used as the starting world")
	fs.StringVar(&c.OutputPath, "o", c.OutputPath, "path of an image file (.png, .bmp, .tiff) to save the final world to")
	fs.DurationVar(&c.Delay, "d", c.Delay, "delay between generations")
	fs.IntVar(&c.MaxGenerations, "max", c.MaxGenerations, "maximum number of generations, 0 for no limit")
	fs.BoolVar(&c.Clear, "c", c.Clear, "clear the terminal and draw the world in place")
	fs.BoolVar(&c.Quiet, "q", c.Quiet, "do not draw generations")
	fs.StringVar(&c.AliveSymbol, "alive", c.AliveSymbol, "symbol drawn for living cells")
	fs.StringVar(&c.DeadSymbol, "dead", c.DeadSymbol, "symbol drawn for dead cells")
	fs.IntVar(&c.Threshold, "threshold", c.Threshold, "brightness (0-255) at which an input pixel is alive")
	fs.BoolVar(&c.UseParallel, "parallel", c.UseParallel, "stage cells on several workers")
	fs.IntVar(&c.Workers, "workers", c.Workers, "number of workers with -parallel, 0 for one per CPU")
	fs.BoolVar(&c.UseSleepWake, "sleepwake", c.UseSleepWake, "skip cells whose neighborhood did not change")
	fs.BoolVar(&c.UseMemoryPool, "pool", c.UseMemoryPool, "reuse snapshot buffers between frames")
	fs.BoolVar(&c.StopOnOscillation, "stop-on-oscillation", c.StopOnOscillation, "stop once the world repeats with a period of 3 or less")
}

// Validate checks the values that cannot be clamped
func (c Config) Validate() error {
	if c.Delay < 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative delay %v", c.Delay)
	}
	if c.MaxGenerations < 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative max generations %d", c.MaxGenerations)
	}
	if c.Threshold < 0 || c.Threshold > 255 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] threshold %d outside 0-255", c.Threshold)
	}
	if c.Workers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative workers %d", c.Workers)
	}
	if len([]rune(c.AliveSymbol)) != 1 || len([]rune(c.DeadSymbol)) != 1 {
		return errors.Wrapf(ErrInvalidConfig, "[Validate] symbols must be single characters, got %q and %q",
			c.AliveSymbol, c.DeadSymbol)
	}
	return nil
}

// Symbols returns the alive and dead symbols as runes, call after Validate
func (c Config) Symbols() (alive, dead rune) {
	return []rune(c.AliveSymbol)[0], []rune(c.DeadSymbol)[0]
}
