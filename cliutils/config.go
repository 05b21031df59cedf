// Package cliutils holds the pieces shared by the command programs: their configuration file,
// logger, and training with retries.
package cliutils

import (
	"math/rand"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/blacklight/neuralpp"
	"github.com/blacklight/neuralpp/activations"
	"github.com/blacklight/neuralpp/initializers"
)

// Config is the content of a command program's configuration file. Fields missing from the
// file keep their values from DefaultConfig.
type Config struct {
	Network  NetworkConfig  `yaml:"network"`
	Training TrainingConfig `yaml:"training"`

	// Output is the path the trained network is saved to, or loaded from.
	Output   string `yaml:"output"`
	LogLevel string `yaml:"log_level"`
}

type NetworkConfig struct {
	Input        int     `yaml:"input"`
	Hidden       int     `yaml:"hidden"`
	Output       int     `yaml:"output"`
	LearningRate float64 `yaml:"learning_rate"`
	Epochs       int     `yaml:"epochs"`
	Threshold    float64 `yaml:"threshold"`
	Activation   string  `yaml:"activation"`

	// Weights names the distribution of the initial weights: "uniform" over [0, 1), or
	// "abs-sine" for |sin(n)| of a random integer n.
	Weights string `yaml:"weights"`

	// Seed for the initial weights. Zero seeds from the clock.
	Seed int64 `yaml:"seed"`
}

// weight distributions, seeded with NetworkConfig.Seed
var weightRNGs = map[string]func(rand.Source) initializers.RNG{
	"uniform":  func(src rand.Source) initializers.RNG { return initializers.Uniform(src) },
	"abs-sine": func(src rand.Source) initializers.RNG { return initializers.AbsSine(src) },
}

type TrainingConfig struct {
	// File is the training document written from Sets, then trained on.
	File string `yaml:"file"`

	// Sets are training examples in compact form, such as "2,3;5".
	Sets []string `yaml:"sets"`

	// Retries is the number of times training starts over with fresh weights after the
	// outputs become non-finite.
	Retries int `yaml:"retries"`
}

// DefaultConfig returns the configuration of the adder examples: a 2-2-1 network learning
// sums of two numbers.
func DefaultConfig() *Config {
	return &Config{
		Network: NetworkConfig{
			Input:        2,
			Hidden:       2,
			Output:       1,
			LearningRate: 0.005,
			Epochs:       2000,
			Activation:   activations.Identity().TypeString(),
			Weights:      "uniform",
		},
		Training: TrainingConfig{
			File:    "adder.xml",
			Sets:    []string{"2,3;5", "3,2;5", "6,2;8"},
			Retries: 10,
		},
		Output:   "adder.net",
		LogLevel: "info",
	}
}

// LoadConfig returns DefaultConfig overlaid with the YAML file at path. An empty path gives the
// defaults. The result is validated.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, cfg.Validate()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read config file %q", path)
	}

	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "Failed to parse config file %q", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "Invalid config file %q", path)
	}

	return cfg, nil
}

// Validate checks the values neuralpp.New would reject, and those only the command programs
// use.
func (c *Config) Validate() error {
	n := c.Network
	if n.Input < 1 || n.Hidden < 1 || n.Output < 1 {
		return errors.Errorf("Layer sizes must be positive, got %d-%d-%d", n.Input, n.Hidden, n.Output)
	} else if n.Epochs < 0 {
		return errors.Errorf("Epochs must not be negative, got %d", n.Epochs)
	} else if _, ok := activations.Get(n.Activation); !ok {
		return errors.Errorf("Unknown activation %q, expected one of %s", n.Activation, strings.Join(activations.Names(), ", "))
	} else if _, ok := weightRNGs[n.Weights]; !ok {
		return errors.Errorf("Unknown weight distribution %q", n.Weights)
	} else if c.Training.Retries < 0 {
		return errors.Errorf("Retries must not be negative, got %d", c.Training.Retries)
	}

	if _, err := zap.ParseAtomicLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "Bad log level")
	}

	return nil
}

// Options returns the neuralpp options matching the configuration.
func (n NetworkConfig) Options(logger *zap.Logger) []neuralpp.Option {
	opts := []neuralpp.Option{neuralpp.WithThreshold(n.Threshold), neuralpp.WithLogger(logger)}

	if act, ok := activations.Get(n.Activation); ok {
		opts = append(opts, neuralpp.WithActivation(act))
	}

	if newRNG, ok := weightRNGs[n.Weights]; ok {
		opts = append(opts, neuralpp.WithRNG(newRNG(initializers.NewSource(n.Seed))))
	}

	return opts
}

// NewNetwork builds a fresh network as configured.
func (n NetworkConfig) NewNetwork(logger *zap.Logger) (*neuralpp.Network, error) {
	return neuralpp.New(n.Input, n.Hidden, n.Output, n.LearningRate, n.Epochs, n.Options(logger)...)
}

// Datums parses the configured training sets.
func (t TrainingConfig) Datums() ([]neuralpp.Datum, error) {
	data := make([]neuralpp.Datum, len(t.Sets))
	for i, s := range t.Sets {
		d, err := neuralpp.ParseSet(s)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad training set %d", i)
		}

		data[i] = d
	}

	return data, nil
}

// NewLogger returns a console logger at the given level, such as "debug" or "info".
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "Bad log level")
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.DisableStacktrace = true
	return cfg.Build()
}
