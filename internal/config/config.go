// Package config describes a batch of table loading experiments: which word
// files to load, and with which capacities and hash bases.
package config

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/theflywheel/probetable"
	"gopkg.in/yaml.v2"
)

// Hash function names accepted in the hash field
const (
	HashPolynomial = "polynomial"
	HashXXHash     = "xxhash"
)

// Config is the YAML configuration of a report run
type Config struct {
	// Files are the word lists to load, one word per line.
	Files []string `yaml:"files"`
	// Capacities are the initial table capacities to try.
	Capacities []int `yaml:"capacities"`
	// Bases are the hash bases to try.
	Bases []int `yaml:"bases"`
	// MaxTime is the load budget of a single combination; 0 disables it.
	MaxTime time.Duration `yaml:"max_time"`
	// Output is the path of the CSV report.
	Output string `yaml:"output"`
	// Parallelism bounds how many combinations load at once.
	Parallelism int `yaml:"parallelism"`
	// Hash selects the hash function, "polynomial" or "xxhash".
	Hash string `yaml:"hash"`
}

// Default returns the 27 combinations of three word lists, three
// capacities and three bases, each loaded under a ten second budget.
func Default() Config {
	return Config{
		Files:       []string{"french.txt", "english_small.txt", "english_large.txt"},
		Capacities:  []int{250727, 402221, 1000081},
		Bases:       []int{1, 27183, 250726},
		MaxTime:     10 * time.Second,
		Output:      "output_task2.csv",
		Parallelism: 1,
		Hash:        HashPolynomial,
	}
}

// Parse decodes YAML on top of Default. Unknown fields are an error.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "parsing config")
	}
	return cfg, cfg.Validate()
}

// Load reads and parses the config file at path
func Load(fs afero.Fs, path string) (Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config")
	}
	cfg, err := Parse(data)
	return cfg, errors.Wrapf(err, "%s", path)
}

// Validate checks that the config describes at least one combination
func (c Config) Validate() error {
	if len(c.Files) == 0 {
		return errors.New("no files configured")
	}
	if len(c.Capacities) == 0 {
		return errors.New("no capacities configured")
	}
	if len(c.Bases) == 0 {
		return errors.New("no hash bases configured")
	}
	for _, capacity := range c.Capacities {
		if capacity <= 0 {
			return errors.Newf("capacity must be positive, got %d", capacity)
		}
	}
	if c.MaxTime < 0 {
		return errors.Newf("max_time must not be negative, got %s", c.MaxTime)
	}
	if c.Parallelism < 1 {
		return errors.Newf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	_, err := c.HashFunc()
	return err
}

// HashFunc returns the hash function named by c.Hash. An empty name means
// the polynomial hash.
func (c Config) HashFunc() (probetable.HashFunc, error) {
	switch c.Hash {
	case "", HashPolynomial:
		return probetable.Polynomial, nil
	case HashXXHash:
		return probetable.XXHash, nil
	default:
		return nil, errors.WithHintf(
			errors.Newf("unknown hash function %q", c.Hash),
			"use %q or %q", HashPolynomial, HashXXHash)
	}
}
