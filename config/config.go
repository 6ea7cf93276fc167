// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/xbh0403/CSE-282-Project/internal/align"
	"github.com/xbh0403/CSE-282-Project/internal/recovery"
)

const (
	// DefaultThreshold is the final score a record has to beat to be recovered
	DefaultThreshold = 25

	// DefaultK is the number of epitopes to select
	DefaultK = 2

	// EnvPrefix is prepended to settings read from the environment,
	// ex: JUNKREAD_ALIGN_INDEL
	EnvPrefix = "JUNKREAD"
)

// AlignConfig is the scoring of the overlap aligner
type AlignConfig struct {
	// reward for a pair of identical bases
	Match int `mapstructure:"match"`

	// penalty for a pair of different bases
	Mismatch int `mapstructure:"mismatch"`

	// penalty for a base against a gap
	Indel int `mapstructure:"indel"`
}

// OverlapConfig is the scoring of two aligned overlaps against each other
type OverlapConfig struct {
	// reward per position where the overlaps agree
	Match int `mapstructure:"match"`

	// penalty per position where they don't
	Mismatch int `mapstructure:"mismatch"`
}

// Config is the root-level settings struct and is a mix
// of settings available in a settings file, the environment
// and those available from the command line
type Config struct {
	// aligner scores
	Align AlignConfig `mapstructure:"align"`

	// overlap comparison scores
	Overlap OverlapConfig `mapstructure:"overlap"`

	// minimum (exclusive) final score of a recovered read
	Threshold int `mapstructure:"threshold"`

	// number of epitopes to select
	K int `mapstructure:"k"`

	// number of parallel workers, 0 for one per core
	Workers int `mapstructure:"workers"`

	// whether to draw progress bars on stderr
	Progress bool `mapstructure:"progress"`
}

// SetDefaults registers the default of every setting with v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("align.match", 1)
	v.SetDefault("align.mismatch", 1)
	v.SetDefault("align.indel", 1)
	v.SetDefault("overlap.match", 1)
	v.SetDefault("overlap.mismatch", 1)
	v.SetDefault("threshold", DefaultThreshold)
	v.SetDefault("k", DefaultK)
	v.SetDefault("workers", 0)
	v.SetDefault("progress", false)
}

// Init points v at the environment and, if filename isn't empty, a YAML or
// JSON settings file.
func Init(v *viper.Viper, filename string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if filename == "" {
		return nil
	}

	v.SetConfigFile(filename)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read settings from %s: %w", filename, err)
	}
	return nil
}

// New returns a new Config struct populated by the global Viper
// settings (settings file, environment and command line arguments)
func New() (*Config, error) {
	return FromViper(viper.GetViper())
}

// FromViper decodes and validates the settings in v
func FromViper(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects settings no command can run with
func (c *Config) Validate() error {
	var errs []error
	if c.K < 0 {
		errs = append(errs, fmt.Errorf("k must be at least 0, got %d", c.K))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be at least 0, got %d", c.Workers))
	}
	if c.Align.Indel < 0 {
		errs = append(errs, fmt.Errorf("align.indel must be at least 0, got %d", c.Align.Indel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid settings: %w", errors.Join(errs...))
	}
	return nil
}

// Params are the scores the recovery pipeline runs with
func (c *Config) Params() recovery.Params {
	return recovery.Params{
		Scores: align.Scores{
			Match:    c.Align.Match,
			Mismatch: c.Align.Mismatch,
			Indel:    c.Align.Indel,
		},
		OverlapMatch:    c.Overlap.Match,
		OverlapMismatch: c.Overlap.Mismatch,
	}
}
