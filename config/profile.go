// Package config loads sampling profiles: YAML documents describing which
// function to sample and on which grid.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/on-the-ground/sampled_go/shared/log"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Sampling modes.
const (
	ModeFixed    = "fixed"
	ModeExtended = "extended"
)

var ErrInvalidProfile = errors.New("config: invalid profile")

// StopRule stops an extended range when the function value leaves
// [Below, AtOrAbove). Unset bounds do not stop.
type StopRule struct {
	Below     *float64 `yaml:"below"`
	AtOrAbove *float64 `yaml:"atOrAbove"`
}

// Profile describes one sampling.
type Profile struct {
	Name       string  `yaml:"name"`
	Function   string  `yaml:"function"`
	Mode       string  `yaml:"mode"`
	Lower      float64 `yaml:"lower"`
	Subsamples int     `yaml:"subsamples"`

	// fixed mode
	Upper float64 `yaml:"upper"`
	Size  int     `yaml:"size"`

	// extended mode
	Step       float64  `yaml:"step"`
	AtLeast    float64  `yaml:"atLeast"`
	Stop       StopRule `yaml:"stop"`
	MaxSamples int      `yaml:"maxSamples"`

	LogLevel log.LogLevel `yaml:"logLevel"`
}

// Load reads the profile at path, loads the given .env files into the
// environment, and applies environment overrides.
func Load(path string, envFiles ...string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("failed to load env files: %w", err)
		}
	}
	if err := p.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse decodes a profile and fills defaults. It does not validate.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if p.Mode == "" {
		p.Mode = ModeFixed
	}
	if p.Subsamples == 0 {
		p.Subsamples = 1
	}
	if p.LogLevel == "" {
		p.LogLevel = log.LogInfo
	}
	return &p, nil
}

// ApplyEnv overrides fields from the variables named in keys.go.
func (p *Profile) ApplyEnv(lookup func(string) (string, bool)) error {
	var err error
	if v, ok := lookup(EnvLogLevel); ok {
		level, perr := log.ParseLevel(v)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", EnvLogLevel, perr))
		} else {
			p.LogLevel = level
		}
	}
	if v, ok := lookup(EnvMaxSamples); ok {
		n, perr := strconv.Atoi(v)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", EnvMaxSamples, perr))
		} else {
			p.MaxSamples = n
		}
	}
	if v, ok := lookup(EnvSubsamples); ok {
		n, perr := strconv.Atoi(v)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", EnvSubsamples, perr))
		} else {
			p.Subsamples = n
		}
	}
	return err
}

// Validate reports every problem of p at once. Numeric constraints of the
// grid itself are left to the sampled constructors.
func (p *Profile) Validate() error {
	var err error
	if p.Function == "" {
		err = multierr.Append(err, fmt.Errorf("%w: function is required", ErrInvalidProfile))
	}
	if _, perr := log.ParseLevel(string(p.LogLevel)); perr != nil {
		err = multierr.Append(err, fmt.Errorf("%w: %v", ErrInvalidProfile, perr))
	}
	if p.MaxSamples < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: maxSamples must not be negative", ErrInvalidProfile))
	}
	switch p.Mode {
	case ModeFixed:
	case ModeExtended:
		if p.Stop.Below == nil && p.Stop.AtOrAbove == nil {
			err = multierr.Append(err, fmt.Errorf("%w: extended mode needs a stop rule", ErrInvalidProfile))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("%w: unknown mode %q", ErrInvalidProfile, p.Mode))
	}
	return err
}

// Stops reports whether the rule stops at value y.
func (r StopRule) Stops(_ float64, y float64) bool {
	return (r.Below != nil && y < *r.Below) || (r.AtOrAbove != nil && y >= *r.AtOrAbove)
}

// String names the rule, for cache keys and logs.
func (r StopRule) String() string {
	s := "stop"
	if r.Below != nil {
		s += fmt.Sprintf(":below=%g", *r.Below)
	}
	if r.AtOrAbove != nil {
		s += fmt.Sprintf(":atOrAbove=%g", *r.AtOrAbove)
	}
	return s
}
