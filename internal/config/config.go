// Package config loads the settings shared by the spice commands.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Convolution methods accepted in Config.Method.
const (
	MethodSpatial   = "spatial"
	MethodSeparable = "separable"
	MethodFrequency = "frequency"
	MethodOpenCV    = "opencv"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid value")

// Config holds processing defaults. Command line flags override values read
// from a file.
type Config struct {
	// Method selects the convolution strategy.
	Method string `toml:"method"`
	// Sigma is the Gaussian standard deviation used by blur.
	Sigma float64 `toml:"sigma"`
	// Radius is the adaptive threshold window radius.
	Radius int `toml:"radius"`
	// Threshold is the adaptive threshold level in [0, 1].
	Threshold float64 `toml:"threshold"`
	// Workers bounds parallelism; 0 means GOMAXPROCS.
	Workers int `toml:"workers"`
	// Format is the output sample format, "uint8" or "uint16".
	Format string `toml:"format"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Method:    MethodSeparable,
		Sigma:     2,
		Radius:    15,
		Threshold: 0.5,
		Format:    "uint8",
		LogLevel:  "info",
	}
}

// Load reads a TOML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("config %s: %s", path, strict.String())
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks every field and reports the first invalid one.
func (c Config) Validate() error {
	switch c.Method {
	case MethodSpatial, MethodSeparable, MethodFrequency, MethodOpenCV:
	default:
		return fmt.Errorf("%w: method %q", ErrInvalid, c.Method)
	}
	if !(c.Sigma > 0) {
		return fmt.Errorf("%w: sigma %v must be positive", ErrInvalid, c.Sigma)
	}
	if c.Radius < 0 {
		return fmt.Errorf("%w: radius %d is negative", ErrInvalid, c.Radius)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v outside [0, 1]", ErrInvalid, c.Threshold)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d is negative", ErrInvalid, c.Workers)
	}
	switch c.Format {
	case "uint8", "uint16":
	default:
		return fmt.Errorf("%w: format %q", ErrInvalid, c.Format)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalid, name)
	}
	return level, nil
}

// Marshal renders c as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
