package glide

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid lattice config")

// Spacing is the distance between neighbouring lattice points.
const Spacing = 2.0

// PauseEvent freezes the animation once simulated time reaches At and keeps it
// frozen until the wall clock passes the pause instant plus Duration.
type PauseEvent struct {
	At       float64 `yaml:"at"`
	Duration float64 `yaml:"duration"`
}

// Params holds the animation tunables.
type Params struct {
	StartDelay float64      `yaml:"start_delay"`
	Speed      float64      `yaml:"speed"`
	MoveDist   int          `yaml:"move_dist"`
	Pauses     []PauseEvent `yaml:"pauses"`
}

// Config controls the lattice extent and animation.
type Config struct {
	Size   int        `yaml:"size"`
	Start  [3]float64 `yaml:"start"`
	Params Params     `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size: 20,
		Params: Params{
			StartDelay: 3,
			Speed:      1,
			MoveDist:   1,
			Pauses:     []PauseEvent{{At: 6.9, Duration: 3.0}},
		},
	}
}

// LoadConfig reads a YAML file on top of the defaults. Keys absent from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Resolve builds the configuration a command runs with: the YAML file at path
// (or the defaults when path is empty) with overrides applied on top.
func Resolve(path string, overrides map[string]string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return c, err
		}
		c = loaded
	}
	c = ApplyMap(c, overrides)
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values are ignored; range problems surface from Validate.
func FromMap(cfg map[string]string) Config {
	return ApplyMap(DefaultConfig(), cfg)
}

// ApplyMap overlays flag-style key/value pairs on c.
func ApplyMap(c Config, cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Size = parsed
		}
	}
	for i, key := range [3]string{"start_x", "start_y", "start_z"} {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				c.Start[i] = parsed
			}
		}
	}
	if v, ok := cfg["start_delay"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.StartDelay = parsed
		}
	}
	if v, ok := cfg["speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.Speed = parsed
		}
	}
	if v, ok := cfg["move_dist"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Params.MoveDist = parsed
		}
	}
	if v, ok := cfg["pauses"]; ok {
		if parsed, err := ParsePauses(v); err == nil {
			c.Params.Pauses = parsed
		}
	}
	return c
}

// ParsePauses parses "at:duration" pairs separated by commas. An empty string
// yields no events.
func ParsePauses(s string) ([]PauseEvent, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "none" {
		return nil, nil
	}
	var out []PauseEvent
	for _, part := range strings.Split(s, ",") {
		at, dur, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("pause %q: want at:duration", part)
		}
		a, err := strconv.ParseFloat(at, 64)
		if err != nil {
			return nil, fmt.Errorf("pause %q: %w", part, err)
		}
		d, err := strconv.ParseFloat(dur, 64)
		if err != nil {
			return nil, fmt.Errorf("pause %q: %w", part, err)
		}
		out = append(out, PauseEvent{At: a, Duration: d})
	}
	return out, nil
}

// FormatPauses is the inverse of ParsePauses.
func FormatPauses(events []PauseEvent) string {
	if len(events) == 0 {
		return "none"
	}
	parts := make([]string, len(events))
	for i, e := range events {
		parts[i] = strconv.FormatFloat(e.At, 'f', -1, 64) + ":" + strconv.FormatFloat(e.Duration, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Layers returns the number of lattice points along each axis. It assumes a
// validated config.
func (c Config) Layers() [3]int {
	var n [3]int
	for i, s := range c.Start {
		n[i] = int(math.Round((float64(c.Size)-s)/Spacing)) + 1
	}
	return n
}

// GlidePlane returns the y coordinate separating static atoms from the
// translating half-crystal.
func (c Config) GlidePlane() float64 { return float64(c.Size / 2) }

// Validate rejects configurations that cannot produce a well-formed lattice.
func (c Config) Validate() error {
	for i, s := range c.Start {
		span := float64(c.Size) - s
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: start[%d] is not finite", ErrInvalidConfig, i)
		}
		steps := span / Spacing
		if steps != math.Trunc(steps) {
			return fmt.Errorf("%w: size %d is not reachable from start[%d]=%g in steps of %g", ErrInvalidConfig, c.Size, i, s, Spacing)
		}
		if steps < 1 {
			return fmt.Errorf("%w: start[%d]=%g leaves fewer than two layers below size %d", ErrInvalidConfig, i, s, c.Size)
		}
	}
	p := c.Params
	if !(p.Speed > 0) || math.IsInf(p.Speed, 0) {
		return fmt.Errorf("%w: speed must be positive, got %g", ErrInvalidConfig, p.Speed)
	}
	if p.MoveDist <= 0 {
		return fmt.Errorf("%w: move_dist must be positive, got %d", ErrInvalidConfig, p.MoveDist)
	}
	if !(p.StartDelay >= 0) {
		return fmt.Errorf("%w: start_delay must not be negative, got %g", ErrInvalidConfig, p.StartDelay)
	}
	for i, e := range p.Pauses {
		if !(e.At >= 0) || !(e.Duration >= 0) {
			return fmt.Errorf("%w: pause %d (%g, %g) must be non-negative", ErrInvalidConfig, i, e.At, e.Duration)
		}
	}
	return nil
}
