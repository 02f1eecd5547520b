package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim        string
	ConfigPath string
	Width      int
	Height     int
	HUDWidth   int
	TPS        int
	Yaw        float64
	Pitch      float64
	Overrides  KVList
	Verbose    bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "glide", Width: 900, Height: 720, HUDWidth: 240, TPS: 60, Yaw: 35, Pitch: 25}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML configuration file")
	fs.IntVar(&c.Width, "width", c.Width, "scene width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels (0 hides it)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Float64Var(&c.Yaw, "yaw", c.Yaw, "camera yaw in degrees")
	fs.Float64Var(&c.Pitch, "pitch", c.Pitch, "camera pitch in degrees")
	fs.Var(&c.Overrides, "set", "parameter override in key=value form (repeatable)")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "log debug events")
}

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the overrides keyed by name. Later entries win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		k, v, _ := strings.Cut(kv, "=")
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}
