package app

import "flag"

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim        string
	ConfigPath string
	Scale      int
	TPS        int
	Seed       int64
	PerTick    int
	Budget     int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "dla", Scale: 3, TPS: 60, PerTick: 1}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "registered simulation to run")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML file overriding the embedded defaults")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset (0 keeps the configured seed)")
	fs.IntVar(&c.PerTick, "per-tick", c.PerTick, "attachments drawn per tick")
	fs.IntVar(&c.Budget, "iterations", c.Budget, "attachment budget (0 keeps the configured budget)")
}
