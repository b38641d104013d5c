package dla

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"dla/internal/particle"
	"dla/internal/spatial"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// MinWidth is the smallest accepted grid side.
const MinWidth = 101

// Params holds the aggregation tunables. Distances are squared.
type Params struct {
	Stickiness float64 `yaml:"stickiness"`
	Drift      float64 `yaml:"drift"`
	// DriftDecay is k in drift *= exp(-k * iteration), applied while drift > 0.5.
	DriftDecay float64 `yaml:"drift_decay"`

	MaxDist      int `yaml:"max_dist"`
	MinSpawnDist int `yaml:"min_spawn_dist"`
	// MaxSteps caps one walk; 0 means unlimited.
	MaxSteps   int `yaml:"max_steps"`
	Iterations int `yaml:"iterations"`

	BoundarySpawn bool                  `yaml:"boundary_spawn"`
	Connectivity  particle.Connectivity `yaml:"connectivity"`
	AttractCenter bool                  `yaml:"attract_center"`
	Index         spatial.Kind          `yaml:"index"`
}

// Config controls the DLA field.
type Config struct {
	Width int   `yaml:"width"`
	Seed  int64 `yaml:"seed"`

	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width: 201,
		Seed:  1337,
		Params: Params{
			Stickiness:   0.5,
			Drift:        1.0,
			DriftDecay:   1e-5,
			MaxDist:      400,
			MinSpawnDist: 25,
			Iterations:   5000,
			Connectivity: particle.Conn4,
			Index:        spatial.KindTree,
		},
	}
}

// Load reads a YAML file over the embedded defaults. Fields missing from the
// file keep their default value. An empty path returns the defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// WriteYAML saves the configuration as YAML.
func (c Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// FromMap populates the default config from a string map (flag-style
// key/value pairs).
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().WithOverrides(cfg)
}

// WithOverrides returns a copy of c with the recognised keys of cfg applied.
// Unparseable values are ignored; range checks happen in Validate.
func (c Config) WithOverrides(cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Width = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["stickiness"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.Stickiness = parsed
		}
	}
	if v, ok := cfg["drift"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.Drift = parsed
		}
	}
	if v, ok := cfg["drift_decay"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.DriftDecay = parsed
		}
	}
	if v, ok := cfg["max_dist"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Params.MaxDist = parsed
		}
	}
	if v, ok := cfg["min_spawn_dist"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Params.MinSpawnDist = parsed
		}
	}
	if v, ok := cfg["max_steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Params.MaxSteps = parsed
		}
	}
	if v, ok := cfg["iterations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Params.Iterations = parsed
		}
	}
	if v, ok := cfg["boundary_spawn"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.BoundarySpawn = parsed
		}
	}
	if v, ok := cfg["attract_center"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.AttractCenter = parsed
		}
	}
	if v, ok := cfg["conn"]; ok {
		if parsed, err := particle.ParseConnectivity(v); err == nil {
			c.Params.Connectivity = parsed
		}
	}
	if v, ok := cfg["index"]; ok {
		c.Params.Index = spatial.Kind(v)
	}
	return c
}

// Center returns the coordinate of the seed pixel.
func (c Config) Center() int { return c.Width / 2 }

// Validate checks every constraint that would otherwise make the field
// misbehave or fail to terminate.
func (c Config) Validate() error {
	p := c.Params
	if c.Width < MinWidth || c.Width%2 == 0 {
		return fmt.Errorf("width %d must be odd and at least %d: %w", c.Width, MinWidth, ErrConfig)
	}
	if p.Stickiness < 0 || p.Stickiness > 1 {
		return fmt.Errorf("stickiness %g outside [0,1]: %w", p.Stickiness, ErrConfig)
	}
	if p.Stickiness == 0 && p.Iterations > 0 {
		// A lone seed can never box a walker in, so nothing would ever join.
		return fmt.Errorf("stickiness 0 cannot grow %d attachments: %w", p.Iterations, ErrConfig)
	}
	if p.Drift < 0 {
		return fmt.Errorf("drift %g is negative: %w", p.Drift, ErrConfig)
	}
	if p.DriftDecay < 0 {
		return fmt.Errorf("drift decay %g is negative: %w", p.DriftDecay, ErrConfig)
	}
	if p.MaxDist <= 0 {
		return fmt.Errorf("max dist %d must be positive: %w", p.MaxDist, ErrConfig)
	}
	if p.MinSpawnDist < 0 {
		return fmt.Errorf("min spawn dist %d is negative: %w", p.MinSpawnDist, ErrConfig)
	}
	if p.MinSpawnDist > p.MaxDist {
		return fmt.Errorf("spawn band [%d,%d] is empty: %w", p.MinSpawnDist, p.MaxDist, ErrConfig)
	}
	ctr := c.Center()
	if p.BoundarySpawn {
		// The closest ring cell sits ctr rows from the seed.
		if p.MaxDist < ctr*ctr {
			return fmt.Errorf("max dist %d rejects every boundary spawn (need >= %d): %w", p.MaxDist, ctr*ctr, ErrConfig)
		}
	} else if reach := 2 * (ctr - 1) * (ctr - 1); p.MinSpawnDist > reach {
		return fmt.Errorf("min spawn dist %d exceeds interior reach %d: %w", p.MinSpawnDist, reach, ErrConfig)
	}
	if p.MaxSteps < 0 {
		return fmt.Errorf("max steps %d is negative: %w", p.MaxSteps, ErrConfig)
	}
	// No cell is farther than the corners, 2*ctr² from the seed.
	if p.MaxSteps == 0 && p.MaxDist >= 2*ctr*ctr {
		return fmt.Errorf("max dist %d never rejects a walker (need < %d or max_steps > 0): %w", p.MaxDist, 2*ctr*ctr, ErrConfig)
	}
	if p.Iterations < 0 || p.Iterations >= c.Width*c.Width {
		return fmt.Errorf("iterations %d outside [0,%d): %w", p.Iterations, c.Width*c.Width, ErrConfig)
	}
	if !p.Connectivity.Valid() {
		return fmt.Errorf("connectivity %d: %w", p.Connectivity, ErrConfig)
	}
	switch p.Index {
	case spatial.KindTree, spatial.KindBuckets, "":
	default:
		return fmt.Errorf("index kind %q: %w", p.Index, ErrConfig)
	}
	return nil
}
