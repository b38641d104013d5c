// Package dla grows a diffusion-limited aggregate on a toroidal grid.
//
// A Field releases one walker at a time. The walker takes biased random steps
// until it sticks to the aggregate, gets boxed in (and sticks where it
// stands), or strays too far from the aggregate and is discarded.
package dla

import (
	"fmt"
	"log/slog"

	"dla/internal/core"
	"dla/internal/particle"
	"dla/internal/spatial"
)

// Cell values stored in the occupancy grid. Any non-zero value is occupied.
const (
	CellEmpty     uint8 = 0
	CellAggregate uint8 = 1
	CellWalker    uint8 = 2
)

// Field owns the occupancy grid and the index of aggregated points.
type Field struct {
	cfg Config

	grid   *core.ByteGrid
	index  spatial.Index
	center core.Point
	rng    *core.RNG

	drift     float64
	iteration int
	last      Outcome
	err       error

	// scratch buffers reused by every step
	probs []float64
	cdf   []float64

	log *slog.Logger
}

// New returns a field of the given side using the default parameters.
func New(width int) (*Field, error) {
	cfg := DefaultConfig()
	cfg.Width = width
	return NewWithConfig(cfg)
}

// NewWithConfig validates cfg and returns a field seeded from cfg.Seed.
func NewWithConfig(cfg Config) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := int(cfg.Params.Connectivity)
	f := &Field{
		cfg:   cfg,
		grid:  core.NewByteGrid(cfg.Width, cfg.Width),
		probs: make([]float64, n),
		cdf:   make([]float64, n),
		log:   slog.New(slog.DiscardHandler),
	}
	f.Reset(cfg.Seed)
	return f, nil
}

// SetLogger routes debug events to l. A nil logger silences the field.
func (f *Field) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	f.log = l
}

// Name returns the simulation identifier.
func (f *Field) Name() string { return "dla" }

// Size reports the grid dimensions.
func (f *Field) Size() core.Size { return core.Size{W: f.grid.W, H: f.grid.H} }

// Cells exposes the occupancy grid values.
func (f *Field) Cells() []uint8 { return f.grid.Cells() }

// Grid exposes the occupancy grid. Callers must not modify it.
func (f *Field) Grid() *core.ByteGrid { return f.grid }

// Config returns the configuration the field was built with.
func (f *Field) Config() Config { return f.cfg }

// Center returns the seed point.
func (f *Field) Center() core.Point { return f.center }

// AggregateSize returns the number of aggregated points, seed included.
func (f *Field) AggregateSize() int { return f.index.Len() }

// IsAggregated reports whether p belongs to the aggregate.
func (f *Field) IsAggregated(p core.Point) bool { return f.index.Contains(p) }

// Iteration returns the attachments since the last Reset.
func (f *Field) Iteration() int { return f.iteration }

// Drift returns the current drift coefficient.
func (f *Field) Drift() float64 { return f.drift }

// Last returns the outcome of the most recent walk.
func (f *Field) Last() Outcome { return f.last }

// Err returns the error that stopped the last Run, Outcomes or Step.
func (f *Field) Err() error { return f.err }

// Reset clears the grid and the aggregate and seeds the centre pixel. A zero
// seed reuses the configured seed.
func (f *Field) Reset(seed int64) {
	if seed == 0 {
		seed = f.cfg.Seed
	}
	f.rng = core.NewRNG(seed)
	f.grid.Clear()
	f.index = spatial.New(f.cfg.Params.Index)
	f.drift = f.cfg.Params.Drift
	f.iteration = 0
	f.last = Outcome{}
	f.err = nil

	c := f.cfg.Center()
	f.center = core.Point{X: c, Y: c}
	f.aggregate(f.center)
}

// Step releases one walker and follows it to the end of its walk.
func (f *Field) Step() {
	if f.err != nil {
		return
	}
	if _, err := f.Advance(); err != nil {
		f.err = err
	}
}

func (f *Field) aggregate(p core.Point) {
	f.mustSet(p, CellAggregate)
	f.index.Insert(p)
}

func (f *Field) mustSet(p core.Point, v uint8) {
	if err := f.grid.Set(p, v); err != nil {
		panic(fmt.Sprintf("dla: %v", err))
	}
}

func (f *Field) newWalker(p core.Point) *particle.Particle {
	w, err := particle.New(p.X, p.Y, f.cfg.Width, f.cfg.Params.Connectivity)
	if err != nil {
		panic(fmt.Sprintf("dla: %v", err))
	}
	return w
}

// newFromMap builds a field from a YAML file named by the "config" key, if
// any, with the remaining keys applied as overrides.
func newFromMap(kv map[string]string) (core.Sim, error) {
	cfg, err := Load(kv["config"])
	if err != nil {
		return nil, err
	}
	f, err := NewWithConfig(cfg.WithOverrides(kv))
	if err != nil {
		return nil, err
	}
	return f, nil
}

func init() {
	core.Register("dla", newFromMap)
}
