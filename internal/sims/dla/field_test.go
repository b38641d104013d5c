package dla

import (
	"errors"
	"math"
	"slices"
	"testing"

	"dla/internal/core"
	"dla/internal/particle"
	"dla/internal/spatial"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 101
	cfg.Seed = 7
	return cfg
}

func mustField(t *testing.T, cfg Config) *Field {
	t.Helper()
	f, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	return f
}

func TestNewWithConfigRejectsInvalid(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"TooSmall", func(c *Config) { c.Width = 99 }},
		{"EvenWidth", func(c *Config) { c.Width = 102 }},
		{"StickinessAboveOne", func(c *Config) { c.Params.Stickiness = 1.5 }},
		{"StickinessNegative", func(c *Config) { c.Params.Stickiness = -0.1 }},
		{"NegativeDrift", func(c *Config) { c.Params.Drift = -1 }},
		{"NegativeDecay", func(c *Config) { c.Params.DriftDecay = -1 }},
		{"ZeroMaxDist", func(c *Config) { c.Params.MaxDist = 0 }},
		{"EmptyBand", func(c *Config) { c.Params.MinSpawnDist = 500; c.Params.MaxDist = 400 }},
		{"UnreachableBand", func(c *Config) { c.Params.MinSpawnDist = 1 << 20; c.Params.MaxDist = 1 << 21 }},
		{"BoundaryUnreachable", func(c *Config) { c.Params.BoundarySpawn = true; c.Params.MaxDist = 100 }},
		{"NegativeSteps", func(c *Config) { c.Params.MaxSteps = -1 }},
		{"BudgetTooLarge", func(c *Config) { c.Params.Iterations = 101 * 101 }},
		{"ZeroStickinessWithBudget", func(c *Config) { c.Params.Stickiness = 0 }},
		{"UnboundedWalk", func(c *Config) { c.Params.MaxDist = 2 * 50 * 50 }},
		{"BadConnectivity", func(c *Config) { c.Params.Connectivity = 6 }},
		{"BadIndex", func(c *Config) { c.Params.Index = "quadtree" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			f, err := NewWithConfig(cfg)
			if !errors.Is(err, ErrConfig) {
				t.Fatalf("NewWithConfig error = %v; want ErrConfig", err)
			}
			if f != nil {
				t.Fatal("expected nil field on configuration error")
			}
		})
	}
}

func TestResetSeedsCenter(t *testing.T) {
	f := mustField(t, testConfig())

	c := core.Point{X: 50, Y: 50}
	if f.Center() != c {
		t.Fatalf("center = %v; want %v", f.Center(), c)
	}
	if !f.IsAggregated(c) {
		t.Fatal("seed missing from index")
	}
	if v, _ := f.Grid().At(c); v != CellAggregate {
		t.Fatalf("seed cell = %d; want %d", v, CellAggregate)
	}
	if got := f.Grid().Count(CellEmpty); got != 101*101-1 {
		t.Fatalf("empty cells = %d; want %d", got, 101*101-1)
	}
	if f.AggregateSize() != 1 || f.Iteration() != 0 {
		t.Fatalf("size=%d iteration=%d; want 1 and 0", f.AggregateSize(), f.Iteration())
	}
}

func TestRunYieldsOncePerAttachment(t *testing.T) {
	cfg := testConfig()
	cfg.Params.Stickiness = 1
	cfg.Params.Drift = 0
	cfg.Params.MaxDist = 1 << 20
	cfg.Params.MaxSteps = 1 << 20
	cfg.Params.MinSpawnDist = 1
	f := mustField(t, cfg)

	var counts []int
	prev := f.AggregateSize()
	for grid, count := range f.Run(5) {
		if grid != f.Grid() {
			t.Fatal("Run must yield the live grid")
		}
		counts = append(counts, count)
		if count == 0 {
			continue
		}
		if got := f.AggregateSize(); got != prev+1 {
			t.Fatalf("after count %d aggregate size = %d; want %d", count, got, prev+1)
		}
		prev = f.AggregateSize()
	}
	if err := f.Err(); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if want := []int{0, 1, 2, 3, 4, 5}; !slices.Equal(counts, want) {
		t.Fatalf("counts = %v; want %v", counts, want)
	}
	if f.Grid().Count(CellWalker) != 0 {
		t.Fatal("no walker should remain on the grid between attachments")
	}
}

func TestRunStopsEarlyAndResumes(t *testing.T) {
	cfg := testConfig()
	cfg.Params.Stickiness = 1
	f := mustField(t, cfg)

	for _, count := range f.Run(10) {
		if count == 2 {
			break
		}
	}
	if f.Iteration() != 2 {
		t.Fatalf("iteration = %d; want 2", f.Iteration())
	}

	last := 0
	for _, count := range f.Run(3) {
		last = count
	}
	if last != 3 || f.Iteration() != 5 || f.AggregateSize() != 6 {
		t.Fatalf("last=%d iteration=%d size=%d; want 3, 5, 6", last, f.Iteration(), f.AggregateSize())
	}
}

func TestZeroStickinessOnlyRejects(t *testing.T) {
	cfg := testConfig()
	cfg.Params.Stickiness = 0
	cfg.Params.MaxSteps = 200
	cfg.Params.Iterations = 0
	f := mustField(t, cfg)

	walks := 0
	for out := range f.Outcomes(50) {
		walks++
		if out.State != Rejected {
			t.Fatalf("walk %d ended %s; want rejected", walks, out.State)
		}
	}
	if walks != 50 {
		t.Fatalf("walks = %d; want 50", walks)
	}
	if f.AggregateSize() != 1 || f.Iteration() != 0 {
		t.Fatalf("aggregate grew to %d", f.AggregateSize())
	}
	if f.Grid().Count(CellWalker) != 0 {
		t.Fatal("rejected walkers must be cleared from the grid")
	}
}

func TestRunWithZeroStickinessEnds(t *testing.T) {
	cfg := testConfig()
	cfg.Params.Stickiness = 0
	cfg.Params.Iterations = 0
	f := mustField(t, cfg)

	var counts []int
	for _, count := range f.Run(3) {
		counts = append(counts, count)
	}
	if !slices.Equal(counts, []int{0}) {
		t.Fatalf("counts = %v; want only the initial frame", counts)
	}
	if !errors.Is(f.Err(), ErrNoGrowth) {
		t.Fatalf("Err = %v; want ErrNoGrowth", f.Err())
	}
	if f.AggregateSize() != 1 || f.Grid().Count(CellWalker) != 0 {
		t.Fatal("a stalled run must leave the field untouched")
	}
}

func TestMaxDistBoundsWalkWithoutStepCap(t *testing.T) {
	cfg := testConfig()
	cfg.Params.MaxSteps = 0
	cfg.Params.MaxDist = 2*50*50 - 1
	f := mustField(t, cfg)

	// The corner is the one cell farther than MaxDist from the seed.
	w := walkerAt(t, f, 0, 0)
	if out := f.walk(w); out.State != Rejected || out.Steps != 0 {
		t.Fatalf("outcome %+v; want the corner walker rejected at once", out)
	}
}

func TestAggregateGrowsMonotonically(t *testing.T) {
	for _, conn := range []particle.Connectivity{particle.Conn4, particle.Conn8} {
		for _, kind := range []spatial.Kind{spatial.KindTree, spatial.KindBuckets} {
			cfg := testConfig()
			cfg.Params.Connectivity = conn
			cfg.Params.Index = kind
			cfg.Params.Stickiness = 0.8
			f := mustField(t, cfg)

			size := f.AggregateSize()
			for out := range f.Outcomes(300) {
				got := f.AggregateSize()
				if got < size {
					t.Fatalf("%s/%s: aggregate shrank from %d to %d", conn, kind, size, got)
				}
				if out.Joined() && got != size+1 {
					t.Fatalf("%s/%s: attachment grew aggregate by %d", conn, kind, got-size)
				}
				size = got
			}
			if size != f.Iteration()+1 {
				t.Fatalf("%s/%s: size %d; want iteration+1 = %d", conn, kind, size, f.Iteration()+1)
			}
			if got := f.Grid().Count(CellAggregate); got != size {
				t.Fatalf("%s/%s: grid holds %d aggregate cells; index holds %d", conn, kind, got, size)
			}
		}
	}
}

func TestResetDeterministic(t *testing.T) {
	f := mustField(t, testConfig())
	for range f.Outcomes(100) {
	}
	first := append([]uint8(nil), f.Cells()...)

	f.Reset(0)
	for range f.Outcomes(100) {
	}
	if !slices.Equal(first, f.Cells()) {
		t.Fatal("Reset with config seed not deterministic")
	}

	f.Reset(99)
	for range f.Outcomes(100) {
	}
	if slices.Equal(first, f.Cells()) {
		t.Fatal("different seeds should grow different aggregates")
	}
}

func TestStepAdvancesOneWalk(t *testing.T) {
	cfg := testConfig()
	cfg.Params.Stickiness = 1
	cfg.Params.MaxDist = 1 << 20
	cfg.Params.MaxSteps = 1 << 20
	f := mustField(t, cfg)

	var sim core.Sim = f
	for f.Iteration() == 0 {
		sim.Step()
	}
	if f.Err() != nil {
		t.Fatalf("Step error: %v", f.Err())
	}
	if f.Last().State != Attached {
		t.Fatalf("last outcome %s; want attached", f.Last().State)
	}
}

func TestDriftDecaysUntilHalf(t *testing.T) {
	cfg := testConfig()
	cfg.Params.Drift = 1
	cfg.Params.DriftDecay = 0.1
	f := mustField(t, cfg)

	want := 1.0
	for i := 1; i <= 4; i++ {
		f.finish(Attached, f.Center(), 0)
		want *= math.Exp(-0.1 * float64(i))
		if math.Abs(f.Drift()-want) > 1e-12 {
			t.Fatalf("drift after %d attachments = %f; want %f", i, f.Drift(), want)
		}
	}
	if f.Drift() > 0.5 {
		t.Fatalf("drift %f should have dropped below 0.5", f.Drift())
	}
	frozen := f.Drift()
	f.finish(Attached, f.Center(), 0)
	f.finish(Rejected, f.Center(), 0)
	if f.Drift() != frozen {
		t.Fatalf("drift changed to %f after dropping below 0.5", f.Drift())
	}
}

func TestBoundarySpawnUsesOuterRing(t *testing.T) {
	cfg := testConfig()
	cfg.Params.BoundarySpawn = true
	cfg.Params.MaxDist = 2 * 50 * 50
	cfg.Params.MaxSteps = 1000
	f := mustField(t, cfg)

	last := cfg.Width - 1
	for i := 0; i < 200; i++ {
		p, err := f.spawn()
		if err != nil {
			t.Fatalf("spawn: %v", err)
		}
		if p.X != 0 && p.X != last && p.Y != 0 && p.Y != last {
			t.Fatalf("spawn %v is not on the boundary ring", p)
		}
		if v, _ := f.Grid().At(p); v != CellWalker {
			t.Fatalf("spawned cell holds %d; want walker", v)
		}
		_ = f.Grid().Set(p, CellEmpty)
	}
}

func TestBoundaryCellCoversRing(t *testing.T) {
	f := mustField(t, testConfig())
	m := f.Config().Width
	seen := map[core.Point]bool{}
	for i := 0; i < 4*(m-1); i++ {
		p := f.boundaryCell(i)
		if !f.Grid().InBounds(p) {
			t.Fatalf("boundary cell %d = %v out of bounds", i, p)
		}
		seen[p] = true
	}
	if len(seen) != 4*(m-1) {
		t.Fatalf("ring has %d distinct cells; want %d", len(seen), 4*(m-1))
	}
}

func TestInteriorSpawnRespectsBand(t *testing.T) {
	cfg := testConfig()
	cfg.Params.MinSpawnDist = 25
	cfg.Params.MaxDist = 100
	f := mustField(t, cfg)

	for i := 0; i < 200; i++ {
		p, err := f.spawn()
		if err != nil {
			t.Fatalf("spawn: %v", err)
		}
		d := p.DistSq(f.Center())
		if d < 25 || d > 100 {
			t.Fatalf("spawn %v at dist² %d outside [25,100]", p, d)
		}
		_ = f.Grid().Set(p, CellEmpty)
	}
}

func TestRegistered(t *testing.T) {
	factory, ok := core.Sims()["dla"]
	if !ok {
		t.Fatal("dla not registered")
	}
	sim, err := factory(map[string]string{"w": "101", "stickiness": "0.3"})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if sim.Size() != (core.Size{W: 101, H: 101}) {
		t.Fatalf("size = %v", sim.Size())
	}
	if _, err := factory(map[string]string{"w": "100"}); !errors.Is(err, ErrConfig) {
		t.Fatalf("factory with even width error = %v; want ErrConfig", err)
	}
}

func TestParametersReportLiveDrift(t *testing.T) {
	f := mustField(t, testConfig())
	f.drift = 0.25
	p, ok := f.Parameters().Lookup("drift")
	if !ok || p.Value != "0.25" {
		t.Fatalf("drift parameter = %+v, %v", p, ok)
	}
}
