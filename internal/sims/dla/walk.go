package dla

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"dla/internal/core"
	"dla/internal/particle"

	"gonum.org/v1/gonum/floats"
)

// State is the terminal state of one walk.
type State uint8

const (
	// Rejected walkers strayed beyond MaxDist or ran out of steps.
	Rejected State = iota
	// Attached walkers passed the stickiness roll next to the aggregate.
	Attached
	// Encircled walkers had no free neighbour and were attached in place.
	Encircled
)

func (s State) String() string {
	switch s {
	case Rejected:
		return "rejected"
	case Attached:
		return "attached"
	case Encircled:
		return "encircled"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// Outcome describes how one walk ended.
type Outcome struct {
	State State
	// Point is the final position of the walker.
	Point core.Point
	// Steps counts the moves taken.
	Steps int
	// Iteration is the attachment count after this walk.
	Iteration int
	// DistSq is the squared distance from Point to the seed.
	DistSq int
}

// Joined reports whether the walker became part of the aggregate.
func (o Outcome) Joined() bool { return o.State == Attached || o.State == Encircled }

// spawnAttemptsPerCell bounds rejection sampling relative to the grid area.
const spawnAttemptsPerCell = 64

// Advance releases one walker and moves it until it attaches, is encircled or
// is rejected.
func (f *Field) Advance() (Outcome, error) {
	start, err := f.spawn()
	if err != nil {
		return Outcome{}, err
	}
	return f.walk(f.newWalker(start)), nil
}

// walk drives w from its current cell to a terminal state.
func (f *Field) walk(w *particle.Particle) Outcome {
	maxSteps := f.cfg.Params.MaxSteps

	for steps := 0; ; steps++ {
		pos := w.Position()
		dist, _ := f.index.NearestDistance(pos)
		if dist > f.cfg.Params.MaxDist || (maxSteps > 0 && steps >= maxSteps) {
			f.mustSet(pos, CellEmpty)
			f.log.Debug("walker rejected", "x", pos.X, "y", pos.Y, "dist_sq", dist, "steps", steps)
			return f.finish(Rejected, pos, steps)
		}

		probs, err := f.transitionProbabilities(w)
		if errors.Is(err, ErrBoxedIn) {
			f.aggregate(pos)
			f.log.Debug("walker encircled", "x", pos.X, "y", pos.Y, "steps", steps)
			return f.finish(Encircled, pos, steps)
		}
		f.applyDrift(probs, w, f.attractor(pos))
		d := f.sampleDirection(probs, w.Connectivity().Directions())

		f.mustSet(pos, CellEmpty)
		if err := w.Move(d); err != nil {
			panic(fmt.Sprintf("dla: %v", err))
		}
		pos = w.Position()
		f.mustSet(pos, CellWalker)

		if f.tryAttach(w) {
			f.aggregate(pos)
			return f.finish(Attached, pos, steps+1)
		}
	}
}

func (f *Field) finish(s State, p core.Point, steps int) Outcome {
	if s != Rejected {
		f.iteration++
		f.decayDrift()
	}
	f.last = Outcome{State: s, Point: p, Steps: steps, Iteration: f.iteration, DistSq: p.DistSq(f.center)}
	return f.last
}

// decayDrift shrinks strong drift as the aggregate grows.
func (f *Field) decayDrift() {
	if f.drift > 0.5 {
		f.drift *= math.Exp(-f.cfg.Params.DriftDecay * float64(f.iteration))
	}
}

// spawn picks a free start cell and marks it as a walker.
func (f *Field) spawn() (core.Point, error) {
	m := f.cfg.Width
	limit := spawnAttemptsPerCell * m * m
	for attempt := 0; attempt < limit; attempt++ {
		var p core.Point
		if f.cfg.Params.BoundarySpawn {
			p = f.boundaryCell(f.rng.IntN(4 * (m - 1)))
		} else {
			p = core.Point{X: 1 + f.rng.IntN(m-2), Y: 1 + f.rng.IntN(m-2)}
		}
		if f.grid.Occupied(p) {
			continue
		}
		dist, _ := f.index.NearestDistance(p)
		if dist > f.cfg.Params.MaxDist {
			continue
		}
		if !f.cfg.Params.BoundarySpawn && dist < f.cfg.Params.MinSpawnDist {
			continue
		}
		f.mustSet(p, CellWalker)
		return p, nil
	}
	return core.Point{}, fmt.Errorf("after %d attempts with %d aggregated: %w", limit, f.index.Len(), ErrSpawnExhausted)
}

// boundaryCell maps i in [0, 4(m-1)) onto the outer ring, walking clockwise
// from the top-left corner.
func (f *Field) boundaryCell(i int) core.Point {
	last := f.cfg.Width - 1
	switch side := i / last; side {
	case 0:
		return core.Point{X: i, Y: 0}
	case 1:
		return core.Point{X: last, Y: i - last}
	case 2:
		return core.Point{X: last - (i - 2*last), Y: last}
	default:
		return core.Point{X: 0, Y: last - (i - 3*last)}
	}
}

// transitionProbabilities gives every free neighbour equal weight. The
// returned slice is reused by the next call.
func (f *Field) transitionProbabilities(w *particle.Particle) ([]float64, error) {
	probs := f.probs[:0]
	for _, n := range w.Neighbors() {
		if f.grid.Occupied(n) {
			probs = append(probs, 0)
		} else {
			probs = append(probs, 1)
		}
	}
	sum := floats.Sum(probs)
	if sum == 0 {
		return nil, ErrBoxedIn
	}
	floats.Scale(1/sum, probs)
	return probs, nil
}

// attractor is the point walkers drift toward.
func (f *Field) attractor(pos core.Point) core.Point {
	if f.cfg.Params.AttractCenter {
		return f.center
	}
	if p, ok := f.index.Nearest(pos); ok {
		return p
	}
	return f.center
}

// applyDrift multiplies the weight of every direction that closes the gap to
// target along an axis by (1 + drift), once per axis, then renormalises.
// Diagonals that close both gaps are boosted twice.
func (f *Field) applyDrift(probs []float64, w *particle.Particle, target core.Point) {
	if f.drift == 0 {
		return
	}
	pos := w.Position()
	boost := 1 + f.drift
	for i, d := range w.Connectivity().Directions() {
		if probs[i] == 0 {
			continue
		}
		dx, dy := d.Offset()
		if closes(pos.X, target.X, dx) {
			probs[i] *= boost
		}
		if closes(pos.Y, target.Y, dy) {
			probs[i] *= boost
		}
	}
	floats.Scale(1/floats.Sum(probs), probs)
}

func closes(from, to, delta int) bool {
	return (to > from && delta > 0) || (to < from && delta < 0)
}

// sampleDirection draws u in [0,1) and picks the first direction whose
// cumulative probability reaches u. Zero-probability directions are never
// chosen.
func (f *Field) sampleDirection(probs []float64, dirs []particle.Direction) particle.Direction {
	cdf := floats.CumSum(f.cdf[:len(probs)], probs)
	u := f.rng.Float64()
	i := sort.SearchFloat64s(cdf, u)
	if i >= len(cdf) {
		i = len(cdf) - 1
	}
	for i < len(probs)-1 && probs[i] == 0 {
		i++
	}
	for i > 0 && probs[i] == 0 {
		i--
	}
	return dirs[i]
}

// occupiedNeighbors counts neighbours already part of the grid's occupied set.
func (f *Field) occupiedNeighbors(w *particle.Particle) int {
	n := 0
	for _, p := range w.Neighbors() {
		if f.grid.Occupied(p) {
			n++
		}
	}
	return n
}

// tryAttach rolls once with probability min(1, stickiness × neighbours).
func (f *Field) tryAttach(w *particle.Particle) bool {
	n := f.occupiedNeighbors(w)
	if n == 0 {
		return false
	}
	p := math.Min(1, f.cfg.Params.Stickiness*float64(n))
	return f.rng.Float64() < p
}
