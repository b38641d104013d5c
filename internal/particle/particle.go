// Package particle models a single walker on a toroidal square grid.
package particle

import (
	"fmt"

	"dla/internal/core"
)

// Particle is a mutable position on an M×M torus.
type Particle struct {
	pos  core.Point
	m    int
	conn Connectivity
}

// New places a particle at (x, y) on a grid of side m.
func New(x, y, m int, conn Connectivity) (*Particle, error) {
	if x < 0 || x >= m || y < 0 || y >= m {
		return nil, fmt.Errorf("particle (%d,%d) on %d×%d grid: %w", x, y, m, m, core.ErrOutOfBounds)
	}
	return &Particle{pos: core.Point{X: x, Y: y}, m: m, conn: conn}, nil
}

// FromIndex places a particle at the pixel with linear index idx.
func FromIndex(idx, m int, conn Connectivity) (*Particle, error) {
	if m <= 0 || idx < 0 || idx >= m*m {
		return nil, fmt.Errorf("pixel index %d on %d×%d grid: %w", idx, m, m, core.ErrOutOfBounds)
	}
	return &Particle{pos: core.Point{X: idx % m, Y: idx / m}, m: m, conn: conn}, nil
}

// Index returns the linear pixel index y*m + x.
func (p *Particle) Index() int { return p.pos.Y*p.m + p.pos.X }

// Position returns the current coordinate.
func (p *Particle) Position() core.Point { return p.pos }

// Connectivity returns the movement scheme.
func (p *Particle) Connectivity() Connectivity { return p.conn }

// Move shifts the particle one cell in direction d, wrapping at the edges.
func (p *Particle) Move(d Direction) error {
	if !p.conn.Allows(d) {
		return fmt.Errorf("move %s under %s: %w", d, p.conn, ErrInvalidDirection)
	}
	p.pos = p.step(d)
	return nil
}

// Neighbors returns the wrapped neighbour coordinates in the order of
// Connectivity.Directions.
func (p *Particle) Neighbors() []core.Point {
	dirs := p.conn.Directions()
	out := make([]core.Point, len(dirs))
	for i, d := range dirs {
		out[i] = p.step(d)
	}
	return out
}

func (p *Particle) step(d Direction) core.Point {
	dx, dy := d.Offset()
	return core.Point{
		X: ((p.pos.X+dx)%p.m + p.m) % p.m,
		Y: ((p.pos.Y+dy)%p.m + p.m) % p.m,
	}
}
