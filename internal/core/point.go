package core

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// DistSq returns the squared Euclidean distance between p and q. The distance
// is measured in plain grid coordinates and ignores toroidal wrapping.
func (p Point) DistSq(q Point) int {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}
