package spatial

import "dla/internal/core"

type axis uint8

const (
	axisX axis = iota
	axisY
)

func (a axis) next() axis { return a ^ 1 }

type node struct {
	pos   core.Point
	axis  axis
	size  int
	left  *node
	right *node
}

// compare returns the signed offset of p from n along n's axis. Negative
// values route to the left subtree, everything else to the right.
func (n *node) compare(p core.Point) int {
	if n.axis == axisX {
		return p.X - n.pos.X
	}
	return p.Y - n.pos.Y
}

func sizeOf(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

// Tree is an unbalanced 2D binary search tree whose discriminant alternates
// between x and y with depth, starting at x for the root. Insertion order
// decides the shape; no rebalancing is performed.
type Tree struct {
	root *node
}

// NewTree returns an empty tree.
func NewTree() *Tree { return &Tree{} }

// Insert adds p below the leaf reached by comparing along alternating axes.
func (t *Tree) Insert(p core.Point) {
	t.root = insert(t.root, p, axisX)
}

func insert(n *node, p core.Point, a axis) *node {
	if n == nil {
		return &node{pos: p, axis: a, size: 1}
	}
	if n.compare(p) < 0 {
		n.left = insert(n.left, p, a.next())
	} else {
		n.right = insert(n.right, p, a.next())
	}
	n.size = 1 + sizeOf(n.left) + sizeOf(n.right)
	return n
}

// Contains walks the search path of p and reports an exact match.
func (t *Tree) Contains(p core.Point) bool {
	for n := t.root; n != nil; {
		if n.pos == p {
			return true
		}
		if n.compare(p) < 0 {
			n = n.left
		} else {
			n = n.right
		}
	}
	return false
}

// Len returns the number of stored entries.
func (t *Tree) Len() int { return sizeOf(t.root) }

// Depth returns the length of the longest root-to-leaf path.
func (t *Tree) Depth() int { return depth(t.root) }

func depth(n *node) int {
	if n == nil {
		return 0
	}
	return 1 + max(depth(n.left), depth(n.right))
}

// Nearest returns the stored point closest to p.
func (t *Tree) Nearest(p core.Point) (core.Point, bool) {
	best, _ := t.search(p)
	if best == nil {
		return core.Point{}, false
	}
	return best.pos, true
}

// NearestDistance returns the squared distance from p to its nearest point.
func (t *Tree) NearestDistance(p core.Point) (int, bool) {
	best, d := t.search(p)
	if best == nil {
		return 0, false
	}
	return d, true
}

func (t *Tree) search(p core.Point) (*node, int) {
	var best *node
	bestDist := 0
	nearest(t.root, p, &best, &bestDist)
	return best, bestDist
}

// nearest descends into the half containing p first and only visits the
// other half when the splitting line is closer than the current best.
func nearest(n *node, p core.Point, best **node, bestDist *int) {
	if n == nil {
		return
	}
	if d := n.pos.DistSq(p); *best == nil || d < *bestDist {
		*best = n
		*bestDist = d
	}
	comp := n.compare(p)
	near, far := n.right, n.left
	if comp < 0 {
		near, far = n.left, n.right
	}
	nearest(near, p, best, bestDist)
	if comp*comp < *bestDist {
		nearest(far, p, best, bestDist)
	}
}
