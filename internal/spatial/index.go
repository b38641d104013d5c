// Package spatial indexes aggregated grid points for membership and
// nearest-neighbour queries.
//
// Distances are squared Euclidean distances in plain grid coordinates. No
// implementation accounts for toroidal wrapping.
package spatial

import "dla/internal/core"

// Index is the contract the simulation engine relies on. Implementations are
// not safe for concurrent use.
type Index interface {
	// Insert adds p. Duplicate points are stored again as distinct entries.
	Insert(p core.Point)
	// Contains reports whether p was inserted.
	Contains(p core.Point) bool
	// Nearest returns the stored point closest to p. ok is false when the
	// index is empty.
	Nearest(p core.Point) (nearest core.Point, ok bool)
	// NearestDistance returns the squared distance from p to Nearest(p).
	NearestDistance(p core.Point) (distSq int, ok bool)
	// Len returns the number of stored entries, duplicates included.
	Len() int
}

// Kind names an Index implementation.
type Kind string

const (
	// KindTree selects the alternating-axis binary tree.
	KindTree Kind = "tree"
	// KindBuckets selects the grid-bucket spatial hash.
	KindBuckets Kind = "buckets"
)

// DefaultBucketSize is the bucket side used by New for KindBuckets.
const DefaultBucketSize = 8

// New returns an empty index of the requested kind. Unknown kinds fall back
// to the tree.
func New(kind Kind) Index {
	if kind == KindBuckets {
		return NewBucketGrid(DefaultBucketSize)
	}
	return NewTree()
}
