package spatial

import "dla/internal/core"

type bucketKey [2]int

// BucketGrid hashes points into square buckets and answers nearest-neighbour
// queries by scanning rings of buckets outward from the query.
type BucketGrid struct {
	size    int
	buckets map[bucketKey][]core.Point
	count   int

	minKey, maxKey bucketKey
}

// NewBucketGrid returns an empty grid with the given bucket side.
func NewBucketGrid(size int) *BucketGrid {
	if size <= 0 {
		size = DefaultBucketSize
	}
	return &BucketGrid{size: size, buckets: make(map[bucketKey][]core.Point)}
}

func (g *BucketGrid) key(p core.Point) bucketKey {
	return bucketKey{floorDiv(p.X, g.size), floorDiv(p.Y, g.size)}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Insert appends p to its bucket.
func (g *BucketGrid) Insert(p core.Point) {
	k := g.key(p)
	if g.count == 0 {
		g.minKey, g.maxKey = k, k
	} else {
		g.minKey = bucketKey{min(g.minKey[0], k[0]), min(g.minKey[1], k[1])}
		g.maxKey = bucketKey{max(g.maxKey[0], k[0]), max(g.maxKey[1], k[1])}
	}
	g.buckets[k] = append(g.buckets[k], p)
	g.count++
}

// Contains scans the bucket of p.
func (g *BucketGrid) Contains(p core.Point) bool {
	for _, q := range g.buckets[g.key(p)] {
		if q == p {
			return true
		}
	}
	return false
}

// Len returns the number of stored entries.
func (g *BucketGrid) Len() int { return g.count }

// Nearest returns the stored point closest to p.
func (g *BucketGrid) Nearest(p core.Point) (core.Point, bool) {
	best, _, ok := g.search(p)
	return best, ok
}

// NearestDistance returns the squared distance from p to its nearest point.
func (g *BucketGrid) NearestDistance(p core.Point) (int, bool) {
	_, d, ok := g.search(p)
	return d, ok
}

func (g *BucketGrid) search(p core.Point) (core.Point, int, bool) {
	if g.count == 0 {
		return core.Point{}, 0, false
	}
	center := g.key(p)
	// Rings beyond this radius cannot hold any bucket.
	maxRing := max(
		abs(center[0]-g.minKey[0]), abs(center[0]-g.maxKey[0]),
		abs(center[1]-g.minKey[1]), abs(center[1]-g.maxKey[1]),
	)

	var best core.Point
	bestDist := -1
	for r := 0; r <= maxRing; r++ {
		g.scanRing(center, r, p, &best, &bestDist)
		// Any bucket in ring r+1 is at least r bucket widths away on one axis.
		if bound := r * g.size; bestDist >= 0 && bestDist <= bound*bound {
			break
		}
	}
	return best, bestDist, true
}

func (g *BucketGrid) scanRing(c bucketKey, r int, p core.Point, best *core.Point, bestDist *int) {
	visit := func(k bucketKey) {
		for _, q := range g.buckets[k] {
			if d := q.DistSq(p); *bestDist < 0 || d < *bestDist {
				*best = q
				*bestDist = d
			}
		}
	}
	if r == 0 {
		visit(c)
		return
	}
	for dx := -r; dx <= r; dx++ {
		visit(bucketKey{c[0] + dx, c[1] - r})
		visit(bucketKey{c[0] + dx, c[1] + r})
	}
	for dy := -r + 1; dy <= r-1; dy++ {
		visit(bucketKey{c[0] - r, c[1] + dy})
		visit(bucketKey{c[0] + r, c[1] + dy})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
