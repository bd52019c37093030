package rtree

import "sort"

// Envelope is the geometric key type an R-Tree reasons about. E is the
// envelope type itself. The insertion heuristics and the nearest neighbour
// search measure envelopes through this interface; RTree stores AABBs.
//
// The empty envelope, in-place merging and ordering along an axis are not
// part of the interface, as Go interfaces cannot express constructors or
// pointer receivers on E. For AABB they are NewEmpty, (*AABB).Merge and
// SortEnvelopes.
type Envelope[S Scalar, P Point[S, P], E any] interface {
	ContainsPoint(q P) bool
	ContainsEnvelope(other E) bool
	Intersects(other E) bool
	Merged(other E) E
	Area() S
	MarginValue() S
	IntersectionArea(other E) S
	Center() P
	Distance2(q P) S
	MinMaxDist2(q P) S
}

var _ Envelope[float64, Vec2[float64], AABB[float64, Vec2[float64]]] = AABB[float64, Vec2[float64]]{}

// SortEnvelopes sorts items by the lower coordinate of key(item) along
// axis, ascending. The sort is stable. It panics with ErrIncomparable if
// two coordinates cannot be ordered.
func SortEnvelopes[T any, S Scalar, P Point[S, P]](axis int, items []T, key func(T) AABB[S, P]) {
	sort.SliceStable(items, func(i, j int) bool {
		li := key(items[i]).lower.Nth(axis)
		lj := key(items[j]).lower.Nth(axis)
		return compareScalars(li, lj) < 0
	})
}

// Compare orders AABBs lexicographically by their lower corner, then by
// their upper corner. It returns -1, 0 or +1. The order has no geometric
// meaning; it is meant for deterministic tie-breaking.
func Compare[S Scalar, P Point[S, P]](a, b AABB[S, P]) int {
	if c := comparePoints[S](a.lower, b.lower); c != 0 {
		return c
	}
	return comparePoints[S](a.upper, b.upper)
}

func comparePoints[S Scalar, P Point[S, P]](p, q P) int {
	for i := 0; i < p.Dimensions(); i++ {
		if c := compareScalars(p.Nth(i), q.Nth(i)); c != 0 {
			return c
		}
	}
	return 0
}
