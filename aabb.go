package rtree

// AABB is an n-dimensional axis-aligned bounding box. It is the closed box
// of all points x with lower[i] <= x[i] <= upper[i] in every dimension.
//
// AABBs are values. Two AABBs are equal if their corners are equal.
type AABB[S Scalar, P Point[S, P]] struct {
	lower P
	upper P
}

// FromPoint returns the AABB encompassing a single point.
func FromPoint[S Scalar, P Point[S, P]](p P) AABB[S, P] {
	return AABB[S, P]{lower: p, upper: p}
}

// FromCorners returns the AABB spanned by two opposite corners, given in
// any order.
func FromCorners[S Scalar, P Point[S, P]](p1, p2 P) AABB[S, P] {
	return AABB[S, P]{
		lower: MinPoint[S](p1, p2),
		upper: MaxPoint[S](p1, p2),
	}
}

// FromPoints returns the smallest AABB containing all ps. Without any
// points, the result is the empty AABB.
func FromPoints[S Scalar, P Point[S, P]](ps ...P) AABB[S, P] {
	bb := NewEmpty[S, P]()
	for _, p := range ps {
		bb = bb.addPoint(p)
	}
	return bb
}

// NewEmpty returns the empty AABB. It contains no point, intersects
// nothing and has zero area, and merging it with another AABB yields the
// other AABB.
func NewEmpty[S Scalar, P Point[S, P]]() AABB[S, P] {
	return AABB[S, P]{
		lower: FromValue[S, P](MaxValue[S]()),
		upper: FromValue[S, P](MinValue[S]()),
	}
}

func (a AABB[S, P]) addPoint(p P) AABB[S, P] {
	return AABB[S, P]{
		lower: MinPoint[S](a.lower, p),
		upper: MaxPoint[S](a.upper, p),
	}
}

// Lower returns the corner with the smallest coordinate in each dimension.
func (a AABB[S, P]) Lower() P {
	return a.lower
}

// Upper returns the corner with the largest coordinate in each dimension.
func (a AABB[S, P]) Upper() P {
	return a.upper
}

// ContainsPoint reports whether q lies inside a or on its boundary.
func (a AABB[S, P]) ContainsPoint(q P) bool {
	return AllComponentWise(a.lower, q, func(l, x S) bool { return l <= x }) &&
		AllComponentWise(a.upper, q, func(u, x S) bool { return u >= x })
}

// ContainsEnvelope reports whether other lies completely inside a. Every
// AABB contains the empty AABB.
func (a AABB[S, P]) ContainsEnvelope(other AABB[S, P]) bool {
	return AllComponentWise(a.lower, other.lower, func(l, r S) bool { return l <= r }) &&
		AllComponentWise(a.upper, other.upper, func(l, r S) bool { return l >= r })
}

// Intersects reports whether a and other share at least one point.
// Touching boundaries count as an intersection.
func (a AABB[S, P]) Intersects(other AABB[S, P]) bool {
	return AllComponentWise(a.lower, other.upper, func(l, r S) bool { return l <= r }) &&
		AllComponentWise(a.upper, other.lower, func(l, r S) bool { return l >= r })
}

// Merge grows a in place to the smallest AABB containing both a and other.
func (a *AABB[S, P]) Merge(other AABB[S, P]) {
	a.lower = MinPoint[S](a.lower, other.lower)
	a.upper = MaxPoint[S](a.upper, other.upper)
}

// Merged returns the smallest AABB containing both a and other.
func (a AABB[S, P]) Merged(other AABB[S, P]) AABB[S, P] {
	a.Merge(other)
	return a
}

// Area returns the n-dimensional volume of a. Inverted extents count as
// zero, so the empty AABB has zero area.
func (a AABB[S, P]) Area() S {
	if a.lower.Dimensions() == 0 {
		T().Errorf("rtree: area of a zero-dimensional box")
		panic(ErrZeroDimensions)
	}
	area := S(1)
	for i := 0; i < a.lower.Dimensions(); i++ {
		lo, hi := a.lower.Nth(i), a.upper.Nth(i)
		if hi < lo {
			return 0
		}
		area *= hi - lo
	}
	return area
}

// MarginValue returns the sum of the side lengths of a, clamped at zero.
func (a AABB[S, P]) MarginValue() S {
	var margin S
	for i := 0; i < a.lower.Dimensions(); i++ {
		lo, hi := a.lower.Nth(i), a.upper.Nth(i)
		d := hi - lo
		if hi < lo && d >= 0 {
			// integer extent wrapped around
			return 0
		}
		margin += d
	}
	return max(margin, 0)
}

// IntersectionArea returns the area shared by a and other.
func (a AABB[S, P]) IntersectionArea(other AABB[S, P]) S {
	// Disjoint boxes give an inverted candidate, which Area folds to zero.
	return AABB[S, P]{
		lower: MaxPoint[S](a.lower, other.lower),
		upper: MinPoint[S](a.upper, other.upper),
	}.Area()
}

// Center returns the midpoint of a. It must not be called on the empty
// AABB.
func (a AABB[S, P]) Center() P {
	return ComponentWise(a.lower, a.upper, func(x, y S) S { return (x + y) / 2 })
}

// MinPoint returns the point of a closest to q. If q is inside a, q itself
// is returned.
func (a AABB[S, P]) MinPoint(q P) P {
	return MinPoint[S](a.upper, MaxPoint[S](a.lower, q))
}

// Distance2 returns the squared euclidean distance between q and a, which
// is zero for points inside a.
func (a AABB[S, P]) Distance2(q P) S {
	if a.ContainsPoint(q) {
		return 0
	}
	return Length2[S](Sub[S](a.MinPoint(q), q))
}

// MinMaxDist2 returns the squared MINMAXDIST between q and a: the squared
// distance from q to the closest corner that has exactly one coordinate on
// the far face of a in some dimension. Every face of a minimal bounding box
// touches an enclosed object, so some object lies within this distance.
func (a AABB[S, P]) MinMaxDist2(q P) S {
	near, far := a.faceOffsets(q)
	var result S
	for i := 0; i < q.Dimensions(); i++ {
		d := Length2[S](near.WithNth(i, far.Nth(i)))
		if i == 0 || d < result {
			result = d
		}
	}
	return result
}

// faceOffsets returns the signed offsets from q to the nearer and the
// farther face of a in each dimension. If both faces are equally far, the
// upper face counts as the nearer one.
func (a AABB[S, P]) faceOffsets(q P) (near, far P) {
	l := Sub[S](a.lower, q)
	u := Sub[S](a.upper, q)
	for i := 0; i < q.Dimensions(); i++ {
		if abs(l.Nth(i)) < abs(u.Nth(i)) {
			near = near.WithNth(i, l.Nth(i))
			far = far.WithNth(i, u.Nth(i))
		} else {
			near = near.WithNth(i, u.Nth(i))
			far = far.WithNth(i, l.Nth(i))
		}
	}
	return near, far
}
