package rtree

// Point is the constraint for the corner type of an AABB. P is the point
// type itself, so that WithNth can return an updated copy.
//
// Dimensions must be positive and constant for a given type. The zero value
// of P is used as a scratch point whose coordinates are all overwritten
// before use.
type Point[S Scalar, P any] interface {
	comparable
	Dimensions() int
	Nth(i int) S
	WithNth(i int, s S) P
}

// FromValue returns the point all of whose coordinates equal s.
func FromValue[S Scalar, P Point[S, P]](s S) P {
	var p P
	for i := 0; i < p.Dimensions(); i++ {
		p = p.WithNth(i, s)
	}
	return p
}

// ComponentWise combines a and b coordinate by coordinate.
func ComponentWise[S Scalar, P Point[S, P]](a, b P, f func(x, y S) S) P {
	var p P
	for i := 0; i < a.Dimensions(); i++ {
		p = p.WithNth(i, f(a.Nth(i), b.Nth(i)))
	}
	return p
}

// AllComponentWise reports whether pred holds for every pair of
// coordinates of a and b.
func AllComponentWise[S Scalar, P Point[S, P]](a, b P, pred func(x, y S) bool) bool {
	for i := 0; i < a.Dimensions(); i++ {
		if !pred(a.Nth(i), b.Nth(i)) {
			return false
		}
	}
	return true
}

// Fold folds f over the coordinates of p, left to right.
func Fold[S Scalar, P Point[S, P], A any](p P, init A, f func(acc A, x S) A) A {
	acc := init
	for i := 0; i < p.Dimensions(); i++ {
		acc = f(acc, p.Nth(i))
	}
	return acc
}

// MinPoint returns the componentwise minimum of a and b.
func MinPoint[S Scalar, P Point[S, P]](a, b P) P {
	return ComponentWise(a, b, func(x, y S) S { return min(x, y) })
}

// MaxPoint returns the componentwise maximum of a and b.
func MaxPoint[S Scalar, P Point[S, P]](a, b P) P {
	return ComponentWise(a, b, func(x, y S) S { return max(x, y) })
}

// Sub returns a - b.
func Sub[S Scalar, P Point[S, P]](a, b P) P {
	return ComponentWise(a, b, func(x, y S) S { return x - y })
}

// Length2 returns the squared euclidean length of p.
func Length2[S Scalar, P Point[S, P]](p P) S {
	return Fold(p, S(0), func(acc S, x S) S { return acc + x*x })
}

// Vec2 is a two-dimensional point.
type Vec2[S Scalar] [2]S

func (v Vec2[S]) Dimensions() int { return 2 }

func (v Vec2[S]) Nth(i int) S { return v[i] }

func (v Vec2[S]) WithNth(i int, s S) Vec2[S] {
	v[i] = s
	return v
}

// Vec3 is a three-dimensional point.
type Vec3[S Scalar] [3]S

func (v Vec3[S]) Dimensions() int { return 3 }

func (v Vec3[S]) Nth(i int) S { return v[i] }

func (v Vec3[S]) WithNth(i int, s S) Vec3[S] {
	v[i] = s
	return v
}

// Vec4 is a four-dimensional point.
type Vec4[S Scalar] [4]S

func (v Vec4[S]) Dimensions() int { return 4 }

func (v Vec4[S]) Nth(i int) S { return v[i] }

func (v Vec4[S]) WithNth(i int, s S) Vec4[S] {
	v[i] = s
	return v
}
