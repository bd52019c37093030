package rtree

import (
	"math"
	"reflect"

	"golang.org/x/exp/constraints"
)

// Scalar is the coordinate type of a point. Squared distances are only
// meaningful for signed types, so unsigned integers are excluded.
type Scalar interface {
	constraints.Signed | constraints.Float
}

// MaxValue returns the largest finite value representable by S.
func MaxValue[S Scalar]() S {
	var z S
	switch reflect.TypeOf(z).Kind() {
	case reflect.Int8:
		v := int8(math.MaxInt8)
		return S(v)
	case reflect.Int16:
		v := int16(math.MaxInt16)
		return S(v)
	case reflect.Int32:
		v := int32(math.MaxInt32)
		return S(v)
	case reflect.Int64:
		v := int64(math.MaxInt64)
		return S(v)
	case reflect.Int:
		v := int(math.MaxInt)
		return S(v)
	case reflect.Float32:
		v := float32(math.MaxFloat32)
		return S(v)
	default:
		v := float64(math.MaxFloat64)
		return S(v)
	}
}

// MinValue returns the smallest finite value representable by S. For floats
// this is the negated maximum, not the smallest positive value.
func MinValue[S Scalar]() S {
	var z S
	switch reflect.TypeOf(z).Kind() {
	case reflect.Int8:
		v := int8(math.MinInt8)
		return S(v)
	case reflect.Int16:
		v := int16(math.MinInt16)
		return S(v)
	case reflect.Int32:
		v := int32(math.MinInt32)
		return S(v)
	case reflect.Int64:
		v := int64(math.MinInt64)
		return S(v)
	case reflect.Int:
		v := int(math.MinInt)
		return S(v)
	case reflect.Float32:
		v := float32(-math.MaxFloat32)
		return S(v)
	default:
		v := float64(-math.MaxFloat64)
		return S(v)
	}
}

func abs[S Scalar](x S) S {
	if x < 0 {
		return -x
	}
	return x
}

// isNaN is only ever true for float scalars.
func isNaN[S Scalar](x S) bool {
	return x != x
}

// compareScalars orders two scalars and panics if they are incomparable.
func compareScalars[S Scalar](x, y S) int {
	if isNaN(x) || isNaN(y) {
		T().Errorf("rtree: cannot order %v and %v", x, y)
		panic(ErrIncomparable)
	}
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
