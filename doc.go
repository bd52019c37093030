/*
Package rtree is an in-memory R-Tree over n-dimensional axis-aligned bounding
boxes.

The envelope type of the tree is AABB, which is generic over a signed scalar
type and a point type. Points of any dimensionality can be used, as long as
they implement the Point constraint; Vec2, Vec3 and Vec4 are provided.

An AABB is a plain value. The empty AABB returned by NewEmpty has its lower
corner set to the largest representable scalar and its upper corner set to
the smallest one, which makes it the identity of Merge.

The measures an R-Tree needs from its keys (area, margin, overlap and the
distance metrics used for nearest neighbour search) are collected in the
Envelope interface, which AABB implements. Choosing a subtree on insertion
and ranking branches in Nearest go through Envelope.
*/
package rtree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// RTreeError is an error type for the rtree package.
type RTreeError string

func (e RTreeError) Error() string {
	return string(e)
}

// ErrIncomparable is raised when two scalars cannot be ordered, e.g. NaN
// coordinates passed to SortEnvelopes or Compare.
const ErrIncomparable = RTreeError("rtree: incomparable scalar values")

// ErrZeroDimensions is raised for point types without any coordinates.
const ErrZeroDimensions = RTreeError("rtree: point type has zero dimensions")

// ErrInvalidPolicy is returned for invalid node size parameters.
const ErrInvalidPolicy = RTreeError("rtree: invalid insertion policy")
