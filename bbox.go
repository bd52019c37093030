package rtree

// calculate bound calculates the smallest bounding box that fits a node.
func (t *RTree[S, P]) calculateBound(n int) AABB[S, P] {
	bb := NewEmpty[S, P]()
	for _, entry := range t.Nodes[n].Entries {
		bb.Merge(entry.Box)
	}
	return bb
}

// enlargement returns how much additional area the existing envelope would
// have to enlarge by to accommodate the additional one.
func enlargement[S Scalar, P Point[S, P], E Envelope[S, P, E]](existing, additional E) S {
	return existing.Merged(additional).Area() - existing.Area()
}

// overlapEnlargement returns how much the overlap between entries[i] and
// its siblings grows if entries[i] is enlarged to accommodate the
// additional box.
func overlapEnlargement[S Scalar, P Point[S, P]](entries []Entry[S, P], i int, additional AABB[S, P]) S {
	existing := entries[i].Box
	grown := existing.Merged(additional)
	var before, after S
	for j, sibling := range entries {
		if j == i {
			continue
		}
		before += existing.IntersectionArea(sibling.Box)
		after += grown.IntersectionArea(sibling.Box)
	}
	return after - before
}
