package rtree

// InsertItem is an item that can be inserted for bulk loading.
type InsertItem[S Scalar, P Point[S, P]] struct {
	Box       AABB[S, P]
	DataIndex int
}

// BulkLoad bulk loads multiple items into a new R-Tree. The bulk load
// operation is optimised for creating R-Trees with minimal node overlap. This
// allows for fast searching.
func BulkLoad[S Scalar, P Point[S, P]](inserts []InsertItem[S, P]) RTree[S, P] {
	var tr RTree[S, P]
	items := make([]InsertItem[S, P], len(inserts))
	copy(items, inserts)

	n := tr.bulkInsert(items)
	tr.RootIndex = n
	tr.Nodes[n].Parent = -1
	tr.count = len(items)
	T().Infof("rtree: bulk loaded %d items into %d nodes", tr.count, len(tr.Nodes))
	return tr
}

func (t *RTree[S, P]) bulkInsert(items []InsertItem[S, P]) int {
	if len(items) <= 2 {
		node := Node[S, P]{IsLeaf: true}
		for _, item := range items {
			node.Entries = append(node.Entries, Entry[S, P]{
				Box:   item.Box,
				Index: item.DataIndex,
			})
		}
		t.Nodes = append(t.Nodes, node)
		return len(t.Nodes) - 1
	}

	bbox := NewEmpty[S, P]()
	for _, item := range items {
		bbox.Merge(item.Box)
	}

	// Partition along the axis in which the items are spread widest.
	axis := 0
	lower, upper := bbox.Lower(), bbox.Upper()
	widest := upper.Nth(0) - lower.Nth(0)
	for i := 1; i < lower.Dimensions(); i++ {
		if w := upper.Nth(i) - lower.Nth(i); w > widest {
			axis, widest = i, w
		}
	}
	SortEnvelopes(axis, items, func(item InsertItem[S, P]) AABB[S, P] {
		return item.Box
	})

	split := len(items) / 2
	n1 := t.bulkInsert(items[:split])
	n2 := t.bulkInsert(items[split:])

	parent := Node[S, P]{IsLeaf: false, Entries: []Entry[S, P]{
		{Box: t.calculateBound(n1), Index: n1},
		{Box: t.calculateBound(n2), Index: n2},
	}}
	t.Nodes = append(t.Nodes, parent)
	p := len(t.Nodes) - 1
	t.Nodes[n1].Parent = p
	t.Nodes[n2].Parent = p
	T().Debugf("rtree: bulk node %d splits %d items along axis %d", p, len(items), axis)
	return p
}
