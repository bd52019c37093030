package rtree

// Node is a node in an R-Tree. Nodes can either be leaf nodes holding entries
// for terminal items, or intermediate nodes holding entries for more nodes.
type Node[S Scalar, P Point[S, P]] struct {
	IsLeaf  bool
	Entries []Entry[S, P]
	Parent  int
}

// Entry is an entry under a node, leading either to terminal items, or more nodes.
type Entry[S Scalar, P Point[S, P]] struct {
	Box   AABB[S, P]
	Index int
}

// RTree is an in-memory R-Tree data structure. Its zero value is an empty
// R-Tree using the default insertion policy.
type RTree[S Scalar, P Point[S, P]] struct {
	RootIndex int
	Nodes     []Node[S, P]

	policy InsertionPolicy
	count  int
}

// New creates an empty R-Tree whose nodes hold between minChildren and
// maxChildren entries.
func New[S Scalar, P Point[S, P]](minChildren, maxChildren int) (RTree[S, P], error) {
	policy, err := NewInsertionPolicy(minChildren, maxChildren)
	if err != nil {
		return RTree[S, P]{}, err
	}
	return RTree[S, P]{policy: policy}, nil
}

// Len returns the number of items in the tree.
func (t *RTree[S, P]) Len() int {
	return t.count
}

// Bounds returns the smallest AABB containing every item in the tree, or
// the empty AABB if there are no items.
func (t *RTree[S, P]) Bounds() AABB[S, P] {
	if len(t.Nodes) == 0 {
		return NewEmpty[S, P]()
	}
	return t.calculateBound(t.RootIndex)
}

// Search looks for any items in the tree that overlap with the the given
// bounding box. The callback is called with the item index for each found
// item.
func (t *RTree[S, P]) Search(bb AABB[S, P], callback func(index int)) {
	if len(t.Nodes) == 0 {
		return
	}
	var recurse func(*Node[S, P])
	recurse = func(n *Node[S, P]) {
		for _, entry := range n.Entries {
			if !entry.Box.Intersects(bb) {
				continue
			}
			if n.IsLeaf {
				callback(entry.Index)
			} else {
				recurse(&t.Nodes[entry.Index])
			}
		}
	}
	recurse(&t.Nodes[t.RootIndex])
}
