package rtree

import (
	"fmt"
	"math/bits"
)

const (
	// DefaultMinChildren is the minimum node occupancy of a zero value RTree.
	DefaultMinChildren = 2
	// DefaultMaxChildren is the maximum node occupancy of a zero value RTree.
	DefaultMaxChildren = 5

	// splits are exhaustive over all 2^maxChildren partitions
	maxMaxChildren = 16
)

// NewInsertionPolicy creates a new insertion policy with the given node size
// parameters.
func NewInsertionPolicy(minChildren, maxChildren int) (InsertionPolicy, error) {
	if minChildren < 1 {
		return InsertionPolicy{}, fmt.Errorf("%w: min children must be at least 1", ErrInvalidPolicy)
	}
	if minChildren > maxChildren/2 {
		return InsertionPolicy{}, fmt.Errorf("%w: min children must be less than or equal to half of the max children", ErrInvalidPolicy)
	}
	if maxChildren > maxMaxChildren {
		return InsertionPolicy{}, fmt.Errorf("%w: max children must not exceed %d", ErrInvalidPolicy, maxMaxChildren)
	}
	return InsertionPolicy{minChildren, maxChildren}, nil
}

// InsertionPolicy alters the behaviour when inserting new data to an RTree.
type InsertionPolicy struct {
	minChildren int
	maxChildren int
}

func (t *RTree[S, P]) insertionPolicy() InsertionPolicy {
	if t.policy.maxChildren == 0 {
		return InsertionPolicy{DefaultMinChildren, DefaultMaxChildren}
	}
	return t.policy
}

// Insert adds a new data item to the RTree.
func (t *RTree[S, P]) Insert(bb AABB[S, P], dataIndex int) {
	policy := t.insertionPolicy()
	if len(t.Nodes) == 0 {
		t.Nodes = append(t.Nodes, Node[S, P]{IsLeaf: true, Entries: nil, Parent: -1})
		t.RootIndex = 0
	}
	t.count++

	leaf := t.chooseLeafNode(bb)
	t.Nodes[leaf].Entries = append(t.Nodes[leaf].Entries, Entry[S, P]{Box: bb, Index: dataIndex})

	current := leaf
	for current != t.RootIndex {
		parent := t.Nodes[current].Parent
		for i := range t.Nodes[parent].Entries {
			e := &t.Nodes[parent].Entries[i]
			if e.Index == current {
				e.Box.Merge(bb)
				break
			}
		}
		current = parent
	}

	if len(t.Nodes[leaf].Entries) <= policy.maxChildren {
		return
	}

	newNode := t.splitNode(leaf, policy)
	root1, root2 := t.adjustTree(leaf, newNode, policy)

	if root2 != -1 {
		t.joinRoots(root1, root2)
	}
}

func (t *RTree[S, P]) joinRoots(r1, r2 int) {
	t.Nodes = append(t.Nodes, Node[S, P]{
		IsLeaf: false,
		Entries: []Entry[S, P]{
			{
				Box:   t.calculateBound(r1),
				Index: r1,
			},
			{
				Box:   t.calculateBound(r2),
				Index: r2,
			},
		},
		Parent: -1,
	})
	t.RootIndex = len(t.Nodes) - 1
	t.Nodes[r1].Parent = len(t.Nodes) - 1
	t.Nodes[r2].Parent = len(t.Nodes) - 1
	T().Debugf("rtree: new root %d over nodes %d and %d", t.RootIndex, r1, r2)
}

func (t *RTree[S, P]) adjustTree(n, nn int, policy InsertionPolicy) (int, int) {
	for {
		if n == t.RootIndex {
			return n, nn
		}
		parent := t.Nodes[n].Parent
		parentEntry := -1
		for i, entry := range t.Nodes[parent].Entries {
			if entry.Index == n {
				parentEntry = i
				break
			}
		}
		t.Nodes[parent].Entries[parentEntry].Box = t.calculateBound(n)

		// AT4
		pp := -1
		if nn != -1 {
			newEntry := Entry[S, P]{
				Box:   t.calculateBound(nn),
				Index: nn,
			}
			t.Nodes[parent].Entries = append(t.Nodes[parent].Entries, newEntry)
			t.Nodes[nn].Parent = parent
			if len(t.Nodes[parent].Entries) > policy.maxChildren {
				pp = t.splitNode(parent, policy)
			}
		}

		n, nn = parent, pp
	}
}

// splitNode splits node with index n into two nodes. The first node replaces
// n, and the second node is newly created. The return value is the index of
// the new node.
//
// Every partition of the entries is tried. The one with the least combined
// area wins, with the least combined margin as a tie breaker.
func (t *RTree[S, P]) splitNode(n int, policy InsertionPolicy) int {
	entries := t.Nodes[n].Entries
	var (
		// All zeros would not be valid split, so start at 1.
		minSplit = uint64(1)
		// The MSB should always be 0, to remove duplicates from inverting the
		// bit pattern. So we raise 2 to the power of one less than the number
		// of entries rather than the number of entries.
		//
		// E.g. for 4 entries, we want the following bit patterns:
		// 0001, 0010, 0011, 0100, 0101, 0110, 0111.
		//
		// (1 << (4 - 1)) - 1 == 0111, so the maths checks out.
		maxSplit = uint64((1 << (len(entries) - 1)) - 1)
	)
	var bestArea, bestMargin S
	var bestSplit uint64
	for split := minSplit; split <= maxSplit; split++ {
		onesB := bits.OnesCount64(split)
		if onesB < policy.minChildren || len(entries)-onesB < policy.minChildren {
			continue
		}
		bboxA, bboxB := NewEmpty[S, P](), NewEmpty[S, P]()
		for i, entry := range entries {
			if split&(1<<i) == 0 {
				bboxA.Merge(entry.Box)
			} else {
				bboxB.Merge(entry.Box)
			}
		}
		combinedArea := bboxA.Area() + bboxB.Area()
		combinedMargin := bboxA.MarginValue() + bboxB.MarginValue()
		if bestSplit == 0 ||
			combinedArea < bestArea ||
			combinedArea == bestArea && combinedMargin < bestMargin {
			bestArea = combinedArea
			bestMargin = combinedMargin
			bestSplit = split
		}
	}

	var entriesA, entriesB []Entry[S, P]
	for i, entry := range entries {
		if bestSplit&(1<<i) == 0 {
			entriesA = append(entriesA, entry)
		} else {
			entriesB = append(entriesB, entry)
		}
	}

	// Use the existing node for A, and create a new node for B.
	t.Nodes[n].Entries = entriesA
	t.Nodes = append(t.Nodes, Node[S, P]{
		IsLeaf:  t.Nodes[n].IsLeaf,
		Entries: entriesB,
		Parent:  -1,
	})
	if !t.Nodes[n].IsLeaf {
		for _, entry := range entriesB {
			t.Nodes[entry.Index].Parent = len(t.Nodes) - 1
		}
	}
	T().Debugf("rtree: split node %d into %d/%d entries (area=%v)", n, len(entriesA), len(entriesB), bestArea)
	return len(t.Nodes) - 1
}

// chooseLeafNode descends from the root to the leaf that should receive bb.
// Above the leaves, the child whose overlap with its siblings grows least
// is preferred; elsewhere, the child needing the least area enlargement.
func (t *RTree[S, P]) chooseLeafNode(bb AABB[S, P]) int {
	node := t.RootIndex

	for {
		if t.Nodes[node].IsLeaf {
			return node
		}
		entries := t.Nodes[node].Entries
		aboveLeaves := t.Nodes[entries[0].Index].IsLeaf

		bestEntry := 0
		bestOverlap := S(0)
		if aboveLeaves {
			bestOverlap = overlapEnlargement(entries, 0, bb)
		}
		bestDelta := enlargement[S, P](entries[0].Box, bb)
		for i := 1; i < len(entries); i++ {
			entry := entries[i]
			if aboveLeaves {
				overlap := overlapEnlargement(entries, i, bb)
				if overlap > bestOverlap {
					continue
				}
				if overlap < bestOverlap {
					bestOverlap = overlap
					bestDelta = enlargement[S, P](entry.Box, bb)
					bestEntry = i
					continue
				}
			}
			delta := enlargement[S, P](entry.Box, bb)
			if delta < bestDelta {
				bestDelta = delta
				bestEntry = i
			} else if delta == bestDelta && entry.Box.Area() < entries[bestEntry].Box.Area() {
				// Area is used as a tie breaking if the enlargements are the same.
				bestEntry = i
			}
		}
		node = entries[bestEntry].Index
	}
}
