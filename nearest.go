package rtree

import (
	"sort"

	"github.com/tidwall/tinyqueue"
)

// Nearest returns the index of the item whose box is closest to q. The
// second return value is false if the tree holds no items.
//
// The search is depth first. Branches are visited in order of their
// distance to q, and a branch is pruned once its distance exceeds the best
// item distance found so far. In one and two dimensions a branch is also
// pruned once its distance exceeds the smallest MINMAXDIST of any branch
// seen, which guarantees an item within that distance. MinMaxDist2 keeps a
// single coordinate on the far face, which is no such guarantee in higher
// dimensions.
func (t *RTree[S, P]) Nearest(q P) (int, bool) {
	if t.count == 0 {
		return 0, false
	}
	var (
		best     int
		bestDist S
		found    bool
		bound    = MaxValue[S]()
		useBound = q.Dimensions() <= 2
	)
	var recurse func(n int)
	recurse = func(n int) {
		node := &t.Nodes[n]
		if node.IsLeaf {
			for _, entry := range node.Entries {
				d := entry.Box.Distance2(q)
				if !found || d < bestDist {
					best, bestDist, found = entry.Index, d, true
				}
			}
			return
		}
		branches := make([]nearestBranch[S], 0, len(node.Entries))
		for _, entry := range node.Entries {
			b := measureBranch[S, P](entry.Box, q, entry.Index, useBound)
			if useBound && b.minMax < bound {
				bound = b.minMax
			}
			branches = append(branches, b)
		}
		sort.Slice(branches, func(i, j int) bool {
			return branches[i].dist < branches[j].dist
		})
		for _, b := range branches {
			if b.dist > bound || found && b.dist > bestDist {
				break
			}
			recurse(b.index)
		}
	}
	recurse(t.RootIndex)
	T().Debugf("rtree: nearest to %v is item %d (dist2=%v)", q, best, bestDist)
	return best, found
}

type nearestBranch[S Scalar] struct {
	dist   S
	minMax S
	index  int
}

// measureBranch measures the distance from q to the envelope of the child
// node index. The MINMAXDIST is only computed if withMinMax is set.
func measureBranch[S Scalar, P Point[S, P], E Envelope[S, P, E]](env E, q P, index int, withMinMax bool) nearestBranch[S] {
	b := nearestBranch[S]{dist: env.Distance2(q), index: index}
	if withMinMax {
		b.minMax = env.MinMaxDist2(q)
	}
	return b
}

type knnEntry[S Scalar] struct {
	dist   S
	index  int
	isItem bool
}

func (e *knnEntry[S]) Less(other tinyqueue.Item) bool {
	return e.dist < other.(*knnEntry[S]).dist
}

// NearestIterate calls iter with the items of the tree in ascending order of
// their squared distance to q. Iteration stops early if iter returns false.
func (t *RTree[S, P]) NearestIterate(q P, iter func(index int, dist2 S) bool) {
	if len(t.Nodes) == 0 {
		return
	}
	queue := tinyqueue.New(nil)
	node := &t.Nodes[t.RootIndex]
	for node != nil {
		for _, entry := range node.Entries {
			queue.Push(&knnEntry[S]{
				dist:   entry.Box.Distance2(q),
				index:  entry.Index,
				isItem: node.IsLeaf,
			})
		}
		for queue.Len() > 0 && queue.Peek().(*knnEntry[S]).isItem {
			item := queue.Pop().(*knnEntry[S])
			if !iter(item.index, item.dist) {
				return
			}
		}
		node = nil
		if next := queue.Pop(); next != nil {
			node = &t.Nodes[next.(*knnEntry[S]).index]
		}
	}
}
