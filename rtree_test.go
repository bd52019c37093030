package rtree

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestRandom(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	for maxCapacity := 2; maxCapacity <= 10; maxCapacity++ {
		for minCapacity := 1; minCapacity <= maxCapacity/2; minCapacity++ {
			for population := 0; population < 50; population++ {
				name := fmt.Sprintf("min_%d_max_%d_pop_%d", minCapacity, maxCapacity, population)
				t.Run(name, func(t *testing.T) {
					rnd := rand.New(rand.NewSource(0))
					boxes := make([]fbox, population)
					for i := range boxes {
						boxes[i] = randomBox(rnd, 0.9, 0.1)
					}

					rt, err := New[float64, fvec](minCapacity, maxCapacity)
					if err != nil {
						t.Fatal(err)
					}
					for i, bb := range boxes {
						rt.Insert(bb, i)
						checkInvariants(t, rt, minCapacity, maxCapacity)
					}
					if rt.Len() != population {
						t.Errorf("len = %d, want %d", rt.Len(), population)
					}
					checkSearch(t, rnd, rt, boxes)
				})
			}
		}
	}
}

func TestBulkLoad(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	for population := 0; population < 50; population++ {
		t.Run(fmt.Sprintf("pop_%d", population), func(t *testing.T) {
			rnd := rand.New(rand.NewSource(int64(population)))
			boxes := make([]fbox, population)
			inserts := make([]InsertItem[float64, fvec], population)
			for i := range boxes {
				boxes[i] = randomBox(rnd, 0.9, 0.1)
				inserts[i] = InsertItem[float64, fvec]{Box: boxes[i], DataIndex: i}
			}
			rt := BulkLoad(inserts)
			checkInvariants(t, rt, 0, 2)
			checkSearch(t, rnd, rt, boxes)

			// the bulk loaded tree accepts further inserts
			extra := randomBox(rnd, 0.9, 0.1)
			boxes = append(boxes, extra)
			rt.Insert(extra, population)
			checkInvariants(t, rt, 0, DefaultMaxChildren)
			checkSearch(t, rnd, rt, boxes)
		})
	}
}

func TestZeroValueTree(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	var rt RTree[int, ivec]
	if rt.Bounds() != NewEmpty[int, ivec]() {
		t.Errorf("empty tree should have empty bounds, has %v", rt.Bounds())
	}
	rt.Search(icorners(-100, -100, 100, 100), func(int) {
		t.Error("search of empty tree found an item")
	})
	want := NewEmpty[int, ivec]()
	for i := 0; i < 30; i++ {
		bb := icorners(i, -i, 2*i, i%7)
		want.Merge(bb)
		rt.Insert(bb, i)
		checkInvariants(t, rt, DefaultMinChildren, DefaultMaxChildren)
	}
	if got := rt.Bounds(); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
}

func TestNewInsertionPolicy(t *testing.T) {
	for _, tc := range []struct {
		min, max int
		ok       bool
	}{
		{1, 2, true},
		{2, 4, true},
		{8, 16, true},
		{0, 4, false},
		{3, 4, false},
		{2, 17, false},
	} {
		_, err := NewInsertionPolicy(tc.min, tc.max)
		if tc.ok && err != nil {
			t.Errorf("min=%d max=%d: unexpected error %v", tc.min, tc.max, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidPolicy) {
			t.Errorf("min=%d max=%d: expected ErrInvalidPolicy, got %v", tc.min, tc.max, err)
		}
	}
}

func checkSearch(t *testing.T, rnd *rand.Rand, rt RTree[float64, fvec], boxes []fbox) {
	t.Helper()
	for i := 0; i < 10; i++ {
		searchBB := randomBox(rnd, 0.5, 0.5)
		var got []int
		rt.Search(searchBB, func(idx int) {
			got = append(got, idx)
		})

		var want []int
		for i, bb := range boxes {
			if bb.Intersects(searchBB) {
				want = append(want, i)
			}
		}

		sort.Ints(want)
		sort.Ints(got)

		if !reflect.DeepEqual(want, got) {
			t.Logf("search bbox: %v", searchBB)
			t.Errorf("search failed, got: %v want: %v", got, want)
		}
	}
}

func randomBox(rnd *rand.Rand, maxStart, maxWidth float64) fbox {
	minX := rnd.Float64() * maxStart
	minY := rnd.Float64() * maxStart
	maxX := minX + rnd.Float64()*maxWidth
	maxY := minY + rnd.Float64()*maxWidth

	minX = float64(int(minX*100)) / 100
	minY = float64(int(minY*100)) / 100
	maxX = float64(int(maxX*100)) / 100
	maxY = float64(int(maxY*100)) / 100
	return fcorners(minX, minY, maxX, maxY)
}

func checkInvariants[S Scalar, P Point[S, P]](t *testing.T, rt RTree[S, P], minChildren, maxChildren int) {
	t.Logf("")
	t.Logf("node count: %v", len(rt.Nodes))
	for i, n := range rt.Nodes {
		t.Logf("%d: leaf=%t numEntries=%d parent=%d", i, n.IsLeaf, len(n.Entries), n.Parent)
		for j, e := range n.Entries {
			t.Logf("\t%d: index=%d bbox=%v", j, e.Index, e.Box)
		}
	}

	// For each non-leaf node, its entries should have the smallest bounding boxes that cover its children.
	for i, parentNode := range rt.Nodes {
		if parentNode.IsLeaf {
			continue
		}
		for j, parentEntry := range parentNode.Entries {
			childNode := rt.Nodes[parentEntry.Index]
			union := NewEmpty[S, P]()
			for _, childEntry := range childNode.Entries {
				union.Merge(childEntry.Box)
			}
			if union != parentEntry.Box {
				t.Fatalf("expected parent to have smallest bbox that covers its children (node=%d, entry=%d)", i, j)
			}
			if childNode.Parent != i {
				t.Fatalf("node %d has parent %d, but is referenced by node %d", parentEntry.Index, childNode.Parent, i)
			}
		}
	}

	// Each leaf should be reached exactly once from the root. This implies
	// that the tree has no loops, and there are no orphan leafs. Also checks
	// that each non-leaf is visited at least once (i.e. no orphan non-leaves).
	leafCount := make(map[int]int)
	visited := make(map[int]bool)
	var recurse func(int)
	recurse = func(n int) {
		visited[n] = true
		node := &rt.Nodes[n]
		if n != rt.RootIndex && (len(node.Entries) < minChildren || len(node.Entries) > maxChildren) {
			t.Fatalf("node %d has %d entries, want between %d and %d", n, len(node.Entries), minChildren, maxChildren)
		}
		if node.IsLeaf {
			leafCount[n]++
			return
		}
		for _, entry := range node.Entries {
			recurse(entry.Index)
		}
	}
	if len(rt.Nodes) == 0 {
		return
	}
	recurse(rt.RootIndex)
	for leaf, count := range leafCount {
		if count != 1 {
			t.Fatalf("leaf %d visited %d times", leaf, count)
		}
	}
	for i := range rt.Nodes {
		if !visited[i] {
			t.Fatalf("node %d was not visited", i)
		}
	}
}
