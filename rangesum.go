// Package rangesum provides a mutable fixed-size sequence of int32
// values supporting two operations in O(log n) time: summing a
// contiguous index range and adding a constant delta to every element
// in a contiguous index range.
//
// The sequence is modeled as a complete binary tree stored in two
// parallel flat slices. Each tree position holds the sum of the
// sub-range it covers; range updates are applied lazily, recording a
// pending delta on a fully-covered node instead of descending into
// its subtree. The delta is pushed down to the children only when a
// later operation needs to look inside.
//
// All indices are 1-based and inclusive. Any range sum can also be
// composed from prefix sums: sum[i..j] = Query(1,j) - Query(1,i-1).
package rangesum

import (
	"fmt"
	"math/bits"
)

// Tree is a range-update range-sum tree over a fixed-size sequence
// of int32 values. It is not safe for concurrent use; callers must
// provide external locking, noting that Query mutates internal state.
type Tree struct {
	// Logical size of the modeled sequence. Immutable after FromSlice.
	length int
	// nodes[p] is the sum of the sub-range covered by position p.
	// Children of p are 2p and 2p+1; position 1 covers [1, length].
	nodes []int32
	// pending[p] is a delta already applied to nodes[p] but not yet
	// propagated to the children of p. Zero means nothing pending.
	pending []int32
	// Skip range validation on Update/Query. See Unchecked.
	unchecked bool
}

// FromSlice builds a tree from the given values and returns it ready
// for Update and Query calls. The tree's logical element k (1-based)
// starts out as values[k-1]. An empty slice is rejected with an error,
// as is a length so large that the backing capacity would overflow.
func FromSlice(values []int32, options ...treeOption) (*Tree, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("Cannot build a tree from an empty slice")
	}

	capacity, err := capacityFor(len(values))
	if err != nil {
		return nil, err
	}

	t := &Tree{
		length:  len(values),
		nodes:   make([]int32, capacity),
		pending: make([]int32, capacity),
	}

	for _, option := range options {
		if err := option(t); err != nil {
			return nil, err
		}
	}

	t.build(values, 1, t.length, 1)

	return t, nil
}

// Len returns the number of logical elements in the sequence.
func (t *Tree) Len() int {
	return t.length
}

func (t Tree) String() string {
	return fmt.Sprintf("Tree<len=%d, cap=%d>", t.length, len(t.nodes))
}

// Update adds delta to every logical element in the inclusive range
// [i, j]. Unless the tree was built with Unchecked, ranges outside
// [1, Len()] or with i > j are rejected with an error.
func (t *Tree) Update(i, j int, delta int32) error {
	if !t.unchecked {
		if err := t.checkRange(i, j); err != nil {
			return err
		}
	}

	t.update(i, j, 1, t.length, 1, delta)
	return nil
}

// Query returns the sum of the logical elements in the inclusive
// range [i, j]. Repeated calls with no intervening Update return the
// same value, although pending deltas may be pushed down internally.
// Range validation is the same as for Update.
func (t *Tree) Query(i, j int) (int32, error) {
	if !t.unchecked {
		if err := t.checkRange(i, j); err != nil {
			return 0, err
		}
	}

	return t.query(i, j, 1, t.length, 1), nil
}

func (t *Tree) checkRange(i, j int) error {
	if i < 1 || j > t.length || i > j {
		return fmt.Errorf("Invalid range [%d, %d] for a tree of length %d", i, j, t.length)
	}
	return nil
}

// build fills nodes[p] for the sub-range [left, right] by halving the
// range, assigning leaves straight from the input and internal nodes
// as the sum of their two children.
func (t *Tree) build(values []int32, left, right, p int) {
	if left == right {
		t.nodes[p] = values[left-1]
		return
	}

	mid := left + (right-left)/2
	t.build(values, left, mid, 2*p)
	t.build(values, mid+1, right, 2*p+1)
	t.nodes[p] = t.nodes[2*p] + t.nodes[2*p+1]
}

func (t *Tree) update(l, r, cl, cr, p int, delta int32) {
	// No overlap between [cl, cr] and the target range.
	if cl > r || cr < l {
		return
	}

	// [cl, cr] fully inside the target range: apply the aggregate
	// effect here and defer the children until someone needs them.
	if cl >= l && cr <= r {
		t.nodes[p] += delta * int32(cr-cl+1)
		if cl < cr {
			t.pending[p] += delta
		}
		return
	}

	t.pushDown(p, int32(cr-cl+1))

	mid := cl + (cr-cl)/2
	t.update(l, r, cl, mid, 2*p, delta)
	t.update(l, r, mid+1, cr, 2*p+1, delta)

	t.nodes[p] = t.nodes[2*p] + t.nodes[2*p+1]
}

func (t *Tree) query(l, r, cl, cr, p int) int32 {
	if cl > r || cr < l {
		return 0
	}

	if cl >= l && cr <= r {
		return t.nodes[p]
	}

	t.pushDown(p, int32(cr-cl+1))

	mid := cl + (cr-cl)/2
	return t.query(l, r, cl, mid, 2*p) + t.query(l, r, mid+1, cr, 2*p+1)
}

// pushDown transfers the pending delta of p into both children and
// clears it. A range of size s splits into ceil(s/2) elements on the
// left and floor(s/2) on the right.
func (t *Tree) pushDown(p int, size int32) {
	t.pending[2*p] += t.pending[p]
	t.pending[2*p+1] += t.pending[p]
	t.nodes[2*p] += t.pending[p] * ((size + 1) / 2)
	t.nodes[2*p+1] += t.pending[p] * (size / 2)
	t.pending[p] = 0
}

// capacityFor returns the slice capacity needed so that every node
// index reached by halving [1, n] stays in bounds: 2^h, where h is
// the number of halvings it takes to walk n down to 1, plus one.
func capacityFor(n int) (int, error) {
	h := 1
	for cur := n; cur != 1; cur = (cur + 1) / 2 {
		h++
	}

	if h > bits.UintSize-2 {
		return 0, fmt.Errorf("Tree capacity for %d elements overflows int", n)
	}

	return 1 << h, nil
}
