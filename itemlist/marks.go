package itemlist

import "github.com/google/btree"

// markedIndex adapts a plain int to the btree.Item interface so the
// marked set can use google/btree for ascending, allocation-light
// ordered storage, exactly as peco's selection.Set (selection/selection.go)
// does for its own marked-line set.
type markedIndex int

func (m markedIndex) Less(other btree.Item) bool {
	o, ok := other.(markedIndex)
	if !ok {
		return false
	}
	return m < o
}

// markedSet is the §3 "marked set of line indices". Membership is
// preserved across provider swaps, per spec.md's invariant that marks
// are not recomputed when the provider changes.
type markedSet struct {
	tree *btree.BTree
}

func newMarkedSet() *markedSet {
	return &markedSet{tree: btree.New(32)}
}

func (m *markedSet) Has(idx int) bool {
	return m.tree.Has(markedIndex(idx))
}

func (m *markedSet) Add(idx int) {
	m.tree.ReplaceOrInsert(markedIndex(idx))
}

func (m *markedSet) Remove(idx int) {
	m.tree.Delete(markedIndex(idx))
}

func (m *markedSet) Toggle(idx int) {
	if m.Has(idx) {
		m.Remove(idx)
	} else {
		m.Add(idx)
	}
}

func (m *markedSet) Len() int {
	return m.tree.Len()
}

// Ascend yields every marked index in ascending order.
func (m *markedSet) Ascend() []int {
	out := make([]int, 0, m.tree.Len())
	m.tree.Ascend(func(it btree.Item) bool {
		out = append(out, int(it.(markedIndex)))
		return true
	})
	return out
}
