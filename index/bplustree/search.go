package bplustree

import "cmp"

// Comparator selects the range-search mode relative to the pivot key.
type Comparator string

const (
	LessOrEqual    Comparator = "<="
	Equal          Comparator = "=="
	GreaterOrEqual Comparator = ">="
)

// RangeSearch returns every value whose key satisfies
// "key cmp pivot" for the given pivot. An unknown comparator or an
// empty tree yields an empty result; no-match is not an error. The
// order of returned values is unspecified.
func (t *BPlusTree[K, V]) RangeSearch(pivot K, comparator Comparator) []V {
	if t.root == nil {
		return nil
	}
	switch comparator {
	case Equal:
		return t.searchEqual(pivot)
	case GreaterOrEqual:
		return t.searchGE(pivot)
	case LessOrEqual:
		return t.searchLE(pivot)
	}
	return nil
}

// findLeaf descends to a boundary leaf for the pivot. With leftmost
// set it stops at the first separator >= pivot, reaching the leftmost
// leaf that can hold the pivot (a separator equal to the pivot is the
// last key of its left leaf, so equal keys can sit in the left
// child). Otherwise it stops at the first separator strictly greater,
// reaching the rightmost candidate. Everything left of the chosen
// child is strictly below the pivot in the first case, and everything
// right of it strictly above in the second; that is what makes the
// chain walks below complete.
func (t *BPlusTree[K, V]) findLeaf(pivot K, leftmost bool) *node[K, V] {
	n := t.root
	for !n.leaf {
		i := 0
		if leftmost {
			for i < len(n.keys) && n.keys[i] < pivot {
				i++
			}
		} else {
			for i < len(n.keys) && n.keys[i] <= pivot {
				i++
			}
		}
		n = n.children[i]
	}
	return n
}

func (t *BPlusTree[K, V]) searchEqual(pivot K) []V {
	var out []V
	for n := t.findLeaf(pivot, true); n != nil; n = n.next {
		for i, k := range n.keys {
			if k == pivot {
				out = append(out, n.values[i])
			} else if k > pivot {
				return out
			}
		}
	}
	return out
}

func (t *BPlusTree[K, V]) searchGE(pivot K) []V {
	var out []V
	n := t.findLeaf(pivot, true)
	for i, k := range n.keys {
		if k >= pivot {
			out = append(out, n.values[i])
		}
	}
	for n = n.next; n != nil; n = n.next {
		out = append(out, n.values...)
	}
	return out
}

func (t *BPlusTree[K, V]) searchLE(pivot K) []V {
	var out []V
	n := t.findLeaf(pivot, false)
	for i, k := range n.keys {
		if k <= pivot {
			out = append(out, n.values[i])
		}
	}
	for n = n.prev; n != nil; n = n.prev {
		out = append(out, n.values...)
	}
	return out
}

// --- SCAN ---

// Iterator walks the leaf chain in key order.
type Iterator[K cmp.Ordered, V any] struct {
	curr *node[K, V]
	i    int
}

// Scan returns an iterator positioned at the first key >= from.
func (t *BPlusTree[K, V]) Scan(from K) *Iterator[K, V] {
	if t.root == nil {
		return &Iterator[K, V]{}
	}
	n := t.findLeaf(from, true)
	i := 0
	for i < len(n.keys) && n.keys[i] < from {
		i++
	}
	return &Iterator[K, V]{curr: n, i: i - 1}
}

// Next advances the iterator, following the leaf chain across node
// boundaries. It reports false once the chain is exhausted.
func (it *Iterator[K, V]) Next() bool {
	if it.curr == nil {
		return false
	}
	it.i++
	for it.i >= len(it.curr.keys) {
		it.curr = it.curr.next
		it.i = 0
		if it.curr == nil {
			return false
		}
	}
	return true
}

func (it *Iterator[K, V]) Key() K   { return it.curr.keys[it.i] }
func (it *Iterator[K, V]) Value() V { return it.curr.values[it.i] }
