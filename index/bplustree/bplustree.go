// Package bplustree implements an in-memory B+ tree with duplicate
// keys as a first-class case.
//
// All data lives in leaf nodes; internal nodes carry routing
// separators only. Leaves form a doubly linked chain in key order,
// which is what range queries walk. Inserts recurse to a leaf and
// propagate splits back up as promotion fragments (one separator key,
// two children); when a fragment reaches the top the tree grows a new
// root and gains a level.
//
// The tree is not safe for concurrent use.
package bplustree

import (
	"cmp"
	"fmt"
	"slices"
)

// node is tagged by leaf. Leaves use values, next and prev; internal
// nodes use children, with len(children) == len(keys)+1. values[i]
// pairs with keys[i] positionally.
type node[K cmp.Ordered, V any] struct {
	leaf     bool
	keys     []K
	values   []V
	children []*node[K, V]
	next     *node[K, V]
	prev     *node[K, V]
}

// promo is the fragment handed up from a split: one separator key and
// the two halves that replace the node that overflowed.
type promo[K cmp.Ordered, V any] struct {
	key         K
	left, right *node[K, V]
}

// BPlusTree maps keys to values, allowing multiple values per key.
type BPlusTree[K cmp.Ordered, V any] struct {
	m    int // branching factor; a node holding m keys must split
	root *node[K, V]
	size int
}

// New returns an empty tree. The branching factor must be at least 3;
// smaller values cannot form a valid B+ tree node and are rejected.
func New[K cmp.Ordered, V any](branchingFactor int) (*BPlusTree[K, V], error) {
	if branchingFactor <= 2 {
		return nil, fmt.Errorf("bplustree: illegal branching factor %d", branchingFactor)
	}
	return &BPlusTree[K, V]{m: branchingFactor}, nil
}

// Len returns the number of stored key-value pairs.
func (t *BPlusTree[K, V]) Len() int { return t.size }

// --- INSERT ---

// Insert adds the pair to the tree. Duplicate keys are allowed; the
// relative order of values stored under equal keys is unspecified.
func (t *BPlusTree[K, V]) Insert(key K, value V) {
	t.size++
	if t.root == nil {
		t.root = &node[K, V]{leaf: true, keys: []K{key}, values: []V{value}}
		return
	}
	if up := t.insert(t.root, key, value); up != nil {
		t.root = &node[K, V]{
			keys:     []K{up.key},
			children: []*node[K, V]{up.left, up.right},
		}
	}
}

// insert recurses to the leaf the key belongs in. It returns a
// non-nil promotion exactly when the visited node overflowed and
// split; the caller splices the fragment in at the descent index.
func (t *BPlusTree[K, V]) insert(n *node[K, V], key K, value V) *promo[K, V] {
	if n.leaf {
		// New pairs land before existing equal keys.
		i := 0
		for i < len(n.keys) && n.keys[i] < key {
			i++
		}
		n.keys = slices.Insert(n.keys, i, key)
		n.values = slices.Insert(n.values, i, value)
		if len(n.keys) == t.m {
			return t.splitLeaf(n)
		}
		return nil
	}

	// Descend at the first separator strictly greater than the key.
	i := 0
	for i < len(n.keys) && n.keys[i] <= key {
		i++
	}
	up := t.insert(n.children[i], key, value)
	if up == nil {
		return nil
	}
	n.keys = slices.Insert(n.keys, i, up.key)
	n.children[i] = up.left
	n.children = slices.Insert(n.children, i+1, up.right)
	if len(n.keys) == t.m {
		return t.splitInternal(n)
	}
	return nil
}

// splitLeaf halves an overflowing leaf. The boundary key stays as the
// first key of the right half; the promoted separator is the last key
// of the left half, copied upward purely for routing. Both halves are
// relinked into the leaf chain in place of n.
func (t *BPlusTree[K, V]) splitLeaf(n *node[K, V]) *promo[K, V] {
	mid := len(n.keys) / 2
	left := &node[K, V]{
		leaf:   true,
		keys:   slices.Clone(n.keys[:mid]),
		values: slices.Clone(n.values[:mid]),
	}
	right := &node[K, V]{
		leaf:   true,
		keys:   slices.Clone(n.keys[mid:]),
		values: slices.Clone(n.values[mid:]),
	}
	left.next, right.prev = right, left
	left.prev, right.next = n.prev, n.next
	if n.prev != nil {
		n.prev.next = left
	}
	if n.next != nil {
		n.next.prev = right
	}
	return &promo[K, V]{key: left.keys[mid-1], left: left, right: right}
}

// splitInternal halves an overflowing internal node. The middle key
// moves up and appears in neither half: separators are routing-only,
// so unlike a leaf split nothing is duplicated.
func (t *BPlusTree[K, V]) splitInternal(n *node[K, V]) *promo[K, V] {
	mid := len(n.keys) / 2
	left := &node[K, V]{
		keys:     slices.Clone(n.keys[:mid]),
		children: slices.Clone(n.children[:mid+1]),
	}
	right := &node[K, V]{
		keys:     slices.Clone(n.keys[mid+1:]),
		children: slices.Clone(n.children[mid+1:]),
	}
	return &promo[K, V]{key: n.keys[mid], left: left, right: right}
}
