// Package btree implements a classic in-memory B-tree baseline.
// Unlike the B+ tree, every node stores values alongside its keys and
// there is no leaf chain, so range scans collect via an in-order walk.
package btree

import (
	"errors"
	"slices"

	"github.com/range-query-bench/rqbench/index"
)

// Ensure BTree implements the index.Index interface
var _ index.Index = (*BTree)(nil)

type BTreeNode struct {
	Leaf     bool
	Keys     []int64
	Values   [][]byte
	Children []*BTreeNode
}

type BTree struct {
	T    int // Minimum degree (t). Max keys = 2t-1
	Root *BTreeNode
}

func NewBTree(t int) *BTree {
	if t < 2 {
		t = 2
	}
	return &BTree{T: t, Root: &BTreeNode{Leaf: true}}
}

// --- GET (Point Query) ---

func (bt *BTree) Get(key int64) ([]byte, error) {
	return bt.search(bt.Root, key)
}

func (bt *BTree) search(x *BTreeNode, key int64) ([]byte, error) {
	i, found := slices.BinarySearch(x.Keys, key)
	if found {
		return x.Values[i], nil
	}
	if x.Leaf {
		return nil, errors.New("key not found")
	}
	return bt.search(x.Children[i], key)
}

// --- INSERT ---

func (bt *BTree) Insert(key int64, value []byte) error {
	root := bt.Root
	// If root is full, tree grows in height
	if len(root.Keys) == (2*bt.T - 1) {
		newRoot := &BTreeNode{Children: []*BTreeNode{root}}
		bt.splitChild(newRoot, 0)
		bt.Root = newRoot
	}
	bt.insertNonFull(bt.Root, key, value)
	return nil
}

func (bt *BTree) insertNonFull(x *BTreeNode, k int64, v []byte) {
	if x.Leaf {
		idx, found := slices.BinarySearch(x.Keys, k)
		if found {
			x.Values[idx] = v // Update existing
			return
		}
		x.Keys = slices.Insert(x.Keys, idx, k)
		x.Values = slices.Insert(x.Values, idx, v)
	} else {
		i := 0
		for i < len(x.Keys) && k > x.Keys[i] {
			i++
		}
		if len(x.Children[i].Keys) == (2*bt.T - 1) {
			bt.splitChild(x, i)
			if k > x.Keys[i] {
				i++
			}
		}
		bt.insertNonFull(x.Children[i], k, v)
	}
}

func (bt *BTree) splitChild(x *BTreeNode, i int) {
	t := bt.T
	y := x.Children[i]
	z := &BTreeNode{Leaf: y.Leaf}
	z.Keys = append(z.Keys, y.Keys[t:]...)
	z.Values = append(z.Values, y.Values[t:]...)
	if !y.Leaf {
		z.Children = append(z.Children, y.Children[t:]...)
	}

	midKey, midVal := y.Keys[t-1], y.Values[t-1]
	y.Keys, y.Values = y.Keys[:t-1], y.Values[:t-1]
	if !y.Leaf {
		y.Children = y.Children[:t]
	}

	x.Keys = slices.Insert(x.Keys, i, midKey)
	x.Values = slices.Insert(x.Values, i, midVal)
	x.Children = slices.Insert(x.Children, i+1, z)
}

// --- RANGE (In-Order Collection) ---

func (bt *BTree) Range(start, end int64) (index.Iterator, error) {
	it := &BTreeIterator{idx: -1}
	bt.collect(bt.Root, start, end, it)
	return it, nil
}

func (bt *BTree) collect(x *BTreeNode, s, e int64, it *BTreeIterator) {
	for i := 0; i < len(x.Keys); i++ {
		if !x.Leaf {
			bt.collect(x.Children[i], s, e, it)
		}
		if x.Keys[i] >= s && x.Keys[i] <= e {
			it.data = append(it.data, struct {
				k int64
				v []byte
			}{x.Keys[i], x.Values[i]})
		}
	}
	if !x.Leaf {
		bt.collect(x.Children[len(x.Keys)], s, e, it)
	}
}

type BTreeIterator struct {
	data []struct {
		k int64
		v []byte
	}
	idx int
}

func (it *BTreeIterator) Next() bool    { it.idx++; return it.idx < len(it.data) }
func (it *BTreeIterator) Key() int64    { return it.data[it.idx].k }
func (it *BTreeIterator) Value() []byte { return it.data[it.idx].v }
func (it *BTreeIterator) Error() error  { return nil }
func (it *BTreeIterator) Close() error  { return nil }
func (bt *BTree) Close() error          { return nil }
