package bplustree

import (
	"errors"

	"github.com/range-query-bench/rqbench/index"
)

// Ensure Adapter implements the index.Index interface
var _ index.Index = (*Adapter)(nil)

// Adapter exposes a BPlusTree[int64, []byte] through the benchmark
// Index interface so the tree competes in the same suites as the
// other engines.
type Adapter struct {
	tree *BPlusTree[int64, []byte]
}

func NewAdapter(branchingFactor int) (*Adapter, error) {
	t, err := New[int64, []byte](branchingFactor)
	if err != nil {
		return nil, err
	}
	return &Adapter{tree: t}, nil
}

// Tree returns the underlying tree for comparator-based queries.
func (a *Adapter) Tree() *BPlusTree[int64, []byte] { return a.tree }

func (a *Adapter) Insert(key int64, value []byte) error {
	a.tree.Insert(key, value)
	return nil
}

// Get returns one of the values stored under key. With duplicates
// present, which one is unspecified.
func (a *Adapter) Get(key int64) ([]byte, error) {
	it := a.tree.Scan(key)
	if it.Next() && it.Key() == key {
		return it.Value(), nil
	}
	return nil, errors.New("key not found")
}

// Range returns an iterator over all keys in [start, end] inclusive.
func (a *Adapter) Range(start, end int64) (index.Iterator, error) {
	return &boundedIterator{it: a.tree.Scan(start), end: end}, nil
}

func (a *Adapter) Close() error { return nil }

type boundedIterator struct {
	it   *Iterator[int64, []byte]
	end  int64
	done bool
}

func (b *boundedIterator) Next() bool {
	if b.done {
		return false
	}
	if !b.it.Next() || b.it.Key() > b.end {
		b.done = true
		return false
	}
	return true
}

func (b *boundedIterator) Key() int64    { return b.it.Key() }
func (b *boundedIterator) Value() []byte { return b.it.Value() }
func (b *boundedIterator) Error() error  { return nil }
func (b *boundedIterator) Close() error  { return nil }
