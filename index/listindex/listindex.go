// Package listindex keeps every pair in one sorted slice. It is the
// simplest duplicate-preserving index and doubles as the oracle the
// tree implementations are checked against in tests.
package listindex

import (
	"errors"
	"slices"

	"github.com/range-query-bench/rqbench/index"
)

// Ensure ListIndex implements the index.Index interface
var _ index.Index = (*ListIndex)(nil)

type Data struct {
	Key int64
	Val []byte
}

type ListIndex struct {
	Data []Data
}

func NewListIndex() *ListIndex {
	return &ListIndex{
		Data: make([]Data, 0),
	}
}

// Insert keeps Data sorted by key. Duplicate keys are retained; the
// new pair goes in front of existing pairs with the same key.
func (l *ListIndex) Insert(key int64, value []byte) error {
	i, _ := slices.BinarySearchFunc(l.Data, key, func(d Data, k int64) int {
		if d.Key < k {
			return -1
		}
		return 1
	})
	l.Data = slices.Insert(l.Data, i, Data{Key: key, Val: value})
	return nil
}

// Get returns the first value stored under key.
func (l *ListIndex) Get(key int64) ([]byte, error) {
	i, found := slices.BinarySearchFunc(l.Data, key, func(d Data, k int64) int {
		switch {
		case d.Key < k:
			return -1
		case d.Key > k:
			return 1
		}
		return 0
	})
	if !found {
		return nil, errors.New("key not found")
	}
	return l.Data[i].Val, nil
}

// Range returns an iterator over all keys in [start, end] inclusive.
func (l *ListIndex) Range(start, end int64) (index.Iterator, error) {
	return &ListIterator{
		data:  l.Data,
		cur:   -1,
		start: start,
		end:   end,
	}, nil
}

func (l *ListIndex) Close() error { return nil }

type ListIterator struct {
	data  []Data
	cur   int
	start int64
	end   int64
}

func (it *ListIterator) Next() bool {
	it.cur++
	for it.cur < len(it.data) {
		if it.data[it.cur].Key > it.end {
			return false
		}
		if it.data[it.cur].Key >= it.start {
			return true
		}
		it.cur++
	}
	return false
}

func (it *ListIterator) Key() int64    { return it.data[it.cur].Key }
func (it *ListIterator) Value() []byte { return it.data[it.cur].Val }
func (it *ListIterator) Error() error  { return nil }
func (it *ListIterator) Close() error  { return nil }
