// Package orderedmap defines an ordered key-value contract and a reference
// implementation backed by a B-tree.
package orderedmap

import (
	"github.com/google/btree"
)

// Map is an ordered map from uint64 keys to uint64 values.
// The pointer returned by Lookup is valid until the next Insert.
type Map interface {
	Lookup(key uint64) *uint64
	Insert(key, value uint64) (old uint64, replaced bool)
	Len() int
}

const degree = 32

type item struct {
	key   uint64
	value uint64
}

func (a *item) Less(than btree.Item) bool {
	return a.key < than.(*item).key
}

// BTree is a Map on top of google/btree. Items are stored by pointer so that
// values can be updated in place.
type BTree struct {
	tree *btree.BTree
}

var _ Map = (*BTree)(nil)

// New creates an empty BTree
func New() *BTree {
	return &BTree{tree: btree.New(degree)}
}

func (t *BTree) Lookup(key uint64) *uint64 {
	it := t.tree.Get(&item{key: key})
	if it == nil {
		return nil
	}
	return &it.(*item).value
}

func (t *BTree) Insert(key, value uint64) (uint64, bool) {
	if v := t.Lookup(key); v != nil {
		old := *v
		*v = value
		return old, true
	}
	t.tree.ReplaceOrInsert(&item{key: key, value: value})
	return 0, false
}

// Delete removes key and reports whether it was present
func (t *BTree) Delete(key uint64) bool {
	return t.tree.Delete(&item{key: key}) != nil
}

// Ascend calls fn for every entry in key order until fn returns false
func (t *BTree) Ascend(fn func(key, value uint64) bool) {
	t.tree.Ascend(func(i btree.Item) bool {
		it := i.(*item)
		return fn(it.key, it.value)
	})
}

func (t *BTree) Len() int {
	return t.tree.Len()
}
