package hashtables

import (
	"slices"

	"github.com/pkg/errors"
)

type entry struct {
	key   uint64
	value uint64
}

// Chaining is a hash table with separate chaining. The number of buckets is
// fixed at construction; exceeding the size hint only lengthens the chains.
type Chaining struct {
	mask    uint64
	hash    HashFunc
	buckets [][]entry
	len     int
}

var _ Table = (*Chaining)(nil)

// NewChaining creates a table with the smallest power of two buckets that is
// at least sizeHint
func NewChaining(sizeHint int, opts ...Option) *Chaining {
	o := buildOptions(opts)
	n := capacityFor(sizeHint)
	return &Chaining{
		mask:    uint64(n - 1),
		hash:    o.hash,
		buckets: make([][]entry, n),
	}
}

// ChainingFactory builds Chaining tables with the given options
func ChainingFactory(opts ...Option) Factory {
	return func(sizeHint int) Table {
		return NewChaining(sizeHint, opts...)
	}
}

func (c *Chaining) bucket(key uint64) *[]entry {
	return &c.buckets[c.hash(key)&c.mask]
}

// find returns the position of key in b, scanning newest entries first.
// Entries are appended, so the newest entry is at the tail of the slice.
func find(b []entry, key uint64) int {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i].key == key {
			return i
		}
	}
	return -1
}

func (c *Chaining) Insert(key, value uint64) (uint64, bool, error) {
	b := c.bucket(key)

	if i := find(*b, key); i >= 0 {
		old := (*b)[i].value
		(*b)[i].value = value
		return old, true, nil
	}

	*b = append(*b, entry{key: key, value: value})
	c.len++
	return 0, false, nil
}

func (c *Chaining) Lookup(key uint64) *uint64 {
	b := *c.bucket(key)
	if i := find(b, key); i >= 0 {
		return &b[i].value
	}
	return nil
}

func (c *Chaining) Erase(key uint64) bool {
	b := c.bucket(key)
	i := find(*b, key)
	if i < 0 {
		return false
	}
	// keep the relative order of the remaining entries
	*b = slices.Delete(*b, i, i+1)
	c.len--
	return true
}

func (c *Chaining) Rehash(dst Table) error {
	var err error
	c.Range(func(key, value uint64) bool {
		if _, _, err = dst.Insert(key, value); err != nil {
			err = errors.Wrapf(err, "rehash key %d", key)
			return false
		}
		return true
	})
	return err
}

// Range calls fn for every entry, bucket by bucket, newest first within a
// bucket. Iteration stops when fn returns false.
func (c *Chaining) Range(fn func(key, value uint64) bool) {
	for _, b := range c.buckets {
		for i := len(b) - 1; i >= 0; i-- {
			if !fn(b[i].key, b[i].value) {
				return
			}
		}
	}
}

func (c *Chaining) Len() int {
	return c.len
}

// Cap returns the number of buckets
func (c *Chaining) Cap() int {
	return len(c.buckets)
}

// LongestChain returns the length of the fullest bucket
func (c *Chaining) LongestChain() int {
	longest := 0
	for _, b := range c.buckets {
		if len(b) > longest {
			longest = len(b)
		}
	}
	return longest
}
