package hashtables

import (
	"math/bits"

	"github.com/pkg/errors"
)

// ErrCapacityExceeded is returned by Insert when a fixed-capacity table has
// no free slot left for a new key.
var ErrCapacityExceeded = errors.New("hashtable: capacity exceeded")

// Table is the capability set shared by every container in this module.
//
// A Table is not safe for concurrent use. The pointer returned by Lookup
// aliases the table's internal storage: it stays valid only until the next
// Insert or Erase on the same table, and callers must not keep it longer.
type Table interface {
	// Insert stores value under key. If key was already present the previous
	// value is returned with replaced set to true.
	Insert(key, value uint64) (old uint64, replaced bool, err error)

	// Lookup returns a pointer to the value stored under key, or nil.
	// Writes through the pointer are visible to later lookups.
	Lookup(key uint64) *uint64

	// Erase removes key and reports whether it was present.
	Erase(key uint64) bool

	// Rehash inserts every live entry into dst. The receiver is not modified.
	Rehash(dst Table) error

	// Len returns the number of live entries.
	Len() int
}

// Factory constructs a table able to hold at least sizeHint entries
type Factory func(sizeHint int) Table

// Option configures the hand-built tables
type Option func(*options)

type options struct {
	hash HashFunc
}

// WithHashFunc replaces the default XXHash
func WithHashFunc(fn HashFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.hash = fn
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{hash: XXHash}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// capacityFor returns the smallest power of two >= sizeHint, at least 1
func capacityFor(sizeHint int) int {
	if sizeHint <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(sizeHint-1))
}
