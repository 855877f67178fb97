package hashtables

import (
	"github.com/pkg/errors"
)

const (
	slotEmpty uint8 = iota
	slotOccupied
	slotTombstone
)

type slot struct {
	state uint8
	key   uint64
	value uint64
}

// Open is an open-addressing hash table using linear probing with
// wrap-around. Erased slots become tombstones and are never turned back into
// empty slots, so probe chains of other keys stay intact. Tombstones are only
// reclaimed by a later Insert that stops on them.
type Open struct {
	mask       uint64
	hash       HashFunc
	slots      []slot
	len        int
	tombstones int
}

var _ Table = (*Open)(nil)

// OpenStats describes slot usage of an Open table
type OpenStats struct {
	Live       int
	Tombstones int
	Empty      int
}

// NewOpen creates a table with the smallest power of two slots that is at
// least sizeHint
func NewOpen(sizeHint int, opts ...Option) *Open {
	o := buildOptions(opts)
	n := capacityFor(sizeHint)
	return &Open{
		mask:  uint64(n - 1),
		hash:  o.hash,
		slots: make([]slot, n),
	}
}

// OpenFactory builds Open tables with the given options
func OpenFactory(opts ...Option) Factory {
	return func(sizeHint int) Table {
		return NewOpen(sizeHint, opts...)
	}
}

// Insert probes from the home slot. An existing key is overwritten in place.
// Otherwise the entry goes into the first tombstone met on the probe path or,
// failing that, the empty slot that ended the probe. Probing continues past a
// tombstone so that a key never occupies two slots; unlike the variant that
// writes into the first tombstone it meets, a key stored further along the
// chain is found and overwritten. Insert fails with
// ErrCapacityExceeded once the probe wraps around without a free slot.
func (o *Open) Insert(key, value uint64) (uint64, bool, error) {
	home := o.hash(key) & o.mask
	n := uint64(len(o.slots))
	free := -1

	for i := uint64(0); i < n; i++ {
		idx := (home + i) & o.mask
		s := &o.slots[idx]

		switch s.state {
		case slotEmpty:
			if free < 0 {
				free = int(idx)
			}
			o.fill(free, key, value)
			return 0, false, nil

		case slotTombstone:
			if free < 0 {
				free = int(idx)
			}

		case slotOccupied:
			if s.key == key {
				old := s.value
				s.value = value
				return old, true, nil
			}
		}
	}

	if free >= 0 {
		o.fill(free, key, value)
		return 0, false, nil
	}
	return 0, false, errors.Wrapf(ErrCapacityExceeded, "insert key %d into %d slots", key, n)
}

func (o *Open) fill(idx int, key, value uint64) {
	s := &o.slots[idx]
	if s.state == slotTombstone {
		o.tombstones--
	}
	*s = slot{state: slotOccupied, key: key, value: value}
	o.len++
}

// index returns the slot holding key, or -1. Probing stops at the first
// empty slot and skips over tombstones.
func (o *Open) index(key uint64) int {
	home := o.hash(key) & o.mask
	n := uint64(len(o.slots))

	for i := uint64(0); i < n; i++ {
		idx := (home + i) & o.mask
		s := &o.slots[idx]

		switch s.state {
		case slotEmpty:
			return -1
		case slotOccupied:
			if s.key == key {
				return int(idx)
			}
		}
	}

	// searched the whole table
	return -1
}

func (o *Open) Lookup(key uint64) *uint64 {
	if i := o.index(key); i >= 0 {
		return &o.slots[i].value
	}
	return nil
}

func (o *Open) Erase(key uint64) bool {
	i := o.index(key)
	if i < 0 {
		return false
	}
	o.slots[i] = slot{state: slotTombstone}
	o.len--
	o.tombstones++
	return true
}

func (o *Open) Rehash(dst Table) error {
	var err error
	o.Range(func(key, value uint64) bool {
		if _, _, err = dst.Insert(key, value); err != nil {
			err = errors.Wrapf(err, "rehash key %d", key)
			return false
		}
		return true
	})
	return err
}

// Range calls fn for every live entry in slot order until fn returns false
func (o *Open) Range(fn func(key, value uint64) bool) {
	for i := range o.slots {
		s := &o.slots[i]
		if s.state != slotOccupied {
			continue
		}
		if !fn(s.key, s.value) {
			return
		}
	}
}

func (o *Open) Len() int {
	return o.len
}

// Cap returns the number of slots
func (o *Open) Cap() int {
	return len(o.slots)
}

// Stats reports how the slots are currently used
func (o *Open) Stats() OpenStats {
	return OpenStats{
		Live:       o.len,
		Tombstones: o.tombstones,
		Empty:      len(o.slots) - o.len - o.tombstones,
	}
}
