// Package conformance checks that a hashtables.Table implementation honors
// the shared contract. Every check builds its own tables through a Factory
// and returns an error describing the first violation it finds.
package conformance

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/theflywheel/hashtables"
)

// Sizes are the size hints every implementation is checked with
var Sizes = []int{10, 99, 837, 48329, 384933}

// Functionality runs the insert, update, lookup, rehash and erase scenario
// on a table built with sizeHint size.
func Functionality(newTable hashtables.Factory, size int) error {
	m := newTable(size)
	n := uint64(size)

	// bulk insert, no key may be present yet
	for i := uint64(0); i < n; i++ {
		old, replaced, err := m.Insert(i, 42)
		if err != nil {
			return errors.Wrapf(err, "insert %d", i)
		}
		if replaced {
			return errors.Errorf("insert %d: got previous value %d, want none", i, old)
		}
	}
	if m.Len() != size {
		return errors.Errorf("len after insert: got %d, want %d", m.Len(), size)
	}

	// bulk update, every key must report 42
	for i := uint64(0); i < n; i++ {
		old, replaced, err := m.Insert(i, i)
		if err != nil {
			return errors.Wrapf(err, "update %d", i)
		}
		if !replaced || old != 42 {
			return errors.Errorf("update %d: got (%d, %t), want (42, true)", i, old, replaced)
		}
	}
	if m.Len() != size {
		return errors.Errorf("len after update: got %d, want %d", m.Len(), size)
	}

	for i := uint64(0); i < 2*n; i++ {
		v := m.Lookup(i)
		switch {
		case i < n && v == nil:
			return errors.Errorf("lookup %d: missing", i)
		case i < n && *v != i:
			return errors.Errorf("lookup %d: got %d", i, *v)
		case i >= n && v != nil:
			return errors.Errorf("lookup %d: got %d, want none", i, *v)
		}
	}

	m2 := newTable(size)
	if err := m.Rehash(m2); err != nil {
		return errors.Wrap(err, "rehash")
	}
	for i := uint64(0); i < n; i++ {
		if v := m2.Lookup(i); v == nil || *v != i {
			return errors.Errorf("lookup %d after rehash: got %s, want %d", i, show(v), i)
		}
		if v := m.Lookup(i); v == nil || *v != i {
			return errors.Errorf("rehash modified source key %d: got %s", i, show(v))
		}
	}
	if m2.Len() != size {
		return errors.Errorf("len of rehash target: got %d, want %d", m2.Len(), size)
	}

	// erase every third key of the first half, twice
	for i := uint64(0); i < n/2; i += 3 {
		if !m.Erase(i) {
			return errors.Errorf("erase %d: not found", i)
		}
	}
	for i := uint64(0); i < n/2; i += 3 {
		if m.Erase(i) {
			return errors.Errorf("erase %d twice: found again", i)
		}
	}

	for i := uint64(0); i < n/2; i++ {
		v := m.Lookup(i)
		if i%3 == 0 {
			if v != nil {
				return errors.Errorf("lookup erased %d: got %d", i, *v)
			}
		} else if v == nil || *v != i {
			return errors.Errorf("lookup %d after erase: got %s, want %d", i, show(v), i)
		}
	}

	// erase the rest of the first half
	for i := uint64(0); i < n/2; i++ {
		if got, want := m.Erase(i), i%3 != 0; got != want {
			return errors.Errorf("erase %d: got %t, want %t", i, got, want)
		}
	}
	if want := size - size/2; m.Len() != want {
		return errors.Errorf("len after erase: got %d, want %d", m.Len(), want)
	}

	return nil
}

// LookupReference checks that the pointer returned by Lookup refers to the
// stored value itself.
func LookupReference(newTable hashtables.Factory, size int) error {
	m := newTable(size)

	if _, replaced, err := m.Insert(0, 42); err != nil || replaced {
		return errors.Errorf("insert 0: replaced=%t err=%v", replaced, err)
	}

	v := m.Lookup(0)
	if v == nil || *v != 42 {
		return errors.Errorf("lookup 0: got %s, want 42", show(v))
	}
	*v = 1337

	if v := m.Lookup(0); v == nil || *v != 1337 {
		return errors.Errorf("lookup 0 after write: got %s, want 1337", show(v))
	}
	return nil
}

// RehashFidelity fills a table from src, erases part of it and rehashes it
// into a table from dst. Both may be different implementations.
func RehashFidelity(src, dst hashtables.Factory, size int) error {
	m := src(size)
	n := uint64(size)

	key := func(i uint64) uint64 { return i*0x9e3779b97f4a7c15 + 1 }

	for i := uint64(0); i < n; i++ {
		if _, _, err := m.Insert(key(i), ^i); err != nil {
			return errors.Wrapf(err, "insert %d", key(i))
		}
	}
	for i := uint64(0); i < n; i += 4 {
		m.Erase(key(i))
	}
	want := m.Len()

	target := dst(size)
	if err := m.Rehash(target); err != nil {
		return errors.Wrap(err, "rehash")
	}

	if m.Len() != want {
		return errors.Errorf("source len changed: got %d, want %d", m.Len(), want)
	}
	if target.Len() != want {
		return errors.Errorf("target len: got %d, want %d", target.Len(), want)
	}

	for i := uint64(0); i < n; i++ {
		k := key(i)
		a, b := m.Lookup(k), target.Lookup(k)
		if (a == nil) != (b == nil) || (a != nil && *a != *b) {
			return errors.Errorf("key %d: source %s, target %s", k, show(a), show(b))
		}
		if i%4 != 0 && (a == nil || *a != ^i) {
			return errors.Errorf("source key %d: got %s, want %d", k, show(a), ^i)
		}
	}
	return nil
}

func show(v *uint64) string {
	if v == nil {
		return "none"
	}
	return strconv.FormatUint(*v, 10)
}
