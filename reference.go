package hashtables

import (
	"github.com/cockroachdb/swiss"
	"github.com/pkg/errors"
)

// Builtin adapts Go's map to Table. Values are boxed so that Lookup can hand
// out a pointer that survives map growth.
type Builtin struct {
	m map[uint64]*uint64
}

var _ Table = (*Builtin)(nil)

// NewBuiltin creates a map with room for sizeHint entries
func NewBuiltin(sizeHint int) *Builtin {
	return &Builtin{m: make(map[uint64]*uint64, sizeHint)}
}

// BuiltinFactory builds Builtin tables
func BuiltinFactory(sizeHint int) Table {
	return NewBuiltin(sizeHint)
}

func (b *Builtin) Insert(key, value uint64) (uint64, bool, error) {
	if v, ok := b.m[key]; ok {
		old := *v
		*v = value
		return old, true, nil
	}
	b.m[key] = &value
	return 0, false, nil
}

func (b *Builtin) Lookup(key uint64) *uint64 {
	return b.m[key]
}

func (b *Builtin) Erase(key uint64) bool {
	if _, ok := b.m[key]; !ok {
		return false
	}
	delete(b.m, key)
	return true
}

func (b *Builtin) Rehash(dst Table) error {
	for k, v := range b.m {
		if _, _, err := dst.Insert(k, *v); err != nil {
			return errors.Wrapf(err, "rehash key %d", k)
		}
	}
	return nil
}

func (b *Builtin) Len() int {
	return len(b.m)
}

// Swiss adapts cockroachdb/swiss to Table
type Swiss struct {
	m *swiss.Map[uint64, *uint64]
}

var _ Table = (*Swiss)(nil)

// NewSwiss creates a swiss map with room for sizeHint entries
func NewSwiss(sizeHint int) *Swiss {
	return &Swiss{m: swiss.New[uint64, *uint64](sizeHint)}
}

// SwissFactory builds Swiss tables
func SwissFactory(sizeHint int) Table {
	return NewSwiss(sizeHint)
}

func (s *Swiss) Insert(key, value uint64) (uint64, bool, error) {
	if v, ok := s.m.Get(key); ok {
		old := *v
		*v = value
		return old, true, nil
	}
	s.m.Put(key, &value)
	return 0, false, nil
}

func (s *Swiss) Lookup(key uint64) *uint64 {
	v, _ := s.m.Get(key)
	return v
}

func (s *Swiss) Erase(key uint64) bool {
	if _, ok := s.m.Get(key); !ok {
		return false
	}
	s.m.Delete(key)
	return true
}

func (s *Swiss) Rehash(dst Table) error {
	var err error
	s.m.All(func(key uint64, v *uint64) bool {
		if _, _, err = dst.Insert(key, *v); err != nil {
			err = errors.Wrapf(err, "rehash key %d", key)
			return false
		}
		return true
	})
	return err
}

func (s *Swiss) Len() int {
	return s.m.Len()
}
