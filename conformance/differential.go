package conformance

import (
	"github.com/RoaringBitmap/roaring/roaring64"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/theflywheel/hashtables"
)

// Differential applies ops random operations to a table from newTable and to
// a Builtin reference and fails on the first diverging result. Keys are drawn
// from [0, 2*size) so that overwrites and misses are frequent, and the number
// of live keys never exceeds size.
func Differential(newTable hashtables.Factory, size, ops int, seed uint64) error {
	if size <= 0 {
		return errors.Errorf("differential: size must be positive, got %d", size)
	}

	m := newTable(size)
	ref := hashtables.NewBuiltin(size)
	live := roaring64.New()
	rng := rand.New(rand.NewSource(seed))
	keySpace := uint64(2 * size)

	for op := 0; op < ops; op++ {
		key := rng.Uint64n(keySpace)

		switch r := rng.Intn(8); {
		case r < 4:
			if !live.Contains(key) && live.GetCardinality() >= uint64(size) {
				continue
			}
			value := rng.Uint64()
			old, replaced, err := m.Insert(key, value)
			if err != nil {
				return errors.Wrapf(err, "op %d: insert %d", op, key)
			}
			refOld, refReplaced, _ := ref.Insert(key, value)
			if replaced != refReplaced || old != refOld {
				return errors.Errorf("op %d: insert %d: got (%d, %t), want (%d, %t)",
					op, key, old, replaced, refOld, refReplaced)
			}
			live.Add(key)

		case r < 6:
			got, want := m.Lookup(key), ref.Lookup(key)
			if (got == nil) != (want == nil) || (got != nil && *got != *want) {
				return errors.Errorf("op %d: lookup %d: got %s, want %s", op, key, show(got), show(want))
			}
			// write through both references
			if got != nil && r == 5 {
				*got += 1
				*want += 1
			}

		default:
			got, want := m.Erase(key), ref.Erase(key)
			if got != want {
				return errors.Errorf("op %d: erase %d: got %t, want %t", op, key, got, want)
			}
			live.Remove(key)
		}

		if uint64(m.Len()) != live.GetCardinality() {
			return errors.Errorf("op %d: len %d, want %d", op, m.Len(), live.GetCardinality())
		}
	}

	it := live.Iterator()
	for it.HasNext() {
		key := it.Next()
		got, want := m.Lookup(key), ref.Lookup(key)
		if got == nil || *got != *want {
			return errors.Errorf("final lookup %d: got %s, want %s", key, show(got), show(want))
		}
	}
	return nil
}
