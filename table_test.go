package hashtables_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/theflywheel/hashtables"
	"github.com/theflywheel/hashtables/conformance"
)

var implementations = []struct {
	name    string
	factory hashtables.Factory
}{
	{"Chaining", hashtables.ChainingFactory()},
	{"Open", hashtables.OpenFactory()},
	{"ChainingXXH3", hashtables.ChainingFactory(hashtables.WithHashFunc(hashtables.XXH3))},
	{"OpenFx", hashtables.OpenFactory(hashtables.WithHashFunc(hashtables.FxHash))},
	{"Builtin", hashtables.BuiltinFactory},
	{"Swiss", hashtables.SwissFactory},
}

func testSizes(t *testing.T) []int {
	if testing.Short() {
		return conformance.Sizes[:3]
	}
	return conformance.Sizes
}

func TestFunctionality(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			for _, size := range testSizes(t) {
				require.NoError(t, conformance.Functionality(impl.factory, size), "size %d", size)
			}
		})
	}
}

func TestLookupReference(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			for _, size := range testSizes(t) {
				require.NoError(t, conformance.LookupReference(impl.factory, size), "size %d", size)
			}
		})
	}
}

func TestRehashAcrossImplementations(t *testing.T) {
	for _, src := range implementations {
		for _, dst := range implementations {
			t.Run(src.name+"To"+dst.name, func(t *testing.T) {
				require.NoError(t, conformance.RehashFidelity(src.factory, dst.factory, 837))
			})
		}
	}
}

func TestDifferential(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			for _, size := range []int{1, 7, 64, 1000} {
				require.NoError(t, conformance.Differential(impl.factory, size, 20*size+100, uint64(size)), "size %d", size)
			}
		})
	}
}

func TestCapacityIsPowerOfTwo(t *testing.T) {
	tests := []struct {
		hint int
		want int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{10, 16},
		{99, 128},
		{128, 128},
		{129, 256},
		{48329, 65536},
	}

	for _, tt := range tests {
		c := hashtables.NewChaining(tt.hint)
		o := hashtables.NewOpen(tt.hint)
		require.Equal(t, tt.want, c.Cap(), "chaining hint %d", tt.hint)
		require.Equal(t, tt.want, o.Cap(), "open hint %d", tt.hint)

		// capacity never changes, even past the hint
		for k := uint64(0); k < uint64(tt.want); k++ {
			_, _, err := c.Insert(k, k)
			require.NoError(t, err)
			_, _, err = o.Insert(k, k)
			require.NoError(t, err)
		}
		for k := uint64(0); k < uint64(tt.want); k++ {
			c.Erase(k)
			o.Erase(k)
		}
		require.Equal(t, tt.want, c.Cap())
		require.Equal(t, tt.want, o.Cap())
	}
}

func TestOverwriteKeepsLen(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			m := impl.factory(16)

			_, replaced, err := m.Insert(7, 1)
			require.NoError(t, err)
			require.False(t, replaced)

			old, replaced, err := m.Insert(7, 2)
			require.NoError(t, err)
			require.True(t, replaced)
			require.Equal(t, uint64(1), old)
			require.Equal(t, 1, m.Len())

			require.True(t, m.Erase(7))
			require.False(t, m.Erase(7))
			require.Nil(t, m.Lookup(7))
			require.Equal(t, 0, m.Len())
		})
	}
}
