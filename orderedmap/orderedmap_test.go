package orderedmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/theflywheel/hashtables/orderedmap"
)

func TestInsertLookup(t *testing.T) {
	for _, size := range []int{10, 99, 837, 48329} {
		m := orderedmap.New()
		n := uint64(size)

		for i := uint64(0); i < n; i++ {
			_, replaced := m.Insert(i, 42)
			require.False(t, replaced)
		}
		for i := uint64(0); i < n; i++ {
			old, replaced := m.Insert(i, i)
			require.True(t, replaced)
			require.Equal(t, uint64(42), old)
		}
		require.Equal(t, size, m.Len())

		for i := uint64(0); i < 2*n; i++ {
			v := m.Lookup(i)
			if i < n {
				require.NotNil(t, v)
				require.Equal(t, i, *v)
			} else {
				require.Nil(t, v)
			}
		}
	}
}

func TestLookupReference(t *testing.T) {
	m := orderedmap.New()
	m.Insert(0, 42)

	v := m.Lookup(0)
	require.NotNil(t, v)
	*v = 1337

	v = m.Lookup(0)
	require.NotNil(t, v)
	require.Equal(t, uint64(1337), *v)
}

func TestAscendAndDelete(t *testing.T) {
	m := orderedmap.New()
	for _, k := range []uint64{50, 10, 40, 20, 30} {
		m.Insert(k, k*10)
	}
	require.True(t, m.Delete(40))
	require.False(t, m.Delete(40))

	var keys, values []uint64
	m.Ascend(func(key, value uint64) bool {
		keys = append(keys, key)
		values = append(values, value)
		return true
	})
	require.Equal(t, []uint64{10, 20, 30, 50}, keys)
	require.Equal(t, []uint64{100, 200, 300, 500}, values)
	require.Equal(t, 4, m.Len())
}
