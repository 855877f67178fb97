package hashtables_test

import (
	"encoding/binary"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"

	"github.com/theflywheel/hashtables"
)

func TestHashFunctions(t *testing.T) {
	var buf [8]byte
	for _, key := range []uint64{0, 1, 42, 1 << 40, ^uint64(0)} {
		binary.LittleEndian.PutUint64(buf[:], key)
		assert.Equal(t, xxhash.Sum64(buf[:]), hashtables.XXHash(key))
		assert.Equal(t, xxh3.Hash(buf[:]), hashtables.XXH3(key))
		assert.Equal(t, key*0x517cc1b727220a95, hashtables.FxHash(key))

		// deterministic
		assert.Equal(t, hashtables.XXHash(key), hashtables.XXHash(key))
	}
}

func TestHashFuncByName(t *testing.T) {
	for _, name := range []string{"", "xxhash", "xxh3", "fx"} {
		fn, err := hashtables.HashFuncByName(name)
		require.NoError(t, err, name)
		require.NotNil(t, fn)
	}

	fn, err := hashtables.HashFuncByName("fx")
	require.NoError(t, err)
	require.Equal(t, hashtables.FxHash(7), fn(7))

	_, err = hashtables.HashFuncByName("sha256")
	require.Error(t, err)
}
