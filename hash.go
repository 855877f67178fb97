package hashtables

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"
)

// HashFunc maps a key to a 64-bit hash. Tables only use the low bits.
type HashFunc func(key uint64) uint64

// fxSeed is the multiplier of the rustc Fx word hasher
const fxSeed = 0x517cc1b727220a95

// XXHash hashes the little-endian bytes of key with xxHash64
func XXHash(key uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	return xxhash.Sum64(buf[:])
}

// XXH3 hashes the little-endian bytes of key with xxh3
func XXH3(key uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	return xxh3.Hash(buf[:])
}

// FxHash is a single round of the Fx hasher starting from a zero state,
// which reduces to one multiplication.
func FxHash(key uint64) uint64 {
	return key * fxSeed
}

// HashFuncByName resolves the hash names accepted in configuration
func HashFuncByName(name string) (HashFunc, error) {
	switch name {
	case "", "xxhash":
		return XXHash, nil
	case "xxh3":
		return XXH3, nil
	case "fx":
		return FxHash, nil
	}
	return nil, errors.Errorf("unknown hash function %q", name)
}
