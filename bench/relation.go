// Package bench drives hashtables.Table implementations through a fixed
// insert, lookup and erase workload and records how long each phase takes.
package bench

import (
	"github.com/axiomhq/hyperloglog"
	"golang.org/x/exp/rand"

	"github.com/theflywheel/hashtables"
)

// Pair is one generated key-value pair
type Pair struct {
	Key   uint64
	Value uint64
}

// Relation is a sequence of random pairs. Keys may repeat.
type Relation []Pair

// GenRelation returns size random pairs drawn from a PCG source seeded with seed
func GenRelation(size int, seed uint64) Relation {
	rng := rand.New(rand.NewSource(seed))
	rel := make(Relation, size)
	for i := range rel {
		rel[i] = Pair{Key: rng.Uint64(), Value: rng.Uint64()}
	}
	return rel
}

// DistinctEstimate estimates the number of distinct keys in r
func (r Relation) DistinctEstimate() uint64 {
	sk := hyperloglog.New()
	for _, p := range r {
		sk.InsertHash(hashtables.XXHash(p.Key))
	}
	return sk.Estimate()
}
