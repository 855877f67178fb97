package bench

import (
	"fmt"
	"runtime"
	"time"

	"github.com/pkg/errors"

	"github.com/theflywheel/hashtables"
)

// Metrics is the result of one timed run
type Metrics struct {
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Operations int                `json:"operations"`
	NsPerOp    float64            `json:"ns_per_op"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Drive inserts every pair of rel, looks up every third key and erases every
// second key of a table built with sizeHint size.
func Drive(newTable hashtables.Factory, size int, rel Relation) error {
	m := newTable(size)

	for _, p := range rel {
		if _, _, err := m.Insert(p.Key, p.Value); err != nil {
			return errors.Wrapf(err, "insert %d", p.Key)
		}
	}

	for i := 0; i < len(rel); i += 3 {
		m.Lookup(rel[i].Key)
	}

	for i := 0; i < len(rel); i += 2 {
		m.Erase(rel[i].Key)
	}
	return nil
}

// Time runs the same workload as Drive and measures each phase
func Time(impl string, newTable hashtables.Factory, size int, rel Relation) (Metrics, error) {
	runtime.GC()
	var before runtime.MemStats
	runtime.ReadMemStats(&before)

	m := newTable(size)

	insertStart := time.Now()
	for _, p := range rel {
		if _, _, err := m.Insert(p.Key, p.Value); err != nil {
			return Metrics{}, errors.Wrapf(err, "%s: insert %d", impl, p.Key)
		}
	}
	insertTime := time.Since(insertStart)

	var after runtime.MemStats
	runtime.ReadMemStats(&after)
	live := m.Len()

	lookups, hits := 0, 0
	lookupStart := time.Now()
	for i := 0; i < len(rel); i += 3 {
		lookups++
		if m.Lookup(rel[i].Key) != nil {
			hits++
		}
	}
	lookupTime := time.Since(lookupStart)

	erases := 0
	eraseStart := time.Now()
	for i := 0; i < len(rel); i += 2 {
		erases++
		m.Erase(rel[i].Key)
	}
	eraseTime := time.Since(eraseStart)

	ops := len(rel) + lookups + erases
	total := insertTime + lookupTime + eraseTime

	return Metrics{
		Name:       fmt.Sprintf("%s/%d", impl, size),
		Category:   impl,
		Operations: ops,
		NsPerOp:    float64(total.Nanoseconds()) / float64(ops),
		Metrics: map[string]float64{
			"insert_rate":   rate(len(rel), insertTime),
			"lookup_rate":   rate(lookups, lookupTime),
			"erase_rate":    rate(erases, eraseTime),
			"live_entries":  float64(live),
			"lookup_hits":   float64(hits),
			"alloc_bytes":   float64(after.TotalAlloc - before.TotalAlloc),
			"bytes_per_key": float64(after.TotalAlloc-before.TotalAlloc) / float64(max(live, 1)),
		},
	}, nil
}

func rate(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}
