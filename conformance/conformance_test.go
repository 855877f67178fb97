package conformance_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/theflywheel/hashtables"
	"github.com/theflywheel/hashtables/conformance"
)

// copyingLookup hands out pointers to copies, breaking reference identity
type copyingLookup struct {
	*hashtables.Builtin
}

func (c copyingLookup) Lookup(key uint64) *uint64 {
	v := c.Builtin.Lookup(key)
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

// stickyErase reports every erase as successful
type stickyErase struct {
	*hashtables.Builtin
}

func (s stickyErase) Erase(key uint64) bool {
	s.Builtin.Erase(key)
	return true
}

// mutatingRehash drops the source entries while rehashing
type mutatingRehash struct {
	*hashtables.Chaining
}

func (m mutatingRehash) Rehash(dst hashtables.Table) error {
	if err := m.Chaining.Rehash(dst); err != nil {
		return err
	}
	for k := uint64(0); k < 4; k++ {
		m.Chaining.Erase(k)
	}
	return nil
}

func TestChecksPassOnReferences(t *testing.T) {
	for _, size := range []int{10, 99, 837} {
		require.NoError(t, conformance.Functionality(hashtables.BuiltinFactory, size))
		require.NoError(t, conformance.LookupReference(hashtables.SwissFactory, size))
		require.NoError(t, conformance.RehashFidelity(hashtables.SwissFactory, hashtables.BuiltinFactory, size))
		require.NoError(t, conformance.Differential(hashtables.OpenFactory(), size, 10*size, 1))
	}
}

func TestLookupReferenceDetectsCopies(t *testing.T) {
	factory := func(size int) hashtables.Table {
		return copyingLookup{hashtables.NewBuiltin(size)}
	}

	require.NoError(t, conformance.Functionality(factory, 99))

	err := conformance.LookupReference(factory, 99)
	require.Error(t, err)
	require.Contains(t, err.Error(), "1337")
}

func TestFunctionalityDetectsDoubleErase(t *testing.T) {
	factory := func(size int) hashtables.Table {
		return stickyErase{hashtables.NewBuiltin(size)}
	}

	err := conformance.Functionality(factory, 99)
	require.Error(t, err)
	require.Contains(t, err.Error(), "twice")
}

func TestFunctionalityDetectsMutatingRehash(t *testing.T) {
	factory := func(size int) hashtables.Table {
		return mutatingRehash{hashtables.NewChaining(size)}
	}

	err := conformance.Functionality(factory, 99)
	require.Error(t, err)
	require.Contains(t, err.Error(), "rehash modified source")
}

func TestDifferentialRejectsEmptySize(t *testing.T) {
	require.Error(t, conformance.Differential(hashtables.BuiltinFactory, 0, 10, 1))
}

func TestRunAll(t *testing.T) {
	impls := map[string]hashtables.Factory{
		"chaining": hashtables.ChainingFactory(),
		"open":     hashtables.OpenFactory(),
		"broken": func(size int) hashtables.Table {
			return stickyErase{hashtables.NewBuiltin(size)}
		},
	}
	sizes := []int{10, 99}

	reports, err := conformance.RunAll(impls, sizes, 4, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Len(t, reports, len(impls)*len(conformance.Suite("x", nil, sizes)))

	failed := conformance.Failed(reports)
	require.NotEmpty(t, failed)
	for _, r := range failed {
		require.Equal(t, "broken", r.Impl)
	}

	// sorted by impl, then size
	require.Equal(t, "broken", reports[0].Impl)
	require.Equal(t, "open", reports[len(reports)-1].Impl)
	require.Equal(t, 99, reports[len(reports)-1].Size)
}

func TestRunAllRecoversPanics(t *testing.T) {
	impls := map[string]hashtables.Factory{
		"panics": func(int) hashtables.Table { panic("boom") },
	}

	reports, err := conformance.RunAll(impls, []int{10}, 2, nil)
	require.NoError(t, err)
	require.Len(t, conformance.Failed(reports), len(reports))
	require.Contains(t, reports[0].Err.Error(), "boom")
}
