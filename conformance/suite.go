package conformance

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/theflywheel/hashtables"
)

// Check is a single named conformance check
type Check struct {
	Impl string
	Name string
	Size int
	Run  func() error
}

// Report is the outcome of one Check
type Report struct {
	Impl     string
	Name     string
	Size     int
	Duration time.Duration
	Err      error
}

// differentialOps is the number of random operations per size unit
const differentialOps = 8

// Suite returns every check for one implementation. Rehash fidelity is
// checked against the Builtin reference in both directions.
func Suite(impl string, newTable hashtables.Factory, sizes []int) []Check {
	var checks []Check
	for _, size := range sizes {
		size := size
		checks = append(checks,
			Check{impl, "functionality", size, func() error {
				return Functionality(newTable, size)
			}},
			Check{impl, "lookup_reference", size, func() error {
				return LookupReference(newTable, size)
			}},
			Check{impl, "rehash_into_builtin", size, func() error {
				return RehashFidelity(newTable, hashtables.BuiltinFactory, size)
			}},
			Check{impl, "rehash_from_builtin", size, func() error {
				return RehashFidelity(hashtables.BuiltinFactory, newTable, size)
			}},
			Check{impl, "differential", size, func() error {
				return Differential(newTable, size, differentialOps*size, uint64(size))
			}},
		)
	}
	return checks
}

// RunAll runs the suites of all impls on a worker pool. Each check owns its
// tables, so checks run in parallel while every table stays single-threaded.
// Reports are sorted by implementation, size and check name.
func RunAll(impls map[string]hashtables.Factory, sizes []int, workers int, logger *zap.Logger) ([]Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, errors.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		reports []Report
	)

	for impl, newTable := range impls {
		for _, c := range Suite(impl, newTable, sizes) {
			c := c
			wg.Add(1)
			submitErr := pool.Submit(func() {
				defer wg.Done()
				start := time.Now()
				err := run(c)
				r := Report{Impl: c.Impl, Name: c.Name, Size: c.Size, Duration: time.Since(start), Err: err}

				fields := []zap.Field{
					zap.String("impl", r.Impl),
					zap.String("check", r.Name),
					zap.Int("size", r.Size),
					zap.Duration("duration", r.Duration),
				}
				if err != nil {
					logger.Error("check failed", append(fields, zap.Error(err))...)
				} else {
					logger.Debug("check passed", fields...)
				}

				mu.Lock()
				reports = append(reports, r)
				mu.Unlock()
			})
			if submitErr != nil {
				wg.Done()
				wg.Wait()
				return nil, errors.Wrapf(submitErr, "submit %s/%s", c.Impl, c.Name)
			}
		}
	}
	wg.Wait()

	sort.Slice(reports, func(i, j int) bool {
		a, b := reports[i], reports[j]
		if a.Impl != b.Impl {
			return a.Impl < b.Impl
		}
		if a.Size != b.Size {
			return a.Size < b.Size
		}
		return a.Name < b.Name
	})
	return reports, nil
}

// Failed returns the reports that carry an error
func Failed(reports []Report) []Report {
	var failed []Report
	for _, r := range reports {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// run converts a panicking check into a failed one
func run(c Check) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = errors.Errorf("panic: %v", v)
		}
	}()
	return c.Run()
}
