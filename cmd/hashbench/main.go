// Command hashbench benchmarks and verifies the hashtables implementations.
//
// Usage:
//
//	hashbench run     [flags]   time insert, lookup and erase per implementation
//	hashbench verify  [flags]   run the conformance suite on every implementation
//	hashbench compare base.json current.json
//	hashbench import  [flags] bench.txt   convert go test -bench output to a JSON summary
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/theflywheel/hashtables"
	"github.com/theflywheel/hashtables/bench"
	"github.com/theflywheel/hashtables/conformance"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <run|verify|compare|import> [flags]\n", filepath.Base(os.Args[0]))
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = cmdRun(os.Args[2:])
	case "verify":
		err = cmdVerify(os.Args[2:])
	case "compare":
		err = cmdCompare(os.Args[2:])
	case "import":
		err = cmdImport(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setup parses the flags of a subcommand and builds the logger and the
// selected implementations
func setup(name string, args []string) (Config, *zap.Logger, map[string]hashtables.Factory, *flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var f flags
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, nil, nil, nil, err
	}

	cfg, err := f.apply(fs)
	if err != nil {
		return cfg, nil, nil, nil, err
	}

	logger, err := cfg.Log.Build()
	if err != nil {
		return cfg, nil, nil, nil, err
	}

	hash, err := hashtables.HashFuncByName(cfg.Hash)
	if err != nil {
		return cfg, nil, nil, nil, err
	}

	impls, err := bench.Select(bench.Registry(hash), cfg.Impls)
	if err != nil {
		return cfg, nil, nil, nil, err
	}
	return cfg, logger, impls, fs, nil
}

func cmdRun(args []string) error {
	cfg, logger, impls, _, err := setup("run", args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	var results []bench.Metrics
	for _, size := range cfg.Sizes {
		rel := bench.GenRelation(size, cfg.Seed)
		logger.Info("generated relation",
			zap.Int("size", size),
			zap.Uint64("seed", cfg.Seed),
			zap.Uint64("distinct_estimate", rel.DistinctEstimate()))

		for _, name := range bench.Names {
			newTable, ok := impls[name]
			if !ok {
				continue
			}

			m, err := bench.Time(name, newTable, size, rel)
			if err != nil {
				return err
			}
			logger.Info("benchmark finished",
				zap.String("impl", name),
				zap.Int("size", size),
				zap.Float64("ns_per_op", m.NsPerOp))
			results = append(results, m)
		}
	}

	renderRun(os.Stdout, results)

	if cfg.Output == "" {
		return nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "failed to get current directory")
	}
	if err := bench.NewSummary(dir, cfg.Seed, cfg.Hash, results).Save(cfg.Output); err != nil {
		return err
	}
	logger.Info("benchmark results saved", zap.String("path", cfg.Output))
	return nil
}

func cmdVerify(args []string) error {
	cfg, logger, impls, _, err := setup("verify", args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	start := time.Now()
	reports, err := conformance.RunAll(impls, cfg.VerifySizes, cfg.Workers, logger)
	if err != nil {
		return err
	}
	renderVerify(os.Stdout, reports)

	failed := conformance.Failed(reports)
	logger.Info("conformance finished",
		zap.Int("checks", len(reports)),
		zap.Int("failed", len(failed)),
		zap.Duration("elapsed", time.Since(start)))

	if len(failed) > 0 {
		return errors.Errorf("%d of %d conformance checks failed", len(failed), len(reports))
	}
	return nil
}

func cmdCompare(args []string) error {
	cfg, logger, _, fs, err := setup("compare", args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if fs.NArg() != 2 {
		return errors.New("compare needs <base_json_file> <current_json_file>")
	}

	base, err := bench.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	current, err := bench.Load(fs.Arg(1))
	if err != nil {
		return err
	}

	summary := bench.Compare(base, current, cfg.Threshold)
	renderCompare(os.Stdout, summary)

	if summary.SignificantRegressions > 0 {
		return errors.Errorf("%d significant performance regressions detected", summary.SignificantRegressions)
	}
	return nil
}

func cmdImport(args []string) error {
	cfg, logger, _, fs, err := setup("import", args)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if fs.NArg() != 1 {
		return errors.New("import needs <benchmark_output_file>, or - for stdin")
	}

	summary, err := importGoBench(fs.Arg(0), cfg)
	if err != nil {
		return err
	}
	if err := summary.Save(cfg.Output); err != nil {
		return err
	}

	renderRun(os.Stdout, summary.Results)
	logger.Info("benchmark results imported",
		zap.Int("results", len(summary.Results)),
		zap.String("path", cfg.Output))
	return nil
}

// importGoBench parses go test -bench output from path, or stdin for "-",
// into a Summary stamped with the current git state
func importGoBench(path string, cfg Config) (bench.Summary, error) {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return bench.Summary{}, errors.Wrap(err, "error reading benchmark output")
		}
		defer f.Close()
		in = f
	}

	results, err := bench.ParseGoBench(in)
	if err != nil {
		return bench.Summary{}, errors.Wrapf(err, "failed to parse %s", path)
	}

	dir, err := os.Getwd()
	if err != nil {
		return bench.Summary{}, errors.Wrap(err, "failed to get current directory")
	}
	return bench.NewSummary(dir, cfg.Seed, cfg.Hash, results), nil
}
