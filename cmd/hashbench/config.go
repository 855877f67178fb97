package main

import (
	"flag"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/theflywheel/hashtables/conformance"
	"github.com/theflywheel/hashtables/internal/logutil"
)

// Config holds every setting of hashbench. Values come from the defaults,
// then the TOML file given with -config, then explicit flags.
type Config struct {
	Sizes       []int             `toml:"sizes"`
	VerifySizes []int             `toml:"verify-sizes"`
	Impls       []string          `toml:"impls"`
	Hash        string            `toml:"hash"`
	Seed        uint64            `toml:"seed"`
	Output      string            `toml:"output"`
	Threshold   float64           `toml:"threshold"`
	Workers     int               `toml:"workers"`
	Log         logutil.LogConfig `toml:"log"`
}

func defaultConfig() Config {
	return Config{
		Sizes:       []int{4096, 131072},
		VerifySizes: conformance.Sizes,
		Hash:        "xxhash",
		Output:      "benchmark_history/latest.json",
		Threshold:   5.0,
		Workers:     runtime.NumCPU(),
		Log:         logutil.DefaultConfig(),
	}
}

// loadConfig decodes path over the defaults. Unknown keys are rejected.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("unknown config keys in %s: %v", path, undecoded)
	}
	return cfg, nil
}

// flags mirrors the Config fields that can be overridden on the command line
type flags struct {
	config    string
	sizes     string
	impls     string
	hash      string
	seed      uint64
	output    string
	threshold float64
	workers   int
	logLevel  string
}

func (f *flags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "TOML configuration file")
	fs.StringVar(&f.sizes, "sizes", "", "comma separated size hints")
	fs.StringVar(&f.impls, "impls", "", "comma separated implementations (default all)")
	fs.StringVar(&f.hash, "hash", "", "hash function for chaining and open: xxhash, xxh3, fx")
	fs.Uint64Var(&f.seed, "seed", 0, "seed for generated relations (0 picks one)")
	fs.StringVar(&f.output, "output", "", "where to write the JSON summary")
	fs.Float64Var(&f.threshold, "threshold", 0, "percent change counted as significant")
	fs.IntVar(&f.workers, "workers", 0, "parallel conformance checks")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
}

// apply loads the config file and overrides it with the flags that were set
func (f *flags) apply(fs *flag.FlagSet) (Config, error) {
	cfg, err := loadConfig(f.config)
	if err != nil {
		return cfg, err
	}

	var applyErr error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "sizes":
			sizes, err := parseSizes(f.sizes)
			if err != nil {
				applyErr = err
				return
			}
			cfg.Sizes, cfg.VerifySizes = sizes, sizes
		case "impls":
			cfg.Impls = splitList(f.impls)
		case "hash":
			cfg.Hash = f.hash
		case "seed":
			cfg.Seed = f.seed
		case "output":
			cfg.Output = f.output
		case "threshold":
			cfg.Threshold = f.threshold
		case "workers":
			cfg.Workers = f.workers
		case "log-level":
			cfg.Log.Level = f.logLevel
		}
	})
	return cfg, applyErr
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, part := range splitList(s) {
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, errors.Errorf("invalid size %q", part)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
