package bench

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// benchLine matches a result line of go test -bench. The -N GOMAXPROCS suffix
// is dropped from the name.
var benchLine = regexp.MustCompile(`^Benchmark(\S+?)(?:-\d+)?\s+(\d+)\s+(.+)$`)

// unitMetrics names the units reported by testing.B and by the benchmarks in
// this package. Other units are named by metricName.
var unitMetrics = map[string]string{
	"B/op":      "bytes_per_op",
	"allocs/op": "allocs_per_op",
	"MB/s":      "throughput_rate",
	"inserts/s": "insert_rate",
	"lookups/s": "lookup_rate",
	"erases/s":  "erase_rate",
	"B/key":     "bytes_per_key",
}

// metricName turns a unit such as "keys/s" into "keys_per_s"
func metricName(unit string) string {
	if name, ok := unitMetrics[unit]; ok {
		return name
	}
	return strings.ReplaceAll(strings.ToLower(unit), "/", "_per_")
}

// ParseGoBench reads go test -bench output and returns one Metrics per
// result line. The category is the top level benchmark name, so
// BenchmarkMaps/open/4096 lands in "Maps". Log output, headers and PASS
// lines are skipped.
func ParseGoBench(r io.Reader) ([]Metrics, error) {
	var results []Metrics

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		matches := benchLine.FindStringSubmatch(line)
		if matches == nil {
			continue
		}

		name := matches[1]
		ops, err := strconv.Atoi(matches[2])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: iterations", lineNo)
		}

		fields := strings.Fields(matches[3])
		if len(fields)%2 != 0 {
			return nil, errors.Errorf("line %d: unpaired value in %q", lineNo, matches[3])
		}

		m := Metrics{
			Name:       name,
			Category:   strings.SplitN(name, "/", 2)[0],
			Operations: ops,
			Metrics:    make(map[string]float64, len(fields)/2),
		}
		for i := 0; i < len(fields); i += 2 {
			value, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: value of %s", lineNo, fields[i+1])
			}
			if unit := fields[i+1]; unit == "ns/op" {
				m.NsPerOp = value
			} else {
				m.Metrics[metricName(unit)] = value
			}
		}
		results = append(results, m)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading benchmark output")
	}

	if len(results) == 0 {
		return nil, errors.New("no benchmark results found")
	}
	return results, nil
}
