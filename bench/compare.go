package bench

import (
	"math"
	"sort"
	"strings"
)

// MetricComparison compares one metric between two runs
type MetricComparison struct {
	Name          string  `json:"name"`
	BaseValue     float64 `json:"base_value"`
	CurrentValue  float64 `json:"current_value"`
	PercentChange float64 `json:"percent_change"`
	IsRegression  bool    `json:"is_regression"`
	IsImprovement bool    `json:"is_improvement"`
	IsSignificant bool    `json:"is_significant"`
}

// BenchmarkComparison compares all metrics of one benchmark
type BenchmarkComparison struct {
	Name              string             `json:"name"`
	MetricComparisons []MetricComparison `json:"metric_comparisons"`
	OverallAssessment string             `json:"overall_assessment"`
	HasRegressions    bool               `json:"has_regressions"`
	Score             float64            `json:"score"`
}

// ComparisonSummary is the outcome of Compare. RegressionBenchmarks counts
// benchmarks with any metric moving the wrong way, SignificantRegressions only
// those where the move reaches the threshold.
type ComparisonSummary struct {
	BaseCommit             string                `json:"base_commit"`
	CurrentCommit          string                `json:"current_commit"`
	TotalBenchmarks        int                   `json:"total_benchmarks"`
	ImprovedBenchmarks     int                   `json:"improved_benchmarks"`
	RegressionBenchmarks   int                   `json:"regression_benchmarks"`
	SignificantRegressions int                   `json:"significant_regressions"`
	BenchmarkComparisons   []BenchmarkComparison `json:"benchmark_comparisons"`
}

// higherIsBetter reports the direction of a metric and whether it is
// compared at all
func higherIsBetter(metric string) (higher, compared bool) {
	switch {
	case strings.HasSuffix(metric, "_rate"):
		return true, true
	case metric == "ns_per_op", metric == "bytes_per_key":
		return false, true
	}
	return false, false
}

// Compare matches benchmarks of current against base by name. A change of at
// least threshold percent in the wrong direction is a significant regression.
// Benchmarks missing from base are skipped.
func Compare(base, current Summary, threshold float64) ComparisonSummary {
	baseResults := make(map[string]Metrics, len(base.Results))
	for _, r := range base.Results {
		baseResults[r.Name] = r
	}

	summary := ComparisonSummary{
		BaseCommit:    base.CommitID,
		CurrentCommit: current.CommitID,
	}

	for _, cur := range current.Results {
		old, found := baseResults[cur.Name]
		if !found {
			continue
		}

		bc := BenchmarkComparison{Name: cur.Name}
		score := 0.0
		anyRegression := false

		for _, name := range metricNames(cur) {
			higher, compared := higherIsBetter(name)
			if !compared {
				continue
			}
			baseValue, ok := metricValue(old, name)
			if !ok {
				continue
			}
			currentValue, _ := metricValue(cur, name)

			percentChange := 0.0
			if baseValue != 0 {
				percentChange = ((currentValue - baseValue) / baseValue) * 100
			}

			mc := MetricComparison{
				Name:          name,
				BaseValue:     baseValue,
				CurrentValue:  currentValue,
				PercentChange: percentChange,
				IsSignificant: math.Abs(percentChange) >= threshold,
			}
			if higher {
				mc.IsRegression = percentChange < 0
				mc.IsImprovement = percentChange > 0
			} else {
				mc.IsRegression = percentChange > 0
				mc.IsImprovement = percentChange < 0
			}

			if mc.IsRegression {
				anyRegression = true
				if mc.IsSignificant {
					bc.HasRegressions = true
				}
			}

			// improvements add to the score, regressions subtract
			if mc.IsImprovement {
				score += math.Abs(percentChange)
			} else if mc.IsRegression {
				score -= math.Abs(percentChange)
			}
			bc.MetricComparisons = append(bc.MetricComparisons, mc)
		}

		if len(bc.MetricComparisons) > 0 {
			bc.Score = score / float64(len(bc.MetricComparisons))
		}

		if anyRegression {
			summary.RegressionBenchmarks++
		}

		switch {
		case bc.HasRegressions:
			bc.OverallAssessment = "REGRESSION"
			summary.SignificantRegressions++
		case bc.Score > 0:
			bc.OverallAssessment = "IMPROVEMENT"
			summary.ImprovedBenchmarks++
		default:
			bc.OverallAssessment = "NEUTRAL"
		}
		summary.BenchmarkComparisons = append(summary.BenchmarkComparisons, bc)
	}
	summary.TotalBenchmarks = len(summary.BenchmarkComparisons)

	// worst regressions first
	sort.SliceStable(summary.BenchmarkComparisons, func(i, j int) bool {
		a, b := summary.BenchmarkComparisons[i], summary.BenchmarkComparisons[j]
		if a.HasRegressions != b.HasRegressions {
			return a.HasRegressions
		}
		return a.Score < b.Score
	})
	return summary
}

func metricNames(m Metrics) []string {
	names := []string{"ns_per_op"}
	for name := range m.Metrics {
		names = append(names, name)
	}
	sort.Strings(names[1:])
	return names
}

func metricValue(m Metrics, name string) (float64, bool) {
	if name == "ns_per_op" {
		return m.NsPerOp, true
	}
	v, ok := m.Metrics[name]
	return v, ok
}
