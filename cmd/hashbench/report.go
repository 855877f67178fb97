package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/theflywheel/hashtables/bench"
	"github.com/theflywheel/hashtables/conformance"
)

func renderRun(w io.Writer, results []bench.Metrics) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Benchmark", "Ops", "ns/op", "Insert", "Lookup", "Erase", "Alloc"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, r := range results {
		table.Append([]string{
			r.Name,
			humanize.Comma(int64(r.Operations)),
			strconv.FormatFloat(r.NsPerOp, 'f', 2, 64),
			humanize.SIWithDigits(r.Metrics["insert_rate"], 2, "op/s"),
			humanize.SIWithDigits(r.Metrics["lookup_rate"], 2, "op/s"),
			humanize.SIWithDigits(r.Metrics["erase_rate"], 2, "op/s"),
			humanize.Bytes(uint64(r.Metrics["alloc_bytes"])),
		})
	}
	table.Render()
}

func renderVerify(w io.Writer, reports []conformance.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Impl", "Size", "Check", "Time", "Result"})

	for _, r := range reports {
		result := "ok"
		if r.Err != nil {
			result = r.Err.Error()
		}
		table.Append([]string{
			r.Impl,
			humanize.Comma(int64(r.Size)),
			r.Name,
			r.Duration.Round(time.Microsecond).String(),
			result,
		})
	}
	table.Render()
}

func renderCompare(w io.Writer, summary bench.ComparisonSummary) {
	fmt.Fprintf(w, "Benchmark Comparison: %s vs %s\n\n", summary.BaseCommit, summary.CurrentCommit)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Benchmark", "Metric", "Base", "Current", "Change", "Assessment"})

	for _, bc := range summary.BenchmarkComparisons {
		for _, mc := range bc.MetricComparisons {
			change := fmt.Sprintf("%+.2f%%", mc.PercentChange)
			if mc.IsSignificant {
				change += " *"
			}
			table.Append([]string{
				bc.Name,
				mc.Name,
				humanize.FormatFloat("#,###.##", mc.BaseValue),
				humanize.FormatFloat("#,###.##", mc.CurrentValue),
				change,
				bc.OverallAssessment,
			})
		}
	}
	table.Render()

	fmt.Fprintf(w, "\n%d benchmarks, %d improved, %d regressed (%d significant)\n",
		summary.TotalBenchmarks, summary.ImprovedBenchmarks, summary.RegressionBenchmarks, summary.SignificantRegressions)
}
