package main

import (
	"fmt"
	"io"

	"estlint/internal/driver"
	"estlint/internal/observ"
)

// printTimings пишет сводку таймингов в out. Тайминги идут в stderr,
// чтобы не портить машинно-читаемые форматы на stdout.
func printTimings(out io.Writer, report observ.Report) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	fmt.Fprint(out, report.Summary())
}

// mergedTimings собирает пофайловые отчёты директории в один.
func mergedTimings(results []driver.Result) observ.Report {
	reports := make([]observ.Report, 0, len(results))
	for i := range results {
		if results[i].Timing != nil {
			reports = append(reports, *results[i].Timing)
		}
	}
	return observ.Merge(reports)
}
