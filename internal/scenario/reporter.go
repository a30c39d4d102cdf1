package scenario

import (
	"fmt"
	"io"
	"sort"
	"time"
)

// TextReporter writes human-readable scenario results.
type TextReporter struct {
	writer  io.Writer
	verbose bool
}

// NewTextReporter creates a text reporter. Verbose also lists every step.
func NewTextReporter(w io.Writer, verbose bool) *TextReporter {
	return &TextReporter{writer: w, verbose: verbose}
}

// ReportSuite reports all scenario results followed by a summary.
func (r *TextReporter) ReportSuite(result *SuiteResult) {
	fmt.Fprintf(r.writer, "=== Suite: %s ===\n", result.Name)
	fmt.Fprintf(r.writer, "Duration: %s\n\n", result.Duration.Round(time.Millisecond))

	for _, res := range result.Results {
		r.ReportResult(res)
	}

	fmt.Fprintf(r.writer, "\n--- Summary ---\n")
	fmt.Fprintf(r.writer, "Total:   %d\n", len(result.Results))
	fmt.Fprintf(r.writer, "Passed:  %d\n", result.PassCount)
	fmt.Fprintf(r.writer, "Failed:  %d\n", result.FailCount)
}

// ReportResult reports a single scenario result.
func (r *TextReporter) ReportResult(result *Result) {
	status := "FAIL"
	if result.Passed {
		status = "PASS"
	}
	sc := result.Scenario
	fmt.Fprintf(r.writer, "[%s] %s - %s (%s)\n", status, sc.ID, sc.Name, result.Duration.Round(time.Millisecond))

	if !result.Passed && result.Error != nil {
		fmt.Fprintf(r.writer, "       Error: %v\n", result.Error)
	}

	if !r.verbose {
		return
	}
	for _, sr := range result.StepResults {
		stepStatus := "PASS"
		if !sr.Passed {
			stepStatus = "FAIL"
		}
		fmt.Fprintf(r.writer, "    [%s] Step %d: %s\n", stepStatus, sr.StepIndex+1, sr.Step.Action)
		if sr.Step.Description != "" {
			fmt.Fprintf(r.writer, "           %s\n", sr.Step.Description)
		}

		keys := make([]string, 0, len(sr.ExpectResults))
		for k := range sr.ExpectResults {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			er := sr.ExpectResults[k]
			expStatus := "OK"
			if !er.Passed {
				expStatus = "FAILED"
			}
			fmt.Fprintf(r.writer, "           [%s] %s: %s\n", expStatus, k, er.Message)
		}
	}
}
