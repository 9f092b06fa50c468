package staticize

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// PageResult is the outcome of converting one manifest entry.
type PageResult struct {
	Entry      PageEntry
	SourcePath string
	DestPath   string
	Depth      int
	Title      string

	// Non fatal conditions, eg a fragment anchor that did not match
	Warnings []error

	// Templating attributes still present in the written output
	Leftovers []Leftover

	// Set when the page was skipped or failed
	Err error
}

// Converted tells whether the page was written.
func (r *PageResult) Converted() bool {
	return r.Err == nil
}

// Skipped tells whether the page was left out because its source is missing.
func (r *PageResult) Skipped() bool {
	return errors.Is(r.Err, ErrSourceNotFound)
}

// Status is a one word outcome: converted, skipped or failed.
func (r *PageResult) Status() string {
	switch {
	case r.Converted():
		return "converted"
	case r.Skipped():
		return "skipped"
	default:
		return "failed"
	}
}

// Report summarizes a run over the whole manifest.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int
	Results    []*PageResult
}

// Converted returns how many pages were written.
func (r *Report) Converted() int {
	n := 0
	for _, res := range r.Results {
		if res.Converted() {
			n++
		}
	}
	return n
}

// Failures returns the results that were skipped or failed.
func (r *Report) Failures() (out []*PageResult) {
	for _, res := range r.Results {
		if !res.Converted() {
			out = append(out, res)
		}
	}
	return
}

// Warnings returns every warning of every page.
func (r *Report) Warnings() (out []error) {
	for _, res := range r.Results {
		out = append(out, res.Warnings...)
	}
	return
}

// Summary is the one line printed at the end of a run.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d files converted", r.Converted(), r.Total)
	if f := len(r.Failures()); f > 0 {
		fmt.Fprintf(&b, ", %d failed", f)
	}
	if w := len(r.Warnings()); w > 0 {
		fmt.Fprintf(&b, ", %d warnings", w)
	}
	return b.String()
}

// Merge folds the results of a partial rebuild into r, replacing the
// results of the same manifest entries.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	index := map[PageEntry]int{}
	for i, res := range r.Results {
		index[res.Entry] = i
	}
	for _, res := range other.Results {
		if i, ok := index[res.Entry]; ok {
			r.Results[i] = res
		} else {
			r.Results = append(r.Results, res)
			r.Total++
		}
	}
	r.FinishedAt = other.FinishedAt
}
