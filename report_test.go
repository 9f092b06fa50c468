package staticize

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportSummary(t *testing.T) {
	r := &Report{Total: 3, Results: []*PageResult{
		{Entry: PageEntry{Source: "a.html"}},
		{Entry: PageEntry{Source: "b.html"}, Warnings: []error{&AnchorNotFoundError{Fragment: "footer"}}},
		{Entry: PageEntry{Source: "c.html"}, Err: fmt.Errorf("%w: c.html", ErrSourceNotFound)},
	}}
	assert.Equal(t, 2, r.Converted())
	assert.Len(t, r.Failures(), 1)
	assert.True(t, r.Failures()[0].Skipped())
	assert.Equal(t, "2/3 files converted, 1 failed, 1 warnings", r.Summary())
}

func TestPageResultStatus(t *testing.T) {
	assert.Equal(t, "converted", (&PageResult{}).Status())
	assert.Equal(t, "skipped", (&PageResult{Err: ErrSourceNotFound}).Status())
	assert.Equal(t, "failed", (&PageResult{Err: fmt.Errorf("boom")}).Status())
}

func TestReportMerge(t *testing.T) {
	a := PageEntry{Source: "a.html", Dest: "a.html"}
	b := PageEntry{Source: "b.html", Dest: "b.html"}
	c := PageEntry{Source: "c.html", Dest: "c.html"}

	full := &Report{Total: 2, Results: []*PageResult{
		{Entry: a, Err: ErrSourceNotFound},
		{Entry: b, Title: "old"},
	}}
	full.Merge(&Report{Total: 2, Results: []*PageResult{
		{Entry: a, Title: "fixed"},
		{Entry: c},
	}})

	assert.Equal(t, 3, full.Total)
	assert.Equal(t, 3, full.Converted())
	assert.Equal(t, "fixed", full.Results[0].Title)
	assert.Equal(t, "old", full.Results[1].Title)
	assert.Equal(t, c, full.Results[2].Entry)

	full.Merge(nil)
	assert.Equal(t, 3, full.Total)
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "Resolve", StageResolve.String())
	assert.Equal(t, "Write", StageWrite.String())
	assert.Equal(t, "Unknown", Stage(42).String())
}
