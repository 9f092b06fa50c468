package staticize

import (
	"fmt"
	"io"
	"log/slog"
)

// Stage is one step of a page conversion.
// Stages execute in order: Resolve → Header → Footer → Paths → Strip → Write
type Stage int

const (
	// StageResolve works out the page depth and title from the raw source
	StageResolve Stage = iota

	// StageHeader inlines the header fragment
	StageHeader

	// StageFooter inlines the footer fragment
	StageFooter

	// StagePaths rewrites the page's own asset references
	StagePaths

	// StageStrip removes the remaining templating attributes
	StageStrip

	// StageWrite creates the destination folder and writes the page
	StageWrite
)

// Stages lists every stage in execution order.
var Stages = []Stage{StageResolve, StageHeader, StageFooter, StagePaths, StageStrip, StageWrite}

func (s Stage) String() string {
	switch s {
	case StageResolve:
		return "Resolve"
	case StageHeader:
		return "Header"
	case StageFooter:
		return "Footer"
	case StagePaths:
		return "Paths"
	case StageStrip:
		return "Strip"
	case StageWrite:
		return "Write"
	default:
		return "Unknown"
	}
}

// PageContext holds the state of one page as it moves through the stages.
type PageContext struct {
	Entry PageEntry
	Stage Stage
	Depth int
	Title string

	// Text after the current stage
	Text string
}

// HookRegistry manages lightweight hooks for observing a run.
type HookRegistry struct {
	onStageEnd map[Stage][]func(*PageContext)
	onPageDone []func(*PageResult)
}

// NewHookRegistry creates a new hook registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		onStageEnd: make(map[Stage][]func(*PageContext)),
	}
}

// OnStageEnd registers a callback to run after a stage finished for a page.
func (h *HookRegistry) OnStageEnd(stage Stage, fn func(*PageContext)) {
	h.onStageEnd[stage] = append(h.onStageEnd[stage], fn)
}

// OnPageDone registers a callback to run once a page is converted, skipped or failed.
func (h *HookRegistry) OnPageDone(fn func(*PageResult)) {
	h.onPageDone = append(h.onPageDone, fn)
}

// Trace logs every finished stage at debug level and writes a numbered
// progress line to progress for each finished page.
func (h *HookRegistry) Trace(logger *slog.Logger, progress io.Writer) {
	for _, s := range Stages {
		h.OnStageEnd(s, func(ctx *PageContext) {
			logger.Debug("Stage done", "stage", ctx.Stage.String(), "source", ctx.Entry.Source, "depth", ctx.Depth, "bytes", len(ctx.Text))
		})
	}
	n := 0
	h.OnPageDone(func(res *PageResult) {
		n++
		fmt.Fprintf(progress, "[%d] %-9s %s\n", n, res.Status(), res.Entry.Source)
	})
}

func (h *HookRegistry) emitStageEnd(ctx *PageContext) {
	if h == nil {
		return
	}
	for _, fn := range h.onStageEnd[ctx.Stage] {
		fn(ctx)
	}
}

func (h *HookRegistry) emitPageDone(res *PageResult) {
	if h == nil {
		return
	}
	for _, fn := range h.onPageDone {
		fn(res)
	}
}
