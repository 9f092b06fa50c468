package staticize

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
	"golang.org/x/text/unicode/norm"
)

// Converter runs the conversion pipeline over the pages of a manifest.
// Pages are converted one at a time, each fully written before the next
// one starts.
type Converter struct {
	Config  *Config
	Store   *FragmentStore
	Inliner *Inliner
	Hooks   *HookRegistry

	// Verify parses every written page and reports leftover directives
	Verify bool

	stripper *Stripper
}

// NewConverter wires a converter for cfg.  The config is expected to have
// been validated.
func NewConverter(cfg *Config) *Converter {
	store := NewFragmentStore(cfg.SourceRoot, cfg.Header, cfg.Footer)
	return &Converter{
		Config:   cfg,
		Store:    store,
		Inliner:  NewInliner(cfg, store),
		Hooks:    NewHookRegistry(),
		stripper: NewStripper(cfg.Directives),
	}
}

// PageTitle returns the title argument of the header marker in a raw page,
// or the configured default when there is none.
func (c *Converter) PageTitle(src string) string {
	m := TitlePattern(c.Config.Header).FindStringSubmatch(src)
	if m == nil {
		return c.Config.DefaultTitle
	}
	return norm.NFC.String(m[1])
}

// ConvertText runs the in-memory stages on a page source for the given
// depth.  Warnings are returned alongside the text; a non nil error means the
// page could not be converted.
func (c *Converter) ConvertText(src string, depth int) (string, []error, error) {
	ctx := &PageContext{Depth: depth, Text: src}
	warnings, err := c.run(ctx)
	return ctx.Text, warnings, err
}

func (c *Converter) run(ctx *PageContext) (warnings []error, err error) {
	ctx.Stage = StageResolve
	ctx.Title = c.PageTitle(ctx.Text)
	c.Hooks.emitStageEnd(ctx)

	ctx.Stage = StageHeader
	if ctx.Text, err = c.Inliner.InlineHeader(ctx.Text, ctx.Title, ctx.Depth); err != nil {
		if !IsWarning(err) {
			return warnings, err
		}
		warnings = append(warnings, err)
	}
	c.Hooks.emitStageEnd(ctx)

	ctx.Stage = StageFooter
	if ctx.Text, err = c.Inliner.InlineFooter(ctx.Text); err != nil {
		if !IsWarning(err) {
			return warnings, err
		}
		warnings = append(warnings, err)
	}
	c.Hooks.emitStageEnd(ctx)

	ctx.Stage = StagePaths
	ctx.Text = RewritePaths(ctx.Text, ctx.Depth, c.Config.Assets)
	c.Hooks.emitStageEnd(ctx)

	ctx.Stage = StageStrip
	ctx.Text = c.stripper.Strip(ctx.Text)
	c.Hooks.emitStageEnd(ctx)
	return warnings, nil
}

// ConvertPage converts the template at srcPath and writes the result to
// destPath.  Both are full paths; destPath should lie under the configured
// destination root, which determines the page's depth.
func (c *Converter) ConvertPage(srcPath, destPath string) (*PageResult, error) {
	return c.convertPage(PageEntry{}, srcPath, destPath)
}

func (c *Converter) convertPage(entry PageEntry, srcPath, destPath string) (*PageResult, error) {
	result := &PageResult{Entry: entry, SourcePath: srcPath, DestPath: destPath}

	src := NewResource(srcPath)
	if !src.Exists() {
		result.Err = fmt.Errorf("%w: %s", ErrSourceNotFound, srcPath)
		return result, result.Err
	}
	data, err := src.ReadAll()
	if err != nil {
		result.Err = err
		return result, err
	}

	ctx := &PageContext{
		Entry: entry,
		Depth: Depth(destPath, c.Config.DestRoot),
		Text:  string(data),
	}
	result.Warnings, err = c.run(ctx)
	result.Depth, result.Title = ctx.Depth, ctx.Title
	if err != nil {
		result.Err = err
		return result, err
	}

	ctx.Stage = StageWrite
	dest := NewResource(destPath)
	if err := c.write(dest, ctx.Text); err != nil {
		result.Err = err
		return result, err
	}
	c.Hooks.emitStageEnd(ctx)

	if c.Verify {
		result.Leftovers, err = FindLeftovers(strings.NewReader(ctx.Text))
		if err != nil {
			result.Warnings = append(result.Warnings, err)
		}
		for _, l := range result.Leftovers {
			slog.Warn("templating attribute left in output", "dest", destPath, "element", l.Element, "attr", l.Attr)
		}
	}
	return result, nil
}

func (c *Converter) write(dest *Resource, text string) error {
	if err := dest.EnsureDir(); err != nil {
		return err
	}
	// atomic.WriteFile keeps the mode of a file it replaces
	existed := dest.Exists()
	if err := atomic.WriteFile(dest.FullPath, strings.NewReader(text)); err != nil {
		return fmt.Errorf("writing %s: %w", dest.FullPath, err)
	}
	if existed {
		return nil
	}
	return os.Chmod(dest.FullPath, 0644)
}

// Run converts every manifest entry.  Missing sources and failing pages are
// recorded in the report and do not stop the remaining entries.
func (c *Converter) Run() *Report {
	return c.RunEntries(c.Config.Pages)
}

// RunEntries converts the given entries in order.
func (c *Converter) RunEntries(entries []PageEntry) *Report {
	cfg := c.Config
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Total:     len(entries),
	}
	logger := slog.With("run_id", report.RunID)

	for _, entry := range entries {
		if entry.Dest == "" {
			entry.Dest = entry.Source
		}
		srcPath := filepath.Join(cfg.SourceRoot, filepath.FromSlash(entry.Source))
		destPath := filepath.Join(cfg.DestRoot, filepath.FromSlash(entry.Dest))

		logger.Info("Processing", "source", entry.Source)
		result, err := c.convertPage(entry, srcPath, destPath)
		switch {
		case err == nil:
			logger.Info("Created", "dest", destPath, "title", result.Title, "depth", result.Depth)
		case result.Skipped():
			logger.Warn("Not found", "source", srcPath)
		default:
			result.Err = &PageError{Source: entry.Source, Dest: entry.Dest, Err: err}
			logger.Error("Error converting page", "error", result.Err)
			panicOrError(result.Err)
		}
		for _, w := range result.Warnings {
			logger.Warn("Degraded page", "source", entry.Source, "warning", w)
		}
		report.Results = append(report.Results, result)
		c.Hooks.emitPageDone(result)
	}

	report.FinishedAt = time.Now()
	logger.Info("Conversion complete", "summary", report.Summary(), "output", cfg.DestRoot)
	return report
}
