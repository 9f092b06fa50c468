package staticize

import (
	"log"
	"log/slog"
	"path/filepath"
	"time"

	gfn "github.com/panyam/goutils/fn"
	"github.com/radovskyb/watcher"
)

// Watcher reconverts pages when their templates change.  A change to a
// fragment file invalidates the fragment cache and reconverts every page.
type Watcher struct {
	Converter *Converter

	// How often collected changes are flushed into a rebuild
	BuildFrequency time.Duration

	// Called after every rebuild, eg to refresh the index page
	OnRebuild func(*Report)

	reloadWatcher *watcher.Watcher
}

func NewWatcher(c *Converter) *Watcher {
	return &Watcher{Converter: c}
}

// Stop ends a running watch.
func (w *Watcher) Stop() {
	if w.reloadWatcher != nil {
		w.reloadWatcher.Close()
		w.reloadWatcher = nil
	}
}

// Start begins watching the source root.  Events are collected and turned
// into a rebuild on every BuildFrequency tick.
func (w *Watcher) Start() error {
	if w.reloadWatcher != nil {
		return nil
	}
	rw := watcher.New()
	rw.FilterOps(watcher.Write, watcher.Create, watcher.Rename, watcher.Move)
	w.reloadWatcher = rw

	root := w.Converter.Config.SourceRoot
	if err := rw.AddRecursive(root); err != nil {
		w.reloadWatcher = nil
		return err
	}

	go func() {
		buildFreq := w.BuildFrequency
		if buildFreq <= 0 {
			buildFreq = 1000 * time.Millisecond
		}
		ticker := time.NewTicker(buildFreq)
		defer ticker.Stop()

		changed := make(map[string]*Resource)
		for {
			select {
			case event := <-rw.Event:
				if event.IsDir() {
					continue
				}
				res := NewResource(event.Path)
				slog.Debug("Collecting Event", "op", event.Op.String(), "path", res.RelPath(absPath(root)))
				changed[res.FullPath] = res
			case err := <-rw.Error:
				log.Println("Watcher error: ", err)
			case <-rw.Closed:
				return
			case <-ticker.C:
				if len(changed) > 0 {
					w.Rebuild(gfn.MapValues(changed))
					changed = make(map[string]*Resource)
				}
			}
		}
	}()

	go func() {
		slog.Info("Starting watcher", "root", root)
		if err := rw.Start(100 * time.Millisecond); err != nil {
			log.Println("Error starting watcher: ", err)
		}
	}()
	rw.Wait()
	return nil
}

// Rebuild reconverts the pages affected by the changed resources.
func (w *Watcher) Rebuild(changed []*Resource) *Report {
	entries := w.AffectedEntries(changed)
	if len(entries) == 0 {
		return nil
	}
	report := w.Converter.RunEntries(entries)
	if w.OnRebuild != nil {
		w.OnRebuild(report)
	}
	return report
}

// AffectedEntries maps changed files to the manifest entries to reconvert.
// The watcher reports absolute paths while roots may be relative, so both
// sides are compared in absolute form.
func (w *Watcher) AffectedEntries(changed []*Resource) []PageEntry {
	c := w.Converter
	header := absPath(c.Store.Path(c.Config.Header.Name))
	footer := absPath(c.Store.Path(c.Config.Footer.Name))
	byPath := map[string]bool{}
	for _, res := range changed {
		path := absPath(res.FullPath)
		if path == header || path == footer {
			c.Store.Reset()
			return c.Config.Pages
		}
		byPath[path] = true
	}

	var entries []PageEntry
	for _, entry := range c.Config.Pages {
		src := filepath.Join(c.Config.SourceRoot, filepath.FromSlash(entry.Source))
		if byPath[absPath(src)] {
			entries = append(entries, entry)
		}
	}
	return entries
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
