// Package fsnotify implements the ports.Watcher interface using github.com/fsnotify/fsnotify.
// It recursively watches a recipe directory, filters out files that are not
// recipe documents, and debounces rapid events (editors often trigger multiple
// writes per save).
package fsnotify

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSuffixes are the recipe document suffixes, in lookup order.
var DefaultSuffixes = []string{".json5", ".json"}

// debounceInterval is how long a file must be quiet before its change is reported.
const debounceInterval = 50 * time.Millisecond

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	fw       *fsnotify.Watcher
	suffixes []string
	segment  string
	root     string
	done     chan struct{}
	wg       sync.WaitGroup
	stopped  bool
	mu       sync.Mutex

	// pending holds one trailing-edge timer per path; guarded by tmu.
	tmu     sync.Mutex
	pending map[string]*time.Timer
	halted  bool
}

// NewWatcher creates a new file system watcher reporting files that end in
// one of suffixes (DefaultSuffixes when none are given).
func NewWatcher(suffixes ...string) (*Watcher, error) {
	if len(suffixes) == 0 {
		suffixes = DefaultSuffixes
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:       fw,
		suffixes: suffixes,
		done:     make(chan struct{}),
		pending:  make(map[string]*time.Timer),
	}, nil
}

// RequireSegment limits reports to paths below a directory named segment
// (e.g. "saw_recipes"). Call it before Watch.
func (w *Watcher) RequireSegment(segment string) {
	w.segment = segment
}

// Watch starts monitoring dir recursively.
// onChange is called with the absolute path of each changed recipe document.
func (w *Watcher) Watch(dir string, onChange func(filePath string)) error {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if _, err := os.Stat(absPath); err != nil {
		return err
	}
	w.root = absPath

	// Walk and add all directories
	err = filepath.Walk(absPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if info.IsDir() {
			if isHidden(info.Name()) && path != absPath {
				return filepath.SkipDir
			}
			return w.fw.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				path := event.Name

				// New directories (e.g. a namespace copied in) join the watch list
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(path); err == nil && info.IsDir() {
						if !isHidden(info.Name()) {
							w.fw.Add(path)
						}
						continue
					}
				}

				if !w.relevant(path, event) {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					w.schedule(path, onChange)
				}

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// Errors are swallowed; fsnotify recovers automatically

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true

	w.tmu.Lock()
	w.halted = true
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	w.tmu.Unlock()

	close(w.done)
	err := w.fw.Close()
	w.wg.Wait()
	return err
}

// schedule reports path once it has been quiet for debounceInterval. Each
// new event on the path restarts its timer, so the report always follows
// the last write of a burst.
func (w *Watcher) schedule(path string, onChange func(string)) {
	w.tmu.Lock()
	defer w.tmu.Unlock()
	if w.halted {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Reset(debounceInterval)
		return
	}
	var t *time.Timer
	t = time.AfterFunc(debounceInterval, func() {
		w.tmu.Lock()
		if w.halted || w.pending[path] != t {
			w.tmu.Unlock()
			return
		}
		delete(w.pending, path)
		w.wg.Add(1)
		w.tmu.Unlock()

		defer w.wg.Done()
		onChange(path)
	})
	w.pending[path] = t
}

// relevant reports whether an event on path should trigger onChange.
// Removing or renaming a suffix-less path may have taken a directory of
// recipes with it, so those count too.
func (w *Watcher) relevant(path string, event fsnotify.Event) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	parts := strings.Split(rel, string(filepath.Separator))
	inSegment := w.segment == ""
	for _, part := range parts {
		if isHidden(part) {
			return false
		}
		if part == w.segment {
			inSegment = true
		}
	}
	if w.hasSuffix(path) {
		return inSegment
	}
	removed := event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
	// A removed top-level directory may have been a whole namespace.
	return removed && filepath.Ext(path) == "" && (inSegment || len(parts) == 1)
}

func (w *Watcher) hasSuffix(path string) bool {
	for _, s := range w.suffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}

// isHidden matches dotfiles and dot-directories (.git, .saw, editor swap files).
func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".") && name != ".."
}
