package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

var watchLog = commonlog.GetLogger("marklink.workspace")

// ChangeFunc is called for every file-level change under the watched root.
// removed is true when the file is gone (removed or renamed away).
type ChangeFunc func(path string, removed bool)

// Watcher invalidates workspace-derived state when files change on disk.
// Staleness between an event and the next request is acceptable; the watcher
// only has to converge.
type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	onChange ChangeFunc
}

// NewWatcher watches root and all its subdirectories (hidden ones excluded).
func NewWatcher(root string, onChange ChangeFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{watcher: fsw, root: root, onChange: onChange}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run dispatches events until the context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			watchLog.Errorf("watch error: %s", err.Error())
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				watchLog.Errorf("failed to watch new directory %s: %s", event.Name, err.Error())
			}
			return
		}
	}

	switch {
	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		w.onChange(event.Name, true)
	case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
		w.onChange(event.Name, false)
	}
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
