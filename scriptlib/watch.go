package scriptlib

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

const scriptExt = ".script"

// ReloadEvent reports the outcome of one filesystem change that
// WatchDir observed: a piece's script being (re-)registered or
// removed. A watcher error is reported with an empty Name.
type ReloadEvent struct {
	Name string
	Err  error
}

func pieceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadDir registers every *.script file directly inside dir, using
// the filename stem (without extension) as the piece-kind name.
// Registration stops and returns the first parse error encountered;
// files already registered before the failing one remain registered.
func (l *Library) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scriptlib: reading %s: %w", dir, err)
	}

	for _, de := range entries {
		if de.IsDir() || filepath.Ext(de.Name()) != scriptExt {
			continue
		}
		path := filepath.Join(dir, de.Name())
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("scriptlib: reading %s: %w", path, err)
		}
		if err := l.Register(pieceName(path), string(src)); err != nil {
			return fmt.Errorf("scriptlib: registering %s: %w", path, err)
		}
	}
	return nil
}

// WatchDir watches dir for writes, creates, and removes of *.script
// files: a write or create re-registers the affected piece and a remove
// unregisters it, emitting one ReloadEvent per such event. The returned channel is closed and
// the watch torn down when ctx is cancelled.
func (l *Library) WatchDir(ctx context.Context, dir string) (<-chan ReloadEvent, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("scriptlib: starting watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("scriptlib: watching %s: %w", dir, err)
	}

	events := make(chan ReloadEvent)

	go func() {
		defer close(events)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Ext(ev.Name) != scriptExt {
					continue
				}
				name := pieceName(ev.Name)

				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					src, err := os.ReadFile(ev.Name)
					if err != nil {
						events <- ReloadEvent{Name: name, Err: err}
						continue
					}
					events <- ReloadEvent{Name: name, Err: l.Register(name, string(src))}
				} else if ev.Op&fsnotify.Remove != 0 {
					l.mu.Lock()
					delete(l.entries, name)
					l.mu.Unlock()
					events <- ReloadEvent{Name: name}
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				events <- ReloadEvent{Err: err}
			}
		}
	}()

	return events, nil
}
