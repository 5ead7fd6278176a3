package settings

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher signals when a user's settings file changes on disk, so a
// corrected credential takes effect without restarting the monitor.
type Watcher struct {
	fw      *fsnotify.Watcher
	path    string
	changes chan struct{}
	done    chan struct{}
}

// NewWatcher watches the settings file for a user. The parent directory
// is watched rather than the file itself so atomic rename-saves are seen.
func NewWatcher(store Store, userID string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	path := store.Path(userID)
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		fw:      fw,
		path:    path,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes delivers one signal per observed settings change. The channel
// holds at most one pending signal; bursts coalesce.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close releases the underlying file watcher
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}
