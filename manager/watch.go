package manager

import (
	"github.com/fsnotify/fsnotify"

	"github.com/ecmwf/plume/logging"
)

// LibraryWatcher watches the directories holding plugin shared libraries
// and logs when a watched file changes. It does not trigger
// renegotiation — spec.md §5 rules out an internal scheduler, so picking
// up a changed library is left to the host calling Negotiate again
// explicitly.
type LibraryWatcher struct {
	watcher *fsnotify.Watcher
	log     logging.Logger
	done    chan struct{}
}

// WatchLibraries starts watching dirs for filesystem events, logging every
// write/create/remove it observes. Call Close to stop.
func WatchLibraries(log logging.Logger, dirs []string) (*LibraryWatcher, error) {
	if log == nil {
		log = logging.NoOp{}
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			w.Close()
			return nil, err
		}
	}

	lw := &LibraryWatcher{watcher: w, log: log, done: make(chan struct{})}
	go lw.loop()
	return lw, nil
}

func (lw *LibraryWatcher) loop() {
	for {
		select {
		case event, ok := <-lw.watcher.Events:
			if !ok {
				return
			}
			lw.log.Info("library directory changed: %s (%s)", event.Name, event.Op)
		case err, ok := <-lw.watcher.Errors:
			if !ok {
				return
			}
			lw.log.Warn("library watcher error: %v", err)
		case <-lw.done:
			return
		}
	}
}

// Close stops the watcher and releases its underlying resources.
func (lw *LibraryWatcher) Close() error {
	close(lw.done)
	return lw.watcher.Close()
}
