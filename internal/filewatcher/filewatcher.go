// Package filewatcher contains a watcher that signals when a file is rewritten.
package filewatcher

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	defaultMinInterval = 500 * time.Millisecond
	additionalWait     = 10 * time.Millisecond
)

// FileWatcher signals when a file is written or replaced.
// Replacements through rename, used by atomic writes, are detected
// by watching the parent directory.
type FileWatcher struct {
	FilePath    string
	MinInterval time.Duration

	inner        *fsnotify.Watcher
	absolutePath string

	// in
	terminate chan struct{}

	// out
	signal chan struct{}
	done   chan struct{}
}

// Initialize initializes a FileWatcher.
func (w *FileWatcher) Initialize() error {
	if _, err := os.Stat(w.FilePath); err != nil {
		return err
	}

	if w.MinInterval == 0 {
		w.MinInterval = defaultMinInterval
	}

	var err error
	w.inner, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// use absolute paths to support Darwin
	w.absolutePath, _ = filepath.Abs(w.FilePath)

	err = w.inner.Add(filepath.Dir(w.absolutePath))
	if err != nil {
		w.inner.Close() //nolint:errcheck
		return err
	}

	w.terminate = make(chan struct{})
	w.signal = make(chan struct{})
	w.done = make(chan struct{})

	go w.run()

	return nil
}

// Close closes a FileWatcher.
func (w *FileWatcher) Close() {
	close(w.terminate)
	<-w.done
}

func (w *FileWatcher) isWatchedFile(event fsnotify.Event) bool {
	eventPath, _ := filepath.Abs(event.Name)
	return eventPath == w.absolutePath &&
		(event.Has(fsnotify.Write) || event.Has(fsnotify.Create))
}

func (w *FileWatcher) run() {
	defer close(w.done)

	var lastCalled time.Time

outer:
	for {
		select {
		case event := <-w.inner.Events:
			if !w.isWatchedFile(event) || time.Since(lastCalled) < w.MinInterval {
				continue
			}

			// wait some additional time to allow the writer to complete its job
			time.Sleep(additionalWait)
			lastCalled = time.Now()

			select {
			case w.signal <- struct{}{}:
			case <-w.terminate:
				break outer
			}

		case <-w.inner.Errors:
			break outer

		case <-w.terminate:
			break outer
		}
	}

	close(w.signal)
	w.inner.Close() //nolint:errcheck
}

// Watch returns a channel that is called after the file has changed.
// The channel is closed when the watcher stops.
func (w *FileWatcher) Watch() chan struct{} {
	return w.signal
}
