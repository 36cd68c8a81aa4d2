package shader

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/sciviz/internal/logger"
)

// Watcher reports when the source file of a registered program changes.
//
// It watches directories rather than files so editors that save by
// rename-and-replace are still seen. Changes arrive on C as program names;
// the GL thread drains C between frames and reloads with Load.
type Watcher struct {
	C <-chan string

	fs      *fsnotify.Watcher
	changes chan string
	log     *zap.Logger

	mu    sync.Mutex
	files map[string]string // cleaned path -> program name
	dirs  map[string]bool
	done  chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// NewWatcher starts the watch loop.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader watcher: %w", err)
	}
	changes := make(chan string, 16)
	w := &Watcher{
		C:       changes,
		fs:      fw,
		changes: changes,
		log:     logger.Named("shader"),
		files:   make(map[string]string),
		dirs:    make(map[string]bool),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch registers the file-backed stages of the named program. Stages
// without a filename are ignored.
func (w *Watcher) Watch(name string, stages []Stage) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, st := range stages {
		if st.Filename == "" {
			continue
		}
		path := filepath.Clean(st.Filename)
		dir := filepath.Dir(path)
		if !w.dirs[dir] {
			if err := w.fs.Add(dir); err != nil {
				return fmt.Errorf("shader watcher: %s: %w", dir, err)
			}
			w.dirs[dir] = true
		}
		w.files[path] = name
	}
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.mu.Lock()
			name, found := w.files[filepath.Clean(ev.Name)]
			w.mu.Unlock()
			if !found {
				continue
			}
			w.log.Debug("shader source changed", zap.String("file", ev.Name), zap.String("program", name))
			// drop when the consumer is behind; one pending reload is enough
			select {
			case w.changes <- name:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("shader watcher error", zap.Error(err))
		}
	}
}

// Close stops watching and closes C. Later calls return the first
// call's error.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.fs.Close()
		<-w.done
		close(w.changes)
	})
	return w.closeErr
}

// Pending drains C and returns each changed program name once.
func (w *Watcher) Pending() []string {
	seen := map[string]bool{}
	var names []string
	for {
		select {
		case name, ok := <-w.C:
			if !ok {
				return names
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		default:
			return names
		}
	}
}
