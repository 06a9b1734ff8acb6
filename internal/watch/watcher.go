package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"filepick/internal/errors"
	"filepick/internal/log"

	"github.com/fsnotify/fsnotify"
)

// relevantOps are the operations that change what a tracked file contains.
const relevantOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// FileModification represents a change to a tracked file
type FileModification struct {
	// ID is the identifier the file was tracked under
	ID        string
	Path      string
	Timestamp time.Time
	Op        fsnotify.Op
}

// Watcher reports changes to individual tracked files using fsnotify.
// Parent directories are watched so that files replaced by rename (as most
// editors save) keep being reported.
type Watcher struct {
	// Absolute path -> ids, in tracking order
	tracked map[string][]string

	// Directories being watched
	directories []string

	// Channel to receive file modifications
	fileModChan chan FileModification

	// Channel to signal stop, and closed by the loop on exit
	stopChan chan struct{}
	doneChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Guards tracked, directories and running
	mutex sync.RWMutex

	// Whether the watcher is running
	running bool
}

// New creates a new file watcher using fsnotify
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	return &Watcher{
		tracked:     make(map[string][]string),
		directories: []string{},
		fileModChan: make(chan FileModification, 64),
		stopChan:    make(chan struct{}),
		doneChan:    make(chan struct{}),
		fsWatcher:   fsWatcher,
	}, nil
}

// Track starts reporting changes to path under id. The file itself does not
// need to exist yet, but its directory does. A path tracked under several ids
// reports each change once per id.
func (w *Watcher) Track(id, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "error resolving %s", path)
	}
	dir := filepath.Dir(abs)

	info, err := os.Stat(dir)
	if err != nil {
		return errors.Wrap(err, "error accessing directory")
	}
	if !info.IsDir() {
		return errors.NewFileError("not a directory", dir, errors.InvalidPath, nil)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	for _, existingDir := range w.directories {
		if existingDir == dir {
			w.addID(abs, id)
			return nil
		}
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to add directory %s to watcher", dir)
	}
	w.addID(abs, id)
	w.directories = append(w.directories, dir)
	log.LogWithFields(log.F("directory", dir)).Debug("Watching directory")
	return nil
}

func (w *Watcher) addID(abs, id string) {
	for _, existing := range w.tracked[abs] {
		if existing == id {
			return
		}
	}
	w.tracked[abs] = append(w.tracked[abs], id)
}

// FileChannel returns the channel that delivers file modification events.
// It is closed by Stop.
func (w *Watcher) FileChannel() <-chan FileModification {
	return w.fileModChan
}

// Start begins the file watching process using fsnotify
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	go w.loop()

	log.Debug("Watcher started")
	return nil
}

func (w *Watcher) loop() {
	defer close(w.doneChan)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&relevantOps == 0 {
				continue
			}

			w.mutex.RLock()
			ids := w.tracked[filepath.Clean(event.Name)]
			w.mutex.RUnlock()

			now := time.Now()
			for _, id := range ids {
				mod := FileModification{
					ID:        id,
					Path:      event.Name,
					Timestamp: now,
					Op:        event.Op,
				}

				// Never block the fsnotify loop on a slow consumer
				select {
				case w.fileModChan <- mod:
				default:
					log.LogWithFields(log.F("file", event.Name), log.F("id", id)).Warn("Event channel is full, dropped event")
				}
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogError(err, "fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// Stop halts the watcher and closes the event channel
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if !w.running {
		w.mutex.Unlock()
		return
	}
	w.running = false
	w.mutex.Unlock()

	close(w.stopChan)
	<-w.doneChan

	if err := w.fsWatcher.Close(); err != nil {
		log.LogError(err, "Error closing fsnotify watcher")
	}

	// The loop has exited, so nothing sends anymore
	close(w.fileModChan)
	log.Debug("Watcher stopped")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// GetDirectories returns the list of directories being watched
func (w *Watcher) GetDirectories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirsCopy := make([]string, len(w.directories))
	copy(dirsCopy, w.directories)
	return dirsCopy
}
