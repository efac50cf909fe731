// Package watcher watches the knowledge data file for changes so the
// indexer can re-ingest without restarts.
package watcher

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/adarsha-ai/backend/internal/infrastructure/log"
)

// DefaultDebounceDelay coalesces editor save bursts into one event.
const DefaultDebounceDelay = 500 * time.Millisecond

// FileWatcher watches a single data file and invokes the callback
// after writes settle.
type FileWatcher struct {
	filePath      string
	debounceDelay time.Duration
	onChange      func(path string)
	watcher       *fsnotify.Watcher
	logger        *slog.Logger

	debounceTimer *time.Timer
	debounceMu    sync.Mutex

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewFileWatcher creates a watcher for the given file. The callback
// runs on the watcher goroutine's timer; keep it short or hand off.
func NewFileWatcher(filePath string, onChange func(path string)) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &FileWatcher{
		filePath:      filePath,
		debounceDelay: DefaultDebounceDelay,
		onChange:      onChange,
		watcher:       watcher,
		logger:        log.NewModuleLogger("watcher", "file_watcher"),
		stopCh:        make(chan struct{}),
	}, nil
}

// Start begins watching. The parent directory is watched rather than
// the file itself so atomic saves (rename over the file) are seen.
func (fw *FileWatcher) Start() error {
	dir := filepath.Dir(fw.filePath)
	if err := fw.watcher.Add(dir); err != nil {
		return err
	}

	fw.logger.Info("Watching data file",
		"file", fw.filePath,
	)

	fw.wg.Add(1)
	go fw.watchLoop()

	return nil
}

// Stop shuts the watcher down and cancels any pending callback.
func (fw *FileWatcher) Stop() {
	close(fw.stopCh)
	fw.watcher.Close()
	fw.wg.Wait()

	fw.debounceMu.Lock()
	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	fw.debounceMu.Unlock()
}

func (fw *FileWatcher) watchLoop() {
	defer fw.wg.Done()

	for {
		select {
		case <-fw.stopCh:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleFsEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("Watcher error", "error", err)
		}
	}
}

func (fw *FileWatcher) handleFsEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(fw.filePath) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	fw.debounceMu.Lock()
	defer fw.debounceMu.Unlock()

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}

	fw.debounceTimer = time.AfterFunc(fw.debounceDelay, func() {
		fw.logger.Info("Data file changed",
			"file", fw.filePath,
		)
		fw.onChange(fw.filePath)
	})
}
