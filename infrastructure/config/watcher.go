package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounceDelay coalesces editor save bursts into a single reload
const debounceDelay = 250 * time.Millisecond

// Watcher watches the user config file and hot reloads it on change.
// A reload that fails validation keeps the previous configuration.
type Watcher struct {
	config    *Config
	callbacks []func(*Config)
	mu        sync.RWMutex
	logger    *zap.Logger
	watcher   *fsnotify.Watcher
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// NewWatcher creates a watcher for the default config file and starts
// its watch loop
func NewWatcher(initial *Config, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		config:    initial,
		callbacks: make([]func(*Config), 0),
		logger:    logger,
		watcher:   fsWatcher,
		stopCh:    make(chan struct{}),
	}

	// Watch the directory rather than the file itself so atomic
	// writes (write temp, rename over) keep being observed
	dir := Dir()
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch config directory %s: %w", dir, err)
	}

	go w.watchLoop()

	logger.Info("Configuration hot reloading enabled",
		zap.String("file", File()),
	)
	return w, nil
}

// OnChange registers a callback invoked after a successful reload
func (w *Watcher) OnChange(callback func(*Config)) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, callback)
	w.mu.Unlock()
}

// Config returns the current configuration
func (w *Watcher) Config() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.config
}

// Stop stops the watcher
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.watcher.Close()
	})
}

func (w *Watcher) watchLoop() {
	var debounceTimer *time.Timer
	configFile := File()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != configFile {
				continue
			}

			w.logger.Debug("Configuration file changed",
				zap.String("file", event.Name),
				zap.String("operation", event.Op.String()),
			)

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))

		case <-w.stopCh:
			w.logger.Info("Stopping configuration watcher")
			return
		}
	}
}

// reload loads the config file again and swaps it in on success
func (w *Watcher) reload() {
	newConfig, err := Load(w.logger)
	if err != nil {
		w.logger.Error("Keeping previous configuration after failed reload",
			zap.Error(err),
		)
		return
	}

	w.mu.Lock()
	if reflect.DeepEqual(w.config, newConfig) {
		w.mu.Unlock()
		w.logger.Debug("Configuration unchanged after reload")
		return
	}
	w.config = newConfig
	callbacks := make([]func(*Config), len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	for _, cb := range callbacks {
		cb(newConfig)
	}

	w.logger.Info("Configuration reloaded",
		zap.Int("callbacks_notified", len(callbacks)),
	)
}
