package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cognitivegears/ha-escpos-thermal-printer/internal/domain/ports"
)

// debounceDelay coalesces the event bursts editors and atomic-rename
// writers produce into a single reload.
const debounceDelay = 250 * time.Millisecond

// Watcher reloads the config file when it changes on disk.
type Watcher struct {
	path     string
	log      ports.Logger
	onChange func(*Config)
	fw       *fsnotify.Watcher
	done     chan struct{}
}

// NewWatcher watches path and calls onChange with each successfully
// reloaded config. The parent directory is watched, not the file, so
// atomic saves (write temp, rename over) keep working.
func NewWatcher(path string, log ports.Logger, onChange func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     path,
		log:      log,
		onChange: onChange,
		fw:       fw,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *Watcher) loop() {
	timer := time.NewTimer(debounceDelay)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounceDelay)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher: %v", err)

		case <-timer.C:
			cfg, err := Load(w.path)
			if err != nil {
				w.log.Error("reload config: %v", err)
				continue
			}
			w.log.Info("config reloaded from %s", w.path)
			w.onChange(cfg)
		}
	}
}
