package config

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 500 * time.Millisecond

// Watch monitors the config file and invokes onChange with the freshly
// loaded config after edits settle. The parent directory is watched
// because most editors replace the file on save. The returned stop
// function releases the watcher.
func Watch(path string, onChange func(*Config)) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	go func() {
		var debounceTimer *time.Timer

		reload := func() {
			cfg, err := Load(path)
			if err != nil {
				log.Printf("config reload error: %v", err)
				return
			}
			onChange(cfg)
		}

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Write) ||
					event.Has(fsnotify.Rename) {

					if debounceTimer != nil {
						debounceTimer.Stop()
					}
					debounceTimer = time.AfterFunc(watchDebounce, reload)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("config watcher error: %v", err)
			}
		}
	}()

	return watcher.Close, nil
}
