package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/openmodule/classspace/feeders"
)

// ErrUnsupportedExtension means the config path's extension has no
// registered feeder.
var ErrUnsupportedExtension = errors.New("unsupported config file extension")

// FileLoader loads a single struct from one TOML or YAML file, and can watch
// that file for changes via fsnotify.
type FileLoader struct {
	path string
	feed func(target interface{}) error
}

// NewFileLoader builds a FileLoader for path, selecting the feeder by
// extension (.toml, .yaml, .yml).
func NewFileLoader(path string) (*FileLoader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		f := feeders.NewTomlFeeder(path)
		return &FileLoader{path: path, feed: f.Feed}, nil
	case ".yaml", ".yml":
		f := feeders.NewYamlFeeder(path)
		return &FileLoader{path: path, feed: f.Feed}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, path)
	}
}

// Load reads the file into target once.
func (l *FileLoader) Load(target interface{}) error {
	if err := l.feed(target); err != nil {
		return fmt.Errorf("config: load %s: %w", l.path, err)
	}
	return nil
}

// Watch starts an fsnotify watch on the file's directory (matching how
// editors replace files via rename-on-save) and re-feeds target into
// onChange whenever the file is written or recreated. It runs in its own
// goroutine until ctx is cancelled.
func (l *FileLoader) Watch(ctx context.Context, target interface{}, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: start watch on %s: %w", l.path, err)
	}
	if err := watcher.Add(filepath.Dir(l.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("config: watch dir for %s: %w", l.path, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(l.path) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := l.Load(target); err == nil {
					onChange()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}
