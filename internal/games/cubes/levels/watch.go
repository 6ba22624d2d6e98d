package levels

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vovakirdan/cube-arcade/internal/games/cubes/levels/formats"
)

// DefaultDebounce is the quiet period Watch waits before reloading a file.
// Editors often write a file in several steps.
const DefaultDebounce = 150 * time.Millisecond

// ReloadFunc receives a reloaded level, or the error that prevented loading it.
type ReloadFunc func(Level, error)

// Watch watches dir for changed level files and reloads them, calling fn once
// per file after the debounce window. It blocks until ctx is done.
func Watch(ctx context.Context, dir string, debounce time.Duration, fn ReloadFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("levels: create watcher: %w", err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("levels: watch %s: %w", dir, err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	pending := make(map[string]struct{})
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
					continue
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !formats.Supported(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fn(Level{}, fmt.Errorf("levels: watcher: %w", err))

		case <-timerC:
			timerC = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			sort.Strings(paths)
			for _, p := range paths {
				fn(ReadFile(p))
			}
		}
	}
}
