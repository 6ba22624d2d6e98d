// Package levels provides level loading for Cubes.
// This package depends on core but core does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/cube-arcade/internal/games/cubes/core"
	"github.com/vovakirdan/cube-arcade/internal/games/cubes/levels/formats"
)

// ErrLevelNotFound is returned by LoadByID when no level has the id.
var ErrLevelNotFound = errors.New("level not found")

// Level represents a complete level definition.
type Level struct {
	ID       string
	Title    string
	Author   string
	Seed     core.Seed
	FilePath string
}

// NewState creates an engine state from this level.
func (l *Level) NewState(opts ...core.Option) *core.State {
	return core.New(l.Seed, opts...)
}

// Goals returns the number of destinations of the level.
func (l *Level) Goals() int {
	return len(l.Seed.Destinations)
}

// FileError is a level file that failed to load.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Loader handles loading levels from a directory or an embedded tree.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a new level loader reading from the root directory.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped; use Check to list them.
// Returns levels sorted by file name for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, _, err := l.scan()
	return levels, err
}

// Check loads every level file and returns the failures.
func (l *Loader) Check() ([]FileError, error) {
	_, failures, err := l.scan()
	return failures, err
}

func (l *Loader) scan() ([]Level, []FileError, error) {
	var (
		levels   []Level
		failures []FileError
	)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !formats.Supported(p) {
			return nil
		}

		level, err := l.load(p)
		if err != nil {
			failures = append(failures, FileError{Path: l.display(p), Err: err})
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return path.Base(levels[i].FilePath) < path.Base(levels[j].FilePath)
	})
	return levels, failures, nil
}

// LoadFile loads a single level file. Relative paths inside the loader's
// root are resolved against it, anything else is read from disk.
func (l *Loader) LoadFile(p string) (Level, error) {
	if l.fsys != nil && fs.ValidPath(p) {
		if _, err := fs.Stat(l.fsys, p); err == nil {
			return l.load(p)
		}
	}
	return ReadFile(p)
}

func (l *Loader) load(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", l.display(p), err)
	}
	return build(l.display(p), data)
}

func (l *Loader) display(p string) string {
	if l.Root == "" {
		return p
	}
	return filepath.Join(l.Root, filepath.FromSlash(p))
}

// ReadFile loads a level file from disk.
func ReadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}
	return build(p, data)
}

func build(p string, data []byte) (Level, error) {
	parsed, err := formats.Parse(p, data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	return Level{
		ID:       ID(p),
		Title:    parsed.Title,
		Author:   parsed.Author,
		Seed:     parsed.Seed,
		FilePath: p,
	}, nil
}

// ID returns the level id of a file path: its base name without extension.
func ID(p string) string {
	base := path.Base(filepath.ToSlash(p))
	return strings.TrimSuffix(base, path.Ext(base))
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level IDs in load order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}
