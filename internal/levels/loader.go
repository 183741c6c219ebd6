// Package levels loads raycaster levels from YAML files.
//
// A level file names its format version, a set of textures, a legend
// mapping characters to cells, one or two character layers and a spawn
// point. Built-in levels are embedded in the binary; user levels are read
// from a directory and can be watched for changes.
package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned by LoadByID when no level has the requested ID.
var ErrNotFound = errors.New("levels: level not found")

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Files that fail to parse are skipped and reported in the returned
// skipped map, keyed by path. Levels are sorted by ID.
func (l *Loader) LoadAll() ([]*Level, map[string]error, error) {
	var levels []*Level
	skipped := make(map[string]error)

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			skipped[path] = err
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, skipped, nil
}

// LoadFile loads a single level file. Texture files are resolved relative
// to the level file's directory.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	level, err := Parse(data, os.DirFS(filepath.Dir(path)))
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	level.FilePath = path
	return level, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (*Level, error) {
	return LoadFile(path)
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (*Level, error) {
	levels, _, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
