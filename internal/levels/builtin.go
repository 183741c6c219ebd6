package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

var (
	builtinOnce   sync.Once
	builtinLevels []*Level
	builtinErr    error
)

// Builtins returns the levels embedded in the binary, sorted by ID.
// They are parsed once; callers must not modify the returned levels.
func Builtins() ([]*Level, error) {
	builtinOnce.Do(func() {
		builtinLevels, builtinErr = loadEmbedded(builtinFS, "builtin")
	})
	return builtinLevels, builtinErr
}

// Builtin returns the embedded level with the given ID.
func Builtin(id string) (*Level, error) {
	all, err := Builtins()
	if err != nil {
		return nil, err
	}
	for _, lvl := range all {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func loadEmbedded(fsys fs.FS, dir string) ([]*Level, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("levels: reading embedded levels: %w", err)
	}
	assets, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("levels: embedded assets: %w", err)
	}

	var levels []*Level
	for _, e := range entries {
		if e.IsDir() || !isSupportedExtension(path.Ext(e.Name())) {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("levels: reading %s: %w", e.Name(), err)
		}
		lvl, err := Parse(data, assets)
		if err != nil {
			return nil, fmt.Errorf("levels: built-in %s: %w", e.Name(), err)
		}
		lvl.FilePath = "builtin:" + e.Name()
		levels = append(levels, lvl)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}
