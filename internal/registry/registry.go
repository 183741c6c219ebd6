// Package registry provides the process-wide catalog of playable levels.
// Built-in levels register themselves at init; user levels are added from
// a directory. The platform discovers and instantiates levels by ID
// without knowing where they came from.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-raycaster/internal/levels"
)

// SourceBuiltin marks levels embedded in the binary.
const SourceBuiltin = "builtin"

// LevelInfo contains metadata about a registered level.
type LevelInfo struct {
	ID     string
	Name   string
	Source string // SourceBuiltin or the level file path
}

// Factory produces a level. File-backed factories re-read the file on every
// call so edits are picked up.
type Factory func() (*levels.Level, error)

type entry struct {
	info    LevelInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

func init() {
	all, err := levels.Builtins()
	if err != nil {
		panic(fmt.Sprintf("registry: built-in levels: %v", err))
	}
	for _, lvl := range all {
		Register(LevelInfo{ID: lvl.ID, Name: lvl.Name, Source: SourceBuiltin}, func() (*levels.Level, error) {
			return lvl, nil
		})
	}
}

// Register adds a level factory to the catalog.
// Panics if a level with the same ID is already registered.
func Register(info LevelInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: level %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// AddDir registers every level found under dir. Levels whose ID is
// already taken and files that fail to parse are returned in skipped,
// keyed by path; the rest are registered and their IDs returned.
func AddDir(dir string) (added []string, skipped map[string]error, err error) {
	all, skipped, err := levels.NewLoader(dir).LoadAll()
	if err != nil {
		return nil, nil, err
	}

	for _, lvl := range all {
		if Exists(lvl.ID) {
			skipped[lvl.FilePath] = fmt.Errorf("registry: level %q already registered", lvl.ID)
			continue
		}
		path := lvl.FilePath
		Register(LevelInfo{ID: lvl.ID, Name: lvl.Name, Source: path}, func() (*levels.Level, error) {
			return levels.LoadFile(path)
		})
		added = append(added, lvl.ID)
	}
	return added, skipped, nil
}

// List returns information about all registered levels, sorted by ID.
func List() []LevelInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LevelInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Info returns the metadata of a registered level.
func Info(id string) (LevelInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create loads a level by its ID.
// Returns an error if the level ID is not registered or fails to load.
func Create(id string) (*levels.Level, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown level %q", id)
	}
	lvl, err := e.factory()
	if err != nil {
		return nil, fmt.Errorf("registry: level %q: %w", id, err)
	}
	return lvl, nil
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// unregister removes a level. Tests use it to undo AddDir.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(entries, id)
}
