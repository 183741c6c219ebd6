package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-raycaster/internal/config"
	"github.com/vovakirdan/tui-raycaster/internal/levels"
	"github.com/vovakirdan/tui-raycaster/internal/registry"
	"github.com/vovakirdan/tui-raycaster/internal/storage"
)

// app holds what every subcommand needs: configuration, logging and storage.
type app struct {
	cfg     config.Config
	logger  *log.Logger
	logFile *os.File
	store   *storage.Store
}

// logDestination selects where an app logs.
type logDestination int

const (
	logToStderr logDestination = iota
	logToFile                  // Terminal UIs own the screen; logs go to ~/.raycast/raycast.log
)

// newApp loads configuration, sets up logging and registers user levels.
// Storage is opened lazily by openStore.
func newApp(dest logDestination) (*app, error) {
	a := &app{}

	var w io.Writer = os.Stderr
	if dest == logToFile {
		path := filepath.Join(config.DataDir(), "raycast.log")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("cannot create data directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		a.logFile = f
		w = f
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	a.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "raycast",
		Level:           level,
	})

	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.logger.Debug("config loaded", "source", source)

	if flagQuality != "" {
		preset, err := config.ParseQualityPreset(flagQuality)
		if err != nil {
			a.Close()
			return nil, err
		}
		config.ApplyQualityPreset(&cfg, preset)
		a.logger.Debug("quality preset applied", "preset", preset, "workers", cfg.Render.Workers)
	}
	if flagFPS > 0 {
		cfg.Render.TickRate = flagFPS
	}
	a.cfg = cfg

	a.registerUserLevels()
	return a, nil
}

// registerUserLevels adds the configured level directory to the registry.
func (a *app) registerUserLevels() {
	dir := config.ExpandHome(a.cfg.Levels.Dir)
	if dir == "" {
		return
	}
	added, skipped, err := registry.AddDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Debug("no user level directory", "dir", dir)
		return
	}
	if err != nil {
		a.logger.Warn("cannot read user levels", "dir", dir, "err", err)
		return
	}
	for path, err := range skipped {
		a.logger.Warn("level skipped", "path", path, "err", err)
	}
	if len(added) > 0 {
		a.logger.Info("user levels registered", "dir", dir, "count", len(added))
	}
}

// openStore opens the runs database. With required unset a failure is
// logged and the app continues without storage.
func (a *app) openStore(required bool) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		if required {
			return err
		}
		a.logger.Warn("runs database unavailable, runs will not be recorded", "err", err)
		return nil
	}
	a.store = store
	return nil
}

// Close releases the store and the log file.
func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// resolveLevel loads a level by file path or registered ID. An empty
// argument selects the configured default. isFile reports whether the
// level came from a file and can be watched.
func (a *app) resolveLevel(arg string) (level *levels.Level, isFile bool, err error) {
	if arg == "" {
		arg = a.cfg.Levels.Default
	}
	if looksLikeFile(arg) {
		level, err := levels.LoadFile(arg)
		if err != nil {
			return nil, false, err
		}
		a.logger.Debug("level loaded", "id", level.ID, "path", level.FilePath)
		return level, true, nil
	}

	if !registry.Exists(arg) {
		return nil, false, fmt.Errorf("unknown level %q; run 'raycast levels' to see available levels", arg)
	}
	level, err = registry.Create(arg)
	if err != nil {
		return nil, false, err
	}
	a.logger.Debug("level loaded", "id", level.ID)
	return level, false, nil
}

// looksLikeFile reports whether arg names a level file rather than an ID.
func looksLikeFile(arg string) bool {
	ext := strings.ToLower(filepath.Ext(arg))
	for _, e := range levels.FormatExtensions() {
		if ext == e {
			return true
		}
	}
	return strings.ContainsRune(arg, os.PathSeparator)
}

// watchLevel starts a watcher for a level file, logging instead of failing.
func (a *app) watchLevel(level *levels.Level) *levels.Watcher {
	w, err := levels.Watch(level.FilePath)
	if err != nil {
		a.logger.Warn("cannot watch level", "path", level.FilePath, "err", err)
		return nil
	}
	a.logger.Info("watching level", "path", w.Path())
	return w
}

// snapshotDir is where interactive snapshots are written.
func snapshotDir() string {
	return filepath.Join(config.DataDir(), "snapshots")
}

// terminalSize returns the terminal size, or 80x24 when stdout is not a terminal.
func terminalSize() (width, height int) {
	width, height = 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
