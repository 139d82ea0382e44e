package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"planguard/internal/config"
	gerrors "planguard/internal/errors"
	"planguard/internal/graph"
	"planguard/internal/logging"
	"planguard/internal/scan"
	"planguard/internal/store"
)

// newLogger creates a stderr logger honoring the configured format and
// the --verbose flag.
func newLogger(cfg *config.Config) *slog.Logger {
	level := logging.LevelFromString(cfg.Logging.Level)
	if verboseFlag {
		level = slog.LevelDebug
	}
	if cfg.Logging.Format == "json" {
		return logging.NewJSONLogger(os.Stderr, level)
	}
	return logging.NewLogger(os.Stderr, level)
}

// mustLoadConfig loads the project config or exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.LoadConfig(rootFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// resolveSnapshotPath picks the snapshot path from the flag override or
// the project config, made absolute against --root.
func resolveSnapshotPath(cfg *config.Config, override string) string {
	path := cfg.Snapshot.Path
	if override != "" {
		path = override
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(rootFlag, path)
	}
	return path
}

// mustLoadIndex loads the snapshot and builds the element graph, or
// exits when no snapshot is available. A missing snapshot file falls
// back to the cache database populated by 'snapshot import'.
func mustLoadIndex(cfg *config.Config, override string, logger *slog.Logger) *graph.Index {
	path := resolveSnapshotPath(cfg, override)

	snap, err := scan.LoadSnapshot(path, logger)
	if err != nil {
		if gerrors.IsNotFound(err) && override == "" {
			if cached := loadCachedSnapshot(cfg, logger); cached != nil {
				logger.Debug("Using cached snapshot", "elements", len(cached.Elements))
				return graph.NewIndex(cached.Elements)
			}
		}
		fmt.Fprintf(os.Stderr, "Error loading snapshot: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'planguard snapshot import' or point --snapshot at a scan output.\n")
		os.Exit(1)
	}

	return graph.NewIndex(snap.Elements)
}

// loadCachedSnapshot reads the cache database, returning nil when the
// cache is empty or unreadable.
func loadCachedSnapshot(cfg *config.Config, logger *slog.Logger) *scan.Snapshot {
	s, err := store.OpenStore(cacheDir(cfg), logger)
	if err != nil {
		return nil
	}
	defer s.Close()

	snap, err := s.LoadSnapshot()
	if err != nil {
		return nil
	}
	return snap
}
