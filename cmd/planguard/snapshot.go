package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"planguard/internal/config"
	"planguard/internal/scan"
	"planguard/internal/store"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage the code scan snapshot cache",
}

var snapshotImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a scan snapshot or SCIP index into the local cache",
	Long: `Import element data into the .planguard cache database.

Accepts a JSON scan snapshot (optionally zstd-compressed with a .zst
suffix) or a SCIP index (.scip), which is converted to elements first.

Examples:
  planguard snapshot import out/snapshot.json
  planguard snapshot import out/snapshot.json.zst
  planguard snapshot import index.scip`,
	Args: cobra.ExactArgs(1),
	Run:  runSnapshotImport,
}

var snapshotInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show what is in the snapshot cache",
	Args:  cobra.NoArgs,
	Run:   runSnapshotInfo,
}

func init() {
	snapshotCmd.AddCommand(snapshotImportCmd)
	snapshotCmd.AddCommand(snapshotInfoCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// cacheDir resolves the directory holding the cache database.
func cacheDir(cfg *config.Config) string {
	path := cfg.Snapshot.CacheDB
	if !filepath.IsAbs(path) {
		path = filepath.Join(rootFlag, path)
	}
	return filepath.Dir(path)
}

func runSnapshotImport(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)
	path := args[0]

	var snap *scan.Snapshot
	var err error
	if strings.HasSuffix(path, ".scip") {
		snap, err = scan.ImportSCIP(path, logger)
	} else {
		snap, err = scan.LoadSnapshot(path, logger)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		os.Exit(1)
	}

	s, err := store.OpenStore(cacheDir(cfg), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening cache: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	if err := s.SaveSnapshot(snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error caching snapshot: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d elements into %s\n", len(snap.Elements), s.Path())
}

func runSnapshotInfo(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	s, err := store.OpenStore(cacheDir(cfg), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening cache: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	snap, err := s.LoadSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading cache: %v\n", err)
		os.Exit(1)
	}
	if snap == nil {
		fmt.Println("No snapshot cached. Run 'planguard snapshot import' first.")
		return
	}

	fmt.Printf("Snapshot: %d elements", len(snap.Elements))
	if snap.Tool != "" {
		fmt.Printf(" (tool: %s)", snap.Tool)
	}
	if snap.GeneratedAt != "" {
		fmt.Printf(", generated %s", snap.GeneratedAt)
	}
	fmt.Println()

	byKind := make(map[string]int)
	for _, el := range snap.Elements {
		byKind[string(el.Kind)]++
	}
	kinds := make([]string, 0, len(byKind))
	for kind := range byKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Printf("  %-10s %d\n", kind, byKind[kind])
	}
}
