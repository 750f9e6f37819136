package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/velumpress/cms/pkg/moderation"
)

// pendingWatchCmd represents the pending watch command
var pendingWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes as editors submit them",
	Long: `Watch the pending-changes file and print every newly queued change.

Only the file backend can be watched; with DATABASE_URL set use
"cmsctl pending list" instead.

Example:
  cmsctl pending watch`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := watchPending(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch pending changes: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	pendingCmd.AddCommand(pendingWatchCmd)
}

func watchPending() error {
	queue, cfg, err := openQueue()
	if err != nil {
		return err
	}
	if cfg.UsesDatabase() {
		return fmt.Errorf("pending watch requires the file backend")
	}

	filename := cfg.PendingFile()
	seen, err := printNew(queue, map[string]bool{}, false)
	if err != nil {
		return err
	}

	// The store replaces the file atomically, so watch its directory
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(filename)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(filename), err)
	}

	fmt.Printf("Watching %s for pending changes (%d queued)\n", filename, len(seen))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(filename) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if seen, err = printNew(queue, seen, true); err != nil {
				fmt.Fprintf(os.Stderr, "Error reading queue: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}

// printNew prints queued changes missing from seen and returns the ids
// currently queued
func printNew(queue *moderation.Queue, seen map[string]bool, announce bool) (map[string]bool, error) {
	changes, err := queue.List()
	if err != nil {
		return seen, err
	}
	current := make(map[string]bool, len(changes))
	for _, c := range changes {
		current[c.ID] = true
		if announce && !seen[c.ID] {
			fmt.Printf("[%s] %s %s %s %q by %s (%s)\n",
				time.Now().Format(time.RFC3339), c.Type, c.Section, changeTarget(c), c.Title(), c.UserName, c.ID)
		}
	}
	return current, nil
}
