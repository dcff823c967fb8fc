package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/shuttle/internal/config"
	"github.com/Iron-Ham/shuttle/internal/errors"
	"github.com/Iron-Ham/shuttle/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <source> <destination>",
	Short: "Copy once, then re-copy whenever the source changes",
	Long: `Watch performs an initial copy and then monitors the source file,
re-running the copy pipeline after each change. Bursts of writes are
debounced into a single re-copy. Stop with Ctrl-C.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.NewUsageError("expected exactly two arguments: <source> <destination>")
		}
		return nil
	},
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	sourcePath, destPath := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// Watch mode always overwrites the destination on re-copy, and the
	// full-screen progress display would fight the long-running loop.
	cfg.TUI.Progress = false

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	recopy := func() {
		result, err := copyFile(sourcePath, destPath, cfg, logger, true)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "re-copy failed: %v\n", err)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "re-copied %d bytes in %d rounds\n", result.BytesCopied, result.Rounds)
	}

	// Initial copy before watching; a missing source is fatal here
	// rather than silently waited on.
	result, err := copyFile(sourcePath, destPath, cfg, logger, true)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "copied %d bytes in %d rounds, watching %s\n", result.BytesCopied, result.Rounds, sourcePath)

	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	watcher, err := watch.New(sourcePath, debounce, recopy, logger)
	if err != nil {
		return fmt.Errorf("failed to watch source: %w", err)
	}
	watcher.Start()
	defer watcher.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	<-sig

	fmt.Fprintln(cmd.OutOrStdout(), "stopped")
	return nil
}
