package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/shuttle/internal/config"
	"github.com/Iron-Ham/shuttle/internal/event"
	"github.com/Iron-Ham/shuttle/internal/logging"
	"github.com/Iron-Ham/shuttle/internal/pipeline"
	"github.com/Iron-Ham/shuttle/internal/tui"
)

// runCopy is the root command's implementation: open both files, run the
// pipeline, report per-stage status.
func runCopy(cmd *cobra.Command, sourcePath, destPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	result, err := copyFile(sourcePath, destPath, cfg, logger, force)
	if err != nil {
		// Partial results still get reported before the error surfaces.
		reportResult(cmd.OutOrStdout(), result)
		return err
	}

	reportResult(cmd.OutOrStdout(), result)
	return nil
}

// copyFile opens source and destination, runs the pipeline between them,
// and closes both on every path. The files are owned here; the pipeline
// only ever reads and writes.
func copyFile(sourcePath, destPath string, cfg *config.Config, logger *logging.Logger, force bool) (pipeline.Result, error) {
	src, err := os.Open(sourcePath)
	if err != nil {
		return pipeline.Result{}, fmt.Errorf("failed to open source: %w", err)
	}
	defer src.Close()

	destFlags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !force {
		// Refuse to clobber an existing destination unless asked to.
		destFlags = os.O_CREATE | os.O_WRONLY | os.O_EXCL
	}
	dst, err := os.OpenFile(destPath, destFlags, 0644)
	if err != nil {
		return pipeline.Result{}, fmt.Errorf("failed to create destination: %w", err)
	}
	defer dst.Close()

	bus := event.NewBus()
	p := pipeline.New(src, dst,
		pipeline.WithCapacity(cfg.Copy.BufferSize),
		pipeline.WithLogger(logger),
		pipeline.WithBus(bus),
	)

	if showProgress(cfg) {
		return runWithProgress(p, bus, sourcePath, sourceSize(src))
	}
	return p.Run()
}

// runWithProgress runs the pipeline on a background goroutine while the
// calling goroutine drives the progress display. The display is fed from
// bus events and quits itself once the run completes.
func runWithProgress(p *pipeline.Pipeline, bus *event.Bus, sourcePath string, total int64) (pipeline.Result, error) {
	prog := tea.NewProgram(tui.NewModel(sourcePath, total))

	bus.Subscribe("round.drained", func(e event.Event) {
		drained := e.(event.RoundDrainedEvent)
		prog.Send(tui.ProgressMsg{Bytes: drained.Total, Round: drained.Round})
	})

	var result pipeline.Result
	var runErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, runErr = p.Run()
		prog.Send(tui.DoneMsg{Bytes: result.BytesCopied, Rounds: result.Rounds, Err: runErr})
	}()

	// A failing display must not fail the copy; the pipeline result is
	// authoritative either way.
	_, _ = prog.Run()
	<-done
	return result, runErr
}

// reportResult prints each stage's terminal status verbatim, in the
// order the stages sit in the pipeline.
func reportResult(out io.Writer, result pipeline.Result) {
	for _, stage := range []pipeline.StageResult{result.Reader, result.Writer} {
		if stage.Stage == "" {
			continue // run never started
		}
		if stage.Err != nil {
			fmt.Fprintf(out, "%s: %d bytes, error: %v\n", stage.Stage, stage.Bytes, stage.Err)
		} else {
			fmt.Fprintf(out, "%s: %d bytes, ok\n", stage.Stage, stage.Bytes)
		}
	}
}

// newLogger builds the run logger from config. Without a configured
// directory, logging is disabled rather than spamming stderr.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	if cfg.Logging.Dir == "" {
		return logging.NopLogger(), nil
	}
	return logging.NewLogger(cfg.Logging.Dir, logging.ParseLevel(cfg.Logging.Level))
}

func showProgress(cfg *config.Config) bool {
	return cfg.TUI.Progress && isatty.IsTerminal(os.Stdout.Fd())
}

func sourceSize(src *os.File) int64 {
	info, err := src.Stat()
	if err != nil {
		return 0
	}
	return info.Size()
}
