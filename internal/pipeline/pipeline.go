package pipeline

import (
	"io"

	"github.com/google/uuid"

	"github.com/Iron-Ham/shuttle/internal/event"
	"github.com/Iron-Ham/shuttle/internal/fiber"
	"github.com/Iron-Ham/shuttle/internal/slot"
)

// Pipeline copies bytes from a source to a destination through a single
// shared buffer slot, using one reader fiber and one writer fiber.
// A Pipeline is single-use: create a new one for every run.
type Pipeline struct {
	src io.Reader
	dst io.Writer
	cfg config
}

// New creates a pipeline copying from src to dst. The source and
// destination are opened and closed by the caller; the pipeline only
// reads and writes.
func New(src io.Reader, dst io.Writer, opts ...Option) *Pipeline {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Pipeline{src: src, dst: dst, cfg: cfg}
}

// Run executes the pipeline to completion on the calling goroutine, which
// serves as the coordinator fiber. It creates the two worker fibers,
// hands control to the reader, and blocks until the pipeline has fully
// terminated. Both workers are torn down on every exit path.
//
// The returned error is [Result.Err]: nil only if both stages succeeded.
func (p *Pipeline) Run() (Result, error) {
	runID := uuid.NewString()
	log := p.cfg.logger.WithRun(runID)
	buf := slot.New(p.cfg.capacity)

	// Results are initialized here so a worker torn down before it ever
	// ran still reports a well-formed status (zero bytes, no error).
	reader := &readStage{pipe: p, buf: buf, log: log.WithStage(StageRead), result: StageResult{Stage: StageRead}}
	writer := &writeStage{pipe: p, buf: buf, log: log.WithStage(StageWrite), result: StageResult{Stage: StageWrite}}

	sched := fiber.NewScheduler()
	writerFiber := sched.New("writer", func() { writer.run() })
	readerFiber := sched.New("reader", func() { reader.run() })
	reader.sched, reader.next = sched, writerFiber
	writer.sched, writer.next = sched, readerFiber

	log.Debug("pipeline starting", "capacity", buf.Cap())
	sched.Switch(readerFiber)

	// Control is back: at least one worker terminated on its own and the
	// other may still be parked at its last switch. Tear both down so
	// every goroutine is released regardless of how the run ended.
	sched.Stop(writerFiber)
	sched.Stop(readerFiber)

	result := Result{
		RunID:       runID,
		Reader:      reader.result,
		Writer:      writer.result,
		Rounds:      buf.Rounds(),
		BytesCopied: writer.result.Bytes,
	}

	err := result.Err()
	p.cfg.bus.Publish(event.NewCopyCompletedEvent(runID, result.Rounds, result.BytesCopied, err))
	if err != nil {
		log.Error("pipeline failed", "rounds", result.Rounds, "bytes", result.BytesCopied, "error", err)
	} else {
		log.Info("pipeline completed", "rounds", result.Rounds, "bytes", result.BytesCopied)
	}
	return result, err
}
